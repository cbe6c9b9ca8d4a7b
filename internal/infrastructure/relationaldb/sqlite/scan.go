package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

// scanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

// nullString wraps a string into a NULL-able column value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the given table.
func isUniqueViolation(err error, table string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, table)
}

const selectRecipe = `
	SELECT id, owner_id, title, description, ingredients, steps, servings,
		category, tags, prep_time, cook_time, difficulty,
		is_fork, original_recipe_id, fork_count, star_count, version_count,
		created_at, updated_at
	FROM recipes
`

func scanRecipe(s scanner) (*entities.Recipe, error) {
	var recipe entities.Recipe
	var description, category, tags, originalID sql.NullString
	var ingredients, difficulty string

	err := s.Scan(
		&recipe.ID,
		&recipe.OwnerID,
		&recipe.Title,
		&description,
		&ingredients,
		&recipe.Steps,
		&recipe.Servings,
		&category,
		&tags,
		&recipe.PrepTime,
		&recipe.CookTime,
		&difficulty,
		&recipe.IsFork,
		&originalID,
		&recipe.ForkCount,
		&recipe.StarCount,
		&recipe.VersionCount,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	recipe.Description = description.String
	recipe.Category = category.String
	recipe.Tags = tags.String
	recipe.OriginalRecipeID = originalID.String
	recipe.Difficulty = entities.Difficulty(difficulty)
	if err := json.Unmarshal([]byte(ingredients), &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshaling ingredients: %w", err)
	}
	return &recipe, nil
}

func insertRecipe(ctx context.Context, tx *sql.Tx, recipe *entities.Recipe) error {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("marshaling ingredients: %w", err)
	}

	query := `
		INSERT INTO recipes (id, owner_id, title, description, ingredients, steps, servings,
			category, tags, prep_time, cook_time, difficulty,
			is_fork, original_recipe_id, fork_count, star_count, version_count,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		recipe.ID,
		recipe.OwnerID,
		recipe.Title,
		nullString(recipe.Description),
		string(ingredients),
		recipe.Steps,
		recipe.Servings,
		nullString(recipe.Category),
		nullString(recipe.Tags),
		recipe.PrepTime,
		recipe.CookTime,
		string(recipe.Difficulty),
		recipe.IsFork,
		nullString(recipe.OriginalRecipeID),
		recipe.ForkCount,
		recipe.StarCount,
		recipe.VersionCount,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting recipe: %w", err)
	}
	return nil
}

const selectVersion = `
	SELECT v.id, v.recipe_id, v.version_number, v.commit_message, v.author_id,
		v.parent_version_id, v.changes, v.snapshot, v.created_at,
		u.id, u.username, u.name, u.avatar_url
	FROM recipe_versions v
	LEFT JOIN users u ON u.id = v.author_id
`

func scanVersion(s scanner) (*entities.RecipeVersion, error) {
	var v entities.RecipeVersion
	var parentID sql.NullString
	var changes, snapshot string
	var userID, username, name, avatarURL sql.NullString

	err := s.Scan(
		&v.ID,
		&v.RecipeID,
		&v.VersionNumber,
		&v.CommitMessage,
		&v.AuthorID,
		&parentID,
		&changes,
		&snapshot,
		&v.CreatedAt,
		&userID,
		&username,
		&name,
		&avatarURL,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning version: %w", err)
	}

	v.ParentVersionID = parentID.String
	if err := json.Unmarshal([]byte(changes), &v.Changes); err != nil {
		return nil, fmt.Errorf("unmarshaling changes: %w", err)
	}
	decoded, err := entities.DecodeSnapshot([]byte(snapshot))
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	v.Snapshot = decoded
	if userID.Valid {
		v.Author = &entities.User{
			ID:        userID.String,
			Username:  username.String,
			Name:      name.String,
			AvatarURL: avatarURL.String,
		}
	}
	return &v, nil
}

func insertVersion(ctx context.Context, tx *sql.Tx, v *entities.RecipeVersion) error {
	changes, err := json.Marshal(v.Changes)
	if err != nil {
		return fmt.Errorf("marshaling changes: %w", err)
	}
	snapshot, err := json.Marshal(v.Snapshot)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	query := `
		INSERT INTO recipe_versions (id, recipe_id, version_number, commit_message, author_id, parent_version_id, changes, snapshot, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		v.ID,
		v.RecipeID,
		v.VersionNumber,
		v.CommitMessage,
		v.AuthorID,
		nullString(v.ParentVersionID),
		string(changes),
		string(snapshot),
		v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "recipe_versions") {
			return entities.ErrVersionConflict
		}
		return fmt.Errorf("inserting version: %w", err)
	}
	return nil
}

const selectBranch = `
	SELECT b.id, b.recipe_id, b.name, b.description, b.created_by,
		b.parent_branch_id, b.base_version_id, b.is_default, b.is_active, b.created_at,
		u.id, u.username, u.name, u.avatar_url
	FROM recipe_branches b
	LEFT JOIN users u ON u.id = b.created_by
`

func scanBranch(s scanner) (*entities.Branch, error) {
	var b entities.Branch
	var description, parentBranchID, baseVersionID sql.NullString
	var userID, username, name, avatarURL sql.NullString

	err := s.Scan(
		&b.ID,
		&b.RecipeID,
		&b.Name,
		&description,
		&b.CreatedBy,
		&parentBranchID,
		&baseVersionID,
		&b.IsDefault,
		&b.IsActive,
		&b.CreatedAt,
		&userID,
		&username,
		&name,
		&avatarURL,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning branch: %w", err)
	}

	b.Description = description.String
	b.ParentBranchID = parentBranchID.String
	b.BaseVersionID = baseVersionID.String
	if userID.Valid {
		b.Creator = &entities.User{
			ID:        userID.String,
			Username:  username.String,
			Name:      name.String,
			AvatarURL: avatarURL.String,
		}
	}
	return &b, nil
}

func insertBranch(ctx context.Context, tx *sql.Tx, b *entities.Branch) error {
	query := `
		INSERT INTO recipe_branches (id, recipe_id, name, description, created_by, parent_branch_id, base_version_id, is_default, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		b.ID,
		b.RecipeID,
		b.Name,
		nullString(b.Description),
		b.CreatedBy,
		nullString(b.ParentBranchID),
		nullString(b.BaseVersionID),
		b.IsDefault,
		b.IsActive,
		b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "recipe_branches") {
			return entities.ErrDuplicateBranch
		}
		return fmt.Errorf("inserting branch: %w", err)
	}
	return nil
}

const selectFork = `
	SELECT f.id, f.original_recipe_id, f.forked_recipe_id, f.forked_by_user_id,
		f.branch_name, f.base_version_id, f.fork_reason, f.created_at,
		r.title,
		u.id, u.username, u.name, u.avatar_url
	FROM recipe_forks f
	LEFT JOIN recipes r ON r.id = f.forked_recipe_id
	LEFT JOIN users u ON u.id = f.forked_by_user_id
`

func scanFork(s scanner) (*entities.Fork, error) {
	var f entities.Fork
	var baseVersionID, reason, forkedTitle sql.NullString
	var userID, username, name, avatarURL sql.NullString

	err := s.Scan(
		&f.ID,
		&f.OriginalRecipeID,
		&f.ForkedRecipeID,
		&f.ForkedByUserID,
		&f.BranchName,
		&baseVersionID,
		&reason,
		&f.CreatedAt,
		&forkedTitle,
		&userID,
		&username,
		&name,
		&avatarURL,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning fork: %w", err)
	}

	f.BaseVersionID = baseVersionID.String
	f.ForkReason = reason.String
	f.ForkedTitle = forkedTitle.String
	if userID.Valid {
		f.ForkedBy = &entities.User{
			ID:        userID.String,
			Username:  username.String,
			Name:      name.String,
			AvatarURL: avatarURL.String,
		}
	}
	return &f, nil
}

// upsertContributor inserts a contributor row or bumps its commit count.
func upsertContributor(ctx context.Context, tx *sql.Tx, recipeID, userID string, ctype entities.ContributionType, at time.Time) error {
	query := `
		INSERT INTO recipe_contributors (recipe_id, contributor_id, contribution_type, commit_count, first_contributed_at, last_contributed_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT(recipe_id, contributor_id) DO UPDATE SET
			commit_count = commit_count + 1,
			last_contributed_at = excluded.last_contributed_at
	`
	_, err := tx.ExecContext(ctx, query, recipeID, userID, string(ctype), at, at)
	if err != nil {
		return fmt.Errorf("upserting contributor: %w", err)
	}
	return nil
}

const selectMergeRequest = `
	SELECT id, source_recipe_id, source_branch, target_recipe_id, target_branch,
		title, description, requested_by, state, resolved_by, resolved_at, created_at
	FROM recipe_merge_requests
`

func scanMergeRequest(s scanner) (*entities.MergeRequest, error) {
	var mr entities.MergeRequest
	var description, resolvedBy sql.NullString
	var state string
	var resolvedAt sql.NullTime

	err := s.Scan(
		&mr.ID,
		&mr.SourceRecipeID,
		&mr.SourceBranch,
		&mr.TargetRecipeID,
		&mr.TargetBranch,
		&mr.Title,
		&description,
		&mr.RequestedBy,
		&state,
		&resolvedBy,
		&resolvedAt,
		&mr.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning merge request: %w", err)
	}

	mr.Description = description.String
	mr.State = entities.MergeRequestState(state)
	mr.ResolvedBy = resolvedBy.String
	if resolvedAt.Valid {
		t := resolvedAt.Time
		mr.ResolvedAt = &t
	}
	return &mr, nil
}
