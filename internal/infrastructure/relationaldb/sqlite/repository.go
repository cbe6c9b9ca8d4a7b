// Package sqlite provides a SQLite implementation of the RelationalDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
	"github.com/forkful/forkful-core/internal/infrastructure/config"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.RelationalDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	// Write transactions start with an immediate lock so concurrent
	// committers serialize up front instead of failing mid-transaction.
	// The pragmas ride on the DSN because database/sql pools connections:
	// a pooled connection without the busy timeout fails BeginTx with
	// SQLITE_BUSY instead of queuing, and one without foreign_keys skips
	// the delete cascades.
	dsn := cfg.Path
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_txlock=immediate" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// An in-memory database exists per connection; keep a single one.
	if strings.Contains(cfg.Path, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// Open is lazy; ping now so an unreachable database file surfaces as a
	// retryable store error at construction instead of on the first query.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to sqlite database: %w: %w", entities.ErrStoreUnavailable, err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- User display snapshots (joined into reads, never authoritative)
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		name TEXT,
		avatar_url TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Recipes (live state; content mirrors the latest committed snapshot)
	CREATE TABLE IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		ingredients TEXT NOT NULL,
		steps TEXT NOT NULL,
		servings INTEGER NOT NULL DEFAULT 2,
		category TEXT,
		tags TEXT,
		prep_time INTEGER NOT NULL DEFAULT 0,
		cook_time INTEGER NOT NULL DEFAULT 0,
		difficulty TEXT NOT NULL DEFAULT 'Easy',
		is_fork INTEGER NOT NULL DEFAULT 0,
		original_recipe_id TEXT REFERENCES recipes(id) ON DELETE SET NULL,
		fork_count INTEGER NOT NULL DEFAULT 0,
		star_count INTEGER NOT NULL DEFAULT 0,
		version_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_recipes_owner ON recipes(owner_id);
	CREATE INDEX IF NOT EXISTS idx_recipes_original ON recipes(original_recipe_id);

	-- Immutable commit history (one full snapshot per version)
	CREATE TABLE IF NOT EXISTS recipe_versions (
		id TEXT PRIMARY KEY,
		recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		version_number INTEGER NOT NULL,
		commit_message TEXT NOT NULL,
		author_id TEXT NOT NULL,
		parent_version_id TEXT,
		changes TEXT NOT NULL,
		snapshot TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(recipe_id, version_number)
	);
	CREATE INDEX IF NOT EXISTS idx_versions_recipe ON recipe_versions(recipe_id, version_number);

	-- Named branches (soft-deleted, never physically removed)
	CREATE TABLE IF NOT EXISTS recipe_branches (
		id TEXT PRIMARY KEY,
		recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT,
		created_by TEXT NOT NULL,
		parent_branch_id TEXT,
		base_version_id TEXT,
		is_default INTEGER NOT NULL DEFAULT 0,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(recipe_id, name)
	);
	CREATE INDEX IF NOT EXISTS idx_branches_recipe ON recipe_branches(recipe_id);

	-- Fork edges (adjacency list of the fork graph)
	CREATE TABLE IF NOT EXISTS recipe_forks (
		id TEXT PRIMARY KEY,
		original_recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		forked_recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		forked_by_user_id TEXT NOT NULL,
		branch_name TEXT NOT NULL,
		base_version_id TEXT,
		fork_reason TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(original_recipe_id, forked_by_user_id)
	);
	CREATE INDEX IF NOT EXISTS idx_forks_original ON recipe_forks(original_recipe_id);
	CREATE INDEX IF NOT EXISTS idx_forks_forked ON recipe_forks(forked_recipe_id);

	-- Contributor ledger (one row per user per recipe)
	CREATE TABLE IF NOT EXISTS recipe_contributors (
		recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		contributor_id TEXT NOT NULL,
		contribution_type TEXT NOT NULL,
		commit_count INTEGER NOT NULL DEFAULT 1,
		first_contributed_at TIMESTAMP NOT NULL,
		last_contributed_at TIMESTAMP NOT NULL,
		PRIMARY KEY(recipe_id, contributor_id)
	);

	-- Merge requests between recipe branches
	CREATE TABLE IF NOT EXISTS recipe_merge_requests (
		id TEXT PRIMARY KEY,
		source_recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		source_branch TEXT NOT NULL,
		target_recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		target_branch TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		requested_by TEXT NOT NULL,
		state TEXT NOT NULL DEFAULT 'open',
		resolved_by TEXT,
		resolved_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_merge_requests_target ON recipe_merge_requests(target_recipe_id);

	-- Audit log (tracks all actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		recipe_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_recipe ON audit_log(recipe_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back on error.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveUser saves or updates a user's display snapshot.
func (r *Repository) SaveUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, username, name, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			name = excluded.name,
			avatar_url = excluded.avatar_url
	`
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Name,
		user.AvatarURL,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// FindUserByID finds a user by ID.
func (r *Repository) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT id, username, name, avatar_url, created_at FROM users WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var user entities.User
	var name, avatarURL sql.NullString
	err := row.Scan(&user.ID, &user.Username, &name, &avatarURL, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entities.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	user.Name = name.String
	user.AvatarURL = avatarURL.String
	return &user, nil
}

// CreateRecipe inserts a recipe together with its seed version, default
// branch and creator contributor row in one transaction.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, commitMessage string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		recipe.VersionCount = 1
		if err := insertRecipe(ctx, tx, recipe); err != nil {
			return err
		}
		changes := entities.ChangeDescriptor{"action": {To: "created"}}
		if err := insertVersion(ctx, tx, &entities.RecipeVersion{
			ID:            generateUUID(),
			RecipeID:      recipe.ID,
			VersionNumber: 1,
			CommitMessage: commitMessage,
			AuthorID:      recipe.OwnerID,
			Changes:       changes,
			Snapshot:      recipe.CurrentSnapshot(),
			CreatedAt:     recipe.CreatedAt,
		}); err != nil {
			return err
		}
		if err := insertBranch(ctx, tx, &entities.Branch{
			ID:        generateUUID(),
			RecipeID:  recipe.ID,
			Name:      entities.DefaultBranchName,
			CreatedBy: recipe.OwnerID,
			IsDefault: true,
			IsActive:  true,
			CreatedAt: recipe.CreatedAt,
		}); err != nil {
			return err
		}
		return upsertContributor(ctx, tx, recipe.ID, recipe.OwnerID, entities.ContributionCreator, recipe.CreatedAt)
	})
}

// FindRecipeByID finds a recipe by ID.
func (r *Repository) FindRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	row := r.db.QueryRowContext(ctx, selectRecipe+` WHERE id = ?`, id)
	recipe, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, entities.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}
	return recipe, nil
}

// ListRecipes lists recipes with pagination, newest first.
func (r *Repository) ListRecipes(ctx context.Context, limit, offset int) ([]*entities.Recipe, error) {
	query := selectRecipe + ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.Recipe, 0, limit)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		result = append(result, recipe)
	}
	return result, rows.Err()
}

// DeleteRecipe deletes a recipe. Versions, branches, contributor rows,
// merge requests and fork edges cascade; recipes forked from it keep
// existing with their lineage pointer cleared.
func (r *Repository) DeleteRecipe(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return entities.ErrRecipeNotFound
	}
	return nil
}

// CommitVersion appends a commit in one transaction: it allocates the next
// gap-free version number under the write lock, links the parent, stores the
// snapshot, mirrors the content onto the live recipe, advances the version
// counter and upserts the author's contributor row.
func (r *Repository) CommitVersion(ctx context.Context, params ports.CommitParams) (*entities.RecipeVersion, error) {
	ctype := params.Type
	if ctype == "" {
		ctype = entities.ContributionEditor
	}

	var version *entities.RecipeVersion
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM recipes WHERE id = ?`, params.RecipeID).Scan(&exists)
		if err == sql.ErrNoRows {
			return entities.ErrRecipeNotFound
		}
		if err != nil {
			return fmt.Errorf("checking recipe: %w", err)
		}

		var next int
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(version_number), 0) + 1 FROM recipe_versions WHERE recipe_id = ?`,
			params.RecipeID,
		).Scan(&next)
		if err != nil {
			return fmt.Errorf("allocating version number: %w", err)
		}

		var parentID sql.NullString
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM recipe_versions WHERE recipe_id = ? AND version_number = ?`,
			params.RecipeID, next-1,
		).Scan(&parentID)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("finding parent version: %w", err)
		}

		version = &entities.RecipeVersion{
			ID:              generateUUID(),
			RecipeID:        params.RecipeID,
			VersionNumber:   next,
			CommitMessage:   params.Message,
			AuthorID:        params.AuthorID,
			ParentVersionID: parentID.String,
			Changes:         params.Changes,
			Snapshot:        params.Snapshot,
			CreatedAt:       timeNow(),
		}
		if err := insertVersion(ctx, tx, version); err != nil {
			return err
		}

		ingredients, err := json.Marshal(params.Snapshot.Ingredients)
		if err != nil {
			return fmt.Errorf("marshaling ingredients: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE recipes SET
				title = ?, description = ?, ingredients = ?, steps = ?,
				servings = ?, category = ?, tags = ?, prep_time = ?,
				cook_time = ?, difficulty = ?,
				version_count = version_count + 1, updated_at = ?
			WHERE id = ?`,
			params.Snapshot.Title,
			params.Snapshot.Description,
			string(ingredients),
			params.Snapshot.Steps,
			params.Snapshot.Servings,
			params.Snapshot.Category,
			params.Snapshot.Tags,
			params.Snapshot.PrepTime,
			params.Snapshot.CookTime,
			string(params.Snapshot.Difficulty),
			version.CreatedAt,
			params.RecipeID,
		)
		if err != nil {
			return fmt.Errorf("updating recipe content: %w", err)
		}

		return upsertContributor(ctx, tx, params.RecipeID, params.AuthorID, ctype, version.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}

// FindVersionsByRecipe finds a recipe's commits newest first, with author
// display snapshots joined in.
func (r *Repository) FindVersionsByRecipe(ctx context.Context, recipeID string, limit, offset int) ([]entities.RecipeVersion, error) {
	query := selectVersion + `
		WHERE v.recipe_id = ?
		ORDER BY v.version_number DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, recipeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying versions: %w", err)
	}
	defer rows.Close()

	versions := make([]entities.RecipeVersion, 0, limit)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

// FindVersionByID finds a single version by ID.
func (r *Repository) FindVersionByID(ctx context.Context, id string) (*entities.RecipeVersion, error) {
	row := r.db.QueryRowContext(ctx, selectVersion+` WHERE v.id = ?`, id)
	v, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, entities.ErrVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// FindLatestVersion finds the most recent version of a recipe, or nil when
// the recipe has no commits.
func (r *Repository) FindLatestVersion(ctx context.Context, recipeID string) (*entities.RecipeVersion, error) {
	query := selectVersion + `
		WHERE v.recipe_id = ?
		ORDER BY v.version_number DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, recipeID)
	v, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CountVersions counts how many commits a recipe has.
func (r *Repository) CountVersions(ctx context.Context, recipeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipe_versions WHERE recipe_id = ?`, recipeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting versions: %w", err)
	}
	return count, nil
}

// SaveBranch inserts a branch. A name already taken on the same recipe
// yields ErrDuplicateBranch.
func (r *Repository) SaveBranch(ctx context.Context, branch *entities.Branch) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return insertBranch(ctx, tx, branch)
	})
}

// FindBranch finds a branch by recipe and name.
func (r *Repository) FindBranch(ctx context.Context, recipeID, name string) (*entities.Branch, error) {
	query := selectBranch + ` WHERE b.recipe_id = ? AND b.name = ?`
	row := r.db.QueryRowContext(ctx, query, recipeID, name)
	b, err := scanBranch(row)
	if err == sql.ErrNoRows {
		return nil, entities.ErrBranchNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBranches returns a recipe's active branches, newest first, with
// creator display snapshots joined in.
func (r *Repository) ListBranches(ctx context.Context, recipeID string) ([]entities.Branch, error) {
	query := selectBranch + `
		WHERE b.recipe_id = ? AND b.is_active = 1
		ORDER BY b.created_at DESC, b.id
	`
	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("querying branches: %w", err)
	}
	defer rows.Close()

	branches := make([]entities.Branch, 0, 4)
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, *b)
	}
	return branches, rows.Err()
}

// CountBranches counts a recipe's active branches.
func (r *Repository) CountBranches(ctx context.Context, recipeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipe_branches WHERE recipe_id = ? AND is_active = 1`,
		recipeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting branches: %w", err)
	}
	return count, nil
}

// SetDefaultBranch makes a branch the default, atomically unsetting the
// previous one.
func (r *Repository) SetDefaultBranch(ctx context.Context, recipeID, branchID string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE recipe_branches SET is_default = 1 WHERE id = ? AND recipe_id = ?`,
			branchID, recipeID,
		)
		if err != nil {
			return fmt.Errorf("setting default branch: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return entities.ErrBranchNotFound
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE recipe_branches SET is_default = 0 WHERE recipe_id = ? AND id != ?`,
			recipeID, branchID,
		)
		if err != nil {
			return fmt.Errorf("unsetting previous default: %w", err)
		}
		return nil
	})
}

// DeactivateBranch soft-deletes a non-default branch.
func (r *Repository) DeactivateBranch(ctx context.Context, recipeID, branchID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recipe_branches SET is_active = 0 WHERE id = ? AND recipe_id = ? AND is_default = 0`,
		branchID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("deactivating branch: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		var isDefault int
		err := r.db.QueryRowContext(ctx,
			`SELECT is_default FROM recipe_branches WHERE id = ? AND recipe_id = ?`,
			branchID, recipeID,
		).Scan(&isDefault)
		if err == sql.ErrNoRows {
			return entities.ErrBranchNotFound
		}
		if err != nil {
			return fmt.Errorf("checking branch: %w", err)
		}
		return entities.ErrDefaultBranch
	}
	return nil
}

// CreateFork copies a recipe for a new owner in one transaction: the copied
// recipe, its seed version, its default branch, the fork edge, the forker
// contributor row and the original's fork counter all land together.
func (r *Repository) CreateFork(ctx context.Context, params ports.ForkParams) (*entities.Recipe, error) {
	branchName := params.BranchName
	if branchName == "" {
		branchName = entities.DefaultBranchName
	}

	var forked *entities.Recipe
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, selectRecipe+` WHERE id = ?`, params.OriginalRecipeID)
		original, err := scanRecipe(row)
		if err == sql.ErrNoRows {
			return entities.ErrRecipeNotFound
		}
		if err != nil {
			return fmt.Errorf("scanning recipe: %w", err)
		}

		now := timeNow()
		copied := *original
		copied.ID = generateUUID()
		copied.OwnerID = params.UserID
		copied.IsFork = true
		copied.OriginalRecipeID = original.ID
		copied.ForkCount = 0
		copied.StarCount = 0
		copied.VersionCount = 1
		copied.CreatedAt = now
		copied.UpdatedAt = now
		if err := insertRecipe(ctx, tx, &copied); err != nil {
			return err
		}

		changes := entities.ChangeDescriptor{
			"action":         {To: "fork"},
			"from_recipe_id": {To: original.ID},
		}
		if err := insertVersion(ctx, tx, &entities.RecipeVersion{
			ID:            generateUUID(),
			RecipeID:      copied.ID,
			VersionNumber: 1,
			CommitMessage: "Initial fork",
			AuthorID:      params.UserID,
			Changes:       changes,
			Snapshot:      copied.CurrentSnapshot(),
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		if err := insertBranch(ctx, tx, &entities.Branch{
			ID:        generateUUID(),
			RecipeID:  copied.ID,
			Name:      branchName,
			CreatedBy: params.UserID,
			IsDefault: true,
			IsActive:  true,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		var baseVersionID sql.NullString
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM recipe_versions WHERE recipe_id = ? ORDER BY version_number DESC LIMIT 1`,
			original.ID,
		).Scan(&baseVersionID)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("finding base version: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO recipe_forks (id, original_recipe_id, forked_recipe_id, forked_by_user_id, branch_name, base_version_id, fork_reason, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			generateUUID(),
			original.ID,
			copied.ID,
			params.UserID,
			branchName,
			baseVersionID,
			nullString(params.Reason),
			now,
		)
		if err != nil {
			if isUniqueViolation(err, "recipe_forks") {
				return entities.ErrAlreadyForked
			}
			return fmt.Errorf("inserting fork edge: %w", err)
		}

		if err := upsertContributor(ctx, tx, copied.ID, params.UserID, entities.ContributionForker, now); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE recipes SET fork_count = fork_count + 1 WHERE id = ?`,
			original.ID,
		)
		if err != nil {
			return fmt.Errorf("updating fork count: %w", err)
		}

		forked = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return forked, nil
}

// FindForkByUser finds the fork edge for (original, user), or nil.
func (r *Repository) FindForkByUser(ctx context.Context, originalRecipeID, userID string) (*entities.Fork, error) {
	query := selectFork + ` WHERE f.original_recipe_id = ? AND f.forked_by_user_id = ?`
	row := r.db.QueryRowContext(ctx, query, originalRecipeID, userID)
	fork, err := scanFork(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fork, nil
}

// ListForksByOriginal returns the direct fork edges of a recipe, newest
// first, with forked titles and forker display snapshots joined in.
func (r *Repository) ListForksByOriginal(ctx context.Context, originalRecipeID string) ([]entities.Fork, error) {
	query := selectFork + `
		WHERE f.original_recipe_id = ?
		ORDER BY f.created_at DESC, f.id
	`
	rows, err := r.db.QueryContext(ctx, query, originalRecipeID)
	if err != nil {
		return nil, fmt.Errorf("querying forks: %w", err)
	}
	defer rows.Close()

	forks := make([]entities.Fork, 0, 8)
	for rows.Next() {
		f, err := scanFork(rows)
		if err != nil {
			return nil, err
		}
		forks = append(forks, *f)
	}
	return forks, rows.Err()
}

// CountForks counts a recipe's direct forks.
func (r *Repository) CountForks(ctx context.Context, originalRecipeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipe_forks WHERE original_recipe_id = ?`,
		originalRecipeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting forks: %w", err)
	}
	return count, nil
}

// RecordContribution upserts a contributor row.
func (r *Repository) RecordContribution(ctx context.Context, recipeID, userID string, ctype entities.ContributionType, at time.Time) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return upsertContributor(ctx, tx, recipeID, userID, ctype, at)
	})
}

// ListContributors returns a recipe's contributors ordered by commit count
// descending, then first contribution ascending.
func (r *Repository) ListContributors(ctx context.Context, recipeID string) ([]entities.Contributor, error) {
	query := `
		SELECT c.recipe_id, c.contributor_id, c.contribution_type, c.commit_count,
			c.first_contributed_at, c.last_contributed_at,
			u.id, u.username, u.name, u.avatar_url
		FROM recipe_contributors c
		LEFT JOIN users u ON u.id = c.contributor_id
		WHERE c.recipe_id = ?
		ORDER BY c.commit_count DESC, c.first_contributed_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("querying contributors: %w", err)
	}
	defer rows.Close()

	contributors := make([]entities.Contributor, 0, 8)
	for rows.Next() {
		var c entities.Contributor
		var ctype string
		var userID, username, name, avatarURL sql.NullString
		if err := rows.Scan(
			&c.RecipeID,
			&c.ContributorID,
			&ctype,
			&c.CommitCount,
			&c.FirstContributedAt,
			&c.LastContributedAt,
			&userID,
			&username,
			&name,
			&avatarURL,
		); err != nil {
			return nil, fmt.Errorf("scanning contributor: %w", err)
		}
		c.ContributionType = entities.ContributionType(ctype)
		if userID.Valid {
			c.User = &entities.User{
				ID:        userID.String,
				Username:  username.String,
				Name:      name.String,
				AvatarURL: avatarURL.String,
			}
		}
		contributors = append(contributors, c)
	}
	return contributors, rows.Err()
}

// CountContributors counts a recipe's contributors.
func (r *Repository) CountContributors(ctx context.Context, recipeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipe_contributors WHERE recipe_id = ?`,
		recipeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting contributors: %w", err)
	}
	return count, nil
}

// SaveMergeRequest inserts a merge request.
func (r *Repository) SaveMergeRequest(ctx context.Context, mr *entities.MergeRequest) error {
	query := `
		INSERT INTO recipe_merge_requests (id, source_recipe_id, source_branch, target_recipe_id, target_branch, title, description, requested_by, state, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		mr.ID,
		mr.SourceRecipeID,
		mr.SourceBranch,
		mr.TargetRecipeID,
		mr.TargetBranch,
		mr.Title,
		nullString(mr.Description),
		mr.RequestedBy,
		string(mr.State),
		mr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving merge request: %w", err)
	}
	return nil
}

// FindMergeRequestByID finds a merge request by ID.
func (r *Repository) FindMergeRequestByID(ctx context.Context, id string) (*entities.MergeRequest, error) {
	row := r.db.QueryRowContext(ctx, selectMergeRequest+` WHERE id = ?`, id)
	mr, err := scanMergeRequest(row)
	if err == sql.ErrNoRows {
		return nil, entities.ErrMergeRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return mr, nil
}

// ListMergeRequests returns merge requests targeting a recipe, newest first.
func (r *Repository) ListMergeRequests(ctx context.Context, targetRecipeID string) ([]entities.MergeRequest, error) {
	query := selectMergeRequest + `
		WHERE target_recipe_id = ?
		ORDER BY created_at DESC, id
	`
	rows, err := r.db.QueryContext(ctx, query, targetRecipeID)
	if err != nil {
		return nil, fmt.Errorf("querying merge requests: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.MergeRequest, 0, 8)
	for rows.Next() {
		mr, err := scanMergeRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *mr)
	}
	return requests, rows.Err()
}

// ResolveMergeRequest moves a merge request into a terminal state.
func (r *Repository) ResolveMergeRequest(ctx context.Context, id string, state entities.MergeRequestState, resolvedBy string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recipe_merge_requests SET state = ?, resolved_by = ?, resolved_at = ? WHERE id = ?`,
		string(state), resolvedBy, at, id,
	)
	if err != nil {
		return fmt.Errorf("resolving merge request: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return entities.ErrMergeRequestNotFound
	}
	return nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, recipeID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `INSERT INTO audit_log (action, recipe_id, details) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, nullString(recipeID), detailsJSON)
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific recipe.
func (r *Repository) FindAuditLog(ctx context.Context, recipeID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, recipe_id, details, created_at
		FROM audit_log
		WHERE recipe_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var recID, details sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&recID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		entry.RecipeID = recID.String
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
