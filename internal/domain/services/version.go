package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
)

// History pagination bounds, matching the read API defaults.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 50
)

// VersionService manages a recipe's commit history.
type VersionService struct {
	relationalDB ports.RelationalDB
}

// NewVersionService creates a new VersionService.
func NewVersionService(relationalDB ports.RelationalDB) *VersionService {
	return &VersionService{
		relationalDB: relationalDB,
	}
}

// Commit records new recipe content as a commit. It diffs the content
// against the recipe's current snapshot and delegates the atomic append
// (version numbering, parent linking, contributor upsert) to the store.
func (s *VersionService) Commit(ctx context.Context, recipeID, authorID, message string, content entities.Snapshot) (*entities.RecipeVersion, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, entities.ErrEmptyCommitMessage
	}

	recipe, err := s.relationalDB.FindRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	content.Normalize()
	changes, err := DiffSnapshots(recipe.CurrentSnapshot(), content)
	if err != nil {
		return nil, err
	}
	if changes.Empty() {
		return nil, entities.ErrNothingToCommit
	}

	version, err := s.relationalDB.CommitVersion(ctx, ports.CommitParams{
		RecipeID: recipeID,
		AuthorID: authorID,
		Message:  message,
		Changes:  changes,
		Snapshot: content,
		Type:     entities.ContributionEditor,
	})
	if err != nil {
		return nil, fmt.Errorf("committing version: %w", err)
	}
	// Best-effort: a lost audit row never fails the commit.
	_ = s.relationalDB.LogAction(ctx, "version_committed", recipeID, map[string]any{
		"version_number": version.VersionNumber,
		"author_id":      authorID,
	})
	return version, nil
}

// History returns a recipe's commits newest first. A recipe with no commits
// yields an empty slice.
func (s *VersionService) History(ctx context.Context, recipeID string, limit, offset int) ([]entities.RecipeVersion, error) {
	if _, err := s.relationalDB.FindRecipeByID(ctx, recipeID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.relationalDB.FindVersionsByRecipe(ctx, recipeID, limit, offset)
}

// Get finds a single version by ID.
func (s *VersionService) Get(ctx context.Context, versionID string) (*entities.RecipeVersion, error) {
	return s.relationalDB.FindVersionByID(ctx, versionID)
}

// Latest returns the most recent version of a recipe, or nil when the
// recipe has no commits.
func (s *VersionService) Latest(ctx context.Context, recipeID string) (*entities.RecipeVersion, error) {
	return s.relationalDB.FindLatestVersion(ctx, recipeID)
}

// Count counts a recipe's commits.
func (s *VersionService) Count(ctx context.Context, recipeID string) (int, error) {
	return s.relationalDB.CountVersions(ctx, recipeID)
}
