package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
	"github.com/google/uuid"
)

// reBranchName matches valid branch names.
var reBranchName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// BranchService manages named branches of a recipe.
type BranchService struct {
	relationalDB ports.RelationalDB
}

// NewBranchService creates a new BranchService.
func NewBranchService(relationalDB ports.RelationalDB) *BranchService {
	return &BranchService{
		relationalDB: relationalDB,
	}
}

// Create creates a branch on a recipe. New branches are never the default.
// baseVersionID is optional; when set it must belong to the recipe.
func (s *BranchService) Create(ctx context.Context, recipeID, name, creatorID, description, baseVersionID string) (*entities.Branch, error) {
	if !reBranchName.MatchString(name) {
		return nil, entities.ErrInvalidBranchName
	}
	if _, err := s.relationalDB.FindRecipeByID(ctx, recipeID); err != nil {
		return nil, err
	}
	if baseVersionID != "" {
		base, err := s.relationalDB.FindVersionByID(ctx, baseVersionID)
		if err != nil {
			return nil, err
		}
		if base.RecipeID != recipeID {
			return nil, entities.ErrInvalidBaseVersion
		}
	}

	branch := &entities.Branch{
		ID:            uuid.New().String(),
		RecipeID:      recipeID,
		Name:          name,
		Description:   description,
		CreatedBy:     creatorID,
		BaseVersionID: baseVersionID,
		IsDefault:     false,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	if err := s.relationalDB.SaveBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("saving branch: %w", err)
	}
	_ = s.relationalDB.LogAction(ctx, "branch_created", recipeID, map[string]any{
		"name": name,
	})
	return branch, nil
}

// List returns a recipe's active branches; exactly one is the default.
func (s *BranchService) List(ctx context.Context, recipeID string) ([]entities.Branch, error) {
	if _, err := s.relationalDB.FindRecipeByID(ctx, recipeID); err != nil {
		return nil, err
	}
	return s.relationalDB.ListBranches(ctx, recipeID)
}

// SetDefault makes a branch the recipe's default, atomically unsetting the
// previous one. Administrative; normally only used during creation flows.
func (s *BranchService) SetDefault(ctx context.Context, recipeID, branchID string) error {
	if err := s.relationalDB.SetDefaultBranch(ctx, recipeID, branchID); err != nil {
		return err
	}
	_ = s.relationalDB.LogAction(ctx, "branch_default_changed", recipeID, map[string]any{
		"branch_id": branchID,
	})
	return nil
}

// Deactivate soft-deletes a branch. The default branch cannot be
// deactivated, and branches are never physically removed here because fork
// edges may reference them by name.
func (s *BranchService) Deactivate(ctx context.Context, recipeID, branchID string) error {
	if err := s.relationalDB.DeactivateBranch(ctx, recipeID, branchID); err != nil {
		return err
	}
	_ = s.relationalDB.LogAction(ctx, "branch_deactivated", recipeID, map[string]any{
		"branch_id": branchID,
	})
	return nil
}
