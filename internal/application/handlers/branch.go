package handlers

import (
	"context"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/services"
)

// BranchHandler handles branch operations.
type BranchHandler struct {
	branchService *services.BranchService
}

// NewBranchHandler creates a new BranchHandler.
func NewBranchHandler(branchService *services.BranchService) *BranchHandler {
	return &BranchHandler{
		branchService: branchService,
	}
}

// HandleCreate creates a branch on a recipe.
func (h *BranchHandler) HandleCreate(ctx context.Context, recipeID, name, creatorID, description, baseVersionID string) (*entities.Branch, error) {
	return h.branchService.Create(ctx, recipeID, name, creatorID, description, baseVersionID)
}

// HandleList returns a recipe's active branches.
func (h *BranchHandler) HandleList(ctx context.Context, recipeID string) ([]entities.Branch, error) {
	return h.branchService.List(ctx, recipeID)
}

// HandleSetDefault promotes a branch to be the recipe's default.
func (h *BranchHandler) HandleSetDefault(ctx context.Context, recipeID, branchID string) error {
	return h.branchService.SetDefault(ctx, recipeID, branchID)
}

// HandleDeactivate soft-deletes a non-default branch.
func (h *BranchHandler) HandleDeactivate(ctx context.Context, recipeID, branchID string) error {
	return h.branchService.Deactivate(ctx, recipeID, branchID)
}
