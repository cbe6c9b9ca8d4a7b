package handlers

import (
	"context"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/services"
)

// MergeHandler handles the merge request lifecycle.
type MergeHandler struct {
	recipeService     *services.RecipeService
	mergeService      *services.MergeService
	similarityService *services.SimilarityService
}

// NewMergeHandler creates a new MergeHandler.
func NewMergeHandler(recipeService *services.RecipeService, mergeService *services.MergeService, similarityService *services.SimilarityService) *MergeHandler {
	return &MergeHandler{
		recipeService:     recipeService,
		mergeService:      mergeService,
		similarityService: similarityService,
	}
}

// HandleOpen opens a merge request.
func (h *MergeHandler) HandleOpen(ctx context.Context, sourceRecipeID, sourceBranch, targetRecipeID, targetBranch, title, description, requestedBy string) (*entities.MergeRequest, error) {
	return h.mergeService.Open(ctx, sourceRecipeID, sourceBranch, targetRecipeID, targetBranch, title, description, requestedBy)
}

// HandleMerge merges an open merge request and refreshes the target's
// similarity entry.
func (h *MergeHandler) HandleMerge(ctx context.Context, mrID, mergedBy string) (*entities.MergeRequest, error) {
	mr, err := h.mergeService.Merge(ctx, mrID, mergedBy)
	if err != nil {
		return nil, err
	}
	if h.similarityService != nil {
		if target, err := h.recipeService.Get(ctx, mr.TargetRecipeID); err == nil {
			_ = h.similarityService.Index(ctx, target)
		}
	}
	return mr, nil
}

// HandleClose closes an open merge request without merging.
func (h *MergeHandler) HandleClose(ctx context.Context, mrID, closedBy string) error {
	return h.mergeService.Close(ctx, mrID, closedBy)
}

// HandleReject rejects an open merge request.
func (h *MergeHandler) HandleReject(ctx context.Context, mrID, rejectedBy string) error {
	return h.mergeService.Reject(ctx, mrID, rejectedBy)
}

// HandleList returns merge requests targeting a recipe, newest first.
func (h *MergeHandler) HandleList(ctx context.Context, targetRecipeID string) ([]entities.MergeRequest, error) {
	return h.mergeService.List(ctx, targetRecipeID)
}
