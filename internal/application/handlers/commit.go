package handlers

import (
	"context"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/services"
)

// CommitHandler handles commit and history operations.
type CommitHandler struct {
	recipeService     *services.RecipeService
	versionService    *services.VersionService
	similarityService *services.SimilarityService
}

// NewCommitHandler creates a new CommitHandler.
func NewCommitHandler(recipeService *services.RecipeService, versionService *services.VersionService, similarityService *services.SimilarityService) *CommitHandler {
	return &CommitHandler{
		recipeService:     recipeService,
		versionService:    versionService,
		similarityService: similarityService,
	}
}

// HandleCommit records new content as a commit on a recipe.
func (h *CommitHandler) HandleCommit(ctx context.Context, recipeID, authorID, message string, content entities.Snapshot) (*entities.RecipeVersion, error) {
	version, err := h.versionService.Commit(ctx, recipeID, authorID, message, content)
	if err != nil {
		return nil, err
	}
	if h.similarityService != nil {
		if recipe, err := h.recipeService.Get(ctx, recipeID); err == nil {
			_ = h.similarityService.Index(ctx, recipe)
		}
	}
	return version, nil
}

// HistoryResult contains a page of a recipe's commit history.
type HistoryResult struct {
	Versions []entities.RecipeVersion `json:"versions"`
	Total    int                      `json:"total"`
}

// HandleHistory returns a recipe's commits newest first.
func (h *CommitHandler) HandleHistory(ctx context.Context, recipeID string, limit, offset int) (*HistoryResult, error) {
	versions, err := h.versionService.History(ctx, recipeID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := h.versionService.Count(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &HistoryResult{
		Versions: versions,
		Total:    total,
	}, nil
}

// HandleShow returns a single version with its full snapshot.
func (h *CommitHandler) HandleShow(ctx context.Context, versionID string) (*entities.RecipeVersion, error) {
	return h.versionService.Get(ctx, versionID)
}
