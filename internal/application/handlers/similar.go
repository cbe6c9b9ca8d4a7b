package handlers

import (
	"context"
	"errors"

	"github.com/forkful/forkful-core/internal/domain/ports"
	"github.com/forkful/forkful-core/internal/domain/services"
)

// SimilarHandler handles similarity searches.
type SimilarHandler struct {
	recipeService     *services.RecipeService
	similarityService *services.SimilarityService
}

// NewSimilarHandler creates a new SimilarHandler.
func NewSimilarHandler(recipeService *services.RecipeService, similarityService *services.SimilarityService) *SimilarHandler {
	return &SimilarHandler{
		recipeService:     recipeService,
		similarityService: similarityService,
	}
}

// HandleSimilar returns the recipes most similar to the given one.
func (h *SimilarHandler) HandleSimilar(ctx context.Context, recipeID string, limit int) ([]ports.SimilarRecipe, error) {
	if h.similarityService == nil {
		return nil, errors.New("similarity search is not configured")
	}
	recipe, err := h.recipeService.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return h.similarityService.Similar(ctx, recipe, limit)
}
