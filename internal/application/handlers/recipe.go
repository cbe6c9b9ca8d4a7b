package handlers

import (
	"context"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/services"
)

// RecipeHandler handles recipe lifecycle operations at the application
// layer. The similarity service is optional; when present the index is
// refreshed best-effort after writes and failures never fail the write.
type RecipeHandler struct {
	recipeService     *services.RecipeService
	similarityService *services.SimilarityService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipeService *services.RecipeService, similarityService *services.SimilarityService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:     recipeService,
		similarityService: similarityService,
	}
}

// HandleCreate creates a recipe from the given content.
func (h *RecipeHandler) HandleCreate(ctx context.Context, ownerID string, content entities.Snapshot) (*entities.Recipe, error) {
	recipe, err := h.recipeService.Create(ctx, ownerID, content)
	if err != nil {
		return nil, err
	}
	if h.similarityService != nil {
		_ = h.similarityService.Index(ctx, recipe)
	}
	return recipe, nil
}

// HandleGet returns a single recipe.
func (h *RecipeHandler) HandleGet(ctx context.Context, id string) (*entities.Recipe, error) {
	return h.recipeService.Get(ctx, id)
}

// RecipeListResult contains the result of listing recipes.
type RecipeListResult struct {
	Recipes []*entities.Recipe `json:"recipes"`
	Total   int                `json:"total"`
}

// HandleList returns recipes with pagination, newest first.
func (h *RecipeHandler) HandleList(ctx context.Context, limit, offset int) (*RecipeListResult, error) {
	recipes, err := h.recipeService.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &RecipeListResult{
		Recipes: recipes,
		Total:   len(recipes),
	}, nil
}

// HandleDelete removes a recipe and drops it from the similarity index.
func (h *RecipeHandler) HandleDelete(ctx context.Context, id string) error {
	if err := h.recipeService.Delete(ctx, id); err != nil {
		return err
	}
	if h.similarityService != nil {
		_ = h.similarityService.Remove(ctx, id)
	}
	return nil
}
