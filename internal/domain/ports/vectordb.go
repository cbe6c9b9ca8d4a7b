package ports

import "context"

// SimilarRecipe is one hit from a similarity search.
type SimilarRecipe struct {
	RecipeID string  `json:"recipe_id"`
	Title    string  `json:"title"`
	Score    float32 `json:"score"`
}

// VectorDB defines the interface for the recipe similarity index. The index
// is derived data: losing or lagging it never affects the relational
// version history.
type VectorDB interface {
	// Upsert stores or replaces a recipe's embedding.
	Upsert(ctx context.Context, recipeID, title string, embedding []float32) error

	// Delete removes a recipe's embedding.
	Delete(ctx context.Context, recipeID string) error

	// Search returns the recipes most similar to the given embedding.
	Search(ctx context.Context, embedding []float32, limit int) ([]SimilarRecipe, error)
}
