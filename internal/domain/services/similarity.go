package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
)

// SimilarityService maintains the recipe similarity index. The index is
// derived from committed snapshots; it is refreshed after writes and never
// participates in the relational transaction.
type SimilarityService struct {
	vectorDB ports.VectorDB
	embedder ports.Embedder
}

// NewSimilarityService creates a new SimilarityService.
func NewSimilarityService(vectorDB ports.VectorDB, embedder ports.Embedder) *SimilarityService {
	return &SimilarityService{
		vectorDB: vectorDB,
		embedder: embedder,
	}
}

// Index embeds a recipe's current content and upserts it into the index.
func (s *SimilarityService) Index(ctx context.Context, recipe *entities.Recipe) error {
	embedding, err := s.embedder.Embed(ctx, embeddingText(recipe.CurrentSnapshot()))
	if err != nil {
		return fmt.Errorf("embedding recipe: %w", err)
	}
	if err := s.vectorDB.Upsert(ctx, recipe.ID, recipe.Title, embedding); err != nil {
		return fmt.Errorf("indexing recipe: %w", err)
	}
	return nil
}

// Similar returns the recipes most similar to the given one, excluding it
// from its own results.
func (s *SimilarityService) Similar(ctx context.Context, recipe *entities.Recipe, limit int) ([]ports.SimilarRecipe, error) {
	embedding, err := s.embedder.Embed(ctx, embeddingText(recipe.CurrentSnapshot()))
	if err != nil {
		return nil, fmt.Errorf("embedding recipe: %w", err)
	}

	// Over-fetch by one so the recipe itself can be dropped.
	hits, err := s.vectorDB.Search(ctx, embedding, limit+1)
	if err != nil {
		return nil, fmt.Errorf("searching similar recipes: %w", err)
	}

	result := make([]ports.SimilarRecipe, 0, limit)
	for _, hit := range hits {
		if hit.RecipeID == recipe.ID {
			continue
		}
		result = append(result, hit)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

// Remove drops a recipe from the index.
func (s *SimilarityService) Remove(ctx context.Context, recipeID string) error {
	return s.vectorDB.Delete(ctx, recipeID)
}

// embeddingText flattens a snapshot into the text that gets embedded.
func embeddingText(s entities.Snapshot) string {
	parts := make([]string, 0, 4+len(s.Ingredients))
	parts = append(parts, s.Title)
	if s.Category != "" {
		parts = append(parts, s.Category)
	}
	if s.Tags != "" {
		parts = append(parts, s.Tags)
	}
	for _, ing := range s.Ingredients {
		parts = append(parts, ing.Name)
	}
	if s.Steps != "" {
		parts = append(parts, s.Steps)
	}
	return strings.Join(parts, "\n")
}
