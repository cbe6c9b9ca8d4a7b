package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/forkful/forkful-core/internal/domain/services"
	"github.com/google/uuid"
)

func recipeNamed(title string) *entities.Recipe {
	return &entities.Recipe{
		ID:          uuid.New().String(),
		Title:       title,
		Description: "integration fixture",
	}
}

func TestSimilarity_IndexAndSearch(t *testing.T) {
	if testVectorRepo == nil {
		t.Skip("skipping: INTEGRATION_TEST not set")
	}

	ctx := context.Background()
	similarity := services.NewSimilarityService(testVectorRepo, mocks.NewEmbedder())

	tamales := recipeNamed("Tamales")
	verdes := recipeNamed("Tamales Verdes")
	paella := recipeNamed("Paella Valenciana")

	for _, recipe := range []*entities.Recipe{tamales, verdes, paella} {
		require.NoError(t, similarity.Index(ctx, recipe))
	}

	hits, err := similarity.Similar(ctx, tamales, 2)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	// The other tamales recipe ranks above the paella, and the query
	// recipe itself is excluded.
	assert.Equal(t, verdes.ID, hits[0].RecipeID)
	for _, hit := range hits {
		assert.NotEqual(t, tamales.ID, hit.RecipeID)
	}
}

func TestSimilarity_ReindexReplaces(t *testing.T) {
	if testVectorRepo == nil {
		t.Skip("skipping: INTEGRATION_TEST not set")
	}

	ctx := context.Background()
	similarity := services.NewSimilarityService(testVectorRepo, mocks.NewEmbedder())

	recipe := recipeNamed("Pozole")
	other := recipeNamed("Pozole Rojo")
	require.NoError(t, similarity.Index(ctx, recipe))
	require.NoError(t, similarity.Index(ctx, other))

	// Re-indexing under the same ID replaces the point instead of
	// duplicating it.
	recipe.Title = "Pozole Blanco"
	require.NoError(t, similarity.Index(ctx, recipe))

	hits, err := similarity.Similar(ctx, other, 10)
	require.NoError(t, err)

	seen := 0
	for _, hit := range hits {
		if hit.RecipeID == recipe.ID {
			seen++
			assert.Equal(t, "Pozole Blanco", hit.Title)
		}
	}
	assert.Equal(t, 1, seen)

	require.NoError(t, similarity.Remove(ctx, recipe.ID))
	require.NoError(t, similarity.Remove(ctx, other.ID))
}
