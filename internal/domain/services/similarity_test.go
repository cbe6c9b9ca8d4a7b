package services

import (
	"context"
	"errors"
	"testing"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func similarityFixture() (*SimilarityService, *mocks.VectorDB, *mocks.Embedder) {
	vdb := mocks.NewVectorDB()
	emb := mocks.NewEmbedder()
	return NewSimilarityService(vdb, emb), vdb, emb
}

func testRecipe(id, title string) *entities.Recipe {
	s := tamalesSnapshot()
	s.Title = title
	r := &entities.Recipe{ID: id}
	r.ApplySnapshot(s)
	return r
}

func TestSimilarityService_IndexAndSearch(t *testing.T) {
	svc, vdb, _ := similarityFixture()
	ctx := context.Background()

	tamales := testRecipe("r-1", "Tamales")
	verdes := testRecipe("r-2", "Tamales Verdes")

	require.NoError(t, svc.Index(ctx, tamales))
	require.NoError(t, svc.Index(ctx, verdes))
	assert.Len(t, vdb.Entries, 2)

	hits, err := svc.Similar(ctx, tamales, 5)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	// The recipe never appears in its own results.
	assert.Equal(t, "r-2", hits[0].RecipeID)
	assert.Equal(t, "Tamales Verdes", hits[0].Title)
}

func TestSimilarityService_SimilarHonorsLimit(t *testing.T) {
	svc, _, _ := similarityFixture()
	ctx := context.Background()

	base := testRecipe("r-0", "Tamales")
	require.NoError(t, svc.Index(ctx, base))
	require.NoError(t, svc.Index(ctx, testRecipe("r-1", "Tamales Verdes")))
	require.NoError(t, svc.Index(ctx, testRecipe("r-2", "Tamales Rojos")))
	require.NoError(t, svc.Index(ctx, testRecipe("r-3", "Tamales Dulces")))

	hits, err := svc.Similar(ctx, base, 2)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
	for _, hit := range hits {
		assert.NotEqual(t, "r-0", hit.RecipeID)
	}
}

func TestSimilarityService_Remove(t *testing.T) {
	svc, vdb, _ := similarityFixture()
	ctx := context.Background()

	recipe := testRecipe("r-1", "Tamales")
	require.NoError(t, svc.Index(ctx, recipe))

	require.NoError(t, svc.Remove(ctx, "r-1"))
	assert.Empty(t, vdb.Entries)
}

func TestSimilarityService_EmbedderFailure(t *testing.T) {
	svc, _, emb := similarityFixture()
	emb.Err = errors.New("embedder down")

	err := svc.Index(context.Background(), testRecipe("r-1", "Tamales"))
	assert.Error(t, err)

	_, err = svc.Similar(context.Background(), testRecipe("r-1", "Tamales"), 3)
	assert.Error(t, err)
}
