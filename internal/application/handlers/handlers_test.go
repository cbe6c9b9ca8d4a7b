package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/forkful/forkful-core/internal/domain/services"
)

type testEnv struct {
	db         *mocks.RelationalDB
	vectorDB   *mocks.VectorDB
	recipe     *RecipeHandler
	commit     *CommitHandler
	fork       *ForkHandler
	similar    *SimilarHandler
	similarity *services.SimilarityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := mocks.NewRelationalDB()
	vectorDB := mocks.NewVectorDB()
	similarity := services.NewSimilarityService(vectorDB, mocks.NewEmbedder())
	recipeService := services.NewRecipeService(db)
	return &testEnv{
		db:         db,
		vectorDB:   vectorDB,
		recipe:     NewRecipeHandler(recipeService, similarity),
		commit:     NewCommitHandler(recipeService, services.NewVersionService(db), similarity),
		fork:       NewForkHandler(services.NewForkService(db), similarity),
		similar:    NewSimilarHandler(recipeService, similarity),
		similarity: similarity,
	}
}

func paellaSnapshot() entities.Snapshot {
	return entities.Snapshot{
		Title:       "Paella",
		Description: "Saffron rice with seafood",
		Ingredients: []entities.Ingredient{
			{Name: "bomba rice", Quantity: 2, Unit: "cups"},
			{Name: "saffron", Quantity: 1, Unit: "pinch"},
		},
		Steps:      "Toast the rice. Add stock and saffron. Simmer without stirring.",
		Servings:   6,
		Category:   "Spanish",
		Difficulty: entities.DifficultyHard,
	}
}

func TestRecipeHandler_CreateIndexesSimilarity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	recipe, err := env.recipe.HandleCreate(ctx, "user-1", paellaSnapshot())
	require.NoError(t, err)
	require.NotNil(t, recipe)

	assert.Equal(t, "Paella", recipe.Title)
	assert.Contains(t, env.vectorDB.Entries, recipe.ID)
}

func TestRecipeHandler_DeleteRemovesFromIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	recipe, err := env.recipe.HandleCreate(ctx, "user-1", paellaSnapshot())
	require.NoError(t, err)

	require.NoError(t, env.recipe.HandleDelete(ctx, recipe.ID))
	assert.NotContains(t, env.vectorDB.Entries, recipe.ID)
	assert.ErrorIs(t, env.recipe.HandleDelete(ctx, recipe.ID), entities.ErrRecipeNotFound)
}

func TestCommitHandler_CommitAndHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	recipe, err := env.recipe.HandleCreate(ctx, "user-1", paellaSnapshot())
	require.NoError(t, err)

	updated := paellaSnapshot()
	updated.Servings = 8
	version, err := env.commit.HandleCommit(ctx, recipe.ID, "user-1", "Scale up for a party", updated)
	require.NoError(t, err)
	assert.Equal(t, 2, version.VersionNumber)

	history, err := env.commit.HandleHistory(ctx, recipe.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, history.Total)
	require.Len(t, history.Versions, 2)
	assert.Equal(t, "Scale up for a party", history.Versions[0].CommitMessage)
}

func TestCommitHandler_VectorFailureDoesNotFailCommit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	recipe, err := env.recipe.HandleCreate(ctx, "user-1", paellaSnapshot())
	require.NoError(t, err)

	env.vectorDB.Err = assert.AnError
	updated := paellaSnapshot()
	updated.Title = "Paella Mixta"
	version, err := env.commit.HandleCommit(ctx, recipe.ID, "user-1", "Rename", updated)
	require.NoError(t, err)
	assert.Equal(t, 2, version.VersionNumber)
}

func TestForkHandler_ForkAndTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	original, err := env.recipe.HandleCreate(ctx, "user-1", paellaSnapshot())
	require.NoError(t, err)

	forked, err := env.fork.HandleFork(ctx, original.ID, "user-2", "Vegetarian take", "main")
	require.NoError(t, err)
	assert.Equal(t, original.ID, forked.OriginalRecipeID)
	assert.Contains(t, env.vectorDB.Entries, forked.ID)

	tree, err := env.fork.HandleTree(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Total)

	root, err := env.fork.HandleRoot(ctx, forked.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, root.ID)
}

func TestSimilarHandler_ExcludesSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.recipe.HandleCreate(ctx, "user-1", paellaSnapshot())
	require.NoError(t, err)

	other := paellaSnapshot()
	other.Title = "Paella Valenciana"
	second, err := env.recipe.HandleCreate(ctx, "user-1", other)
	require.NoError(t, err)

	similar, err := env.similar.HandleSimilar(ctx, first.ID, 5)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, second.ID, similar[0].RecipeID)
}

func TestSimilarHandler_NotConfigured(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewSimilarHandler(services.NewRecipeService(db), nil)

	_, err := handler.HandleSimilar(context.Background(), "any", 5)
	assert.Error(t, err)
}
