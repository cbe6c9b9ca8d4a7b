package services

import (
	"context"
	"testing"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeService_Create(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()

	recipe, err := NewRecipeService(db).Create(ctx, "user-1", tamalesSnapshot())

	require.NoError(t, err)
	assert.NotEmpty(t, recipe.ID)
	assert.Equal(t, "user-1", recipe.OwnerID)
	assert.Equal(t, "Tamales", recipe.Title)
	assert.Equal(t, 1, recipe.VersionCount)
	assert.False(t, recipe.IsFork)

	// Creation seeds version 1, the default branch and the creator row.
	versions, err := db.FindVersionsByRecipe(ctx, recipe.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, 1, versions[0].VersionNumber)
	assert.Equal(t, InitialCommitMessage, versions[0].CommitMessage)
	assert.Empty(t, versions[0].ParentVersionID)

	branches, err := db.ListBranches(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Equal(t, entities.DefaultBranchName, branches[0].Name)
	assert.True(t, branches[0].IsDefault)

	contributors, err := db.ListContributors(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, contributors, 1)
	assert.Equal(t, entities.ContributionCreator, contributors[0].ContributionType)
}

func TestRecipeService_Create_Defaults(t *testing.T) {
	db := mocks.NewRelationalDB()

	recipe, err := NewRecipeService(db).Create(context.Background(), "user-1", entities.Snapshot{
		Title: "Toast",
		Steps: "Toast the bread.",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, recipe.Servings)
	assert.Equal(t, entities.DifficultyEasy, recipe.Difficulty)
	assert.NotNil(t, recipe.Ingredients)
}

func TestRecipeService_Create_Invalid(t *testing.T) {
	db := mocks.NewRelationalDB()

	_, err := NewRecipeService(db).Create(context.Background(), "user-1", entities.Snapshot{Steps: "no title"})

	assert.ErrorIs(t, err, entities.ErrInvalidSnapshot)
}

func TestRecipeService_Delete(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	svc := NewRecipeService(db)
	recipe := seedRecipe(t, db, "user-1")

	require.NoError(t, svc.Delete(ctx, recipe.ID))

	_, err := svc.Get(ctx, recipe.ID)
	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)

	versions, err := db.FindVersionsByRecipe(ctx, recipe.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, versions)

	assert.ErrorIs(t, svc.Delete(ctx, recipe.ID), entities.ErrRecipeNotFound)
}

func TestRecipeService_Delete_OrphansForks(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	original := seedRecipe(t, db, "user-1")

	forked, err := NewForkService(db).Fork(ctx, original.ID, "user-2", "", "")
	require.NoError(t, err)

	require.NoError(t, NewRecipeService(db).Delete(ctx, original.ID))

	// The fork survives with its lineage pointer cleared.
	survivor, err := db.FindRecipeByID(ctx, forked.ID)
	require.NoError(t, err)
	assert.Empty(t, survivor.OriginalRecipeID)
}
