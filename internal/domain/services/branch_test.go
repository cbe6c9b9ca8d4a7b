package services

import (
	"context"
	"testing"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchService_Create(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewBranchService(db)

	branch, err := svc.Create(ctx, recipe.ID, "spicy-version", "user-2", "More heat", "")

	require.NoError(t, err)
	assert.Equal(t, "spicy-version", branch.Name)
	assert.False(t, branch.IsDefault)
	assert.True(t, branch.IsActive)

	branches, err := svc.List(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, branches, 2)

	defaults := 0
	for _, b := range branches {
		if b.IsDefault {
			defaults++
			assert.Equal(t, entities.DefaultBranchName, b.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestBranchService_Create_Duplicate(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewBranchService(db)

	_, err := svc.Create(ctx, recipe.ID, "experiments", "user-1", "", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, recipe.ID, "experiments", "user-1", "", "")
	assert.ErrorIs(t, err, entities.ErrDuplicateBranch)

	_, err = svc.Create(ctx, recipe.ID, entities.DefaultBranchName, "user-1", "", "")
	assert.ErrorIs(t, err, entities.ErrDuplicateBranch)
}

func TestBranchService_Create_InvalidName(t *testing.T) {
	db := mocks.NewRelationalDB()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewBranchService(db)

	for _, name := range []string{"", "has space", "semi;colon", "sla/sh"} {
		_, err := svc.Create(context.Background(), recipe.ID, name, "user-1", "", "")
		assert.ErrorIs(t, err, entities.ErrInvalidBranchName, "name %q", name)
	}
}

func TestBranchService_Create_BaseVersion(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	other := seedRecipe(t, db, "user-2")
	svc := NewBranchService(db)

	base, err := db.FindLatestVersion(ctx, recipe.ID)
	require.NoError(t, err)
	require.NotNil(t, base)

	branch, err := svc.Create(ctx, recipe.ID, "from-v1", "user-1", "", base.ID)
	require.NoError(t, err)
	assert.Equal(t, base.ID, branch.BaseVersionID)

	// A base version belonging to another recipe is rejected.
	foreign, err := db.FindLatestVersion(ctx, other.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, recipe.ID, "bad-base", "user-1", "", foreign.ID)
	assert.ErrorIs(t, err, entities.ErrInvalidBaseVersion)

	_, err = svc.Create(ctx, recipe.ID, "gone-base", "user-1", "", "missing")
	assert.ErrorIs(t, err, entities.ErrVersionNotFound)
}

func TestBranchService_Deactivate(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewBranchService(db)

	branch, err := svc.Create(ctx, recipe.ID, "short-lived", "user-1", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, recipe.ID, branch.ID))

	branches, err := svc.List(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Equal(t, entities.DefaultBranchName, branches[0].Name)

	// The default branch cannot be deactivated.
	assert.ErrorIs(t, svc.Deactivate(ctx, recipe.ID, branches[0].ID), entities.ErrDefaultBranch)
}

func TestBranchService_SetDefault(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewBranchService(db)

	branch, err := svc.Create(ctx, recipe.ID, "new-main", "user-1", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.SetDefault(ctx, recipe.ID, branch.ID))

	branches, err := svc.List(ctx, recipe.ID)
	require.NoError(t, err)
	defaults := 0
	for _, b := range branches {
		if b.IsDefault {
			defaults++
			assert.Equal(t, "new-main", b.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}
