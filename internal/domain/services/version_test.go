package services

import (
	"context"
	"testing"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionService_Commit(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewVersionService(db)

	content := tamalesSnapshot()
	content.Servings = 6

	version, err := svc.Commit(ctx, recipe.ID, "user-1", "Scale up for the party", content)

	require.NoError(t, err)
	assert.Equal(t, 2, version.VersionNumber)
	assert.Equal(t, "Scale up for the party", version.CommitMessage)
	assert.Equal(t, entities.FieldChange{From: 4, To: 6}, version.Changes["servings"])
	assert.NotEmpty(t, version.ParentVersionID)

	// The live recipe reflects the new content and counter.
	updated, err := db.FindRecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Servings)
	assert.Equal(t, 2, updated.VersionCount)
}

func TestVersionService_Commit_EmptyMessage(t *testing.T) {
	db := mocks.NewRelationalDB()
	recipe := seedRecipe(t, db, "user-1")

	_, err := NewVersionService(db).Commit(context.Background(), recipe.ID, "user-1", "   ", tamalesSnapshot())

	assert.ErrorIs(t, err, entities.ErrEmptyCommitMessage)
}

func TestVersionService_Commit_NothingToCommit(t *testing.T) {
	db := mocks.NewRelationalDB()
	recipe := seedRecipe(t, db, "user-1")

	_, err := NewVersionService(db).Commit(context.Background(), recipe.ID, "user-1", "no-op", tamalesSnapshot())

	assert.ErrorIs(t, err, entities.ErrNothingToCommit)
}

func TestVersionService_Commit_RecipeNotFound(t *testing.T) {
	db := mocks.NewRelationalDB()

	_, err := NewVersionService(db).Commit(context.Background(), "missing", "user-1", "msg", tamalesSnapshot())

	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}

func TestVersionService_SequentialNumbering(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewVersionService(db)

	content := tamalesSnapshot()
	for i := 0; i < 4; i++ {
		content.Servings += 2
		version, err := svc.Commit(ctx, recipe.ID, "user-1", "scale again", content)
		require.NoError(t, err)
		assert.Equal(t, i+2, version.VersionNumber)
	}

	history, err := svc.History(ctx, recipe.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 5)
	// Newest first, gap-free, each linked to its parent.
	for i, v := range history {
		assert.Equal(t, 5-i, v.VersionNumber)
		if v.VersionNumber > 1 {
			parent, err := svc.Get(ctx, v.ParentVersionID)
			require.NoError(t, err)
			assert.Equal(t, v.VersionNumber-1, parent.VersionNumber)
		}
	}
}

func TestVersionService_History_Pagination(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewVersionService(db)

	content := tamalesSnapshot()
	for i := 0; i < 3; i++ {
		content.PrepTime += 5
		_, err := svc.Commit(ctx, recipe.ID, "user-1", "tweak timing", content)
		require.NoError(t, err)
	}

	page, err := svc.History(ctx, recipe.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 4, page[0].VersionNumber)

	page, err = svc.History(ctx, recipe.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 2, page[0].VersionNumber)

	// Past the end yields an empty page, not an error.
	page, err = svc.History(ctx, recipe.ID, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	// Limits are clamped to the maximum.
	page, err = svc.History(ctx, recipe.ID, MaxHistoryLimit+100, 0)
	require.NoError(t, err)
	assert.Len(t, page, 4)
}

func TestVersionService_History_RecipeNotFound(t *testing.T) {
	db := mocks.NewRelationalDB()

	_, err := NewVersionService(db).History(context.Background(), "missing", 0, 0)

	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}

func TestVersionService_Latest(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewVersionService(db)

	latest, err := svc.Latest(ctx, recipe.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 1, latest.VersionNumber)

	content := tamalesSnapshot()
	content.CookTime = 120
	_, err = svc.Commit(ctx, recipe.ID, "user-1", "steam longer", content)
	require.NoError(t, err)

	latest, err = svc.Latest(ctx, recipe.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 2, latest.VersionNumber)
	assert.Equal(t, 120, latest.Snapshot.CookTime)

	latest, err = svc.Latest(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestVersionService_SnapshotRoundTrip(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewVersionService(db)

	content := tamalesSnapshot()
	content.Title = "Tamales Rojos"
	version, err := svc.Commit(ctx, recipe.ID, "user-1", "switch to red sauce", content)
	require.NoError(t, err)

	// The stored snapshot is the full content, not a delta.
	stored, err := svc.Get(ctx, version.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tamales Rojos", stored.Snapshot.Title)
	assert.Len(t, stored.Snapshot.Ingredients, 3)
	assert.Equal(t, entities.SnapshotSchemaVersion, stored.Snapshot.SchemaVersion)
}
