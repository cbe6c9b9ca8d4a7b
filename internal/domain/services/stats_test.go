package services

import (
	"context"
	"testing"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Stats(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")
	svc := NewStatsService(db)

	content := tamalesSnapshot()
	content.Servings = 6
	_, err := NewVersionService(db).Commit(ctx, recipe.ID, "user-2", "scale", content)
	require.NoError(t, err)
	_, err = NewForkService(db).Fork(ctx, recipe.ID, "user-3", "", "")
	require.NoError(t, err)
	_, err = NewBranchService(db).Create(ctx, recipe.ID, "variants", "user-1", "", "")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, recipe.ID)

	require.NoError(t, err)
	assert.Equal(t, recipe.ID, stats.RecipeID)
	assert.Equal(t, "Tamales", stats.Title)
	assert.False(t, stats.IsFork)
	assert.Equal(t, 2, stats.Versions)
	assert.Equal(t, 1, stats.Forks)
	assert.Equal(t, 2, stats.Contributors)
	assert.Equal(t, 2, stats.Branches)
	require.NotNil(t, stats.LatestCommit)
	assert.Equal(t, 2, stats.LatestCommit.VersionNumber)
}

func TestStatsService_Stats_NotFound(t *testing.T) {
	db := mocks.NewRelationalDB()

	_, err := NewStatsService(db).Stats(context.Background(), "missing")

	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}

func TestStatsService_Stats_IntegrityViolation(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	recipe := seedRecipe(t, db, "user-1")

	// Tamper with the counter so it disagrees with the version ledger.
	db.Recipes[recipe.ID].VersionCount = 7

	_, err := NewStatsService(db).Stats(ctx, recipe.ID)

	assert.ErrorIs(t, err, entities.ErrIntegrity)

	// The violation is logged distinctly, never silently repaired.
	entries, findErr := db.FindAuditLog(ctx, recipe.ID)
	require.NoError(t, findErr)
	var violation *entities.AuditEntry
	for i := range entries {
		if entries[i].Action == "integrity_violation" {
			violation = &entries[i]
		}
	}
	require.NotNil(t, violation)
	assert.Equal(t, 7, violation.Details["version_count"])
	assert.Equal(t, 7, db.Recipes[recipe.ID].VersionCount)
}

func TestStatsService_Compare_Self(t *testing.T) {
	db := mocks.NewRelationalDB()
	recipe := seedRecipe(t, db, "user-1")

	cmp, err := NewStatsService(db).Compare(context.Background(), recipe.ID, recipe.ID)

	require.NoError(t, err)
	assert.False(t, cmp.HasChanges)
	assert.True(t, cmp.Differences.Empty())
}

func TestStatsService_Compare(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	original := seedRecipe(t, db, "user-1")

	forked, err := NewForkService(db).Fork(ctx, original.ID, "user-2", "", "")
	require.NoError(t, err)

	content := forked.CurrentSnapshot()
	content.Title = "Tamales Verdes"
	content.Servings = 6
	content.Steps = content.Steps + " Top with green salsa."
	content.Ingredients = append(content.Ingredients, entities.Ingredient{Name: "green salsa", Quantity: 1, Unit: "cup"})
	_, err = NewVersionService(db).Commit(ctx, forked.ID, "user-2", "green variant", content)
	require.NoError(t, err)

	cmp, err := NewStatsService(db).Compare(ctx, original.ID, forked.ID)

	require.NoError(t, err)
	assert.True(t, cmp.HasChanges)
	assert.Equal(t, original.ID, cmp.Base.ID)
	assert.Equal(t, forked.ID, cmp.Compare.ID)

	require.NotNil(t, cmp.Differences.Title)
	assert.Equal(t, "Tamales", cmp.Differences.Title.Base)
	assert.Equal(t, "Tamales Verdes", cmp.Differences.Title.Compare)

	require.NotNil(t, cmp.Differences.Servings)
	assert.Equal(t, 4, cmp.Differences.Servings.Base)
	assert.Equal(t, 6, cmp.Differences.Servings.Compare)

	require.NotNil(t, cmp.Differences.Ingredients)
	assert.Equal(t, 3, cmp.Differences.Ingredients.BaseCount)
	assert.Equal(t, 4, cmp.Differences.Ingredients.CompareCount)

	require.NotNil(t, cmp.Differences.Steps)
	assert.True(t, cmp.Differences.Steps.Changed)
	assert.Greater(t, cmp.Differences.Steps.CompareLength, cmp.Differences.Steps.BaseLength)

	assert.Nil(t, cmp.Differences.Category)
	assert.Nil(t, cmp.Differences.Difficulty)
}

func TestStatsService_Compare_NotFound(t *testing.T) {
	db := mocks.NewRelationalDB()
	recipe := seedRecipe(t, db, "user-1")

	_, err := NewStatsService(db).Compare(context.Background(), recipe.ID, "missing")
	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)

	_, err = NewStatsService(db).Compare(context.Background(), "missing", recipe.ID)
	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}
