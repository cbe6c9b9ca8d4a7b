package services

import (
	"context"
	"testing"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/stretchr/testify/require"
)

// tamalesSnapshot returns a baseline snapshot used across tests.
func tamalesSnapshot() entities.Snapshot {
	return entities.Snapshot{
		Title:       "Tamales",
		Description: "Corn dough parcels steamed in husks",
		Ingredients: []entities.Ingredient{
			{Name: "masa harina", Quantity: 4, Unit: "cups"},
			{Name: "lard", Quantity: 1, Unit: "cup"},
			{Name: "chicken stock", Quantity: 3, Unit: "cups"},
		},
		Steps:      "Beat the lard. Mix in the masa and stock. Fill husks and steam.",
		Servings:   4,
		Category:   "Mexican",
		Tags:       "steamed,corn",
		PrepTime:   60,
		CookTime:   90,
		Difficulty: entities.DifficultyMedium,
	}
}

// seedRecipe creates a recipe owned by ownerID through the service layer so
// the store runs its full creation sequence.
func seedRecipe(t *testing.T, db *mocks.RelationalDB, ownerID string) *entities.Recipe {
	t.Helper()
	recipe, err := NewRecipeService(db).Create(context.Background(), ownerID, tamalesSnapshot())
	require.NoError(t, err)
	return recipe
}

// seedUser registers a display snapshot for joins.
func seedUser(t *testing.T, db *mocks.RelationalDB, id, username string) {
	t.Helper()
	require.NoError(t, db.SaveUser(context.Background(), &entities.User{ID: id, Username: username}))
}
