package services

import (
	"encoding/json"
	"testing"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffSnapshots_Identical(t *testing.T) {
	s := tamalesSnapshot()

	changes, err := DiffSnapshots(s, s)

	require.NoError(t, err)
	assert.True(t, changes.Empty())
}

func TestDiffSnapshots_ScalarFields(t *testing.T) {
	old := tamalesSnapshot()
	updated := tamalesSnapshot()
	updated.Title = "Tamales Verdes"
	updated.Servings = 6
	updated.Difficulty = entities.DifficultyHard

	changes, err := DiffSnapshots(old, updated)

	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, entities.FieldChange{From: "Tamales", To: "Tamales Verdes"}, changes["title"])
	assert.Equal(t, entities.FieldChange{From: 4, To: 6}, changes["servings"])
	assert.Equal(t, entities.FieldChange{From: "Medium", To: "Hard"}, changes["difficulty"])
}

func TestDiffSnapshots_ContainersCollapse(t *testing.T) {
	old := tamalesSnapshot()
	updated := tamalesSnapshot()
	updated.Ingredients = append(updated.Ingredients, entities.Ingredient{Name: "green salsa", Quantity: 2, Unit: "cups"})
	updated.Steps = old.Steps + " Serve with salsa."

	changes, err := DiffSnapshots(old, updated)

	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.True(t, changes["ingredients"].Collapsed())
	assert.True(t, changes["steps"].Collapsed())
}

func TestDiffSnapshots_IngredientValueChange(t *testing.T) {
	old := tamalesSnapshot()
	updated := tamalesSnapshot()
	updated.Ingredients = append([]entities.Ingredient(nil), old.Ingredients...)
	updated.Ingredients[1].Quantity = 1.5

	changes, err := DiffSnapshots(old, updated)

	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, changes["ingredients"].Collapsed())
}

func TestDiffSnapshots_InvalidSnapshot(t *testing.T) {
	_, err := DiffSnapshots(entities.Snapshot{}, tamalesSnapshot())
	assert.ErrorIs(t, err, entities.ErrInvalidSnapshot)

	_, err = DiffSnapshots(tamalesSnapshot(), entities.Snapshot{})
	assert.ErrorIs(t, err, entities.ErrInvalidSnapshot)
}

func TestChangeDescriptor_WireFormat(t *testing.T) {
	old := tamalesSnapshot()
	updated := tamalesSnapshot()
	updated.Servings = 6
	updated.Steps = "Different steps entirely."

	changes, err := DiffSnapshots(old, updated)
	require.NoError(t, err)

	data, err := json.Marshal(changes)
	require.NoError(t, err)
	assert.JSONEq(t, `{"servings":{"from":4,"to":6},"steps":true}`, string(data))

	var decoded entities.ChangeDescriptor
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded["steps"].Collapsed())
	assert.Equal(t, float64(6), decoded["servings"].To)
}
