package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSnapshotFile_JSON(t *testing.T) {
	path := writeTempFile(t, "tamales.json", `{
		"title": "Tamales",
		"ingredients": [{"name": "masa harina", "quantity": 4, "unit": "cups"}],
		"steps": ["Beat the lard.", "Steam the husks."],
		"servings": 4,
		"difficulty": "Medium"
	}`)

	snapshot, err := loadSnapshotFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Tamales", snapshot.Title)
	assert.Equal(t, 4, snapshot.Servings)
	assert.Equal(t, entities.DifficultyMedium, snapshot.Difficulty)
	require.Len(t, snapshot.Ingredients, 1)
	assert.Equal(t, "masa harina", snapshot.Ingredients[0].Name)
	assert.Contains(t, snapshot.Steps, "1. Beat the lard.")
}

func TestLoadSnapshotFile_YAML(t *testing.T) {
	path := writeTempFile(t, "tamales.yaml", `
title: Tamales
ingredients:
  - name: masa harina
    quantity: 4
    unit: cups
steps: Beat the lard. Steam the husks.
servings: 4
`)

	snapshot, err := loadSnapshotFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Tamales", snapshot.Title)
	assert.Equal(t, "Beat the lard. Steam the husks.", snapshot.Steps)
}

func TestLoadSnapshotFile_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "tamales.txt", "not a recipe")

	_, err := loadSnapshotFile(path)
	assert.ErrorContains(t, err, "unsupported recipe file format")
}

func TestLoadSnapshotFile_Missing(t *testing.T) {
	_, err := loadSnapshotFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadIngredientsCSV(t *testing.T) {
	path := writeTempFile(t, "pantry.csv", "name,quantity,unit\nmasa harina,4,cups\nlard,1,cup\n")

	ingredients, err := loadIngredientsCSV(path)
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, entities.Ingredient{Name: "masa harina", Quantity: 4, Unit: "cups"}, ingredients[0])
}
