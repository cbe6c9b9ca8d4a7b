package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Payloads written before schema_version existed must still decode: unknown
// fields are ignored and absent fields get their defaults.
func TestDecodeSnapshot_LegacyPayload(t *testing.T) {
	raw := []byte(`{"title":"Old Tamales","mystery_field":42,"ingredients":null}`)

	s, err := DecodeSnapshot(raw)

	require.NoError(t, err)
	assert.Equal(t, SnapshotSchemaVersion, s.SchemaVersion)
	assert.Equal(t, "Old Tamales", s.Title)
	assert.Equal(t, 2, s.Servings)
	assert.Equal(t, DifficultyEasy, s.Difficulty)
	require.NotNil(t, s.Ingredients)
	assert.Empty(t, s.Ingredients)
}

func TestDecodeSnapshot_CurrentPayload(t *testing.T) {
	raw := []byte(`{
		"schema_version": 1,
		"title": "Tamales",
		"ingredients": [{"name": "masa harina", "quantity": 4, "unit": "cups"}],
		"steps": "Mix. Steam.",
		"servings": 6,
		"difficulty": "Hard"
	}`)

	s, err := DecodeSnapshot(raw)

	require.NoError(t, err)
	assert.Equal(t, 6, s.Servings)
	assert.Equal(t, DifficultyHard, s.Difficulty)
	require.Len(t, s.Ingredients, 1)
	assert.Equal(t, "masa harina", s.Ingredients[0].Name)
}

func TestDecodeSnapshot_Malformed(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"title":`))

	assert.Error(t, err)
}
