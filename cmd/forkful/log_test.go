package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

func TestChangedFields(t *testing.T) {
	changes := entities.ChangeDescriptor{
		"servings": {From: 4, To: 6},
		"steps":    {},
		"title":    {From: "Tamales", To: "Tamales Verdes"},
	}

	out := changedFields(changes)

	assert.Equal(t, "servings (4 -> 6), steps, title (Tamales -> Tamales Verdes)", out)
}

func TestChangedFields_Empty(t *testing.T) {
	assert.Equal(t, "", changedFields(entities.ChangeDescriptor{}))
}
