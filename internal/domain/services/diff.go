// Package services contains the business logic of the version-control
// engine, expressed over the ports interfaces.
package services

import (
	"slices"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

// DiffSnapshots computes the structured difference between two recipe
// snapshots. Scalar fields record their old and new values; the ingredient
// list and the steps text are compared by whole-collection identity and
// collapse to a bare changed marker. No side effects.
//
// Returns ErrInvalidSnapshot when either snapshot lacks required fields.
func DiffSnapshots(old, updated entities.Snapshot) (entities.ChangeDescriptor, error) {
	if !old.Valid() || !updated.Valid() {
		return nil, entities.ErrInvalidSnapshot
	}

	changes := entities.ChangeDescriptor{}

	if old.Title != updated.Title {
		changes["title"] = entities.FieldChange{From: old.Title, To: updated.Title}
	}
	if old.Description != updated.Description {
		changes["description"] = entities.FieldChange{From: old.Description, To: updated.Description}
	}
	if old.Category != updated.Category {
		changes["category"] = entities.FieldChange{From: old.Category, To: updated.Category}
	}
	if old.Tags != updated.Tags {
		changes["tags"] = entities.FieldChange{From: old.Tags, To: updated.Tags}
	}
	if old.Servings != updated.Servings {
		changes["servings"] = entities.FieldChange{From: old.Servings, To: updated.Servings}
	}
	if old.PrepTime != updated.PrepTime {
		changes["prep_time"] = entities.FieldChange{From: old.PrepTime, To: updated.PrepTime}
	}
	if old.CookTime != updated.CookTime {
		changes["cook_time"] = entities.FieldChange{From: old.CookTime, To: updated.CookTime}
	}
	if old.Difficulty != updated.Difficulty {
		changes["difficulty"] = entities.FieldChange{From: string(old.Difficulty), To: string(updated.Difficulty)}
	}
	if old.Steps != updated.Steps {
		changes["steps"] = entities.FieldChange{}
	}
	if !slices.Equal(old.Ingredients, updated.Ingredients) {
		changes["ingredients"] = entities.FieldChange{}
	}

	return changes, nil
}
