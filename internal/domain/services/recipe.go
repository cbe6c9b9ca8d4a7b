package services

import (
	"context"
	"fmt"
	"time"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
	"github.com/google/uuid"
)

// InitialCommitMessage is the message of the seed version of a recipe
// created from scratch.
const InitialCommitMessage = "Initial version"

// RecipeService manages recipe repository lifecycle.
type RecipeService struct {
	relationalDB ports.RelationalDB
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(relationalDB ports.RelationalDB) *RecipeService {
	return &RecipeService{
		relationalDB: relationalDB,
	}
}

// Create creates a recipe from scratch. The store seeds version 1, the
// default branch and a creator contributor row in the same transaction.
func (s *RecipeService) Create(ctx context.Context, ownerID string, content entities.Snapshot) (*entities.Recipe, error) {
	content.Normalize()
	if !content.Valid() {
		return nil, entities.ErrInvalidSnapshot
	}

	now := time.Now()
	recipe := &entities.Recipe{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	recipe.ApplySnapshot(content)

	if err := s.relationalDB.CreateRecipe(ctx, recipe, InitialCommitMessage); err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}
	// Best-effort: a lost audit row never fails the write.
	_ = s.relationalDB.LogAction(ctx, "recipe_created", recipe.ID, map[string]any{
		"owner_id": ownerID,
		"title":    recipe.Title,
	})
	return recipe, nil
}

// Get finds a recipe by ID.
func (s *RecipeService) Get(ctx context.Context, id string) (*entities.Recipe, error) {
	return s.relationalDB.FindRecipeByID(ctx, id)
}

// List returns recipes with pagination, newest first.
func (s *RecipeService) List(ctx context.Context, limit, offset int) ([]*entities.Recipe, error) {
	return s.relationalDB.ListRecipes(ctx, limit, offset)
}

// Delete removes a recipe. Its versions, branches, contributor rows, merge
// requests and fork edges cascade; recipes forked from it survive with
// their lineage pointer cleared.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if _, err := s.relationalDB.FindRecipeByID(ctx, id); err != nil {
		return err
	}
	if err := s.relationalDB.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	_ = s.relationalDB.LogAction(ctx, "recipe_deleted", id, nil)
	return nil
}
