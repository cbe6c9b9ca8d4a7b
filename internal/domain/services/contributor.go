package services

import (
	"context"
	"fmt"
	"time"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
)

// ContributorService tracks who has contributed to a recipe.
type ContributorService struct {
	relationalDB ports.RelationalDB
}

// NewContributorService creates a new ContributorService.
func NewContributorService(relationalDB ports.RelationalDB) *ContributorService {
	return &ContributorService{
		relationalDB: relationalDB,
	}
}

// Record upserts a contribution: a first contribution inserts the row with
// a commit count of one, later ones increment it and advance the last
// contribution time. Commit and fork flows record their contributions
// inside the store transaction; this entry point serves collaborator flows.
func (s *ContributorService) Record(ctx context.Context, recipeID, userID string, ctype entities.ContributionType) error {
	if _, err := s.relationalDB.FindRecipeByID(ctx, recipeID); err != nil {
		return err
	}
	if err := s.relationalDB.RecordContribution(ctx, recipeID, userID, ctype, time.Now()); err != nil {
		return fmt.Errorf("recording contribution: %w", err)
	}
	return nil
}

// List returns a recipe's contributors ordered by commit count descending,
// then first contribution ascending.
func (s *ContributorService) List(ctx context.Context, recipeID string) ([]entities.Contributor, error) {
	if _, err := s.relationalDB.FindRecipeByID(ctx, recipeID); err != nil {
		return nil, err
	}
	return s.relationalDB.ListContributors(ctx, recipeID)
}

// Count counts a recipe's contributors.
func (s *ContributorService) Count(ctx context.Context, recipeID string) (int, error) {
	return s.relationalDB.CountContributors(ctx, recipeID)
}
