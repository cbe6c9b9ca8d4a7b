package handlers

import (
	"context"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/services"
)

// ContributorHandler handles contributor ledger reads.
type ContributorHandler struct {
	contributorService *services.ContributorService
}

// NewContributorHandler creates a new ContributorHandler.
func NewContributorHandler(contributorService *services.ContributorService) *ContributorHandler {
	return &ContributorHandler{
		contributorService: contributorService,
	}
}

// ContributorListResult contains a recipe's contributors.
type ContributorListResult struct {
	Contributors []entities.Contributor `json:"contributors"`
	Total        int                    `json:"total"`
}

// HandleList returns a recipe's contributors ordered by commit count.
func (h *ContributorHandler) HandleList(ctx context.Context, recipeID string) (*ContributorListResult, error) {
	contributors, err := h.contributorService.List(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &ContributorListResult{
		Contributors: contributors,
		Total:        len(contributors),
	}, nil
}
