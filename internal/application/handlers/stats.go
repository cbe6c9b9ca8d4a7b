package handlers

import (
	"context"

	"github.com/forkful/forkful-core/internal/domain/services"
)

// StatsHandler handles statistics and comparison reads.
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// HandleStats returns a recipe's repository statistics.
func (h *StatsHandler) HandleStats(ctx context.Context, recipeID string) (*services.RecipeStats, error) {
	return h.statsService.Stats(ctx, recipeID)
}

// HandleCompare compares two recipes' current snapshots.
func (h *StatsHandler) HandleCompare(ctx context.Context, baseID, compareID string) (*services.Comparison, error) {
	return h.statsService.Compare(ctx, baseID, compareID)
}
