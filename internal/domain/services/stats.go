package services

import (
	"context"
	"fmt"
	"time"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
)

// RecipeStats is the repository-style summary of a recipe.
type RecipeStats struct {
	RecipeID         string                  `json:"recipe_id"`
	Title            string                  `json:"title"`
	IsFork           bool                    `json:"is_fork"`
	OriginalRecipeID string                  `json:"original_recipe_id,omitempty"`
	Forks            int                     `json:"forks"`
	Stars            int                     `json:"stars"`
	Versions         int                     `json:"versions"`
	Contributors     int                     `json:"contributors"`
	Branches         int                     `json:"branches"`
	LatestCommit     *entities.RecipeVersion `json:"latest_commit,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// ValueDiff records a scalar field that differs between two recipes.
type ValueDiff struct {
	Base    any `json:"base"`
	Compare any `json:"compare"`
}

// IngredientsDiff summarizes an ingredient list difference by size.
type IngredientsDiff struct {
	BaseCount    int `json:"base_count"`
	CompareCount int `json:"compare_count"`
}

// StepsDiff summarizes a steps difference by text length.
type StepsDiff struct {
	BaseLength    int  `json:"base_length"`
	CompareLength int  `json:"compare_length"`
	Changed       bool `json:"changed"`
}

// Differences holds the per-field differences between two recipes. Nil
// fields are unchanged.
type Differences struct {
	Title       *ValueDiff       `json:"title,omitempty"`
	Description *ValueDiff       `json:"description,omitempty"`
	Category    *ValueDiff       `json:"category,omitempty"`
	Tags        *ValueDiff       `json:"tags,omitempty"`
	Servings    *ValueDiff       `json:"servings,omitempty"`
	PrepTime    *ValueDiff       `json:"prep_time,omitempty"`
	CookTime    *ValueDiff       `json:"cook_time,omitempty"`
	Difficulty  *ValueDiff       `json:"difficulty,omitempty"`
	Ingredients *IngredientsDiff `json:"ingredients,omitempty"`
	Steps       *StepsDiff       `json:"steps,omitempty"`
}

// Empty reports whether the two recipes did not differ in any field.
func (d Differences) Empty() bool {
	return d == Differences{}
}

// RecipeRef identifies one side of a comparison.
type RecipeRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Comparison is the result of comparing two recipes' current snapshots.
type Comparison struct {
	Base        RecipeRef   `json:"base_recipe"`
	Compare     RecipeRef   `json:"compare_recipe"`
	Differences Differences `json:"differences"`
	HasChanges  bool        `json:"has_changes"`
}

// StatsService derives read-only statistics and comparisons by composing
// the version store, branch manager, fork graph and contributor ledger.
type StatsService struct {
	relationalDB ports.RelationalDB
}

// NewStatsService creates a new StatsService.
func NewStatsService(relationalDB ports.RelationalDB) *StatsService {
	return &StatsService{
		relationalDB: relationalDB,
	}
}

// Stats assembles a recipe's repository statistics in one read. A version
// ledger that disagrees with the recipe's version counter is surfaced as an
// integrity violation and logged distinctly, never silently repaired.
func (s *StatsService) Stats(ctx context.Context, recipeID string) (*RecipeStats, error) {
	recipe, err := s.relationalDB.FindRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	versions, err := s.relationalDB.CountVersions(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("counting versions: %w", err)
	}
	if versions != recipe.VersionCount {
		_ = s.relationalDB.LogAction(ctx, "integrity_violation", recipeID, map[string]any{
			"version_count": recipe.VersionCount,
			"ledger_count":  versions,
		})
		return nil, fmt.Errorf("version_count %d disagrees with ledger count %d: %w",
			recipe.VersionCount, versions, entities.ErrIntegrity)
	}

	forks, err := s.relationalDB.CountForks(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("counting forks: %w", err)
	}
	contributors, err := s.relationalDB.CountContributors(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("counting contributors: %w", err)
	}
	branches, err := s.relationalDB.CountBranches(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("counting branches: %w", err)
	}
	latest, err := s.relationalDB.FindLatestVersion(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("finding latest version: %w", err)
	}

	return &RecipeStats{
		RecipeID:         recipe.ID,
		Title:            recipe.Title,
		IsFork:           recipe.IsFork,
		OriginalRecipeID: recipe.OriginalRecipeID,
		Forks:            forks,
		Stars:            recipe.StarCount,
		Versions:         versions,
		Contributors:     contributors,
		Branches:         branches,
		LatestCommit:     latest,
		CreatedAt:        recipe.CreatedAt,
		UpdatedAt:        recipe.UpdatedAt,
	}, nil
}

// Compare reports the per-field differences between two recipes' current
// snapshots. Comparing a recipe to itself yields no differences.
func (s *StatsService) Compare(ctx context.Context, baseID, compareID string) (*Comparison, error) {
	base, err := s.relationalDB.FindRecipeByID(ctx, baseID)
	if err != nil {
		return nil, err
	}
	other, err := s.relationalDB.FindRecipeByID(ctx, compareID)
	if err != nil {
		return nil, err
	}

	a, b := base.CurrentSnapshot(), other.CurrentSnapshot()
	changes, err := DiffSnapshots(a, b)
	if err != nil {
		return nil, err
	}

	var diff Differences
	for field := range changes {
		switch field {
		case "title":
			diff.Title = &ValueDiff{Base: a.Title, Compare: b.Title}
		case "description":
			diff.Description = &ValueDiff{Base: a.Description, Compare: b.Description}
		case "category":
			diff.Category = &ValueDiff{Base: a.Category, Compare: b.Category}
		case "tags":
			diff.Tags = &ValueDiff{Base: a.Tags, Compare: b.Tags}
		case "servings":
			diff.Servings = &ValueDiff{Base: a.Servings, Compare: b.Servings}
		case "prep_time":
			diff.PrepTime = &ValueDiff{Base: a.PrepTime, Compare: b.PrepTime}
		case "cook_time":
			diff.CookTime = &ValueDiff{Base: a.CookTime, Compare: b.CookTime}
		case "difficulty":
			diff.Difficulty = &ValueDiff{Base: string(a.Difficulty), Compare: string(b.Difficulty)}
		case "ingredients":
			diff.Ingredients = &IngredientsDiff{BaseCount: len(a.Ingredients), CompareCount: len(b.Ingredients)}
		case "steps":
			diff.Steps = &StepsDiff{BaseLength: len(a.Steps), CompareLength: len(b.Steps), Changed: true}
		}
	}

	return &Comparison{
		Base:        RecipeRef{ID: base.ID, Title: base.Title},
		Compare:     RecipeRef{ID: other.ID, Title: other.Title},
		Differences: diff,
		HasChanges:  !diff.Empty(),
	}, nil
}
