// Package entities contains core domain data structures.
package entities

import "time"

// Difficulty is the declared skill level of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Ingredient is a single entry in a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
}

// Recipe is the live, mutable state of a recipe repository. Its content
// fields mirror the latest committed Snapshot; the counters are maintained
// by the store alongside every commit and fork.
type Recipe struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       string       `json:"steps"`
	Servings    int          `json:"servings"`
	Category    string       `json:"category,omitempty"`
	Tags        string       `json:"tags,omitempty"`
	PrepTime    int          `json:"prep_time,omitempty"` // minutes
	CookTime    int          `json:"cook_time,omitempty"` // minutes
	Difficulty  Difficulty   `json:"difficulty"`

	IsFork           bool   `json:"is_fork"`
	OriginalRecipeID string `json:"original_recipe_id,omitempty"`

	ForkCount    int `json:"fork_count"`
	StarCount    int `json:"star_count"`
	VersionCount int `json:"version_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrentSnapshot captures the recipe's live content as a Snapshot.
func (r *Recipe) CurrentSnapshot() Snapshot {
	return Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		Title:         r.Title,
		Description:   r.Description,
		Ingredients:   r.Ingredients,
		Steps:         r.Steps,
		Servings:      r.Servings,
		Category:      r.Category,
		Tags:          r.Tags,
		PrepTime:      r.PrepTime,
		CookTime:      r.CookTime,
		Difficulty:    r.Difficulty,
	}
}

// ApplySnapshot overwrites the recipe's content fields from a snapshot,
// leaving identity, lineage and counters untouched.
func (r *Recipe) ApplySnapshot(s Snapshot) {
	r.Title = s.Title
	r.Description = s.Description
	r.Ingredients = s.Ingredients
	r.Steps = s.Steps
	r.Servings = s.Servings
	r.Category = s.Category
	r.Tags = s.Tags
	r.PrepTime = s.PrepTime
	r.CookTime = s.CookTime
	r.Difficulty = s.Difficulty
}
