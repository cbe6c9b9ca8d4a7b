package entities

import "time"

// DefaultBranchName is the branch seeded on recipe creation and fork.
const DefaultBranchName = "main"

// Branch is a named pointer into a recipe's history, used for parallel
// variations. Branch names are unique per recipe and exactly one branch per
// recipe is the default.
type Branch struct {
	ID             string    `json:"id"`
	RecipeID       string    `json:"recipe_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	CreatedBy      string    `json:"created_by"`
	Creator        *User     `json:"creator,omitempty"` // display join, reads only
	ParentBranchID string    `json:"parent_branch_id,omitempty"`
	BaseVersionID  string    `json:"base_version_id,omitempty"`
	IsDefault      bool      `json:"is_default"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
