package entities

import "time"

// Fork is an edge from an original recipe to a derived copy. A user may
// fork a given original at most once.
type Fork struct {
	ID               string    `json:"id"`
	OriginalRecipeID string    `json:"original_recipe_id"`
	ForkedRecipeID   string    `json:"forked_recipe_id"`
	ForkedByUserID   string    `json:"forked_by_user_id"`
	ForkedBy         *User     `json:"forked_by,omitempty"` // display join, reads only
	BranchName       string    `json:"branch_name"`
	BaseVersionID    string    `json:"base_version_id,omitempty"`
	ForkReason       string    `json:"fork_reason,omitempty"`
	ForkedTitle      string    `json:"forked_title,omitempty"` // display join, reads only
	CreatedAt        time.Time `json:"created_at"`
}

// ForkTreeNode is one entry in the transitive fork lineage of a recipe.
// Depth 1 is a direct fork, depth 2 a fork of a fork, and so on.
type ForkTreeNode struct {
	ForkID         string    `json:"fork_id"`
	ForkedRecipeID string    `json:"forked_recipe_id"`
	Title          string    `json:"title"`
	ForkedBy       *User     `json:"forked_by,omitempty"`
	Depth          int       `json:"depth"`
	CreatedAt      time.Time `json:"created_at"`
}
