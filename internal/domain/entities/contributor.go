package entities

import "time"

// ContributionType categorizes how a user contributed to a recipe.
type ContributionType string

const (
	ContributionCreator      ContributionType = "creator"
	ContributionEditor       ContributionType = "editor"
	ContributionForker       ContributionType = "forker"
	ContributionCollaborator ContributionType = "collaborator"
)

// Contributor aggregates one user's contributions to one recipe. The pair
// (recipe, contributor) is unique and the commit count never decreases.
type Contributor struct {
	RecipeID           string           `json:"recipe_id"`
	ContributorID      string           `json:"contributor_id"`
	User               *User            `json:"user,omitempty"` // display join, reads only
	ContributionType   ContributionType `json:"contribution_type"`
	CommitCount        int              `json:"commit_count"`
	FirstContributedAt time.Time        `json:"first_contributed_at"`
	LastContributedAt  time.Time        `json:"last_contributed_at"`
}
