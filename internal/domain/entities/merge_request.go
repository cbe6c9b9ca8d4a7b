package entities

import "time"

// MergeRequestState is the lifecycle state of a merge request.
type MergeRequestState string

const (
	MergeRequestOpen     MergeRequestState = "open"
	MergeRequestMerged   MergeRequestState = "merged"
	MergeRequestClosed   MergeRequestState = "closed"
	MergeRequestRejected MergeRequestState = "rejected"
)

// Terminal reports whether no further transitions are allowed from the state.
func (s MergeRequestState) Terminal() bool {
	return s != MergeRequestOpen
}

// MergeRequest proposes integrating a source recipe/branch into a target
// recipe/branch. Only open requests can be merged, closed or rejected.
type MergeRequest struct {
	ID             string            `json:"id"`
	SourceRecipeID string            `json:"source_recipe_id"`
	SourceBranch   string            `json:"source_branch"`
	TargetRecipeID string            `json:"target_recipe_id"`
	TargetBranch   string            `json:"target_branch"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	RequestedBy    string            `json:"requested_by"`
	State          MergeRequestState `json:"state"`
	ResolvedBy     string            `json:"resolved_by,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	ResolvedAt     *time.Time        `json:"resolved_at,omitempty"`
}
