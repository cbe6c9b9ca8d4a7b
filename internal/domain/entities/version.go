package entities

import (
	"bytes"
	"encoding/json"
	"time"
)

// FieldChange records how a single field changed in a commit. Scalar fields
// carry the old and new values; container fields (ingredients, steps) are
// recorded as changed without storing the values, and serialize as the JSON
// literal `true`.
type FieldChange struct {
	From any `json:"from,omitempty"`
	To   any `json:"to,omitempty"`
}

// Collapsed reports whether the change carries no values, only the fact
// that the field changed.
func (c FieldChange) Collapsed() bool {
	return c.From == nil && c.To == nil
}

// MarshalJSON writes collapsed changes as `true` and value changes as
// {"from":..,"to":..}, matching the stored wire format.
func (c FieldChange) MarshalJSON() ([]byte, error) {
	if c.Collapsed() {
		return []byte("true"), nil
	}
	type alias FieldChange
	return json.Marshal(alias(c))
}

// UnmarshalJSON accepts both the collapsed boolean form and the object form.
func (c *FieldChange) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("true")) {
		*c = FieldChange{}
		return nil
	}
	type alias FieldChange
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = FieldChange(a)
	return nil
}

// ChangeDescriptor maps changed field names to their changes. An empty
// descriptor means the two snapshots are identical.
type ChangeDescriptor map[string]FieldChange

// Empty reports whether no fields changed.
func (d ChangeDescriptor) Empty() bool {
	return len(d) == 0
}

// RecipeVersion is an immutable commit in a recipe's history.
type RecipeVersion struct {
	ID              string           `json:"id"`
	RecipeID        string           `json:"recipe_id"`
	VersionNumber   int              `json:"version_number"`
	CommitMessage   string           `json:"commit_message"`
	AuthorID        string           `json:"author_id"`
	Author          *User            `json:"author,omitempty"` // display join, reads only
	ParentVersionID string           `json:"parent_version_id,omitempty"`
	Changes         ChangeDescriptor `json:"changes"`
	Snapshot        Snapshot         `json:"snapshot"`
	CreatedAt       time.Time        `json:"created_at"`
}
