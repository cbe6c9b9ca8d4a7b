package entities

import "encoding/json"

// SnapshotSchemaVersion is the schema version written by this build.
// Stored snapshots carry their own version so historical commits stay
// decodable as the live recipe schema evolves.
const SnapshotSchemaVersion = 1

// Snapshot is a complete, self-contained capture of recipe content at one
// version. Every commit stores a full snapshot, so any historical state can
// be read without replaying diffs.
type Snapshot struct {
	SchemaVersion int          `json:"schema_version"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         string       `json:"steps"`
	Servings      int          `json:"servings"`
	Category      string       `json:"category,omitempty"`
	Tags          string       `json:"tags,omitempty"`
	PrepTime      int          `json:"prep_time,omitempty"`
	CookTime      int          `json:"cook_time,omitempty"`
	Difficulty    Difficulty   `json:"difficulty"`
}

// Valid reports whether the snapshot carries the minimum required fields.
func (s Snapshot) Valid() bool {
	return s.Title != ""
}

// DecodeSnapshot parses a stored snapshot, tolerating unknown fields and
// filling defaults for fields absent in older schema versions.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, err
	}
	s.Normalize()
	return s, nil
}

// Normalize stamps the current schema version and fills defaults for
// fields absent in older schema versions or sparse input.
func (s *Snapshot) Normalize() {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SnapshotSchemaVersion
	}
	if s.Servings == 0 {
		s.Servings = 2
	}
	if s.Difficulty == "" {
		s.Difficulty = DifficultyEasy
	}
	if s.Ingredients == nil {
		s.Ingredients = []Ingredient{}
	}
}
