// Package parsers provides parsers for importing recipe content from files.
package parsers

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

// StepList accepts recipe steps either as one text block or as a list of
// steps, which gets joined into numbered lines.
type StepList string

// UnmarshalJSON accepts a string or an array of strings.
func (s *StepList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = StepList(text)
		return nil
	}
	var steps []string
	if err := json.Unmarshal(data, &steps); err != nil {
		return fmt.Errorf("steps must be a string or a list of strings")
	}
	*s = joinSteps(steps)
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence.
func (s *StepList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var text string
		if err := node.Decode(&text); err != nil {
			return err
		}
		*s = StepList(text)
		return nil
	}
	var steps []string
	if err := node.Decode(&steps); err != nil {
		return fmt.Errorf("steps must be a string or a list of strings")
	}
	*s = joinSteps(steps)
	return nil
}

func joinSteps(steps []string) StepList {
	lines := make([]string, 0, len(steps))
	for i, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}
	return StepList(strings.Join(lines, "\n"))
}

// RawRecipe represents recipe content parsed from a file before validation.
type RawRecipe struct {
	Title       string               `json:"title" yaml:"title"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Ingredients []entities.Ingredient `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Steps       StepList             `json:"steps" yaml:"steps"`
	Servings    int                  `json:"servings,omitempty" yaml:"servings,omitempty"`
	Category    string               `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        string               `json:"tags,omitempty" yaml:"tags,omitempty"`
	PrepTime    int                  `json:"prep_time,omitempty" yaml:"prep_time,omitempty"`
	CookTime    int                  `json:"cook_time,omitempty" yaml:"cook_time,omitempty"`
	Difficulty  string               `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// Snapshot converts the raw content into a normalized snapshot.
func (r RawRecipe) Snapshot() (entities.Snapshot, error) {
	switch entities.Difficulty(r.Difficulty) {
	case "", entities.DifficultyEasy, entities.DifficultyMedium, entities.DifficultyHard:
	default:
		return entities.Snapshot{}, fmt.Errorf("unknown difficulty %q", r.Difficulty)
	}

	s := entities.Snapshot{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Ingredients: r.Ingredients,
		Steps:       string(r.Steps),
		Servings:    r.Servings,
		Category:    r.Category,
		Tags:        r.Tags,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Difficulty:  entities.Difficulty(r.Difficulty),
	}
	s.Normalize()
	if !s.Valid() {
		return entities.Snapshot{}, entities.ErrInvalidSnapshot
	}
	return s, nil
}

// Parser defines the interface for parsing a recipe from a file format.
type Parser interface {
	Parse(r io.Reader) (RawRecipe, error)
}

// ForFile returns the appropriate parser based on file extension.
// Supported extensions: .json, .yaml, .yml.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".yaml", ".yml":
		return &YAMLParser{}
	default:
		return nil
	}
}
