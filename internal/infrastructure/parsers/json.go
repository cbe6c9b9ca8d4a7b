package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses a recipe from JSON format.
type JSONParser struct{}

// Parse reads JSON from the reader and returns the parsed recipe.
func (p *JSONParser) Parse(r io.Reader) (RawRecipe, error) {
	var recipe RawRecipe

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&recipe); err != nil {
		return RawRecipe{}, fmt.Errorf("parsing JSON: %w", err)
	}

	return recipe, nil
}
