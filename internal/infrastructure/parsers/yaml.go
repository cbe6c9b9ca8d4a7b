package parsers

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses a recipe from YAML format.
type YAMLParser struct{}

// Parse reads YAML from the reader and returns the parsed recipe.
func (p *YAMLParser) Parse(r io.Reader) (RawRecipe, error) {
	var recipe RawRecipe

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&recipe); err != nil {
		return RawRecipe{}, fmt.Errorf("parsing YAML: %w", err)
	}

	return recipe, nil
}
