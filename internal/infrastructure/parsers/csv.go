package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

// ParseIngredientsCSV parses an ingredient list from CSV.
// Expected columns: name, quantity, unit (name is required).
func ParseIngredientsCSV(r io.Reader) ([]entities.Ingredient, error) {
	reader := csv.NewReader(r)

	colIndex, err := readIngredientHeader(reader)
	if err != nil {
		return nil, err
	}

	var ingredients []entities.Ingredient
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		ingredient, err := parseIngredientRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// readIngredientHeader reads and validates the CSV header row.
func readIngredientHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	if _, ok := colIndex["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}

	return colIndex, nil
}

// parseIngredientRecord converts a CSV record to an Ingredient.
func parseIngredientRecord(record []string, colIndex map[string]int, lineNum int) (entities.Ingredient, error) {
	ingredient := entities.Ingredient{
		Name: getColumn(record, colIndex, "name"),
		Unit: getColumn(record, colIndex, "unit"),
	}
	if ingredient.Name == "" {
		return entities.Ingredient{}, fmt.Errorf("line %d: ingredient name is required", lineNum)
	}

	quantityStr := getColumn(record, colIndex, "quantity")
	if quantityStr != "" {
		quantity, err := strconv.ParseFloat(quantityStr, 64)
		if err != nil {
			return entities.Ingredient{}, fmt.Errorf("line %d: invalid quantity value %q: %w", lineNum, quantityStr, err)
		}
		ingredient.Quantity = quantity
	}

	return ingredient, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
