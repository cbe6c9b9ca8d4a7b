package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/infrastructure/parsers"
)

func newCreateCmd() *cobra.Command {
	var (
		file           string
		ingredientsCSV string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipe from a file",
		Long: `Creates a recipe repository from a JSON or YAML recipe file. The first
version and the default branch are created along with it.

Examples:
  forkful create --file tamales.json
  forkful create --file tamales.yaml --ingredients-csv pantry.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, file, ingredientsCSV)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Recipe file to create from (.json, .yaml)")
	cmd.Flags().StringVar(&ingredientsCSV, "ingredients-csv", "", "CSV file overriding the ingredient list (name,quantity,unit)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runCreate(cmd *cobra.Command, file, ingredientsCSV string) error {
	ctx := cmd.Context()

	snapshot, err := loadSnapshotFile(file)
	if err != nil {
		return err
	}

	if ingredientsCSV != "" {
		ingredients, err := loadIngredientsCSV(ingredientsCSV)
		if err != nil {
			return err
		}
		snapshot.Ingredients = ingredients
	}

	return withDeps(ctx, func(d *Deps) error {
		userID, err := d.UserID()
		if err != nil {
			return err
		}

		recipe, err := d.RecipeHandler.HandleCreate(ctx, userID, snapshot)
		if err != nil {
			return fmt.Errorf("creating recipe: %w", err)
		}

		fmt.Printf("Created recipe: %s\n", recipe.Title)
		fmt.Printf("  ID: %s\n", recipe.ID)
		fmt.Printf("  Version: %d\n", recipe.VersionCount)
		return nil
	})
}

// loadSnapshotFile parses a recipe file into a snapshot based on its
// extension.
func loadSnapshotFile(path string) (entities.Snapshot, error) {
	parser := parsers.ForFile(path)
	if parser == nil {
		return entities.Snapshot{}, fmt.Errorf("unsupported recipe file format: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return entities.Snapshot{}, fmt.Errorf("opening recipe file: %w", err)
	}
	defer f.Close()

	raw, err := parser.Parse(f)
	if err != nil {
		return entities.Snapshot{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return raw.Snapshot()
}

// loadIngredientsCSV parses an ingredient list from a CSV file.
func loadIngredientsCSV(path string) ([]entities.Ingredient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ingredients file: %w", err)
	}
	defer f.Close()

	ingredients, err := parsers.ParseIngredientsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ingredients, nil
}
