package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

func newShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <recipe-id>",
		Short: "Show a recipe's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json")

	return cmd
}

func runShow(cmd *cobra.Command, recipeID, format string) error {
	ctx := cmd.Context()

	if !isValidFormat(format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", format, validFormats)
	}

	return withDeps(ctx, func(d *Deps) error {
		recipe, err := d.RecipeHandler.HandleGet(ctx, recipeID)
		if err != nil {
			return fmt.Errorf("fetching recipe: %w", err)
		}

		if format == "json" {
			return printJSON(recipe)
		}

		displayRecipe(recipe)
		return nil
	})
}

func displayRecipe(recipe *entities.Recipe) {
	fmt.Printf("%s\n", recipe.Title)
	if recipe.Description != "" {
		fmt.Printf("%s\n", recipe.Description)
	}
	fmt.Println()
	fmt.Printf("ID: %s\n", recipe.ID)
	fmt.Printf("Owner: %s\n", recipe.OwnerID)
	fmt.Printf("Category: %s  Difficulty: %s  Serves: %d\n", recipe.Category, recipe.Difficulty, recipe.Servings)
	if recipe.PrepTime > 0 || recipe.CookTime > 0 {
		fmt.Printf("Prep: %d min  Cook: %d min\n", recipe.PrepTime, recipe.CookTime)
	}
	if recipe.IsFork {
		fmt.Printf("Forked from: %s\n", recipe.OriginalRecipeID)
	}
	fmt.Printf("Versions: %d  Forks: %d\n", recipe.VersionCount, recipe.ForkCount)

	fmt.Println("\nIngredients:")
	for _, ing := range recipe.Ingredients {
		displayIngredient(ing)
	}

	fmt.Println("\nSteps:")
	fmt.Println(recipe.Steps)
}

func displayIngredient(ing entities.Ingredient) {
	switch {
	case ing.Quantity > 0 && ing.Unit != "":
		fmt.Printf("  - %g %s %s\n", ing.Quantity, ing.Unit, ing.Name)
	case ing.Quantity > 0:
		fmt.Printf("  - %g %s\n", ing.Quantity, ing.Name)
	default:
		fmt.Printf("  - %s\n", ing.Name)
	}
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
