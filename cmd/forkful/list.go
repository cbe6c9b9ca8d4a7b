package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

func newListCmd() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Long:  "Lists recipes newest first with pagination.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, limit, offset)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of recipes to display")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of recipes to skip")

	return cmd
}

func runList(cmd *cobra.Command, limit, offset int) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.RecipeHandler.HandleList(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("listing recipes: %w", err)
		}

		if len(result.Recipes) == 0 {
			fmt.Println("No recipes found.")
			return nil
		}

		fmt.Printf("Showing %d recipes:\n\n", len(result.Recipes))
		for _, recipe := range result.Recipes {
			displayRecipeLine(recipe)
		}
		return nil
	})
}

func displayRecipeLine(recipe *entities.Recipe) {
	fmt.Printf("ID: %s\n", recipe.ID)
	fmt.Printf("  %s (%s, serves %d)\n", recipe.Title, recipe.Difficulty, recipe.Servings)
	if recipe.IsFork {
		fmt.Printf("  Forked from: %s\n", recipe.OriginalRecipeID)
	}
	fmt.Printf("  Versions: %d  Forks: %d\n", recipe.VersionCount, recipe.ForkCount)
	fmt.Println()
}
