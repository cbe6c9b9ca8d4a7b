package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-core/internal/domain/services"
)

func newCompareCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare <base-recipe-id> <compare-recipe-id>",
		Short: "Compare two recipes' current states",
		Long: `Compares the current snapshots of two recipes field by field, for
example an original and one of its forks.

Examples:
  forkful compare a1b2c3 d4e5f6 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json")

	return cmd
}

func runCompare(cmd *cobra.Command, baseID, compareID, format string) error {
	ctx := cmd.Context()

	if !isValidFormat(format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", format, validFormats)
	}

	return withDeps(ctx, func(d *Deps) error {
		comparison, err := d.StatsHandler.HandleCompare(ctx, baseID, compareID)
		if err != nil {
			return fmt.Errorf("comparing recipes: %w", err)
		}

		if format == "json" {
			return printJSON(comparison)
		}

		fmt.Printf("%s vs %s\n\n", comparison.Base.Title, comparison.Compare.Title)
		if !comparison.HasChanges {
			fmt.Println("No differences.")
			return nil
		}
		displayDifferences(comparison.Differences)
		return nil
	})
}

func displayDifferences(diff services.Differences) {
	printValueDiff := func(name string, d *services.ValueDiff) {
		if d != nil {
			fmt.Printf("  %-12s %v -> %v\n", name+":", d.Base, d.Compare)
		}
	}

	printValueDiff("Title", diff.Title)
	printValueDiff("Description", diff.Description)
	printValueDiff("Category", diff.Category)
	printValueDiff("Tags", diff.Tags)
	printValueDiff("Servings", diff.Servings)
	printValueDiff("Prep time", diff.PrepTime)
	printValueDiff("Cook time", diff.CookTime)
	printValueDiff("Difficulty", diff.Difficulty)

	if diff.Ingredients != nil {
		fmt.Printf("  %-12s %d -> %d items\n", "Ingredients:", diff.Ingredients.BaseCount, diff.Ingredients.CompareCount)
	}
	if diff.Steps != nil && diff.Steps.Changed {
		fmt.Printf("  %-12s changed (%d -> %d chars)\n", "Steps:", diff.Steps.BaseLength, diff.Steps.CompareLength)
	}
}
