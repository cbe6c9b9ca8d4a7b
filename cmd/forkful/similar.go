package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSimilarCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "similar <recipe-id>",
		Short: "Find recipes similar to the given one",
		Long:  "Searches the similarity index for recipes close to the given one. Requires the embedder and Qdrant to be configured.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimilar(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSimilarLimit, "Maximum number of results")

	return cmd
}

func runSimilar(cmd *cobra.Command, recipeID string, limit int) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		results, err := d.SimilarHandler.HandleSimilar(ctx, recipeID, limit)
		if err != nil {
			return fmt.Errorf("searching similar recipes: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No similar recipes found.")
			return nil
		}

		for _, hit := range results {
			fmt.Printf("%.3f  %s  %s\n", hit.Score, hit.RecipeID, hit.Title)
		}
		return nil
	})
}
