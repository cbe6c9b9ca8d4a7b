package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <recipe-id>",
		Short: "Delete a recipe",
		Long: `Deletes a recipe along with its versions, branches, contributors and
merge requests. Forks of the recipe survive but lose their lineage link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, recipeID string, force bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		recipe, err := d.RecipeHandler.HandleGet(ctx, recipeID)
		if err != nil {
			return fmt.Errorf("fetching recipe: %w", err)
		}

		if !force {
			prompt := fmt.Sprintf("Delete %q and its %d versions?", recipe.Title, recipe.VersionCount)
			if !confirmAction(prompt) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := d.RecipeHandler.HandleDelete(ctx, recipeID); err != nil {
			return fmt.Errorf("deleting recipe: %w", err)
		}
		fmt.Printf("Deleted recipe: %s\n", recipe.Title)
		return nil
	})
}

func confirmAction(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", prompt)
	response, _ := reader.ReadString('\n') // Error ignored: EOF/error treated as "no"
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
