package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

func newForksCmd() *cobra.Command {
	var (
		showRoot    bool
		showNetwork bool
	)

	cmd := &cobra.Command{
		Use:   "forks <recipe-id>",
		Short: "Show a recipe's fork lineage",
		Long: `Shows the transitive fork tree below a recipe, ordered by depth. With
--root, resolves the root of the fork network the recipe belongs to
instead; with --network, shows the whole network from its root.

Examples:
  forkful forks a1b2c3
  forkful forks a1b2c3 --root
  forkful forks a1b2c3 --network`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForks(cmd, args[0], showRoot, showNetwork)
		},
	}

	cmd.Flags().BoolVar(&showRoot, "root", false, "Resolve the fork network's root recipe")
	cmd.Flags().BoolVar(&showNetwork, "network", false, "Show the whole fork network from its root")

	return cmd
}

func runForks(cmd *cobra.Command, recipeID string, showRoot, showNetwork bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if showNetwork {
			network, err := d.ForkHandler.HandleNetwork(ctx, recipeID)
			if err != nil {
				return fmt.Errorf("fetching fork network: %w", err)
			}
			fmt.Printf("%s (%s)\n", network.Root.Title, network.Root.ID)
			for _, node := range network.Nodes {
				displayForkNode(node)
			}
			return nil
		}

		if showRoot {
			root, err := d.ForkHandler.HandleRoot(ctx, recipeID)
			if err != nil {
				return fmt.Errorf("resolving root: %w", err)
			}
			fmt.Printf("Root: %s (%s)\n", root.Title, root.ID)
			return nil
		}

		result, err := d.ForkHandler.HandleTree(ctx, recipeID)
		if err != nil {
			return fmt.Errorf("fetching fork tree: %w", err)
		}

		if result.Total == 0 {
			fmt.Println("No forks found.")
			return nil
		}

		fmt.Printf("%d forks:\n\n", result.Total)
		for _, node := range result.Nodes {
			displayForkNode(node)
		}
		return nil
	})
}

func displayForkNode(node entities.ForkTreeNode) {
	indent := strings.Repeat("  ", node.Depth-1)
	by := ""
	if node.ForkedBy != nil {
		by = " by " + node.ForkedBy.Username
	}
	fmt.Printf("%s+- %s (%s)%s\n", indent, node.Title, node.ForkedRecipeID, by)
}
