package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newForkCmd() *cobra.Command {
	var (
		reason     string
		branchName string
	)

	cmd := &cobra.Command{
		Use:   "fork <recipe-id>",
		Short: "Fork a recipe",
		Long: `Creates an independent copy of a recipe owned by you, linked back to
its origin. Each user can fork a given recipe once.

Examples:
  forkful fork a1b2c3 --reason "Vegetarian version"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFork(cmd, args[0], reason, branchName)
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Why you are forking")
	cmd.Flags().StringVarP(&branchName, "branch", "b", "", "Name for the fork's default branch")

	return cmd
}

func runFork(cmd *cobra.Command, recipeID, reason, branchName string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		userID, err := d.UserID()
		if err != nil {
			return err
		}

		forked, err := d.ForkHandler.HandleFork(ctx, recipeID, userID, reason, branchName)
		if err != nil {
			return fmt.Errorf("forking recipe: %w", err)
		}

		fmt.Printf("Forked %s\n", forked.Title)
		fmt.Printf("  New recipe ID: %s\n", forked.ID)
		fmt.Printf("  Forked from: %s\n", forked.OriginalRecipeID)
		return nil
	})
}
