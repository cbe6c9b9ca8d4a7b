package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newContributorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contributors <recipe-id>",
		Short: "List a recipe's contributors",
		Long:  "Lists everyone who created, committed to, forked or merged into the recipe, most active first.",
		Args:  cobra.ExactArgs(1),
		RunE:  runContributors,
	}
}

func runContributors(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.ContributorHandler.HandleList(ctx, args[0])
		if err != nil {
			return fmt.Errorf("listing contributors: %w", err)
		}

		if result.Total == 0 {
			fmt.Println("No contributors found.")
			return nil
		}

		fmt.Printf("%d contributors:\n\n", result.Total)
		for _, c := range result.Contributors {
			name := c.ContributorID
			if c.User != nil {
				name = c.User.Username
			}
			fmt.Printf("%s  [%s]  %d commits\n", name, c.ContributionType, c.CommitCount)
		}
		return nil
	})
}
