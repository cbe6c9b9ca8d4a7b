package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats <recipe-id>",
		Short: "Show a recipe's repository statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json")

	return cmd
}

func runStats(cmd *cobra.Command, recipeID, format string) error {
	ctx := cmd.Context()

	if !isValidFormat(format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", format, validFormats)
	}

	return withDeps(ctx, func(d *Deps) error {
		stats, err := d.StatsHandler.HandleStats(ctx, recipeID)
		if err != nil {
			return fmt.Errorf("fetching stats: %w", err)
		}

		if format == "json" {
			return printJSON(stats)
		}

		fmt.Printf("%s\n", stats.Title)
		fmt.Printf("  Versions:     %d\n", stats.Versions)
		fmt.Printf("  Branches:     %d\n", stats.Branches)
		fmt.Printf("  Forks:        %d\n", stats.Forks)
		fmt.Printf("  Contributors: %d\n", stats.Contributors)
		if stats.IsFork {
			fmt.Printf("  Forked from:  %s\n", stats.OriginalRecipeID)
		}
		if stats.LatestCommit != nil {
			fmt.Printf("  Latest commit: v%d %q\n", stats.LatestCommit.VersionNumber, stats.LatestCommit.CommitMessage)
		}
		return nil
	})
}
