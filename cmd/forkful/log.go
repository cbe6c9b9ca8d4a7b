package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

func newLogCmd() *cobra.Command {
	var (
		limit     int
		offset    int
		versionID string
	)

	cmd := &cobra.Command{
		Use:   "log <recipe-id>",
		Short: "Show a recipe's commit history",
		Long: `Shows a recipe's commits newest first. Use --version to display one
commit in full, including its snapshot.

Examples:
  forkful log a1b2c3
  forkful log a1b2c3 --limit 5 --offset 5
  forkful log a1b2c3 --version d4e5f6`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, args[0], limit, offset, versionID)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultHistoryLimit, "Maximum number of commits to display")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of commits to skip")
	cmd.Flags().StringVar(&versionID, "version", "", "Show a single commit in full")

	return cmd
}

func runLog(cmd *cobra.Command, recipeID string, limit, offset int, versionID string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if versionID != "" {
			version, err := d.CommitHandler.HandleShow(ctx, versionID)
			if err != nil {
				return fmt.Errorf("fetching version: %w", err)
			}
			return printJSON(version)
		}

		result, err := d.CommitHandler.HandleHistory(ctx, recipeID, limit, offset)
		if err != nil {
			return fmt.Errorf("fetching history: %w", err)
		}

		if len(result.Versions) == 0 {
			fmt.Println("No commits in this range.")
			return nil
		}

		fmt.Printf("Showing %d of %d commits:\n\n", len(result.Versions), result.Total)
		for _, version := range result.Versions {
			displayVersion(version)
		}
		return nil
	})
}

func displayVersion(version entities.RecipeVersion) {
	fmt.Printf("version %d  %s\n", version.VersionNumber, version.ID)
	author := version.AuthorID
	if version.Author != nil {
		author = version.Author.Username
	}
	fmt.Printf("Author: %s\n", author)
	fmt.Printf("Date:   %s\n", version.CreatedAt.Format("Mon Jan 2 15:04:05 2006"))
	fmt.Printf("\n    %s\n", version.CommitMessage)
	if !version.Changes.Empty() {
		fmt.Printf("\n    Changed: %s\n", changedFields(version.Changes))
	}
	fmt.Println()
}

// changedFields renders a change descriptor as a stable, readable list.
func changedFields(changes entities.ChangeDescriptor) string {
	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := ""
	for i, field := range fields {
		if i > 0 {
			out += ", "
		}
		change := changes[field]
		if change.Collapsed() {
			out += field
		} else {
			out += fmt.Sprintf("%s (%v -> %v)", field, change.From, change.To)
		}
	}
	return out
}
