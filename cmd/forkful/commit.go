package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var (
		file           string
		message        string
		ingredientsCSV string
	)

	cmd := &cobra.Command{
		Use:   "commit <recipe-id>",
		Short: "Commit a new version of a recipe",
		Long: `Records the file's content as a new immutable version of the recipe.
Identical content is rejected; the commit message is required.

Examples:
  forkful commit a1b2c3 --file tamales.json -m "Double the masa"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, args[0], file, message, ingredientsCSV)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Recipe file with the new content (.json, .yaml)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message describing the change")
	cmd.Flags().StringVar(&ingredientsCSV, "ingredients-csv", "", "CSV file overriding the ingredient list (name,quantity,unit)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func runCommit(cmd *cobra.Command, recipeID, file, message, ingredientsCSV string) error {
	ctx := cmd.Context()

	snapshot, err := loadSnapshotFile(file)
	if err != nil {
		return err
	}

	if ingredientsCSV != "" {
		ingredients, err := loadIngredientsCSV(ingredientsCSV)
		if err != nil {
			return err
		}
		snapshot.Ingredients = ingredients
	}

	return withDeps(ctx, func(d *Deps) error {
		userID, err := d.UserID()
		if err != nil {
			return err
		}

		version, err := d.CommitHandler.HandleCommit(ctx, recipeID, userID, message, snapshot)
		if err != nil {
			return fmt.Errorf("committing version: %w", err)
		}

		fmt.Printf("Committed version %d: %s\n", version.VersionNumber, version.CommitMessage)
		fmt.Printf("  ID: %s\n", version.ID)
		return nil
	})
}
