package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Manage recipe branches",
	}

	cmd.AddCommand(
		newBranchCreateCmd(),
		newBranchListCmd(),
		newBranchDefaultCmd(),
		newBranchDeleteCmd(),
	)

	return cmd
}

func newBranchCreateCmd() *cobra.Command {
	var (
		description string
		baseVersion string
	)

	cmd := &cobra.Command{
		Use:   "create <recipe-id> <name>",
		Short: "Create a branch on a recipe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				userID, err := d.UserID()
				if err != nil {
					return err
				}
				branch, err := d.BranchHandler.HandleCreate(ctx, args[0], args[1], userID, description, baseVersion)
				if err != nil {
					return fmt.Errorf("creating branch: %w", err)
				}
				fmt.Printf("Created branch %s (%s)\n", branch.Name, branch.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Branch description")
	cmd.Flags().StringVar(&baseVersion, "base", "", "Version ID the branch starts from (defaults to the latest)")

	return cmd
}

func newBranchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <recipe-id>",
		Short: "List a recipe's active branches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				branches, err := d.BranchHandler.HandleList(ctx, args[0])
				if err != nil {
					return fmt.Errorf("listing branches: %w", err)
				}
				if len(branches) == 0 {
					fmt.Println("No branches found.")
					return nil
				}
				for _, branch := range branches {
					marker := " "
					if branch.IsDefault {
						marker = "*"
					}
					fmt.Printf("%s %s  %s\n", marker, branch.Name, branch.ID)
					if branch.Description != "" {
						fmt.Printf("    %s\n", branch.Description)
					}
				}
				return nil
			})
		},
	}
}

func newBranchDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default <recipe-id> <branch-id>",
		Short: "Make a branch the recipe's default",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				if err := d.BranchHandler.HandleSetDefault(ctx, args[0], args[1]); err != nil {
					return fmt.Errorf("setting default branch: %w", err)
				}
				fmt.Println("Default branch updated.")
				return nil
			})
		},
	}
}

func newBranchDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <recipe-id> <branch-id>",
		Short: "Deactivate a non-default branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				if err := d.BranchHandler.HandleDeactivate(ctx, args[0], args[1]); err != nil {
					return fmt.Errorf("deleting branch: %w", err)
				}
				fmt.Println("Branch deactivated.")
				return nil
			})
		},
	}
}
