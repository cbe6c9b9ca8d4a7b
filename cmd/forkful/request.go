package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

func newRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Manage merge requests",
		Long:  "Opens, lists and resolves merge requests between recipes and branches.",
	}

	cmd.AddCommand(
		newRequestOpenCmd(),
		newRequestListCmd(),
		newRequestMergeCmd(),
		newRequestCloseCmd(),
		newRequestRejectCmd(),
	)

	return cmd
}

func newRequestOpenCmd() *cobra.Command {
	var (
		sourceBranch string
		targetBranch string
		title        string
		description  string
	)

	cmd := &cobra.Command{
		Use:   "open <source-recipe-id> <target-recipe-id>",
		Short: "Open a merge request",
		Long: `Proposes integrating a source recipe's branch into a target recipe's
branch, typically from a fork back into its original.

Examples:
  forkful request open d4e5f6 a1b2c3 --title "Less salt"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				userID, err := d.UserID()
				if err != nil {
					return err
				}
				mr, err := d.MergeHandler.HandleOpen(ctx, args[0], sourceBranch, args[1], targetBranch, title, description, userID)
				if err != nil {
					return fmt.Errorf("opening merge request: %w", err)
				}
				fmt.Printf("Opened merge request: %s\n", mr.Title)
				fmt.Printf("  ID: %s\n", mr.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sourceBranch, "source-branch", "main", "Source branch name")
	cmd.Flags().StringVar(&targetBranch, "target-branch", "main", "Target branch name")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Merge request title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Merge request description")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newRequestListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <target-recipe-id>",
		Short: "List merge requests targeting a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				requests, err := d.MergeHandler.HandleList(ctx, args[0])
				if err != nil {
					return fmt.Errorf("listing merge requests: %w", err)
				}
				if len(requests) == 0 {
					fmt.Println("No merge requests found.")
					return nil
				}
				for _, mr := range requests {
					displayMergeRequest(mr)
				}
				return nil
			})
		},
	}
}

func newRequestMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <request-id>",
		Short: "Merge an open merge request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				userID, err := d.UserID()
				if err != nil {
					return err
				}
				mr, err := d.MergeHandler.HandleMerge(ctx, args[0], userID)
				if err != nil {
					return fmt.Errorf("merging: %w", err)
				}
				fmt.Printf("Merged %q into recipe %s\n", mr.Title, mr.TargetRecipeID)
				return nil
			})
		},
	}
}

func newRequestCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <request-id>",
		Short: "Close an open merge request without merging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				userID, err := d.UserID()
				if err != nil {
					return err
				}
				if err := d.MergeHandler.HandleClose(ctx, args[0], userID); err != nil {
					return fmt.Errorf("closing merge request: %w", err)
				}
				fmt.Println("Merge request closed.")
				return nil
			})
		},
	}
}

func newRequestRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <request-id>",
		Short: "Reject an open merge request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				userID, err := d.UserID()
				if err != nil {
					return err
				}
				if err := d.MergeHandler.HandleReject(ctx, args[0], userID); err != nil {
					return fmt.Errorf("rejecting merge request: %w", err)
				}
				fmt.Println("Merge request rejected.")
				return nil
			})
		},
	}
}

func displayMergeRequest(mr entities.MergeRequest) {
	fmt.Printf("ID: %s  [%s]\n", mr.ID, mr.State)
	fmt.Printf("  %s\n", mr.Title)
	fmt.Printf("  %s/%s -> %s/%s\n", mr.SourceRecipeID, mr.SourceBranch, mr.TargetRecipeID, mr.TargetBranch)
	if mr.ResolvedBy != "" {
		fmt.Printf("  Resolved by: %s\n", mr.ResolvedBy)
	}
	fmt.Println()
}
