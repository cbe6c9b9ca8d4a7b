// Package main provides the entry point for the forkful CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalKitchen string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "forkful",
		Short:   "Version control for recipes: commit, branch, fork and merge",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&globalKitchen, "kitchen", "k", "", "Workspace directory to operate on (defaults to the current directory)")

	rootCmd.AddCommand(
		newInitCmd(),
		newCreateCmd(),
		newListCmd(),
		newShowCmd(),
		newCommitCmd(),
		newLogCmd(),
		newBranchCmd(),
		newForkCmd(),
		newForksCmd(),
		newContributorsCmd(),
		newStatsCmd(),
		newCompareCmd(),
		newRequestCmd(),
		newSimilarCmd(),
		newDeleteCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
