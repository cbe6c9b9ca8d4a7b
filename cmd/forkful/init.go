package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-core/internal/application/handlers"
	"github.com/forkful/forkful-core/internal/domain/ports"
	"github.com/forkful/forkful-core/internal/infrastructure/config"
	"github.com/forkful/forkful-core/internal/infrastructure/relationaldb/sqlite"
	"github.com/forkful/forkful-core/internal/infrastructure/vectordb/qdrant"
)

func newInitCmd() *cobra.Command {
	var (
		userID         string
		username       string
		skipSimilarity bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new forkful workspace",
		Long:  "Creates a .forkful directory with default configuration, the SQLite schema and the Qdrant collection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, userID, username, skipSimilarity)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "User ID to commit, fork and merge as")
	cmd.Flags().StringVar(&username, "username", "", "Display name shown in history and contributor lists")
	cmd.Flags().BoolVar(&skipSimilarity, "skip-similarity", false, "Skip creating the Qdrant collection")

	return cmd
}

func runInit(cmd *cobra.Command, userID, username string, skipSimilarity bool) error {
	ctx := cmd.Context()

	cwd, err := kitchenPath()
	if err != nil {
		return err
	}

	if config.Exists(cwd) {
		return fmt.Errorf("forkful already initialized in %s", cwd)
	}

	// The database file lives inside the config directory, so the directory
	// must exist before the sqlite driver touches it.
	if err := os.MkdirAll(config.ConfigDir(cwd), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{Path: config.DatabasePath(cwd)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	var collectionManager ports.CollectionManager
	if !skipSimilarity {
		vectorRepo, err := qdrant.NewRepository(config.Default(cwd).Qdrant)
		if err != nil {
			return fmt.Errorf("connecting to qdrant: %w", err)
		}
		defer vectorRepo.Close()
		collectionManager = vectorRepo
	}

	initHandler := handlers.NewInitHandler(relationalDB, collectionManager)
	result, err := initHandler.Handle(ctx, cwd, userID, username)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	fmt.Printf("Created SQLite database: %s\n", result.DatabasePath)
	if !skipSimilarity {
		fmt.Printf("Created Qdrant collection: %s\n", result.CollectionName)
	}
	fmt.Println("Forkful initialized successfully!")

	return nil
}
