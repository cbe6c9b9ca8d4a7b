package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/forkful/forkful-core/internal/application/handlers"
	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/services"
	"github.com/forkful/forkful-core/internal/infrastructure/config"
	embedder "github.com/forkful/forkful-core/internal/infrastructure/embedder/openai"
	"github.com/forkful/forkful-core/internal/infrastructure/relationaldb/sqlite"
	"github.com/forkful/forkful-core/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config             *config.Config
	RecipeHandler      *handlers.RecipeHandler
	CommitHandler      *handlers.CommitHandler
	BranchHandler      *handlers.BranchHandler
	ForkHandler        *handlers.ForkHandler
	ContributorHandler *handlers.ContributorHandler
	StatsHandler       *handlers.StatsHandler
	MergeHandler       *handlers.MergeHandler
	SimilarHandler     *handlers.SimilarHandler
}

// UserID returns the acting user's ID from the loaded config.
func (d *Deps) UserID() (string, error) {
	if d.Config.Identity.UserID == "" {
		return "", errors.New("no user identity configured (set identity.user_id in .forkful/config.yaml or FORKFUL_USER)")
	}
	return d.Config.Identity.UserID, nil
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically. The similarity stack is
// optional: when the embedder or vector database is unavailable the
// version-control commands still work and similarity indexing is skipped.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	basePath, err := kitchenPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	relationalDB, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	if err := relationalDB.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	if err := registerIdentity(ctx, relationalDB, cfg); err != nil {
		return fmt.Errorf("registering identity: %w", err)
	}

	var similarityService *services.SimilarityService
	var vectorRepo *qdrant.Repository
	if emb, err := embedder.NewEmbedder(cfg.Embedder); err == nil {
		vectorRepo, err = qdrant.NewRepository(cfg.Qdrant)
		if err != nil {
			return fmt.Errorf("creating qdrant repository: %w", err)
		}
		similarityService = services.NewSimilarityService(vectorRepo, emb)
	}
	if vectorRepo != nil {
		defer vectorRepo.Close()
	}

	recipeService := services.NewRecipeService(relationalDB)
	versionService := services.NewVersionService(relationalDB)

	deps := &Deps{
		Config:             cfg,
		RecipeHandler:      handlers.NewRecipeHandler(recipeService, similarityService),
		CommitHandler:      handlers.NewCommitHandler(recipeService, versionService, similarityService),
		BranchHandler:      handlers.NewBranchHandler(services.NewBranchService(relationalDB)),
		ForkHandler:        handlers.NewForkHandler(services.NewForkService(relationalDB), similarityService),
		ContributorHandler: handlers.NewContributorHandler(services.NewContributorService(relationalDB)),
		StatsHandler:       handlers.NewStatsHandler(services.NewStatsService(relationalDB)),
		MergeHandler:       handlers.NewMergeHandler(recipeService, services.NewMergeService(relationalDB), similarityService),
		SimilarHandler:     handlers.NewSimilarHandler(recipeService, similarityService),
	}

	return fn(deps)
}

// kitchenPath resolves the workspace directory: the --kitchen flag when
// set, otherwise the current directory.
func kitchenPath() (string, error) {
	if globalKitchen != "" {
		return globalKitchen, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// registerIdentity upserts the configured user's display snapshot so reads
// can join a username onto commits, forks and contributor rows.
func registerIdentity(ctx context.Context, db *sqlite.Repository, cfg *config.Config) error {
	if cfg.Identity.UserID == "" {
		return nil
	}
	username := cfg.Identity.Username
	if username == "" {
		username = cfg.Identity.UserID
	}
	return db.SaveUser(ctx, &entities.User{
		ID:       cfg.Identity.UserID,
		Username: username,
	})
}
