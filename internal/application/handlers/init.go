// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/forkful/forkful-core/internal/domain/ports"
	"github.com/forkful/forkful-core/internal/infrastructure/config"
	embedder "github.com/forkful/forkful-core/internal/infrastructure/embedder/openai"
)

// InitHandler handles workspace initialization.
type InitHandler struct {
	relationalDB      ports.RelationalDB
	collectionManager ports.CollectionManager
}

// NewInitHandler creates a new init handler. The collection manager may be
// nil when no vector database is configured; the similarity index is
// optional and the version history never depends on it.
func NewInitHandler(relationalDB ports.RelationalDB, collectionManager ports.CollectionManager) *InitHandler {
	return &InitHandler{
		relationalDB:      relationalDB,
		collectionManager: collectionManager,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath     string
	DatabasePath   string
	CollectionName string
}

// Handle initializes the forkful workspace: it writes the default config,
// creates the relational schema and ensures the vector collection.
func (h *InitHandler) Handle(ctx context.Context, basePath, userID, username string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("forkful already initialized in %s", basePath)
	}

	cfg := config.Default(basePath)
	cfg.Identity.UserID = userID
	cfg.Identity.Username = username
	if err := cfg.Save(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	if h.relationalDB != nil {
		if err := h.relationalDB.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	if h.collectionManager != nil {
		if err := h.collectionManager.EnsureCollection(ctx, embedder.VectorSize); err != nil {
			return nil, fmt.Errorf("creating collection: %w", err)
		}
	}

	return &InitResult{
		ConfigPath:     config.ConfigFilePath(basePath),
		DatabasePath:   cfg.SQLite.Path,
		CollectionName: cfg.Qdrant.Collection,
	}, nil
}
