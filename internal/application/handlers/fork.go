package handlers

import (
	"context"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/services"
)

// ForkHandler handles fork creation and lineage queries.
type ForkHandler struct {
	forkService       *services.ForkService
	similarityService *services.SimilarityService
}

// NewForkHandler creates a new ForkHandler.
func NewForkHandler(forkService *services.ForkService, similarityService *services.SimilarityService) *ForkHandler {
	return &ForkHandler{
		forkService:       forkService,
		similarityService: similarityService,
	}
}

// HandleFork forks a recipe for the given user.
func (h *ForkHandler) HandleFork(ctx context.Context, originalRecipeID, userID, reason, branchName string) (*entities.Recipe, error) {
	forked, err := h.forkService.Fork(ctx, originalRecipeID, userID, reason, branchName)
	if err != nil {
		return nil, err
	}
	if h.similarityService != nil {
		_ = h.similarityService.Index(ctx, forked)
	}
	return forked, nil
}

// ForkTreeResult contains the transitive fork lineage of a recipe.
type ForkTreeResult struct {
	Nodes []entities.ForkTreeNode `json:"forks"`
	Total int                     `json:"total"`
}

// HandleTree returns the transitive fork lineage of a recipe.
func (h *ForkHandler) HandleTree(ctx context.Context, recipeID string) (*ForkTreeResult, error) {
	nodes, err := h.forkService.Tree(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &ForkTreeResult{
		Nodes: nodes,
		Total: len(nodes),
	}, nil
}

// HandleRoot resolves the root recipe of a fork network.
func (h *ForkHandler) HandleRoot(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	return h.forkService.Root(ctx, recipeID)
}

// ForkNetworkResult is a fork network seen from its root.
type ForkNetworkResult struct {
	Root  *entities.Recipe        `json:"root"`
	Nodes []entities.ForkTreeNode `json:"forks"`
	Total int                     `json:"total"`
}

// HandleNetwork resolves the whole fork network a recipe belongs to.
func (h *ForkHandler) HandleNetwork(ctx context.Context, recipeID string) (*ForkNetworkResult, error) {
	root, nodes, err := h.forkService.Network(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &ForkNetworkResult{
		Root:  root,
		Nodes: nodes,
		Total: len(nodes),
	}, nil
}
