package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
)

// maxForkDepth bounds fork tree traversal. The schema makes lineage cycles
// impossible; the cap guards traversal against corrupt data anyway.
const maxForkDepth = 16

// ForkService manages fork creation and lineage queries.
type ForkService struct {
	relationalDB ports.RelationalDB
}

// NewForkService creates a new ForkService.
func NewForkService(relationalDB ports.RelationalDB) *ForkService {
	return &ForkService{
		relationalDB: relationalDB,
	}
}

// Fork creates an independent copy of a recipe owned by the given user,
// linked back to its origin. The store performs the whole sequence (recipe
// copy, seed version, default branch, fork edge, forker contributor, fork
// counter) in one transaction; a failure leaves no partial fork.
func (s *ForkService) Fork(ctx context.Context, originalRecipeID, userID, reason, branchName string) (*entities.Recipe, error) {
	forked, err := s.relationalDB.CreateFork(ctx, ports.ForkParams{
		OriginalRecipeID: originalRecipeID,
		UserID:           userID,
		Reason:           reason,
		BranchName:       branchName,
	})
	if err != nil {
		return nil, fmt.Errorf("forking recipe: %w", err)
	}
	// Best-effort: a lost audit row never fails the fork.
	_ = s.relationalDB.LogAction(ctx, "recipe_forked", originalRecipeID, map[string]any{
		"forked_recipe_id": forked.ID,
		"forked_by":        userID,
	})
	return forked, nil
}

// Tree returns the transitive fork lineage of a recipe, breadth-first over
// the adjacency list of fork edges. Nodes are ordered by depth, then newest
// first within a depth. A recipe with no forks yields an empty slice.
func (s *ForkService) Tree(ctx context.Context, recipeID string) ([]entities.ForkTreeNode, error) {
	if _, err := s.relationalDB.FindRecipeByID(ctx, recipeID); err != nil {
		return nil, err
	}

	nodes := make([]entities.ForkTreeNode, 0, 8)
	visited := map[string]bool{recipeID: true}
	frontier := []string{recipeID}

	for depth := 1; depth <= maxForkDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			edges, err := s.relationalDB.ListForksByOriginal(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("listing forks of %s: %w", id, err)
			}
			for _, edge := range edges {
				if visited[edge.ForkedRecipeID] {
					// Corrupt lineage; skip rather than loop.
					continue
				}
				visited[edge.ForkedRecipeID] = true
				nodes = append(nodes, entities.ForkTreeNode{
					ForkID:         edge.ID,
					ForkedRecipeID: edge.ForkedRecipeID,
					Title:          edge.ForkedTitle,
					ForkedBy:       edge.ForkedBy,
					Depth:          depth,
					CreatedAt:      edge.CreatedAt,
				})
				next = append(next, edge.ForkedRecipeID)
			}
		}
		frontier = next
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Depth != nodes[j].Depth {
			return nodes[i].Depth < nodes[j].Depth
		}
		return nodes[i].CreatedAt.After(nodes[j].CreatedAt)
	})
	return nodes, nil
}

// Root resolves the root of a recipe's fork network by walking the lineage
// pointers upward. A standalone recipe is its own root.
func (s *ForkService) Root(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	recipe, err := s.relationalDB.FindRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{recipe.ID: true}
	for recipe.OriginalRecipeID != "" {
		parent, err := s.relationalDB.FindRecipeByID(ctx, recipe.OriginalRecipeID)
		if err != nil {
			// The original was deleted; this recipe is the reachable root.
			break
		}
		if seen[parent.ID] {
			return nil, fmt.Errorf("fork lineage of %s contains a cycle: %w", recipeID, entities.ErrIntegrity)
		}
		seen[parent.ID] = true
		recipe = parent
	}
	return recipe, nil
}

// Network resolves the root of a recipe's fork network and returns the
// full tree below the root, regardless of where in the network the given
// recipe sits.
func (s *ForkService) Network(ctx context.Context, recipeID string) (*entities.Recipe, []entities.ForkTreeNode, error) {
	root, err := s.Root(ctx, recipeID)
	if err != nil {
		return nil, nil, err
	}
	nodes, err := s.Tree(ctx, root.ID)
	if err != nil {
		return nil, nil, err
	}
	return root, nodes, nil
}

// IsForkedBy reports whether the user already forked the original.
func (s *ForkService) IsForkedBy(ctx context.Context, originalRecipeID, userID string) (bool, error) {
	fork, err := s.relationalDB.FindForkByUser(ctx, originalRecipeID, userID)
	if err != nil {
		return false, err
	}
	return fork != nil, nil
}

// Count counts a recipe's direct forks.
func (s *ForkService) Count(ctx context.Context, originalRecipeID string) (int, error) {
	return s.relationalDB.CountForks(ctx, originalRecipeID)
}
