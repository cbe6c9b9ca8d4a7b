package services

import (
	"context"
	"testing"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForkService_Fork(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	original := seedRecipe(t, db, "user-1")
	svc := NewForkService(db)

	forked, err := svc.Fork(ctx, original.ID, "user-2", "Want a vegetarian take", "")

	require.NoError(t, err)
	assert.NotEqual(t, original.ID, forked.ID)
	assert.Equal(t, "user-2", forked.OwnerID)
	assert.True(t, forked.IsFork)
	assert.Equal(t, original.ID, forked.OriginalRecipeID)
	assert.Equal(t, original.Title, forked.Title)
	assert.Equal(t, 1, forked.VersionCount)
	assert.Equal(t, 0, forked.ForkCount)

	// The fork starts its own history at version 1.
	versions, err := db.FindVersionsByRecipe(ctx, forked.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "Initial fork", versions[0].CommitMessage)

	// The original's fork counter advanced.
	refreshed, err := db.FindRecipeByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.ForkCount)

	forkedBy, err := svc.IsForkedBy(ctx, original.ID, "user-2")
	require.NoError(t, err)
	assert.True(t, forkedBy)
}

func TestForkService_Fork_OncePerUser(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	original := seedRecipe(t, db, "user-1")
	svc := NewForkService(db)

	_, err := svc.Fork(ctx, original.ID, "user-2", "", "")
	require.NoError(t, err)

	_, err = svc.Fork(ctx, original.ID, "user-2", "", "")
	assert.ErrorIs(t, err, entities.ErrAlreadyForked)

	// A different user may still fork.
	_, err = svc.Fork(ctx, original.ID, "user-3", "", "")
	require.NoError(t, err)

	count, err := svc.Count(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestForkService_Fork_OriginalNotFound(t *testing.T) {
	db := mocks.NewRelationalDB()

	_, err := NewForkService(db).Fork(context.Background(), "missing", "user-2", "", "")

	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}

// Forks evolve independently: commits on a fork never touch the original.
func TestForkService_ForkIsolation(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	original := seedRecipe(t, db, "user-1")

	forked, err := NewForkService(db).Fork(ctx, original.ID, "user-2", "", "")
	require.NoError(t, err)

	content := forked.CurrentSnapshot()
	content.Servings = 8
	content.Title = "Tamales for a Crowd"
	_, err = NewVersionService(db).Commit(ctx, forked.ID, "user-2", "double everything", content)
	require.NoError(t, err)

	refreshedOriginal, err := db.FindRecipeByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tamales", refreshedOriginal.Title)
	assert.Equal(t, 4, refreshedOriginal.Servings)
	assert.Equal(t, 1, refreshedOriginal.VersionCount)

	refreshedFork, err := db.FindRecipeByID(ctx, forked.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, refreshedFork.Servings)
	assert.Equal(t, 2, refreshedFork.VersionCount)
}

func TestForkService_Tree(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	svc := NewForkService(db)

	// A -> B -> C, plus a second direct fork of A.
	a := seedRecipe(t, db, "user-1")
	b, err := svc.Fork(ctx, a.ID, "user-2", "", "")
	require.NoError(t, err)
	c, err := svc.Fork(ctx, b.ID, "user-3", "", "")
	require.NoError(t, err)
	d, err := svc.Fork(ctx, a.ID, "user-4", "", "")
	require.NoError(t, err)

	tree, err := svc.Tree(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, tree, 3)

	depths := map[string]int{}
	for _, node := range tree {
		depths[node.ForkedRecipeID] = node.Depth
	}
	assert.Equal(t, 1, depths[b.ID])
	assert.Equal(t, 1, depths[d.ID])
	assert.Equal(t, 2, depths[c.ID])

	// Depth ordering: direct forks precede grandchildren.
	assert.Equal(t, 2, tree[len(tree)-1].Depth)

	// The tree of a leaf is empty.
	leafTree, err := svc.Tree(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, leafTree)

	// A mid-chain recipe sees only its own descendants.
	bTree, err := svc.Tree(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, bTree, 1)
	assert.Equal(t, c.ID, bTree[0].ForkedRecipeID)
}

func TestForkService_Tree_RecipeNotFound(t *testing.T) {
	db := mocks.NewRelationalDB()

	_, err := NewForkService(db).Tree(context.Background(), "missing")

	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}

func TestForkService_Root(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	svc := NewForkService(db)

	a := seedRecipe(t, db, "user-1")
	b, err := svc.Fork(ctx, a.ID, "user-2", "", "")
	require.NoError(t, err)
	c, err := svc.Fork(ctx, b.ID, "user-3", "", "")
	require.NoError(t, err)

	root, err := svc.Root(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, root.ID)

	// A standalone recipe is its own root.
	root, err = svc.Root(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, root.ID)
}

func TestForkService_Network(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	svc := NewForkService(db)

	a := seedRecipe(t, db, "user-1")
	b, err := svc.Fork(ctx, a.ID, "user-2", "", "")
	require.NoError(t, err)
	c, err := svc.Fork(ctx, b.ID, "user-3", "", "")
	require.NoError(t, err)

	// From anywhere in the network, the view is the whole tree under the root.
	root, nodes, err := svc.Network(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, root.ID)
	require.Len(t, nodes, 2)
	assert.Equal(t, b.ID, nodes[0].ForkedRecipeID)
	assert.Equal(t, c.ID, nodes[1].ForkedRecipeID)
}

func TestForkService_Root_DeletedOriginal(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	svc := NewForkService(db)

	a := seedRecipe(t, db, "user-1")
	b, err := svc.Fork(ctx, a.ID, "user-2", "", "")
	require.NoError(t, err)
	c, err := svc.Fork(ctx, b.ID, "user-3", "", "")
	require.NoError(t, err)

	require.NoError(t, NewRecipeService(db).Delete(ctx, a.ID))

	// b was orphaned by the delete, so it becomes the reachable root.
	root, err := svc.Root(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, root.ID)
}

func TestForkService_Root_CycleDetection(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	svc := NewForkService(db)

	a := seedRecipe(t, db, "user-1")
	b, err := svc.Fork(ctx, a.ID, "user-2", "", "")
	require.NoError(t, err)

	// Corrupt the lineage into a cycle.
	db.Recipes[a.ID].OriginalRecipeID = b.ID

	_, err = svc.Root(ctx, b.ID)
	assert.ErrorIs(t, err, entities.ErrIntegrity)
}
