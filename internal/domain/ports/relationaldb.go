package ports

import (
	"context"
	"time"

	"github.com/forkful/forkful-core/internal/domain/entities"
)

// CommitParams carries everything needed to append one commit to a recipe's
// history. The store allocates the version number and links the parent.
type CommitParams struct {
	RecipeID string
	AuthorID string
	Message  string
	Changes  entities.ChangeDescriptor
	Snapshot entities.Snapshot
	// Type is the contribution type recorded for the author; defaults to
	// editor when empty.
	Type entities.ContributionType
}

// ForkParams describes a fork of an original recipe by a user.
type ForkParams struct {
	OriginalRecipeID string
	UserID           string
	Reason           string
	BranchName       string // defaults to entities.DefaultBranchName when empty
}

// RelationalDB is the single source of truth for the version-control
// engine. Implementations must make every mutating method all-or-nothing:
// a failure rolls back fully and no partial state is ever visible. Writes
// to the same recipe serialize; reads may be stale by one commit.
type RelationalDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// User operations (identity snapshots for display joins)

	// SaveUser inserts or updates a user's display snapshot.
	SaveUser(ctx context.Context, user *entities.User) error

	// FindUserByID finds a user by ID. Returns ErrUserNotFound.
	FindUserByID(ctx context.Context, id string) (*entities.User, error)

	// Recipe operations

	// CreateRecipe atomically seeds a new recipe repository: the recipe row,
	// version 1 carrying the given commit message, the default branch, and a
	// creator contributor row.
	CreateRecipe(ctx context.Context, recipe *entities.Recipe, commitMessage string) error

	// FindRecipeByID finds a recipe by ID. Returns ErrRecipeNotFound.
	FindRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)

	// ListRecipes lists recipes with pagination, newest first.
	ListRecipes(ctx context.Context, limit, offset int) ([]*entities.Recipe, error)

	// DeleteRecipe deletes a recipe. Versions, branches, contributor rows,
	// merge requests and fork edges on either side cascade; recipes forked
	// from the deleted one survive with their lineage pointer cleared.
	DeleteRecipe(ctx context.Context, id string) error

	// Version operations

	// CommitVersion appends a commit: allocates the next gap-free version
	// number, links the parent, updates the live recipe content, bumps
	// version_count and upserts the author's contributor row, all in one
	// transaction. Returns the stored version.
	CommitVersion(ctx context.Context, params CommitParams) (*entities.RecipeVersion, error)

	// FindVersionsByRecipe returns commits newest first with author display
	// fields joined. Empty history yields an empty slice, not an error.
	FindVersionsByRecipe(ctx context.Context, recipeID string, limit, offset int) ([]entities.RecipeVersion, error)

	// FindVersionByID finds a single version. Returns ErrVersionNotFound.
	FindVersionByID(ctx context.Context, id string) (*entities.RecipeVersion, error)

	// FindLatestVersion returns the most recent version of a recipe, or nil
	// when the recipe has no commits.
	FindLatestVersion(ctx context.Context, recipeID string) (*entities.RecipeVersion, error)

	// CountVersions counts a recipe's commits.
	CountVersions(ctx context.Context, recipeID string) (int, error)

	// Branch operations

	// SaveBranch inserts a branch. Returns ErrDuplicateBranch when the name
	// is taken for the recipe.
	SaveBranch(ctx context.Context, branch *entities.Branch) error

	// FindBranch finds a branch by recipe and name. Returns ErrBranchNotFound.
	FindBranch(ctx context.Context, recipeID, name string) (*entities.Branch, error)

	// ListBranches returns the active branches of a recipe with creator
	// display fields joined.
	ListBranches(ctx context.Context, recipeID string) ([]entities.Branch, error)

	// CountBranches counts a recipe's active branches.
	CountBranches(ctx context.Context, recipeID string) (int, error)

	// SetDefaultBranch makes the branch the recipe's default, atomically
	// unsetting the previous default.
	SetDefaultBranch(ctx context.Context, recipeID, branchID string) error

	// DeactivateBranch soft-deletes a branch. The default branch cannot be
	// deactivated.
	DeactivateBranch(ctx context.Context, recipeID, branchID string) error

	// Fork operations

	// CreateFork atomically forks a recipe: copies the original's current
	// snapshot into a new recipe marked as a fork, seeds its first version
	// and default branch, records the fork edge, upserts the forker
	// contributor row and increments the original's fork count. Returns
	// ErrAlreadyForked when the user already forked the original.
	CreateFork(ctx context.Context, params ForkParams) (*entities.Recipe, error)

	// FindForkByUser returns the fork edge for (original, user), or nil.
	FindForkByUser(ctx context.Context, originalRecipeID, userID string) (*entities.Fork, error)

	// ListForksByOriginal returns the direct fork edges of a recipe with the
	// forked recipe title and forker display fields joined, newest first.
	ListForksByOriginal(ctx context.Context, originalRecipeID string) ([]entities.Fork, error)

	// CountForks counts a recipe's direct forks.
	CountForks(ctx context.Context, originalRecipeID string) (int, error)

	// Contributor operations

	// RecordContribution atomically inserts a contributor row or increments
	// its commit count and advances last_contributed_at. Never decrements.
	RecordContribution(ctx context.Context, recipeID, userID string, ctype entities.ContributionType, at time.Time) error

	// ListContributors returns contributors ordered by commit count
	// descending, then first contribution ascending.
	ListContributors(ctx context.Context, recipeID string) ([]entities.Contributor, error)

	// CountContributors counts a recipe's contributors.
	CountContributors(ctx context.Context, recipeID string) (int, error)

	// Merge request operations

	// SaveMergeRequest inserts a merge request.
	SaveMergeRequest(ctx context.Context, mr *entities.MergeRequest) error

	// FindMergeRequestByID finds a merge request. Returns ErrMergeRequestNotFound.
	FindMergeRequestByID(ctx context.Context, id string) (*entities.MergeRequest, error)

	// ListMergeRequests returns merge requests targeting a recipe, newest first.
	ListMergeRequests(ctx context.Context, targetRecipeID string) ([]entities.MergeRequest, error)

	// ResolveMergeRequest moves an open merge request into a terminal state.
	ResolveMergeRequest(ctx context.Context, id string, state entities.MergeRequestState, resolvedBy string, at time.Time) error

	// Audit operations

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, recipeID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a specific recipe.
	FindAuditLog(ctx context.Context, recipeID string) ([]entities.AuditEntry, error)
}
