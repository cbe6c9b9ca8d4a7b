package entities

import "errors"

// Sentinel errors shared across services and stores. Callers match with
// errors.Is; layers add context with fmt.Errorf("...: %w", err).
var (
	// Not found.
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrVersionNotFound      = errors.New("version not found")
	ErrBranchNotFound       = errors.New("branch not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrMergeRequestNotFound = errors.New("merge request not found")

	// Conflicts.
	ErrDuplicateBranch     = errors.New("branch name already exists for recipe")
	ErrAlreadyForked       = errors.New("recipe already forked by this user")
	ErrNothingToCommit     = errors.New("nothing to commit: content is unchanged")
	ErrMergeRequestNotOpen = errors.New("merge request is not open")
	ErrDefaultBranch       = errors.New("cannot deactivate the default branch")

	// ErrVersionConflict means two writers raced past the version number
	// reservation point. The store's write serialization makes this
	// unreachable; it is kept as an invariant check, never silently retried.
	ErrVersionConflict = errors.New("concurrent version number conflict")

	// Invalid input.
	ErrInvalidSnapshot    = errors.New("invalid snapshot: title is required")
	ErrInvalidBaseVersion = errors.New("base version does not belong to recipe")
	ErrInvalidBranchName  = errors.New("branch name may only contain letters, numbers, hyphens and underscores")
	ErrEmptyCommitMessage = errors.New("commit message is required")

	// ErrStoreUnavailable wraps connection and timeout failures; the whole
	// operation is safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrIntegrity marks a broken invariant detected at runtime (e.g. a
	// version_count that disagrees with the commit ledger). Fatal to the
	// request, logged distinctly, never repaired in place.
	ErrIntegrity = errors.New("integrity violation")
)
