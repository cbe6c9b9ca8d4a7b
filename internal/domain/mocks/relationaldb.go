// Package mocks provides in-memory implementations of the ports interfaces
// for tests.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
	"github.com/google/uuid"
)

// RelationalDB is a mock implementation of ports.RelationalDB. State is
// guarded by a mutex so concurrent use in tests behaves like the real
// store's serialized writes. Set Err to force every method to fail.
type RelationalDB struct {
	mu sync.Mutex

	Users         map[string]*entities.User
	Recipes       map[string]*entities.Recipe
	Versions      map[string]*entities.RecipeVersion
	Branches      map[string]*entities.Branch
	Forks         map[string]*entities.Fork
	Contributors  map[string]*entities.Contributor // keyed recipeID + "/" + userID
	MergeRequests map[string]*entities.MergeRequest
	Audit         []entities.AuditEntry

	Err error
}

// NewRelationalDB creates a new mock RelationalDB.
func NewRelationalDB() *RelationalDB {
	return &RelationalDB{
		Users:         make(map[string]*entities.User),
		Recipes:       make(map[string]*entities.Recipe),
		Versions:      make(map[string]*entities.RecipeVersion),
		Branches:      make(map[string]*entities.Branch),
		Forks:         make(map[string]*entities.Fork),
		Contributors:  make(map[string]*entities.Contributor),
		MergeRequests: make(map[string]*entities.MergeRequest),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RelationalDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RelationalDB) Close() error {
	return nil
}

// User methods.

// SaveUser inserts or updates a user's display snapshot.
func (m *RelationalDB) SaveUser(_ context.Context, user *entities.User) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.Users[u.ID] = &u
	return nil
}

// FindUserByID finds a user by ID.
func (m *RelationalDB) FindUserByID(_ context.Context, id string) (*entities.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// Recipe methods.

// CreateRecipe atomically seeds a recipe, its first version, the default
// branch and the creator contributor row.
func (m *RelationalDB) CreateRecipe(_ context.Context, recipe *entities.Recipe, commitMessage string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	r := *recipe
	r.VersionCount = 1
	m.Recipes[r.ID] = &r

	seed := seedVersion(&r, commitMessage, r.OwnerID, entities.ChangeDescriptor{
		"action": {To: "created"},
	})
	m.Versions[seed.ID] = seed
	branch := seedBranch(&r, entities.DefaultBranchName, r.OwnerID)
	m.Branches[branch.ID] = branch
	m.upsertContributor(r.ID, r.OwnerID, entities.ContributionCreator, r.CreatedAt)

	recipe.VersionCount = 1
	return nil
}

// FindRecipeByID finds a recipe by ID.
func (m *RelationalDB) FindRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Recipes[id]
	if !ok {
		return nil, entities.ErrRecipeNotFound
	}
	out := *r
	return &out, nil
}

// ListRecipes lists recipes with pagination, newest first.
func (m *RelationalDB) ListRecipes(_ context.Context, limit, offset int) ([]*entities.Recipe, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*entities.Recipe, 0, len(m.Recipes))
	for _, r := range m.Recipes {
		out := *r
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

// DeleteRecipe deletes a recipe and cascades per the documented policy.
func (m *RelationalDB) DeleteRecipe(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Recipes[id]; !ok {
		return entities.ErrRecipeNotFound
	}
	delete(m.Recipes, id)
	for vid, v := range m.Versions {
		if v.RecipeID == id {
			delete(m.Versions, vid)
		}
	}
	for bid, b := range m.Branches {
		if b.RecipeID == id {
			delete(m.Branches, bid)
		}
	}
	for fid, f := range m.Forks {
		if f.OriginalRecipeID == id || f.ForkedRecipeID == id {
			delete(m.Forks, fid)
		}
	}
	for key, c := range m.Contributors {
		if c.RecipeID == id {
			delete(m.Contributors, key)
		}
	}
	for mid, mr := range m.MergeRequests {
		if mr.SourceRecipeID == id || mr.TargetRecipeID == id {
			delete(m.MergeRequests, mid)
		}
	}
	// Orphan surviving forks of the deleted recipe.
	for _, r := range m.Recipes {
		if r.OriginalRecipeID == id {
			r.OriginalRecipeID = ""
		}
	}
	return nil
}

// Version methods.

// CommitVersion appends a commit with a gap-free version number.
func (m *RelationalDB) CommitVersion(_ context.Context, params ports.CommitParams) (*entities.RecipeVersion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	recipe, ok := m.Recipes[params.RecipeID]
	if !ok {
		return nil, entities.ErrRecipeNotFound
	}

	next := 1
	parentID := ""
	for _, v := range m.Versions {
		if v.RecipeID == params.RecipeID && v.VersionNumber >= next {
			next = v.VersionNumber + 1
		}
	}
	for id, v := range m.Versions {
		if v.RecipeID == params.RecipeID && v.VersionNumber == next-1 {
			parentID = id
		}
	}

	ctype := params.Type
	if ctype == "" {
		ctype = entities.ContributionEditor
	}

	now := time.Now()
	version := &entities.RecipeVersion{
		ID:              uuidString(),
		RecipeID:        params.RecipeID,
		VersionNumber:   next,
		CommitMessage:   params.Message,
		AuthorID:        params.AuthorID,
		ParentVersionID: parentID,
		Changes:         params.Changes,
		Snapshot:        params.Snapshot,
		CreatedAt:       now,
	}
	m.Versions[version.ID] = version

	recipe.ApplySnapshot(params.Snapshot)
	recipe.VersionCount++
	recipe.UpdatedAt = now
	m.upsertContributor(params.RecipeID, params.AuthorID, ctype, now)

	out := *version
	return &out, nil
}

// FindVersionsByRecipe returns commits newest first with authors joined.
func (m *RelationalDB) FindVersionsByRecipe(_ context.Context, recipeID string, limit, offset int) ([]entities.RecipeVersion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	versions := make([]entities.RecipeVersion, 0, 8)
	for _, v := range m.Versions {
		if v.RecipeID != recipeID {
			continue
		}
		out := *v
		if u, ok := m.Users[v.AuthorID]; ok {
			uc := *u
			out.Author = &uc
		}
		versions = append(versions, out)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].VersionNumber > versions[j].VersionNumber })
	return paginate(versions, limit, offset), nil
}

// FindVersionByID finds a single version.
func (m *RelationalDB) FindVersionByID(_ context.Context, id string) (*entities.RecipeVersion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Versions[id]
	if !ok {
		return nil, entities.ErrVersionNotFound
	}
	out := *v
	out.ID = id
	return &out, nil
}

// FindLatestVersion returns the most recent version, or nil.
func (m *RelationalDB) FindLatestVersion(_ context.Context, recipeID string) (*entities.RecipeVersion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *entities.RecipeVersion
	var latestID string
	for id, v := range m.Versions {
		if v.RecipeID == recipeID && (latest == nil || v.VersionNumber > latest.VersionNumber) {
			latest = v
			latestID = id
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	out.ID = latestID
	return &out, nil
}

// CountVersions counts a recipe's commits.
func (m *RelationalDB) CountVersions(_ context.Context, recipeID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, v := range m.Versions {
		if v.RecipeID == recipeID {
			count++
		}
	}
	return count, nil
}

// Branch methods.

// SaveBranch inserts a branch, rejecting duplicate names per recipe.
func (m *RelationalDB) SaveBranch(_ context.Context, branch *entities.Branch) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.Branches {
		if b.RecipeID == branch.RecipeID && b.Name == branch.Name {
			return entities.ErrDuplicateBranch
		}
	}
	b := *branch
	m.Branches[b.ID] = &b
	return nil
}

// FindBranch finds a branch by recipe and name.
func (m *RelationalDB) FindBranch(_ context.Context, recipeID, name string) (*entities.Branch, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.Branches {
		if b.RecipeID == recipeID && b.Name == name {
			out := *b
			return &out, nil
		}
	}
	return nil, entities.ErrBranchNotFound
}

// ListBranches returns the active branches of a recipe.
func (m *RelationalDB) ListBranches(_ context.Context, recipeID string) ([]entities.Branch, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	branches := make([]entities.Branch, 0, 4)
	for _, b := range m.Branches {
		if b.RecipeID == recipeID && b.IsActive {
			out := *b
			if u, ok := m.Users[b.CreatedBy]; ok {
				uc := *u
				out.Creator = &uc
			}
			branches = append(branches, out)
		}
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].CreatedAt.After(branches[j].CreatedAt) })
	return branches, nil
}

// CountBranches counts a recipe's active branches.
func (m *RelationalDB) CountBranches(_ context.Context, recipeID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, b := range m.Branches {
		if b.RecipeID == recipeID && b.IsActive {
			count++
		}
	}
	return count, nil
}

// SetDefaultBranch makes a branch the default, unsetting the previous one.
func (m *RelationalDB) SetDefaultBranch(_ context.Context, recipeID, branchID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	target, ok := m.Branches[branchID]
	if !ok || target.RecipeID != recipeID {
		return entities.ErrBranchNotFound
	}
	for _, b := range m.Branches {
		if b.RecipeID == recipeID {
			b.IsDefault = false
		}
	}
	target.IsDefault = true
	return nil
}

// DeactivateBranch soft-deletes a non-default branch.
func (m *RelationalDB) DeactivateBranch(_ context.Context, recipeID, branchID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Branches[branchID]
	if !ok || b.RecipeID != recipeID {
		return entities.ErrBranchNotFound
	}
	if b.IsDefault {
		return entities.ErrDefaultBranch
	}
	b.IsActive = false
	return nil
}

// Fork methods.

// CreateFork atomically forks a recipe.
func (m *RelationalDB) CreateFork(_ context.Context, params ports.ForkParams) (*entities.Recipe, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	original, ok := m.Recipes[params.OriginalRecipeID]
	if !ok {
		return nil, entities.ErrRecipeNotFound
	}
	for _, f := range m.Forks {
		if f.OriginalRecipeID == params.OriginalRecipeID && f.ForkedByUserID == params.UserID {
			return nil, entities.ErrAlreadyForked
		}
	}

	branchName := params.BranchName
	if branchName == "" {
		branchName = entities.DefaultBranchName
	}

	now := time.Now()
	forked := *original
	forked.ID = uuidString()
	forked.OwnerID = params.UserID
	forked.IsFork = true
	forked.OriginalRecipeID = original.ID
	forked.ForkCount = 0
	forked.StarCount = 0
	forked.VersionCount = 1
	forked.CreatedAt = now
	forked.UpdatedAt = now
	m.Recipes[forked.ID] = &forked

	seed := seedVersion(&forked, "Initial fork", params.UserID, entities.ChangeDescriptor{
		"action":         {To: "fork"},
		"from_recipe_id": {To: original.ID},
	})
	m.Versions[seed.ID] = seed
	branch := seedBranch(&forked, branchName, params.UserID)
	m.Branches[branch.ID] = branch

	var baseVersionID string
	for id, v := range m.Versions {
		if v.RecipeID == original.ID && (baseVersionID == "" || v.VersionNumber > m.Versions[baseVersionID].VersionNumber) {
			baseVersionID = id
		}
	}
	forkID := uuidString()
	m.Forks[forkID] = &entities.Fork{
		ID:               forkID,
		OriginalRecipeID: original.ID,
		ForkedRecipeID:   forked.ID,
		ForkedByUserID:   params.UserID,
		BranchName:       branchName,
		BaseVersionID:    baseVersionID,
		ForkReason:       params.Reason,
		CreatedAt:        now,
	}

	m.upsertContributor(forked.ID, params.UserID, entities.ContributionForker, now)
	original.ForkCount++

	out := forked
	return &out, nil
}

// FindForkByUser returns the fork edge for (original, user), or nil.
func (m *RelationalDB) FindForkByUser(_ context.Context, originalRecipeID, userID string) (*entities.Fork, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.Forks {
		if f.OriginalRecipeID == originalRecipeID && f.ForkedByUserID == userID {
			out := *f
			return &out, nil
		}
	}
	return nil, nil
}

// ListForksByOriginal returns the direct fork edges of a recipe.
func (m *RelationalDB) ListForksByOriginal(_ context.Context, originalRecipeID string) ([]entities.Fork, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	forks := make([]entities.Fork, 0, 4)
	for _, f := range m.Forks {
		if f.OriginalRecipeID != originalRecipeID {
			continue
		}
		out := *f
		if r, ok := m.Recipes[f.ForkedRecipeID]; ok {
			out.ForkedTitle = r.Title
		}
		if u, ok := m.Users[f.ForkedByUserID]; ok {
			uc := *u
			out.ForkedBy = &uc
		}
		forks = append(forks, out)
	}
	sort.Slice(forks, func(i, j int) bool { return forks[i].CreatedAt.After(forks[j].CreatedAt) })
	return forks, nil
}

// CountForks counts a recipe's direct forks.
func (m *RelationalDB) CountForks(_ context.Context, originalRecipeID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, f := range m.Forks {
		if f.OriginalRecipeID == originalRecipeID {
			count++
		}
	}
	return count, nil
}

// Contributor methods.

// RecordContribution upserts a contributor row.
func (m *RelationalDB) RecordContribution(_ context.Context, recipeID, userID string, ctype entities.ContributionType, at time.Time) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertContributor(recipeID, userID, ctype, at)
	return nil
}

// ListContributors returns contributors ordered by commit count descending,
// then first contribution ascending.
func (m *RelationalDB) ListContributors(_ context.Context, recipeID string) ([]entities.Contributor, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	contributors := make([]entities.Contributor, 0, 4)
	for _, c := range m.Contributors {
		if c.RecipeID != recipeID {
			continue
		}
		out := *c
		if u, ok := m.Users[c.ContributorID]; ok {
			uc := *u
			out.User = &uc
		}
		contributors = append(contributors, out)
	}
	sort.Slice(contributors, func(i, j int) bool {
		if contributors[i].CommitCount != contributors[j].CommitCount {
			return contributors[i].CommitCount > contributors[j].CommitCount
		}
		return contributors[i].FirstContributedAt.Before(contributors[j].FirstContributedAt)
	})
	return contributors, nil
}

// CountContributors counts a recipe's contributors.
func (m *RelationalDB) CountContributors(_ context.Context, recipeID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.Contributors {
		if c.RecipeID == recipeID {
			count++
		}
	}
	return count, nil
}

// Merge request methods.

// SaveMergeRequest inserts a merge request.
func (m *RelationalDB) SaveMergeRequest(_ context.Context, mr *entities.MergeRequest) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *mr
	m.MergeRequests[out.ID] = &out
	return nil
}

// FindMergeRequestByID finds a merge request.
func (m *RelationalDB) FindMergeRequestByID(_ context.Context, id string) (*entities.MergeRequest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	mr, ok := m.MergeRequests[id]
	if !ok {
		return nil, entities.ErrMergeRequestNotFound
	}
	out := *mr
	return &out, nil
}

// ListMergeRequests returns merge requests targeting a recipe, newest first.
func (m *RelationalDB) ListMergeRequests(_ context.Context, targetRecipeID string) ([]entities.MergeRequest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := make([]entities.MergeRequest, 0, 4)
	for _, mr := range m.MergeRequests {
		if mr.TargetRecipeID == targetRecipeID {
			requests = append(requests, *mr)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].CreatedAt.After(requests[j].CreatedAt) })
	return requests, nil
}

// ResolveMergeRequest moves a merge request into a terminal state.
func (m *RelationalDB) ResolveMergeRequest(_ context.Context, id string, state entities.MergeRequestState, resolvedBy string, at time.Time) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	mr, ok := m.MergeRequests[id]
	if !ok {
		return entities.ErrMergeRequestNotFound
	}
	mr.State = state
	mr.ResolvedBy = resolvedBy
	mr.ResolvedAt = &at
	return nil
}

// Audit methods.

// LogAction logs an action to the audit log.
func (m *RelationalDB) LogAction(_ context.Context, action string, recipeID string, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:        int64(len(m.Audit) + 1),
		Action:    action,
		RecipeID:  recipeID,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

// FindAuditLog finds audit log entries for a specific recipe.
func (m *RelationalDB) FindAuditLog(_ context.Context, recipeID string) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]entities.AuditEntry, 0, 4)
	for _, e := range m.Audit {
		if e.RecipeID == recipeID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Helpers. Callers must hold the mutex.

func (m *RelationalDB) upsertContributor(recipeID, userID string, ctype entities.ContributionType, at time.Time) {
	key := recipeID + "/" + userID
	if c, ok := m.Contributors[key]; ok {
		c.CommitCount++
		c.LastContributedAt = at
		return
	}
	m.Contributors[key] = &entities.Contributor{
		RecipeID:           recipeID,
		ContributorID:      userID,
		ContributionType:   ctype,
		CommitCount:        1,
		FirstContributedAt: at,
		LastContributedAt:  at,
	}
}

func seedVersion(r *entities.Recipe, message, authorID string, changes entities.ChangeDescriptor) *entities.RecipeVersion {
	return &entities.RecipeVersion{
		ID:            uuidString(),
		RecipeID:      r.ID,
		VersionNumber: 1,
		CommitMessage: message,
		AuthorID:      authorID,
		Changes:       changes,
		Snapshot:      r.CurrentSnapshot(),
		CreatedAt:     r.CreatedAt,
	}
}

func seedBranch(r *entities.Recipe, name, createdBy string) *entities.Branch {
	return &entities.Branch{
		ID:        uuidString(),
		RecipeID:  r.ID,
		Name:      name,
		CreatedBy: createdBy,
		IsDefault: true,
		IsActive:  true,
		CreatedAt: r.CreatedAt,
	}
}

func uuidString() string {
	return uuid.New().String()
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
