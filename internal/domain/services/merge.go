package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forkful/forkful-core/internal/domain/entities"
	"github.com/forkful/forkful-core/internal/domain/ports"
	"github.com/google/uuid"
)

// MergeService manages the merge request lifecycle. A merge request
// proposes integrating a source recipe/branch into a target recipe/branch;
// merging lands one commit on the target that adopts the source's current
// snapshot.
type MergeService struct {
	relationalDB ports.RelationalDB
}

// NewMergeService creates a new MergeService.
func NewMergeService(relationalDB ports.RelationalDB) *MergeService {
	return &MergeService{
		relationalDB: relationalDB,
	}
}

// Open creates a merge request in the open state. Both recipes and both
// branches must exist.
func (s *MergeService) Open(ctx context.Context, sourceRecipeID, sourceBranch, targetRecipeID, targetBranch, title, description, requestedBy string) (*entities.MergeRequest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("merge request title is required")
	}
	if _, err := s.relationalDB.FindBranch(ctx, sourceRecipeID, sourceBranch); err != nil {
		return nil, fmt.Errorf("source branch: %w", err)
	}
	if _, err := s.relationalDB.FindBranch(ctx, targetRecipeID, targetBranch); err != nil {
		return nil, fmt.Errorf("target branch: %w", err)
	}

	mr := &entities.MergeRequest{
		ID:             uuid.New().String(),
		SourceRecipeID: sourceRecipeID,
		SourceBranch:   sourceBranch,
		TargetRecipeID: targetRecipeID,
		TargetBranch:   targetBranch,
		Title:          title,
		Description:    description,
		RequestedBy:    requestedBy,
		State:          entities.MergeRequestOpen,
		CreatedAt:      time.Now(),
	}
	if err := s.relationalDB.SaveMergeRequest(ctx, mr); err != nil {
		return nil, fmt.Errorf("saving merge request: %w", err)
	}
	_ = s.relationalDB.LogAction(ctx, "merge_request_opened", targetRecipeID, map[string]any{
		"merge_request_id": mr.ID,
		"source_recipe_id": sourceRecipeID,
	})
	return mr, nil
}

// Merge integrates an open merge request: the target recipe receives a
// commit adopting the source's current snapshot, authored by the merger as
// a collaborator, and the request moves to the merged state. When source
// and target content are already identical only the state changes.
func (s *MergeService) Merge(ctx context.Context, mrID, mergedBy string) (*entities.MergeRequest, error) {
	mr, err := s.relationalDB.FindMergeRequestByID(ctx, mrID)
	if err != nil {
		return nil, err
	}
	if mr.State.Terminal() {
		return nil, entities.ErrMergeRequestNotOpen
	}

	source, err := s.relationalDB.FindRecipeByID(ctx, mr.SourceRecipeID)
	if err != nil {
		return nil, fmt.Errorf("source recipe: %w", err)
	}
	target, err := s.relationalDB.FindRecipeByID(ctx, mr.TargetRecipeID)
	if err != nil {
		return nil, fmt.Errorf("target recipe: %w", err)
	}

	changes, err := DiffSnapshots(target.CurrentSnapshot(), source.CurrentSnapshot())
	if err != nil {
		return nil, err
	}
	if !changes.Empty() {
		_, err = s.relationalDB.CommitVersion(ctx, ports.CommitParams{
			RecipeID: mr.TargetRecipeID,
			AuthorID: mergedBy,
			Message:  fmt.Sprintf("Merge %s/%s: %s", mr.SourceBranch, source.Title, mr.Title),
			Changes:  changes,
			Snapshot: source.CurrentSnapshot(),
			Type:     entities.ContributionCollaborator,
		})
		if err != nil {
			return nil, fmt.Errorf("committing merge: %w", err)
		}
	}

	now := time.Now()
	if err := s.relationalDB.ResolveMergeRequest(ctx, mrID, entities.MergeRequestMerged, mergedBy, now); err != nil {
		return nil, fmt.Errorf("resolving merge request: %w", err)
	}
	mr.State = entities.MergeRequestMerged
	mr.ResolvedBy = mergedBy
	mr.ResolvedAt = &now
	_ = s.relationalDB.LogAction(ctx, "merge_request_merged", mr.TargetRecipeID, map[string]any{
		"merge_request_id": mr.ID,
		"merged_by":        mergedBy,
	})
	return mr, nil
}

// Close closes an open merge request without merging.
func (s *MergeService) Close(ctx context.Context, mrID, closedBy string) error {
	return s.resolve(ctx, mrID, entities.MergeRequestClosed, closedBy)
}

// Reject rejects an open merge request.
func (s *MergeService) Reject(ctx context.Context, mrID, rejectedBy string) error {
	return s.resolve(ctx, mrID, entities.MergeRequestRejected, rejectedBy)
}

func (s *MergeService) resolve(ctx context.Context, mrID string, state entities.MergeRequestState, by string) error {
	mr, err := s.relationalDB.FindMergeRequestByID(ctx, mrID)
	if err != nil {
		return err
	}
	if mr.State.Terminal() {
		return entities.ErrMergeRequestNotOpen
	}
	if err := s.relationalDB.ResolveMergeRequest(ctx, mrID, state, by, time.Now()); err != nil {
		return fmt.Errorf("resolving merge request: %w", err)
	}
	_ = s.relationalDB.LogAction(ctx, "merge_request_"+string(state), mr.TargetRecipeID, map[string]any{
		"merge_request_id": mrID,
		"resolved_by":      by,
	})
	return nil
}

// List returns merge requests targeting a recipe, newest first.
func (s *MergeService) List(ctx context.Context, targetRecipeID string) ([]entities.MergeRequest, error) {
	if _, err := s.relationalDB.FindRecipeByID(ctx, targetRecipeID); err != nil {
		return nil, err
	}
	return s.relationalDB.ListMergeRequests(ctx, targetRecipeID)
}

// Get finds a merge request by ID.
func (s *MergeService) Get(ctx context.Context, mrID string) (*entities.MergeRequest, error) {
	return s.relationalDB.FindMergeRequestByID(ctx, mrID)
}
