package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bittenrichard/30-07/internal/models"
)

// ErrInvalidStatus rejects any value outside the screening pipeline.
var ErrInvalidStatus = errors.New("invalid status")

// StatusService moves candidates through the screening pipeline. The
// pipeline is a membership check, not a state machine: any valid status
// may move to any other.
type StatusService struct {
	store RowStore
}

func NewStatusService(store RowStore) *StatusService {
	return &StatusService{store: store}
}

// Transition validates the new status and persists it. Validation runs
// before any store call, so an invalid status never partially persists.
func (s *StatusService) Transition(ctx context.Context, candidateID int, status string) (*models.CandidateRow, error) {
	if !models.Status(status).Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var updated models.CandidateRow
	fields := map[string]any{"Status": status}
	if err := s.store.UpdateRow(ctx, models.CandidatesTable, candidateID, fields, &updated); err != nil {
		return nil, fmt.Errorf("update candidate status: %w", err)
	}
	return &updated, nil
}
