package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"freight-match-service/internal/domain"
	"freight-match-service/internal/ports"
)

// Assigner records carrier-to-load assignments. The atomicity of the
// check-insert-flip sequence lives in the store; this layer validates input
// and owns logging.
type Assigner struct {
	store ports.AssignmentStore
	log   *zap.Logger
}

func NewAssigner(store ports.AssignmentStore, log *zap.Logger) *Assigner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assigner{store: store, log: log}
}

// CreateAssignment records a pending assignment for the load and takes the
// load out of the available pool.
func (a *Assigner) CreateAssignment(ctx context.Context, loadID int, rawMCNumber string, matchScore float64) (domain.Assignment, error) {
	mc, err := NormalizeMCNumber(rawMCNumber)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("create assignment: %w", err)
	}
	if loadID <= 0 {
		return domain.Assignment{}, fmt.Errorf("create assignment: load_id=%d: %w", loadID, domain.ErrLoadNotFound)
	}

	assignment, err := a.store.Create(ctx, loadID, mc, matchScore)
	if err != nil {
		return domain.Assignment{}, err
	}

	a.log.Info("assignment created",
		zap.Int("assignment_id", assignment.AssignmentID),
		zap.Int("load_id", loadID),
		zap.String("mc", mc),
		zap.Float64("score", matchScore),
	)

	return assignment, nil
}
