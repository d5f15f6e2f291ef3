package ports

import (
	"context"

	"freight-match-service/internal/domain"
)

// Port: the assignment side of the record store.
//
// Create must apply the duplicate check, the assignment insert and the load
// status flip as one atomic mutation. Two racing calls for the same load must
// never both succeed.
type AssignmentStore interface {
	// Create records a pending assignment and flips the load to assigned.
	// Fails with domain.ErrDuplicateAssignment if the load already has a
	// pending or confirmed assignment, domain.ErrLoadNotAvailable if the
	// load is closed without an active assignment on record, and
	// domain.ErrLoadNotFound if the load does not exist.
	Create(ctx context.Context, loadID int, mcNumber string, matchScore float64) (domain.Assignment, error)

	// ListByLoad returns all assignments ever recorded for a load.
	ListByLoad(ctx context.Context, loadID int) ([]domain.Assignment, error)
}
