package ports

import (
	"context"

	"freight-match-service/internal/domain"
)

// Port: read access to the load pool.
type LoadRepository interface {
	// ListAvailable returns loads still open for assignment, ordered by id.
	ListAvailable(ctx context.Context) ([]domain.Load, error)
	// Get returns one load or domain.ErrLoadNotFound.
	Get(ctx context.Context, loadID int) (domain.Load, error)
}
