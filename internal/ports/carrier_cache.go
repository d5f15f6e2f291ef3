package ports

import (
	"context"

	"freight-match-service/internal/domain"
)

// Port: cache of verified carrier profiles keyed by MC number.
//
// Get returns stale entries too; freshness is the caller's read-time judgment
// via CarrierProfile.Fresh. Put is a full-replace upsert: callers carry
// forward any fields they want to retain before writing.
type CarrierCache interface {
	Get(ctx context.Context, mcNumber string) (*domain.CarrierProfile, bool, error)
	Put(ctx context.Context, profile *domain.CarrierProfile) error
}
