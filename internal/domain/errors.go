package domain

import "errors"

// Sentinel errors shared across the core. Services wrap these with
// fmt.Errorf("op: %w", ...) context; the API layer maps them to status codes
// with errors.Is.
var (
	// ErrInvalidMCNumber marks an MC number that is not 1-7 decimal digits
	// after normalization. Rejected before any upstream call.
	ErrInvalidMCNumber = errors.New("invalid MC number format")

	// ErrInvalidLocation marks free-text that does not parse as "City, ST".
	ErrInvalidLocation = errors.New("invalid location format")

	// ErrCarrierNotFound means the FMCSA identity lookup had no record for
	// the requested MC number.
	ErrCarrierNotFound = errors.New("carrier not found")

	// ErrUpstream wraps network failures, timeouts and 5xx responses from
	// any of the verification lookups. Nothing is cached on this path.
	ErrUpstream = errors.New("verification upstream failure")

	// ErrLoadNotFound means the referenced load does not exist in the store.
	ErrLoadNotFound = errors.New("load not found")

	// ErrDuplicateAssignment means the load already has a pending or
	// confirmed assignment.
	ErrDuplicateAssignment = errors.New("load already has an active assignment")

	// ErrLoadNotAvailable means the load exists but is not open for
	// assignment (already assigned, with no active assignment on record).
	ErrLoadNotAvailable = errors.New("load is not available")
)
