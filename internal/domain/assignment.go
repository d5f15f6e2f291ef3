package domain

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusConfirmed AssignmentStatus = "confirmed"
	AssignmentStatusCancelled AssignmentStatus = "cancelled"
)

// Active reports whether the assignment still blocks its load.
// At most one active assignment may exist per load at any time.
func (s AssignmentStatus) Active() bool {
	return s == AssignmentStatusPending || s == AssignmentStatusConfirmed
}

// Immutable record of a carrier being assigned to a load.
type Assignment struct {
	AssignmentID int
	LoadID       int
	MCNumber     string
	MatchScore   float64
	Status       AssignmentStatus
	CreatedAt    time.Time
}
