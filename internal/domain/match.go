package domain

// Per-factor breakdown behind a match score. Kept alongside the score so
// callers can see why a load won, not just that it did.
type MatchFactors struct {
	CargoMatch     bool
	Proximity      float64
	Feasible       bool
	Degraded       bool
	DistanceMiles  float64
	HoursNeeded    float64
	HoursAvailable float64
	BufferHours    float64
}

// Result of one matching request: the selected load, its overall score in
// [0, 1], and the factor breakdown. Ephemeral planning data, never persisted.
type MatchResult struct {
	Load    Load
	Score   float64
	Factors MatchFactors
}
