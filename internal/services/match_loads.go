package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"freight-match-service/internal/domain"
	"freight-match-service/internal/geo"
)

// Scoring weights. Cargo compatibility dominates, then proximity, then
// timeline feasibility, with a small rate incentive on top.
const (
	cargoWeight     = 0.40
	proximityWeight = 0.35
	feasibleWeight  = 0.25
	rateBonusCap    = 0.10
	rateBonusScale  = 10000.0

	// Used when distance to a load's origin cannot be computed.
	defaultProximity = 0.5
)

// FindBestMatch selects the best available load for a carrier standing at
// currentLocation at asOf.
//
// Candidates are filtered to available loads whose cargo class the carrier
// hauls; an empty or unknown cargo set passes every load (deliberate
// benefit-of-the-doubt policy). Survivors are scored on proximity, pickup
// feasibility and rate, and the top score wins. Equal scores break toward
// the lower load id so results are deterministic.
//
// Returns (nil, nil) when nothing matches; that is an answer, not an error.
// Malformed currentLocation text fails with domain.ErrInvalidLocation before
// any scoring.
func FindBestMatch(
	profile *domain.CarrierProfile,
	candidates []domain.Load,
	currentLocation string,
	asOf time.Time,
) (*domain.MatchResult, error) {
	if profile == nil {
		return nil, errors.New("find best match: carrier profile must be non-nil")
	}

	// Reject malformed location text before touching any candidate.
	if _, err := geo.Resolve(currentLocation); err != nil && !errors.Is(err, geo.ErrNotFound) {
		return nil, fmt.Errorf("find best match: %w", err)
	}

	eligible := make([]domain.Load, 0, len(candidates))
	for _, load := range candidates {
		if load.Status != domain.LoadStatusAvailable {
			continue
		}
		// Empty cargo set: the carrier gets the benefit of the doubt.
		if len(profile.CargoCodes) > 0 && !profile.HasCargoCode(load.CargoCode) {
			continue
		}
		eligible = append(eligible, load)
	}

	if len(eligible) == 0 {
		return nil, nil
	}

	results := make([]domain.MatchResult, 0, len(eligible))
	for _, load := range eligible {
		factors, err := scoreFactors(load, currentLocation, asOf)
		if err != nil {
			return nil, fmt.Errorf("find best match: load_id=%d: %w", load.LoadID, err)
		}

		score := cargoWeight + factors.Proximity*proximityWeight
		if factors.Feasible {
			score += feasibleWeight
		}
		score += min(load.Rate/rateBonusScale, rateBonusCap)
		if score > 1.0 {
			score = 1.0
		}

		results = append(results, domain.MatchResult{
			Load:    load,
			Score:   score,
			Factors: factors,
		})
	}

	slices.SortFunc(results, func(a, b domain.MatchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		// Lower load id wins on equal scores.
		return a.Load.LoadID - b.Load.LoadID
	})

	best := results[0]
	if best.Score <= 0 {
		return nil, nil
	}

	return &best, nil
}

// scoreFactors computes the per-load factor breakdown. The cargo filter has
// already run, so CargoMatch is carried as true for transparency.
func scoreFactors(load domain.Load, currentLocation string, asOf time.Time) (domain.MatchFactors, error) {
	feas, err := geo.Feasibility(currentLocation, load.Origin, asOf, load.PickupAt)
	if err != nil {
		// currentLocation was validated upfront, so this is bad stored load
		// data. Degrade the way an unresolvable city does instead of failing
		// the whole request.
		if errors.Is(err, domain.ErrInvalidLocation) {
			feas = geo.FeasibilityResult{
				Feasible:       load.PickupAt.After(asOf),
				Degraded:       true,
				HoursAvailable: load.PickupAt.Sub(asOf).Hours(),
			}
		} else {
			return domain.MatchFactors{}, err
		}
	}

	proximity := defaultProximity
	if !feas.Degraded {
		proximity = geo.ProximityScore(feas.DistanceMiles)
	}

	return domain.MatchFactors{
		CargoMatch:     true,
		Proximity:      proximity,
		Feasible:       feas.Feasible,
		Degraded:       feas.Degraded,
		DistanceMiles:  feas.DistanceMiles,
		HoursNeeded:    feas.HoursNeeded,
		HoursAvailable: feas.HoursAvailable,
		BufferHours:    feas.BufferHours,
	}, nil
}
