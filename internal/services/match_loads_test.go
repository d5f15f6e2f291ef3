package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight-match-service/internal/domain"
)

var matchAsOf = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func availableLoad(id, cargoCode int, origin string, pickupIn time.Duration, rate float64) domain.Load {
	return domain.Load{
		LoadID:      id,
		Origin:      origin,
		Destination: "Atlanta, GA",
		PickupAt:    matchAsOf.Add(pickupIn),
		DeliveryAt:  matchAsOf.Add(pickupIn + 48*time.Hour),
		CargoCode:   cargoCode,
		Rate:        rate,
		WeightLbs:   40000,
		Status:      domain.LoadStatusAvailable,
	}
}

func carrierWithCargo(codes ...int) *domain.CarrierProfile {
	return &domain.CarrierProfile{
		MCNumber:   "44110",
		DOTNumber:  "80321",
		CargoCodes: codes,
	}
}

func TestFindBestMatchPrefersNearFeasibleCompatibleLoad(t *testing.T) {
	// Carrier in Chicago hauling cargo classes {1, 3, 15}.
	loads := []domain.Load{
		// Near and feasible.
		availableLoad(1, 1, "Joliet, IL", 24*time.Hour, 950),
		// Compatible but far and infeasible; rate alone cannot rescue it.
		availableLoad(2, 15, "Los Angeles, CA", 10*time.Hour, 3000),
		// Incompatible cargo: filtered before scoring.
		availableLoad(3, 2, "Joliet, IL", 24*time.Hour, 5000),
	}

	result, err := FindBestMatch(carrierWithCargo(1, 3, 15), loads, "Chicago, IL", matchAsOf)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.Load.LoadID)
	assert.True(t, result.Factors.CargoMatch)
	assert.True(t, result.Factors.Feasible)
	assert.Greater(t, result.Factors.Proximity, 0.9)
}

func TestFindBestMatchEmptyCargoSetPassesAllLoads(t *testing.T) {
	loads := []domain.Load{
		availableLoad(10, 7, "Milwaukee, WI", 24*time.Hour, 100),
		availableLoad(11, 21, "Denver, CO", 24*time.Hour, 2000),
	}

	// Unknown capability set: benefit of the doubt, both loads compete and
	// the nearer one wins on proximity.
	result, err := FindBestMatch(carrierWithCargo(), loads, "Chicago, IL", matchAsOf)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 10, result.Load.LoadID)
}

func TestFindBestMatchNeverSelectsIncompatibleCargo(t *testing.T) {
	// Only incompatible loads on offer.
	loads := []domain.Load{
		availableLoad(1, 2, "Joliet, IL", 24*time.Hour, 5000),
		availableLoad(2, 30, "Chicago, IL", 24*time.Hour, 9000),
	}

	result, err := FindBestMatch(carrierWithCargo(1, 3, 15), loads, "Chicago, IL", matchAsOf)
	require.NoError(t, err)
	assert.Nil(t, result, "incompatible loads must never be selected")
}

func TestFindBestMatchMalformedLocationFailsFast(t *testing.T) {
	loads := []domain.Load{availableLoad(1, 1, "Joliet, IL", 24*time.Hour, 950)}

	_, err := FindBestMatch(carrierWithCargo(1), loads, "Chicago", matchAsOf)
	require.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestFindBestMatchSkipsAssignedLoads(t *testing.T) {
	taken := availableLoad(1, 1, "Joliet, IL", 24*time.Hour, 950)
	taken.Status = domain.LoadStatusAssigned

	result, err := FindBestMatch(carrierWithCargo(1), []domain.Load{taken}, "Chicago, IL", matchAsOf)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestFindBestMatchNoCandidates(t *testing.T) {
	result, err := FindBestMatch(carrierWithCargo(1), nil, "Chicago, IL", matchAsOf)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestFindBestMatchScoreBounds(t *testing.T) {
	loads := []domain.Load{
		availableLoad(1, 1, "Joliet, IL", 24*time.Hour, 99999),
		availableLoad(2, 1, "Los Angeles, CA", 1*time.Hour, 0),
		availableLoad(3, 1, "Nowhereville, ZZ", 24*time.Hour, 1200),
		availableLoad(4, 1, "Seattle, WA", 200*time.Hour, 1800),
	}

	for _, load := range loads {
		result, err := FindBestMatch(carrierWithCargo(1), []domain.Load{load}, "Chicago, IL", matchAsOf)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.GreaterOrEqual(t, result.Score, 0.0, "load %d", load.LoadID)
		assert.LessOrEqual(t, result.Score, 1.0, "load %d", load.LoadID)
	}
}

func TestFindBestMatchTieBreaksOnLowerLoadID(t *testing.T) {
	// Identical loads except for id produce identical scores.
	a := availableLoad(42, 1, "Joliet, IL", 24*time.Hour, 950)
	b := availableLoad(7, 1, "Joliet, IL", 24*time.Hour, 950)

	for _, loads := range [][]domain.Load{{a, b}, {b, a}} {
		result, err := FindBestMatch(carrierWithCargo(1), loads, "Chicago, IL", matchAsOf)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 7, result.Load.LoadID, "lower id must win regardless of input order")
	}
}

func TestFindBestMatchInfeasibleLoadStillReportsFactors(t *testing.T) {
	// Pickup in one hour, roughly three hours of driving away.
	load := availableLoad(1, 1, "Indianapolis, IN", 1*time.Hour, 500)

	result, err := FindBestMatch(carrierWithCargo(1), []domain.Load{load}, "Chicago, IL", matchAsOf)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Factors.Feasible)
	assert.Negative(t, result.Factors.BufferHours)
	assert.Greater(t, result.Score, 0.0, "cargo and proximity still contribute")
}

func TestFindBestMatchUnknownCityDegradesToDefaultProximity(t *testing.T) {
	load := availableLoad(1, 1, "Nowhereville, ZZ", 24*time.Hour, 500)

	result, err := FindBestMatch(carrierWithCargo(1), []domain.Load{load}, "Chicago, IL", matchAsOf)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Factors.Degraded)
	assert.Equal(t, 0.5, result.Factors.Proximity)
	assert.True(t, result.Factors.Feasible, "future pickup is feasible under degraded verdict")
}

func TestFindBestMatchMalformedLoadOriginDegrades(t *testing.T) {
	load := availableLoad(1, 1, "Springfield", 24*time.Hour, 500)

	result, err := FindBestMatch(carrierWithCargo(1), []domain.Load{load}, "Chicago, IL", matchAsOf)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Factors.Degraded)
	assert.Equal(t, 0.5, result.Factors.Proximity)
}
