// Package geo resolves free-text "City, ST" locations to coordinates and
// computes great-circle distance, travel-time estimates, proximity scores and
// pickup feasibility. Everything here is a pure function over the built-in
// city table; no external services are involved.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"freight-match-service/internal/domain"
)

const (
	// Average over-the-road speed for a loaded truck, with a fixed 20%
	// operational buffer applied on top of the raw drive time.
	averageSpeedMph  = 55.0
	travelTimeFactor = 1.2

	// Minimum slack between arrival and pickup for a leg to be feasible.
	minBufferHours = 2.0

	earthRadiusMiles = 3958.8
	milesPerKm       = 0.621371
)

// ErrNotFound means a well-formed location has no entry in the city table.
// Callers degrade rather than fail on this.
var ErrNotFound = errors.New("location not found")

// Distance and travel figures between two locations.
type DistanceResult struct {
	Miles float64
	Km    float64
}

// Feasibility of reaching a pickup in time, with the raw figures that led
// to the verdict. Degraded marks verdicts made without coordinates for one
// or both endpoints.
type FeasibilityResult struct {
	Feasible       bool
	Degraded       bool
	DistanceMiles  float64
	HoursNeeded    float64
	HoursAvailable float64
	BufferHours    float64
}

// Resolve parses "City, ST" and returns coordinates from the city table.
//
// A city found under a different state resolves to the first name match as a
// best-effort approximation rather than failing; only a city absent from the
// table entirely yields ErrNotFound.
func Resolve(location string) (domain.Coordinates, error) {
	city, state, err := splitLocation(location)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if c, ok := cityByKey[cityKey(city, state)]; ok {
		return c, nil
	}

	if c, ok := cityByName[strings.ToLower(city)]; ok {
		return c, nil
	}

	return domain.Coordinates{}, fmt.Errorf("resolve %q: %w", location, ErrNotFound)
}

func splitLocation(location string) (city, state string, err error) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("parse location %q: %w", location, domain.ErrInvalidLocation)
	}

	city = strings.TrimSpace(parts[0])
	state = strings.TrimSpace(parts[1])
	if city == "" || state == "" {
		return "", "", fmt.Errorf("parse location %q: %w", location, domain.ErrInvalidLocation)
	}

	return city, state, nil
}

// Distance computes the great-circle (haversine) distance between two points.
func Distance(a, b domain.Coordinates) DistanceResult {
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	miles := 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))

	return DistanceResult{Miles: miles, Km: miles / milesPerKm}
}

// EstimateTravelHours converts road miles into driving hours at trucking
// speed, including the operational buffer.
func EstimateTravelHours(miles float64) float64 {
	return miles / averageSpeedMph * travelTimeFactor
}

// ProximityScore maps deadhead distance to [0, 1].
//
// Piecewise linear down to 0.1 at 500 miles, then exponential decay so the
// score approaches but never reaches zero. Monotonically non-increasing for
// all distances >= 0.
func ProximityScore(miles float64) float64 {
	switch {
	case miles <= 50:
		return 1.0
	case miles <= 150:
		return 1.0 - (miles-50)/100*0.2
	case miles <= 300:
		return 0.8 - (miles-150)/150*0.3
	case miles <= 500:
		return 0.5 - (miles-300)/200*0.4
	default:
		return 0.1 * math.Exp(-(miles-500)/500)
	}
}

// Feasibility decides whether a truck at currentLocation can make a pickup at
// pickupLocation by pickupAt, leaving at least minBufferHours of slack.
//
// Malformed location text is an error. A location missing from the city table
// is not: the verdict degrades to "feasible iff the pickup is still in the
// future" and is marked Degraded.
func Feasibility(currentLocation, pickupLocation string, now, pickupAt time.Time) (FeasibilityResult, error) {
	origin, err := Resolve(currentLocation)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return FeasibilityResult{}, err
	}
	originKnown := err == nil

	pickup, err := Resolve(pickupLocation)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return FeasibilityResult{}, err
	}
	pickupKnown := err == nil

	hoursAvailable := pickupAt.Sub(now).Hours()

	if !originKnown || !pickupKnown {
		return FeasibilityResult{
			Feasible:       pickupAt.After(now),
			Degraded:       true,
			HoursAvailable: hoursAvailable,
		}, nil
	}

	miles := Distance(origin, pickup).Miles
	hoursNeeded := EstimateTravelHours(miles)
	buffer := hoursAvailable - hoursNeeded

	return FeasibilityResult{
		Feasible:       buffer >= minBufferHours,
		DistanceMiles:  miles,
		HoursNeeded:    hoursNeeded,
		HoursAvailable: hoursAvailable,
		BufferHours:    buffer,
	}, nil
}
