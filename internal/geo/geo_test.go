package geo

import (
	"errors"
	"math"
	"testing"
	"time"

	"freight-match-service/internal/domain"
)

func TestResolveParsesCityState(t *testing.T) {
	c, err := Resolve("Chicago, IL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat == 0 || c.Lon == 0 {
		t.Fatalf("expected non-zero coordinates, got %+v", c)
	}
}

func TestResolveRejectsMalformedText(t *testing.T) {
	for _, loc := range []string{"Chicago", "", ",", "Chicago,", ", IL", "a,b,c"} {
		_, err := Resolve(loc)
		if !errors.Is(err, domain.ErrInvalidLocation) {
			t.Errorf("Resolve(%q) err = %v, want ErrInvalidLocation", loc, err)
		}
	}
}

func TestResolveStateMismatchFallsBack(t *testing.T) {
	// "Chicago, TX" has no table entry; the first name match is used as a
	// best-effort approximation, not an error.
	got, err := Resolve("Chicago, TX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, err := Resolve("Chicago, IL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != want {
		t.Fatalf("fallback = %+v, want %+v", got, want)
	}
}

func TestResolveUnknownCity(t *testing.T) {
	_, err := Resolve("Nowhereville, ZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDistanceChicagoMilwaukee(t *testing.T) {
	chi, _ := Resolve("Chicago, IL")
	mke, _ := Resolve("Milwaukee, WI")

	d := Distance(chi, mke)
	// Great-circle distance is roughly 81 miles.
	if d.Miles < 75 || d.Miles > 90 {
		t.Fatalf("miles = %.1f, want ~81", d.Miles)
	}
	if math.Abs(d.Km-d.Miles/0.621371) > 0.01 {
		t.Fatalf("km = %.2f inconsistent with miles = %.2f", d.Km, d.Miles)
	}
}

func TestDistanceZeroAtSamePoint(t *testing.T) {
	c, _ := Resolve("Denver, CO")
	if d := Distance(c, c); d.Miles != 0 {
		t.Fatalf("miles = %v, want 0", d.Miles)
	}
}

func TestEstimateTravelHours(t *testing.T) {
	// 55 miles at 55 mph plus the 20% buffer is 1.2 hours.
	if got := EstimateTravelHours(55); math.Abs(got-1.2) > 1e-9 {
		t.Fatalf("hours = %v, want 1.2", got)
	}
	if got := EstimateTravelHours(0); got != 0 {
		t.Fatalf("hours = %v, want 0", got)
	}
}

func TestProximityScoreAnchors(t *testing.T) {
	cases := []struct {
		miles float64
		want  float64
	}{
		{0, 1.0},
		{50, 1.0},
		{150, 0.8},
		{300, 0.5},
		{500, 0.1},
	}
	for _, tc := range cases {
		if got := ProximityScore(tc.miles); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ProximityScore(%v) = %v, want %v", tc.miles, got, tc.want)
		}
	}
}

func TestProximityScoreMonotonic(t *testing.T) {
	prev := ProximityScore(0)
	if prev != 1.0 {
		t.Fatalf("ProximityScore(0) = %v, want 1.0", prev)
	}

	for miles := 1.0; miles <= 3000; miles += 1 {
		cur := ProximityScore(miles)
		if cur > prev {
			t.Fatalf("score increased at %v miles: %v > %v", miles, cur, prev)
		}
		if cur <= 0 {
			t.Fatalf("score must stay positive, got %v at %v miles", cur, miles)
		}
		prev = cur
	}
}

func TestFeasibilityBufferThreshold(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// Chicago -> Milwaukee needs just under 1.8 hours including buffer.
	cases := []struct {
		name         string
		pickupIn     time.Duration
		wantFeasible bool
	}{
		{"ample time", 12 * time.Hour, true},
		{"just enough slack", 4 * time.Hour, true},
		{"inside threshold", 2 * time.Hour, false},
		{"pickup already passed", -1 * time.Hour, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Feasibility("Chicago, IL", "Milwaukee, WI", now, now.Add(tc.pickupIn))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Degraded {
				t.Fatal("verdict should not be degraded")
			}
			if res.Feasible != tc.wantFeasible {
				t.Fatalf("feasible = %v (buffer %.2fh), want %v", res.Feasible, res.BufferHours, tc.wantFeasible)
			}
			if res.Feasible != (res.BufferHours >= 2.0) {
				t.Fatalf("feasible = %v inconsistent with buffer %.2fh", res.Feasible, res.BufferHours)
			}
		})
	}
}

func TestFeasibilityNegativeBuffer(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// Pickup one hour out, travel needs ~3 hours: infeasible, buffer negative.
	res, err := Feasibility("Chicago, IL", "Indianapolis, IN", now, now.Add(1*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Feasible {
		t.Fatal("expected infeasible")
	}
	if res.BufferHours >= 0 {
		t.Fatalf("buffer = %.2f, want negative", res.BufferHours)
	}
}

func TestFeasibilityDegradesOnUnknownCity(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	res, err := Feasibility("Nowhereville, ZZ", "Chicago, IL", now, now.Add(6*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Degraded {
		t.Fatal("expected degraded verdict")
	}
	if !res.Feasible {
		t.Fatal("future pickup should be feasible under degraded verdict")
	}

	past, err := Feasibility("Nowhereville, ZZ", "Chicago, IL", now, now.Add(-1*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if past.Feasible {
		t.Fatal("past pickup should be infeasible under degraded verdict")
	}
}

func TestFeasibilityPropagatesFormatError(t *testing.T) {
	now := time.Now()
	_, err := Feasibility("Chicago", "Milwaukee, WI", now, now.Add(time.Hour))
	if !errors.Is(err, domain.ErrInvalidLocation) {
		t.Fatalf("err = %v, want ErrInvalidLocation", err)
	}
}
