package dto

import "time"

type MatchRequest struct {
	MCNumber        string     `json:"mc_number"`
	CurrentLocation string     `json:"current_location"`
	AsOf            *time.Time `json:"as_of"`
}

type MatchFactorsResponse struct {
	CargoMatch     bool    `json:"cargo_match"`
	Proximity      float64 `json:"proximity"`
	Feasible       bool    `json:"feasible"`
	Degraded       bool    `json:"degraded"`
	DistanceMiles  float64 `json:"distance_miles"`
	HoursNeeded    float64 `json:"hours_needed"`
	HoursAvailable float64 `json:"hours_available"`
	BufferHours    float64 `json:"buffer_hours"`
}

type MatchResponse struct {
	Load    LoadResponse         `json:"load"`
	Score   float64              `json:"score"`
	Factors MatchFactorsResponse `json:"factors"`
}
