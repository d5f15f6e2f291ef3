package dto

import "time"

type LoadResponse struct {
	LoadID        int       `json:"load_id"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	PickupAt      time.Time `json:"pickup_at"`
	DeliveryAt    time.Time `json:"delivery_at"`
	CargoCode     int       `json:"cargo_code"`
	Rate          float64   `json:"rate"`
	WeightLbs     float64   `json:"weight_lbs"`
	DistanceMiles float64   `json:"distance_miles"`
	Status        string    `json:"status"`
}

type ListLoadsResponse struct {
	Loads []LoadResponse `json:"loads"`
}
