package domain

import "time"

type LoadStatus string

const (
	LoadStatusAvailable LoadStatus = "available"
	LoadStatusAssigned  LoadStatus = "assigned"
)

// A freight load posted for assignment.
//
// Each load carries a single mandatory cargo class (one of the FMCSA 1..30
// codes), not a set. A load transitions available -> assigned exactly once,
// when an assignment is recorded against it.
type Load struct {
	LoadID        int
	Origin        string
	Destination   string
	PickupAt      time.Time
	DeliveryAt    time.Time
	CargoCode     int
	Rate          float64
	WeightLbs     float64
	DistanceMiles float64
	Status        LoadStatus
}
