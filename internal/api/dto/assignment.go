package dto

import "time"

type CreateAssignmentRequest struct {
	LoadID     int     `json:"load_id"`
	MCNumber   string  `json:"mc_number"`
	MatchScore float64 `json:"match_score"`
}

type AssignmentResponse struct {
	AssignmentID int       `json:"assignment_id"`
	LoadID       int       `json:"load_id"`
	MCNumber     string    `json:"mc_number"`
	MatchScore   float64   `json:"match_score"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
