package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"freight-match-service/internal/api/dto"
	"freight-match-service/internal/services"
)

// AssignmentHandler records carrier-to-load assignments.
type AssignmentHandler struct {
	Assigner *services.Assigner
	Log      *zap.Logger
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssignmentRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(h.Log, w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(h.Log, w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.MatchScore < 0 || req.MatchScore > 1 {
		writeError(h.Log, w, r, http.StatusBadRequest, "match_score must be between 0 and 1")
		return
	}

	assignment, err := h.Assigner.CreateAssignment(r.Context(), req.LoadID, req.MCNumber, req.MatchScore)
	if err != nil {
		writeDomainError(h.Log, w, r, err)
		return
	}

	writeJSON(h.Log, w, r, http.StatusCreated, dto.AssignmentResponse{
		AssignmentID: assignment.AssignmentID,
		LoadID:       assignment.LoadID,
		MCNumber:     assignment.MCNumber,
		MatchScore:   assignment.MatchScore,
		Status:       string(assignment.Status),
		CreatedAt:    assignment.CreatedAt,
	})
}
