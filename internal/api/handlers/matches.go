package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"freight-match-service/internal/api/dto"
	"freight-match-service/internal/domain"
	"freight-match-service/internal/ports"
	"freight-match-service/internal/services"
)

// MatchHandler runs one matching request end to end: verify the carrier,
// make sure its cargo data is loaded, pull the available pool and score it.
type MatchHandler struct {
	Verifier *services.Verifier
	Loads    ports.LoadRepository
	Log      *zap.Logger
}

func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req dto.MatchRequest

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

	if strings.TrimSpace(req.CurrentLocation) == "" {
		writeError(h.Log, w, r, http.StatusBadRequest, "current_location is required")
		return
	}

	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	profile, err := h.Verifier.Verify(r.Context(), req.MCNumber)
	if err != nil {
		writeDomainError(h.Log, w, r, err)
		return
	}
	profile = h.Verifier.EnsureCargoCodes(r.Context(), profile)

	candidates, err := h.Loads.ListAvailable(r.Context())
	if err != nil {
		writeDomainError(h.Log, w, r, err)
		return
	}

	result, err := services.FindBestMatch(profile, candidates, req.CurrentLocation, asOf)
	if err != nil {
		writeDomainError(h.Log, w, r, err)
		return
	}
	if result == nil {
		writeError(h.Log, w, r, http.StatusNotFound, "no eligible loads")
		return
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.MatchResponse{
		Load:  loadResponse(result.Load),
		Score: result.Score,
		Factors: dto.MatchFactorsResponse{
			CargoMatch:     result.Factors.CargoMatch,
			Proximity:      result.Factors.Proximity,
			Feasible:       result.Factors.Feasible,
			Degraded:       result.Factors.Degraded,
			DistanceMiles:  result.Factors.DistanceMiles,
			HoursNeeded:    result.Factors.HoursNeeded,
			HoursAvailable: result.Factors.HoursAvailable,
			BufferHours:    result.Factors.BufferHours,
		},
	})
}

func loadResponse(l domain.Load) dto.LoadResponse {
	return dto.LoadResponse{
		LoadID:        l.LoadID,
		Origin:        l.Origin,
		Destination:   l.Destination,
		PickupAt:      l.PickupAt,
		DeliveryAt:    l.DeliveryAt,
		CargoCode:     l.CargoCode,
		Rate:          l.Rate,
		WeightLbs:     l.WeightLbs,
		DistanceMiles: l.DistanceMiles,
		Status:        string(l.Status),
	}
}
