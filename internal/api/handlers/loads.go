package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"freight-match-service/internal/api/dto"
	"freight-match-service/internal/ports"
)

// LoadHandler exposes read-only access to the available load pool.
type LoadHandler struct {
	Repo ports.LoadRepository
	Log  *zap.Logger
}

func (h *LoadHandler) List(w http.ResponseWriter, r *http.Request) {
	loads, err := h.Repo.ListAvailable(r.Context())
	if err != nil {
		writeDomainError(h.Log, w, r, err)
		return
	}

	res := dto.ListLoadsResponse{Loads: make([]dto.LoadResponse, 0, len(loads))}
	for _, l := range loads {
		res.Loads = append(res.Loads, loadResponse(l))
	}

	writeJSON(h.Log, w, r, http.StatusOK, res)
}
