package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"freight-match-service/internal/api/dto"
	"freight-match-service/internal/services"
)

// CarrierHandler exposes carrier verification with the eligibility breakdown.
type CarrierHandler struct {
	Verifier *services.Verifier
	Log      *zap.Logger
}

func (h *CarrierHandler) Verify(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Verifier.Verify(r.Context(), chi.URLParam(r, "mcNumber"))
	if err != nil {
		writeDomainError(h.Log, w, r, err)
		return
	}

	eligibility := services.EvaluateEligibility(profile)

	checks := make([]dto.EligibilityCheckResponse, 0, len(eligibility.Checks))
	for _, c := range eligibility.Checks {
		checks = append(checks, dto.EligibilityCheckResponse{
			Name:   c.Name,
			Passed: c.Passed,
			Detail: c.Detail,
		})
	}

	writeJSON(h.Log, w, r, http.StatusOK, dto.VerifyCarrierResponse{
		MCNumber:          profile.MCNumber,
		DOTNumber:         profile.DOTNumber,
		LegalName:         profile.LegalName,
		StatusCode:        profile.StatusCode,
		AllowedToOperate:  profile.AllowedToOperate,
		CommonAuthority:   profile.CommonAuthority,
		ContractAuthority: profile.ContractAuthority,
		Classifications:   profile.Classifications,
		CargoCodes:        profile.CargoCodes,
		InsuranceOnFile:   profile.InsuranceOnFile,
		InsuranceRequired: profile.InsuranceRequired,
		SafetyRating:      profile.SafetyRating,
		VerifiedAt:        profile.VerifiedAt,
		Eligible:          eligibility.Eligible,
		Checks:            checks,
	})
}
