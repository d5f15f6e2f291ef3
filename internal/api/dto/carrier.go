package dto

import "time"

type EligibilityCheckResponse struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type VerifyCarrierResponse struct {
	MCNumber          string                     `json:"mc_number"`
	DOTNumber         string                     `json:"dot_number"`
	LegalName         string                     `json:"legal_name"`
	StatusCode        string                     `json:"status_code"`
	AllowedToOperate  bool                       `json:"allowed_to_operate"`
	CommonAuthority   string                     `json:"common_authority"`
	ContractAuthority string                     `json:"contract_authority"`
	Classifications   []string                   `json:"classifications"`
	CargoCodes        []int                      `json:"cargo_codes"`
	InsuranceOnFile   float64                    `json:"insurance_on_file"`
	InsuranceRequired float64                    `json:"insurance_required"`
	SafetyRating      string                     `json:"safety_rating"`
	VerifiedAt        time.Time                  `json:"verified_at"`
	Eligible          bool                       `json:"eligible"`
	Checks            []EligibilityCheckResponse `json:"checks"`
}
