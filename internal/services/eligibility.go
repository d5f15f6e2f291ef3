package services

import (
	"fmt"

	"freight-match-service/internal/domain"
)

// Single eligibility condition with its verdict. The full breakdown always
// travels with the boolean so callers can report which conditions failed,
// never a collapsed message.
type EligibilityCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type Eligibility struct {
	Eligible bool               `json:"eligible"`
	Checks   []EligibilityCheck `json:"checks"`
}

// EvaluateEligibility applies the booking policy: the carrier must be active,
// allowed to operate, hold common or contract authority, and carry at least
// the required insurance. Every condition is evaluated even after one fails.
func EvaluateEligibility(p *domain.CarrierProfile) Eligibility {
	checks := []EligibilityCheck{
		{
			Name:   "carrier_active",
			Passed: p.StatusCode == "A",
			Detail: fmt.Sprintf("status code %q", p.StatusCode),
		},
		{
			Name:   "allowed_to_operate",
			Passed: p.AllowedToOperate,
			Detail: fmt.Sprintf("allowed to operate: %t", p.AllowedToOperate),
		},
		{
			Name:   "operating_authority",
			Passed: p.CommonAuthority == "A" || p.ContractAuthority == "A",
			Detail: fmt.Sprintf("common %q, contract %q", p.CommonAuthority, p.ContractAuthority),
		},
		{
			Name:   "insurance_coverage",
			Passed: p.InsuranceOnFile >= p.InsuranceRequired,
			Detail: fmt.Sprintf("on file %.0f, required %.0f", p.InsuranceOnFile, p.InsuranceRequired),
		},
	}

	eligible := true
	for _, c := range checks {
		if !c.Passed {
			eligible = false
		}
	}

	return Eligibility{Eligible: eligible, Checks: checks}
}
