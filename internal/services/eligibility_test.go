package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight-match-service/internal/domain"
)

func eligibleProfile() *domain.CarrierProfile {
	return &domain.CarrierProfile{
		MCNumber:          "44110",
		StatusCode:        "A",
		AllowedToOperate:  true,
		CommonAuthority:   "A",
		ContractAuthority: "N",
		InsuranceOnFile:   1000,
		InsuranceRequired: 750,
	}
}

func checkByName(t *testing.T, e Eligibility, name string) EligibilityCheck {
	t.Helper()
	for _, c := range e.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q", name)
	return EligibilityCheck{}
}

func TestEligibleWhenAllConditionsHold(t *testing.T) {
	e := EvaluateEligibility(eligibleProfile())

	assert.True(t, e.Eligible)
	require.Len(t, e.Checks, 4)
	for _, c := range e.Checks {
		assert.True(t, c.Passed, "check %s", c.Name)
	}
}

func TestContractAuthorityAloneSuffices(t *testing.T) {
	p := eligibleProfile()
	p.CommonAuthority = "I"
	p.ContractAuthority = "A"

	e := EvaluateEligibility(p)
	assert.True(t, e.Eligible)
}

func TestSingleFailingConditionBlocksEligibility(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*domain.CarrierProfile)
		failCheck string
	}{
		{
			name:      "inactive status",
			mutate:    func(p *domain.CarrierProfile) { p.StatusCode = "I" },
			failCheck: "carrier_active",
		},
		{
			name:      "not allowed to operate",
			mutate:    func(p *domain.CarrierProfile) { p.AllowedToOperate = false },
			failCheck: "allowed_to_operate",
		},
		{
			name: "no active authority",
			mutate: func(p *domain.CarrierProfile) {
				p.CommonAuthority = "I"
				p.ContractAuthority = "I"
			},
			failCheck: "operating_authority",
		},
		{
			name:      "insufficient insurance",
			mutate:    func(p *domain.CarrierProfile) { p.InsuranceOnFile = 500 },
			failCheck: "insurance_coverage",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := eligibleProfile()
			tc.mutate(p)

			e := EvaluateEligibility(p)
			assert.False(t, e.Eligible)

			// The full breakdown is always present; only the mutated
			// condition fails.
			require.Len(t, e.Checks, 4)
			assert.False(t, checkByName(t, e, tc.failCheck).Passed)
			for _, c := range e.Checks {
				if c.Name != tc.failCheck {
					assert.True(t, c.Passed, "check %s", c.Name)
				}
			}
		})
	}
}

func TestInsuranceComparisonIsNumeric(t *testing.T) {
	p := eligibleProfile()
	p.InsuranceOnFile = 750
	p.InsuranceRequired = 750

	e := EvaluateEligibility(p)
	assert.True(t, checkByName(t, e, "insurance_coverage").Passed, "equal coverage satisfies the requirement")
}
