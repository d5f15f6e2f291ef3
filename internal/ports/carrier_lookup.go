package ports

import "context"

// Base carrier record returned by the FMCSA docket-number lookup. The DOT
// number keys every downstream lookup.
type IdentitySnapshot struct {
	DOTNumber         string
	LegalName         string
	StatusCode        string
	AllowedToOperate  bool
	InsuranceOnFile   float64
	InsuranceRequired float64
	SafetyRating      string
}

// Operating-authority record. Statuses use the FMCSA single-letter encoding
// ("A" active, "I" inactive, "N" none).
type AuthorityRecord struct {
	CommonAuthority       string
	ContractAuthority     string
	AuthorizedForProperty bool
}

// Port: identity/authority lookup keyed by MC number.
// Fails with domain.ErrCarrierNotFound when no record exists.
type IdentityLookup interface {
	Identity(ctx context.Context, mcNumber string) (IdentitySnapshot, error)
}

// Port: operating-authority lookup keyed by DOT number.
// Zero records is a valid result; the caller treats all authorities as absent.
type AuthorityLookup interface {
	Authorities(ctx context.Context, dotNumber string) ([]AuthorityRecord, error)
}

// Port: operation-classification lookup keyed by DOT number.
// Labels are reported alongside eligibility; they never affect scoring.
type ClassificationLookup interface {
	Classifications(ctx context.Context, dotNumber string) ([]string, error)
}

// Port: cargo-capability lookup keyed by DOT number. Implementations return
// integer cargo classes in 1..30, dropping entries they cannot translate.
type CargoLookup interface {
	CargoCodes(ctx context.Context, dotNumber string) ([]int, error)
}
