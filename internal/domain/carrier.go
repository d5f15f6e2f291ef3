package domain

import "time"

// Verified motor carrier profile assembled from the FMCSA lookups.
//
// A CarrierProfile is created on first successful verification and cached
// keyed by MC number. The cargo code set is populated lazily: it stays empty
// until a matching request needs it, and once populated it is treated as
// authoritative until the cache entry goes stale.
type CarrierProfile struct {
	MCNumber              string
	DOTNumber             string
	LegalName             string
	StatusCode            string
	AllowedToOperate      bool
	CommonAuthority       string
	ContractAuthority     string
	AuthorizedForProperty bool
	Classifications       []string
	CargoCodes            []int
	InsuranceOnFile       float64
	InsuranceRequired     float64
	SafetyRating          string
	VerifiedAt            time.Time
	CachedAt              time.Time
}

// Fresh reports whether the cached profile is still valid at the given
// instant. Staleness is a read-time judgment: stale entries are never
// deleted, only re-verified.
func (p *CarrierProfile) Fresh(now time.Time, ttl time.Duration) bool {
	if p == nil {
		return false
	}
	return now.Sub(p.CachedAt) < ttl
}

// HasCargoCode reports whether the carrier is known to haul the given
// cargo class.
func (p *CarrierProfile) HasCargoCode(code int) bool {
	for _, c := range p.CargoCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the profile. Caches hand out clones so the
// authoritative copy can only be mutated by writing back through Put.
func (p *CarrierProfile) Clone() *CarrierProfile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Classifications != nil {
		cp.Classifications = make([]string, len(p.Classifications))
		copy(cp.Classifications, p.Classifications)
	}
	if p.CargoCodes != nil {
		cp.CargoCodes = make([]int, len(p.CargoCodes))
		copy(cp.CargoCodes, p.CargoCodes)
	}
	return &cp
}
