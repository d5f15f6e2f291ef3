// Package services holds the business logic: carrier verification,
// eligibility evaluation, load matching and assignment recording. Services
// depend on ports, never on concrete adapters.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"freight-match-service/internal/domain"
	"freight-match-service/internal/ports"
)

var mcNumberPattern = regexp.MustCompile(`^[0-9]{1,7}$`)

// NormalizeMCNumber strips an optional MC prefix and surrounding whitespace,
// then validates the remaining 1-7 decimal digits. Validation happens before
// any network call is made.
func NormalizeMCNumber(raw string) (string, error) {
	mc := strings.TrimSpace(raw)
	upper := strings.ToUpper(mc)
	if strings.HasPrefix(upper, "MC") {
		mc = strings.TrimSpace(strings.TrimLeft(mc[2:], "-"))
	}

	if !mcNumberPattern.MatchString(mc) {
		return "", fmt.Errorf("normalize %q: %w", raw, domain.ErrInvalidMCNumber)
	}

	return mc, nil
}

// Verifier assembles carrier profiles from the three FMCSA lookups, fronted
// by the profile cache.
type Verifier struct {
	identity       ports.IdentityLookup
	authority      ports.AuthorityLookup
	classification ports.ClassificationLookup
	cargo          ports.CargoLookup
	cache          ports.CarrierCache

	ttl time.Duration
	log *zap.Logger
	now func() time.Time
}

func NewVerifier(
	identity ports.IdentityLookup,
	authority ports.AuthorityLookup,
	classification ports.ClassificationLookup,
	cargo ports.CargoLookup,
	cache ports.CarrierCache,
	ttl time.Duration,
	log *zap.Logger,
) *Verifier {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Verifier{
		identity:       identity,
		authority:      authority,
		classification: classification,
		cargo:          cargo,
		cache:          cache,
		ttl:            ttl,
		log:            log,
		now:            time.Now,
	}
}

// Verify returns the carrier profile for the given MC number, serving a
// fresh cached copy when one exists and otherwise re-assembling the profile
// from the upstream lookups.
//
// The identity lookup runs first since it yields the DOT number every other
// lookup is keyed by; the authority and classification lookups then run
// concurrently and are jointly awaited. Any upstream failure aborts the
// attempt and leaves the cache untouched.
func (v *Verifier) Verify(ctx context.Context, rawMCNumber string) (*domain.CarrierProfile, error) {
	mc, err := NormalizeMCNumber(rawMCNumber)
	if err != nil {
		return nil, fmt.Errorf("verify carrier: %w", err)
	}

	now := v.now()

	cached, ok, err := v.cache.Get(ctx, mc)
	if err != nil {
		return nil, fmt.Errorf("verify carrier mc=%s: read cache: %w", mc, err)
	}
	if ok && cached.Fresh(now, v.ttl) {
		v.log.Debug("carrier cache hit", zap.String("mc", mc))
		return cached, nil
	}

	snap, err := v.identity.Identity(ctx, mc)
	if err != nil {
		if errors.Is(err, domain.ErrCarrierNotFound) {
			return nil, fmt.Errorf("verify carrier mc=%s: %w", mc, err)
		}
		return nil, fmt.Errorf("verify carrier mc=%s: identity lookup: %w: %v", mc, domain.ErrUpstream, err)
	}

	var (
		authorities []ports.AuthorityRecord
		labels      []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authorities, err = v.authority.Authorities(gctx, snap.DOTNumber)
		if err != nil {
			return fmt.Errorf("authority lookup: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		labels, err = v.classification.Classifications(gctx, snap.DOTNumber)
		if err != nil {
			return fmt.Errorf("classification lookup: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("verify carrier mc=%s: %w: %v", mc, domain.ErrUpstream, err)
	}

	profile := &domain.CarrierProfile{
		MCNumber:          mc,
		DOTNumber:         snap.DOTNumber,
		LegalName:         snap.LegalName,
		StatusCode:        snap.StatusCode,
		AllowedToOperate:  snap.AllowedToOperate,
		Classifications:   labels,
		InsuranceOnFile:   snap.InsuranceOnFile,
		InsuranceRequired: snap.InsuranceRequired,
		SafetyRating:      snap.SafetyRating,
		VerifiedAt:        now,
		CachedAt:          now,
	}
	if len(authorities) > 0 {
		profile.CommonAuthority = authorities[0].CommonAuthority
		profile.ContractAuthority = authorities[0].ContractAuthority
		profile.AuthorizedForProperty = authorities[0].AuthorizedForProperty
	}

	if err := v.cache.Put(ctx, profile); err != nil {
		return nil, fmt.Errorf("verify carrier mc=%s: write cache: %w", mc, err)
	}

	v.log.Info("carrier verified",
		zap.String("mc", mc),
		zap.String("dot", snap.DOTNumber),
		zap.String("status", snap.StatusCode),
	)

	return profile, nil
}

// EnsureCargoCodes lazily populates the profile's cargo capability set.
//
// Already-populated sets are authoritative until the cache entry goes stale,
// so the lookup only fires when the set is empty. The merged profile is
// written back through Put with all other fields carried forward. A failed
// lookup is non-fatal: matching proceeds under the benefit-of-the-doubt
// policy with an empty set.
func (v *Verifier) EnsureCargoCodes(ctx context.Context, profile *domain.CarrierProfile) *domain.CarrierProfile {
	if profile == nil || len(profile.CargoCodes) > 0 {
		return profile
	}

	codes, err := v.cargo.CargoCodes(ctx, profile.DOTNumber)
	if err != nil {
		v.log.Warn("cargo lookup failed, matching without cargo data",
			zap.String("mc", profile.MCNumber),
			zap.Error(err),
		)
		return profile
	}
	if len(codes) == 0 {
		return profile
	}

	merged := profile.Clone()
	merged.CargoCodes = codes
	merged.CachedAt = v.now()

	if err := v.cache.Put(ctx, merged); err != nil {
		v.log.Warn("cargo write-back failed",
			zap.String("mc", profile.MCNumber),
			zap.Error(err),
		)
	}

	return merged
}
