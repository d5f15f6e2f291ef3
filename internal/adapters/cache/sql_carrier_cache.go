package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"freight-match-service/internal/domain"
	"freight-match-service/internal/platform/obs"
)

// Postgres-backed carrier profile cache. Same contract as the SQLite variant;
// timestamps and booleans use native column types and upserts go through
// ON CONFLICT.
type SQLCarrierCache struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewSQLCarrierCache(db *sql.DB, log *zap.Logger) *SQLCarrierCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLCarrierCache{DB: db, Log: log}
}

// Postgres DDL for the carriers table. The authority status columns are
// TEXT, not BOOLEAN: they carry the FMCSA single-letter codes ("A", "I",
// "N") straight from the domain, same as the SQLite variant.
const sqlCarrierSchema = `
	CREATE TABLE IF NOT EXISTS carriers (
		mc_number TEXT PRIMARY KEY,
		dot_number TEXT NOT NULL,
		legal_name TEXT NOT NULL,
		status_code TEXT NOT NULL,
		allowed_to_operate BOOLEAN NOT NULL,
		common_authority TEXT NOT NULL,
		contract_authority TEXT NOT NULL,
		authorized_for_property BOOLEAN NOT NULL,
		classifications JSONB NOT NULL,
		cargo_codes JSONB NOT NULL,
		insurance_on_file DOUBLE PRECISION NOT NULL,
		insurance_required DOUBLE PRECISION NOT NULL,
		safety_rating TEXT NOT NULL,
		verified_at TIMESTAMPTZ NOT NULL,
		cached_at TIMESTAMPTZ NOT NULL
	);
	`

// EnsureSchema creates the carriers table when it does not exist yet.
// Called once at startup so the cache works against a fresh database.
func (c *SQLCarrierCache) EnsureSchema(ctx context.Context) error {
	if c.DB == nil {
		return errors.New("carrier cache: db is nil")
	}

	if _, err := c.DB.ExecContext(ctx, sqlCarrierSchema); err != nil {
		return fmt.Errorf("carrier cache: ensure schema: %w", err)
	}

	return nil
}

func (c *SQLCarrierCache) Get(ctx context.Context, mcNumber string) (_ *domain.CarrierProfile, _ bool, err error) {
	defer obs.Time(ctx, c.Log, "carrier.cache.Get")(&err)

	if c.DB == nil {
		return nil, false, errors.New("carrier cache: db is nil")
	}

	q := `
	SELECT
		mc_number, dot_number, legal_name, status_code, allowed_to_operate,
		common_authority, contract_authority, authorized_for_property,
		classifications, cargo_codes, insurance_on_file, insurance_required,
		safety_rating, verified_at, cached_at
	FROM carriers
	WHERE mc_number = $1;
	`

	row := c.DB.QueryRowContext(ctx, q, strings.TrimSpace(mcNumber))

	var (
		p                    domain.CarrierProfile
		classesJSON, cargoJS []byte
	)
	err = row.Scan(
		&p.MCNumber, &p.DOTNumber, &p.LegalName, &p.StatusCode, &p.AllowedToOperate,
		&p.CommonAuthority, &p.ContractAuthority, &p.AuthorizedForProperty,
		&classesJSON, &cargoJS, &p.InsuranceOnFile, &p.InsuranceRequired,
		&p.SafetyRating, &p.VerifiedAt, &p.CachedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: scan row: %w", mcNumber, err)
	}

	if err := json.Unmarshal(classesJSON, &p.Classifications); err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: decode classifications: %w", mcNumber, err)
	}
	if err := json.Unmarshal(cargoJS, &p.CargoCodes); err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: decode cargo codes: %w", mcNumber, err)
	}

	return &p, true, nil
}

func (c *SQLCarrierCache) Put(ctx context.Context, profile *domain.CarrierProfile) (err error) {
	defer obs.Time(ctx, c.Log, "carrier.cache.Put")(&err)

	if c.DB == nil {
		return errors.New("carrier cache: db is nil")
	}
	if profile == nil || strings.TrimSpace(profile.MCNumber) == "" {
		return errors.New("carrier cache: profile must have an MC number")
	}

	classesJSON, err := json.Marshal(profile.Classifications)
	if err != nil {
		return fmt.Errorf("put carrier cache mc=%s: encode classifications: %w", profile.MCNumber, err)
	}
	cargoJSON, err := json.Marshal(profile.CargoCodes)
	if err != nil {
		return fmt.Errorf("put carrier cache mc=%s: encode cargo codes: %w", profile.MCNumber, err)
	}

	q := `
	INSERT INTO carriers (
		mc_number, dot_number, legal_name, status_code, allowed_to_operate,
		common_authority, contract_authority, authorized_for_property,
		classifications, cargo_codes, insurance_on_file, insurance_required,
		safety_rating, verified_at, cached_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (mc_number) DO UPDATE SET
		dot_number = EXCLUDED.dot_number,
		legal_name = EXCLUDED.legal_name,
		status_code = EXCLUDED.status_code,
		allowed_to_operate = EXCLUDED.allowed_to_operate,
		common_authority = EXCLUDED.common_authority,
		contract_authority = EXCLUDED.contract_authority,
		authorized_for_property = EXCLUDED.authorized_for_property,
		classifications = EXCLUDED.classifications,
		cargo_codes = EXCLUDED.cargo_codes,
		insurance_on_file = EXCLUDED.insurance_on_file,
		insurance_required = EXCLUDED.insurance_required,
		safety_rating = EXCLUDED.safety_rating,
		verified_at = EXCLUDED.verified_at,
		cached_at = EXCLUDED.cached_at;
	`

	_, err = c.DB.ExecContext(ctx, q,
		profile.MCNumber, profile.DOTNumber, profile.LegalName, profile.StatusCode,
		profile.AllowedToOperate,
		profile.CommonAuthority, profile.ContractAuthority, profile.AuthorizedForProperty,
		classesJSON, cargoJSON,
		profile.InsuranceOnFile, profile.InsuranceRequired,
		profile.SafetyRating, profile.VerifiedAt.UTC(), profile.CachedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("put carrier cache mc=%s: %w", profile.MCNumber, err)
	}

	return nil
}
