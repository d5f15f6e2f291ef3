package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"freight-match-service/internal/domain"
)

// SQLite-backed carrier profile cache over the carriers collection of the
// record store. Writes are serialized through a mutex: SQLite allows a single
// writer and the record store is shared with the assignment side.
type SqliteCarrierCache struct {
	DB *sql.DB

	mu sync.Mutex
}

func NewSqliteCarrierCache(db *sql.DB) *SqliteCarrierCache {
	return &SqliteCarrierCache{DB: db}
}

func (c *SqliteCarrierCache) Get(ctx context.Context, mcNumber string) (*domain.CarrierProfile, bool, error) {
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
	WHERE mc_number = ?;
	`

	row := c.DB.QueryRowContext(ctx, q, strings.TrimSpace(mcNumber))

	var (
		p                    domain.CarrierProfile
		allowed, authorized  int
		classesJSON, cargoJS string
		verifiedAt, cachedAt string
	)
	err := row.Scan(
		&p.MCNumber, &p.DOTNumber, &p.LegalName, &p.StatusCode, &allowed,
		&p.CommonAuthority, &p.ContractAuthority, &authorized,
		&classesJSON, &cargoJS, &p.InsuranceOnFile, &p.InsuranceRequired,
		&p.SafetyRating, &verifiedAt, &cachedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: scan row: %w", mcNumber, err)
	}

	p.AllowedToOperate = allowed == 1
	p.AuthorizedForProperty = authorized == 1

	if err := json.Unmarshal([]byte(classesJSON), &p.Classifications); err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: decode classifications: %w", mcNumber, err)
	}
	if err := json.Unmarshal([]byte(cargoJS), &p.CargoCodes); err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: decode cargo codes: %w", mcNumber, err)
	}

	if p.VerifiedAt, err = time.Parse(time.RFC3339Nano, verifiedAt); err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: parse verified_at: %w", mcNumber, err)
	}
	if p.CachedAt, err = time.Parse(time.RFC3339Nano, cachedAt); err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: parse cached_at: %w", mcNumber, err)
	}

	return &p, true, nil
}

func (c *SqliteCarrierCache) Put(ctx context.Context, profile *domain.CarrierProfile) error {
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
	INSERT OR REPLACE INTO carriers (
		mc_number, dot_number, legal_name, status_code, allowed_to_operate,
		common_authority, contract_authority, authorized_for_property,
		classifications, cargo_codes, insurance_on_file, insurance_required,
		safety_rating, verified_at, cached_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.DB.ExecContext(ctx, q,
		profile.MCNumber, profile.DOTNumber, profile.LegalName, profile.StatusCode,
		boolToInt(profile.AllowedToOperate),
		profile.CommonAuthority, profile.ContractAuthority,
		boolToInt(profile.AuthorizedForProperty),
		string(classesJSON), string(cargoJSON),
		profile.InsuranceOnFile, profile.InsuranceRequired,
		profile.SafetyRating,
		profile.VerifiedAt.UTC().Format(time.RFC3339Nano),
		profile.CachedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put carrier cache mc=%s: %w", profile.MCNumber, err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
