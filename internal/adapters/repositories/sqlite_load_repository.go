package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"freight-match-service/internal/domain"
)

// SQLite-backed implementation of the LoadRepository port.
type SqliteLoadRepository struct{ DB *sql.DB }

func NewSqliteLoadRepository(db *sql.DB) *SqliteLoadRepository {
	return &SqliteLoadRepository{DB: db}
}

const loadColumns = `
	load_id, origin, destination, pickup_at, delivery_at,
	cargo_code, rate, weight_lbs, distance_miles, status
`

// ListAvailable returns loads still open for assignment, ordered by id.
func (s *SqliteLoadRepository) ListAvailable(ctx context.Context) ([]domain.Load, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite load repository: DB is nil")
	}

	query := `
	SELECT ` + loadColumns + `
	FROM loads
	WHERE status = 'available'
	ORDER BY load_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list available loads: query loads table: %w", err)
	}
	defer rows.Close()

	loads := make([]domain.Load, 0, 32)
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, fmt.Errorf("list available loads: %w", err)
		}
		loads = append(loads, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list available loads: row iteration: %w", err)
	}

	return loads, nil
}

// Get returns one load or domain.ErrLoadNotFound.
func (s *SqliteLoadRepository) Get(ctx context.Context, loadID int) (domain.Load, error) {
	if s.DB == nil {
		return domain.Load{}, errors.New("sqlite load repository: DB is nil")
	}

	query := `
	SELECT ` + loadColumns + `
	FROM loads
	WHERE load_id = ?;
	`
	row := s.DB.QueryRowContext(ctx, query, loadID)

	l, err := scanLoad(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Load{}, fmt.Errorf("get load id=%d: %w", loadID, domain.ErrLoadNotFound)
	}
	if err != nil {
		return domain.Load{}, fmt.Errorf("get load id=%d: %w", loadID, err)
	}

	return l, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoad(row rowScanner) (domain.Load, error) {
	var (
		l                    domain.Load
		pickupAt, deliveryAt string
		status               string
	)
	err := row.Scan(
		&l.LoadID, &l.Origin, &l.Destination, &pickupAt, &deliveryAt,
		&l.CargoCode, &l.Rate, &l.WeightLbs, &l.DistanceMiles, &status,
	)
	if err != nil {
		return domain.Load{}, err
	}

	if l.PickupAt, err = time.Parse(time.RFC3339, pickupAt); err != nil {
		return domain.Load{}, fmt.Errorf("parse pickup_at: %w", err)
	}
	if l.DeliveryAt, err = time.Parse(time.RFC3339, deliveryAt); err != nil {
		return domain.Load{}, fmt.Errorf("parse delivery_at: %w", err)
	}
	l.Status = domain.LoadStatus(status)

	return l, nil
}
