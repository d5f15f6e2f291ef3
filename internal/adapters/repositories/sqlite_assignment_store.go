package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"freight-match-service/internal/domain"
)

// SQLite-backed implementation of the AssignmentStore port.
//
// Create is the one genuinely concurrency-sensitive mutation in the system:
// the duplicate check, the assignment insert and the load status flip must
// land together or not at all. A store-level mutex serializes the
// read-check-write sequence and a single transaction makes it atomic, so two
// racing calls for one load can never both succeed.
type SqliteAssignmentStore struct {
	DB *sql.DB

	mu sync.Mutex
}

func NewSqliteAssignmentStore(db *sql.DB) *SqliteAssignmentStore {
	return &SqliteAssignmentStore{DB: db}
}

func (s *SqliteAssignmentStore) Create(ctx context.Context, loadID int, mcNumber string, matchScore float64) (domain.Assignment, error) {
	if s.DB == nil {
		return domain.Assignment{}, errors.New("sqlite assignment store: DB is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("create assignment: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM loads WHERE load_id = ?;`, loadID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Assignment{}, fmt.Errorf("create assignment: load_id=%d: %w", loadID, domain.ErrLoadNotFound)
	}
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("create assignment: read load_id=%d: %w", loadID, err)
	}

	var active int
	err = tx.QueryRowContext(ctx, `
	SELECT COUNT(*)
	FROM assignments
	WHERE load_id = ? AND status IN ('pending', 'confirmed');
	`, loadID).Scan(&active)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("create assignment: count active for load_id=%d: %w", loadID, err)
	}

	if active > 0 {
		return domain.Assignment{}, fmt.Errorf("create assignment: load_id=%d: %w", loadID, domain.ErrDuplicateAssignment)
	}
	if domain.LoadStatus(status) != domain.LoadStatusAvailable {
		return domain.Assignment{}, fmt.Errorf("create assignment: load_id=%d status=%s: %w", loadID, status, domain.ErrLoadNotAvailable)
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
	INSERT INTO assignments (load_id, mc_number, match_score, status, created_at)
	VALUES (?, ?, ?, 'pending', ?);
	`, loadID, mcNumber, matchScore, now.Format(time.RFC3339Nano))
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("create assignment: insert for load_id=%d: %w", loadID, err)
	}

	assignmentID, err := res.LastInsertId()
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("create assignment: last insert id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE loads SET status = 'assigned' WHERE load_id = ?;`, loadID); err != nil {
		return domain.Assignment{}, fmt.Errorf("create assignment: flip load_id=%d: %w", loadID, err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Assignment{}, fmt.Errorf("create assignment: commit tx: %w", err)
	}

	return domain.Assignment{
		AssignmentID: int(assignmentID),
		LoadID:       loadID,
		MCNumber:     mcNumber,
		MatchScore:   matchScore,
		Status:       domain.AssignmentStatusPending,
		CreatedAt:    now,
	}, nil
}

func (s *SqliteAssignmentStore) ListByLoad(ctx context.Context, loadID int) ([]domain.Assignment, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite assignment store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT assignment_id, load_id, mc_number, match_score, status, created_at
	FROM assignments
	WHERE load_id = ?
	ORDER BY assignment_id;
	`, loadID)
	if err != nil {
		return nil, fmt.Errorf("list assignments load_id=%d: %w", loadID, err)
	}
	defer rows.Close()

	assignments := make([]domain.Assignment, 0, 4)
	for rows.Next() {
		var (
			a         domain.Assignment
			status    string
			createdAt string
		)
		if err := rows.Scan(&a.AssignmentID, &a.LoadID, &a.MCNumber, &a.MatchScore, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("list assignments load_id=%d: scan row: %w", loadID, err)
		}

		a.Status = domain.AssignmentStatus(status)
		if a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("list assignments load_id=%d: parse created_at: %w", loadID, err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments load_id=%d: row iteration: %w", loadID, err)
	}

	return assignments, nil
}
