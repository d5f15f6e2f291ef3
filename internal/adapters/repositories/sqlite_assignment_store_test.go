package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"freight-match-service/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// One connection so every statement sees the same in-memory database.
	db.SetMaxOpenConns(1)

	require.NoError(t, InitSchema(db))
	return db
}

func seedLoad(t *testing.T, db *sql.DB, loadID int, cargoCode int) {
	t.Helper()

	pickup := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	delivery := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)

	_, err := db.Exec(`
	INSERT INTO loads (load_id, origin, destination, pickup_at, delivery_at,
		cargo_code, rate, weight_lbs, distance_miles, status)
	VALUES (?, 'Chicago, IL', 'Dallas, TX', ?, ?, ?, 1850, 42000, 920, 'available');
	`, loadID, pickup, delivery, cargoCode)
	require.NoError(t, err)
}

func TestCreateAssignmentFlipsLoadOnce(t *testing.T) {
	db := newTestDB(t)
	seedLoad(t, db, 101, 1)

	store := NewSqliteAssignmentStore(db)
	ctx := context.Background()

	a, err := store.Create(ctx, 101, "44110", 0.93)
	require.NoError(t, err)

	assert.Positive(t, a.AssignmentID)
	assert.Equal(t, 101, a.LoadID)
	assert.Equal(t, domain.AssignmentStatusPending, a.Status)

	// Second attempt must hit the per-load invariant.
	_, err = store.Create(ctx, 101, "98765", 0.80)
	require.ErrorIs(t, err, domain.ErrDuplicateAssignment)

	// Exactly one assignment recorded, exactly one status transition.
	assignments, err := store.ListByLoad(ctx, 101)
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	load, err := NewSqliteLoadRepository(db).Get(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, domain.LoadStatusAssigned, load.Status)
}

func TestCreateAssignmentUnknownLoad(t *testing.T) {
	db := newTestDB(t)

	store := NewSqliteAssignmentStore(db)
	_, err := store.Create(context.Background(), 555, "44110", 0.5)
	require.ErrorIs(t, err, domain.ErrLoadNotFound)
}

func TestCreateAssignmentConcurrentCallers(t *testing.T) {
	db := newTestDB(t)
	seedLoad(t, db, 7, 1)

	store := NewSqliteAssignmentStore(db)
	ctx := context.Background()

	const callers = 8
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			_, err := store.Create(ctx, 7, "44110", 0.9)
			errs <- err
		}()
	}

	succeeded := 0
	for i := 0; i < callers; i++ {
		if err := <-errs; err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, domain.ErrDuplicateAssignment)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one racing caller may win the load")
}

func TestListAvailableExcludesAssigned(t *testing.T) {
	db := newTestDB(t)
	seedLoad(t, db, 1, 1)
	seedLoad(t, db, 2, 15)

	ctx := context.Background()
	store := NewSqliteAssignmentStore(db)
	repo := NewSqliteLoadRepository(db)

	_, err := store.Create(ctx, 1, "44110", 0.9)
	require.NoError(t, err)

	loads, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, loads, 1)
	assert.Equal(t, 2, loads[0].LoadID)
}

func TestGetLoadParsesTimestamps(t *testing.T) {
	db := newTestDB(t)
	seedLoad(t, db, 3, 23)

	load, err := NewSqliteLoadRepository(db).Get(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 23, load.CargoCode)
	assert.False(t, load.PickupAt.IsZero())
	assert.True(t, load.DeliveryAt.After(load.PickupAt))
}

// A closed load with no active assignment on record is rejected as
// unavailable, not reported as a duplicate.
func TestCreateAssignmentClosedLoadWithoutAssignment(t *testing.T) {
	db := newTestDB(t)
	seedLoad(t, db, 202, 1)

	_, err := db.Exec(`UPDATE loads SET status = 'assigned' WHERE load_id = 202;`)
	require.NoError(t, err)

	store := NewSqliteAssignmentStore(db)
	_, err = store.Create(context.Background(), 202, "44110", 0.75)
	require.ErrorIs(t, err, domain.ErrLoadNotAvailable)
	assert.NotErrorIs(t, err, domain.ErrDuplicateAssignment)
}
