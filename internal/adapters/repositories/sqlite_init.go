// Package repositories implements the load and assignment sides of the
// record store on SQLite, plus schema init and load seeding.
package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the record store schema: the loads, carriers and assignments
// collections.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLoadsQuery := `
	CREATE TABLE IF NOT EXISTS loads (
		load_id INTEGER PRIMARY KEY,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		pickup_at TEXT NOT NULL,
		delivery_at TEXT NOT NULL,
		cargo_code INTEGER NOT NULL,
		rate REAL NOT NULL,
		weight_lbs REAL NOT NULL,
		distance_miles REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'available'
	);
	`

	createCarriersQuery := `
	CREATE TABLE IF NOT EXISTS carriers (
		mc_number TEXT PRIMARY KEY,
		dot_number TEXT NOT NULL,
		legal_name TEXT NOT NULL,
		status_code TEXT NOT NULL,
		allowed_to_operate INTEGER NOT NULL,
		common_authority TEXT NOT NULL,
		contract_authority TEXT NOT NULL,
		authorized_for_property INTEGER NOT NULL,
		classifications TEXT NOT NULL,
		cargo_codes TEXT NOT NULL,
		insurance_on_file REAL NOT NULL,
		insurance_required REAL NOT NULL,
		safety_rating TEXT NOT NULL,
		verified_at TEXT NOT NULL,
		cached_at TEXT NOT NULL
	);
	`

	createAssignmentsQuery := `
	CREATE TABLE IF NOT EXISTS assignments (
		assignment_id INTEGER PRIMARY KEY AUTOINCREMENT,
		load_id INTEGER NOT NULL,
		mc_number TEXT NOT NULL,
		match_score REAL NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_assignments_load_status
	ON assignments(load_id, status);
	`

	statements := []string{
		createLoadsQuery,
		createCarriersQuery,
		createAssignmentsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type LoadSeed struct {
	LoadID        int     `json:"load_id"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	PickupAt      string  `json:"pickup_at"`
	DeliveryAt    string  `json:"delivery_at"`
	CargoCode     int     `json:"cargo_code"`
	Rate          float64 `json:"rate"`
	WeightLbs     float64 `json:"weight_lbs"`
	DistanceMiles float64 `json:"distance_miles"`
}

// Populate the load pool from a JSON file. Seeded loads start available.
// Rows whose load_id already exists are left untouched, so re-seeding on a
// restart never reopens a load that has been assigned in the meantime.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed loads: read %q: %w", jsonPath, err)
	}

	var data []LoadSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed loads: parse json: %w", err)
	}

	for i, item := range data {
		if item.LoadID <= 0 {
			return fmt.Errorf("seed loads: invalid load_id at index %d: %d", i+1, item.LoadID)
		}
		if strings.TrimSpace(item.Origin) == "" || strings.TrimSpace(item.Destination) == "" {
			return fmt.Errorf("seed loads: load_id=%d: origin and destination cannot be empty", item.LoadID)
		}
		if item.CargoCode < 1 || item.CargoCode > 30 {
			return fmt.Errorf("seed loads: load_id=%d: cargo_code %d outside 1..30", item.LoadID, item.CargoCode)
		}
		if _, err := time.Parse(time.RFC3339, item.PickupAt); err != nil {
			return fmt.Errorf("seed loads: load_id=%d: parse pickup_at: %w", item.LoadID, err)
		}
		if _, err := time.Parse(time.RFC3339, item.DeliveryAt); err != nil {
			return fmt.Errorf("seed loads: load_id=%d: parse delivery_at: %w", item.LoadID, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed loads: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR IGNORE INTO loads (
		load_id, origin, destination, pickup_at, delivery_at,
		cargo_code, rate, weight_lbs, distance_miles, status
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'available');
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed loads: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range data {
		_, err := stmt.Exec(
			l.LoadID, strings.TrimSpace(l.Origin), strings.TrimSpace(l.Destination),
			l.PickupAt, l.DeliveryAt, l.CargoCode, l.Rate, l.WeightLbs, l.DistanceMiles,
		)
		if err != nil {
			return fmt.Errorf("seed loads: insert load_id=%d: %w", l.LoadID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed loads: commit tx: %w", err)
	}

	return nil
}
