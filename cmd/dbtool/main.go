package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	_ "modernc.org/sqlite"

	"freight-match-service/internal/adapters/repositories"
)

// dbtool prepares a local database outside the server process: it creates the
// schema and optionally loads a seed file of loads.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := flag.String("db", "data/app.db", "path to the sqlite database file")
	seedPath := flag.String("seed", "", "path to a JSON seed file of loads (skipped when empty)")
	flag.Parse()

	store, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("open sqlite database %q: %v", *dbPath, err)
	}
	defer store.Close()

	if err := run(store, *seedPath); err != nil {
		log.Fatal(err)
	}
}

func run(store *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(store); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	if seedPath == "" {
		return nil
	}

	log.Println("Seeding loads...")
	if err := repositories.SeedFromJSON(store, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
