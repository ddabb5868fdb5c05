package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oaksoe19620-creator/Webapp/internal/config"
	"github.com/oaksoe19620-creator/Webapp/internal/store"
)

// Schema and sample data are applied here, outside the request path. The
// server never seeds on its own.
func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	migrationsDir := migrateCmd.String("dir", "migrations", "Directory containing .sql migration files")

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)

	if len(os.Args) < 2 {
		fmt.Println("expected 'migrate' or 'seed' subcommand")
		os.Exit(1)
	}

	_ = godotenv.Load()

	switch os.Args[1] {
	case "migrate":
		migrateCmd.Parse(os.Args[2:])
		runMigrate(*migrationsDir)
	case "seed":
		seedCmd.Parse(os.Args[2:])
		runSeed()
	default:
		fmt.Println("expected 'migrate' or 'seed' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func runMigrate(dir string) {
	db := openStore()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	if err := db.Migrate(dir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully.")
}

func runSeed() {
	db := openStore()

	// Ensure tables exist if running seed before the server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	if err := db.SeedProducts(); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	fmt.Println("Sample products seeded.")
}
