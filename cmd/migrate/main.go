package main

import (
	"context"
	"time"

	pgMigration "roomsvc/internal/migrations/postgres"
	"roomsvc/pkg/config"
	"roomsvc/pkg/db/postgres"
)

const JobName = "postgres-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting Postgres migration job")

	db, err := postgres.Connect(ctx, postgres.Options{
		URL:          cfg.DatabaseURL,
		ConnTimeout:  cfg.DatabaseConnTimeout,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
		MaxIdleConns: cfg.DatabaseMaxIdleConns,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to connect to Postgres", "error", err)
	}
	defer db.Close()

	if err := pgMigration.RunMigration(ctx, db); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	cfg.Log.Info("Migration completed successfully")
}
