package main

import (
	"log"
	"log/slog"

	"campusnet/internal/config"
	"campusnet/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database migration...")

	db, err := database.NewMySQLDB(
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	slog.Info("Running GORM auto-migration...")

	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	slog.Info("Database migration completed successfully!")
}
