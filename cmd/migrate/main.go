package main

import (
	"flag" // Command line flags

	"ml_billing/internal/config" // Configuration
	"ml_billing/internal/db"     // Database

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	drop := flag.Bool("drop", false, "drop the tables before migrating")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	logrus.WithFields(logrus.Fields{
		"driver": cfg.DBDriver,
		"host":   cfg.DBHost,
		"name":   cfg.DBName,
		"user":   cfg.DBUser,
	}).Info("Migrating")

	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(conn, *drop); err != nil {
		logrus.Fatal(err)
	}
}
