package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"apachemart/config"
	"apachemart/database/seeders"
	"apachemart/pkg/database"
	"apachemart/pkg/migration"
)

// bootDB loads config and connects the database manager, failing when the
// database cannot be reached. CLI database commands need a live connection,
// unlike the server which may start degraded.
func bootDB() (*database.Manager, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	mgr := database.NewManager()
	if err := mgr.Initialize(context.Background()); err != nil {
		return nil, err
	}
	if !mgr.IsOnline() {
		return nil, fmt.Errorf("database is unreachable, check DB_DRIVER and DATABASE_DSN")
	}
	return mgr, nil
}

// apachemart db:init
var dbInitCmd = &cobra.Command{
	Use:   "db:init",
	Short: "Create the database and tables, seeding demo data when empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := bootDB()
		if err != nil {
			return err
		}
		defer mgr.Close()
		fmt.Println("Database initialised.")
		return nil
	},
}

// apachemart migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := bootDB()
		if err != nil {
			return err
		}
		defer mgr.Close()
		fmt.Println("Running migrations…")
		return migration.New(mgr.DB()).Run()
	},
}

// apachemart migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := bootDB()
		if err != nil {
			return err
		}
		defer mgr.Close()
		fmt.Println("Rolling back last batch…")
		return migration.New(mgr.DB()).Rollback()
	},
}

// apachemart migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := bootDB()
		if err != nil {
			return err
		}
		defer mgr.Close()
		return migration.New(mgr.DB()).Status()
	},
}

// apachemart seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := bootDB()
		if err != nil {
			return err
		}
		defer mgr.Close()
		fmt.Println("Running seeders…")
		return seeders.RunAll(mgr.DB())
	},
}
