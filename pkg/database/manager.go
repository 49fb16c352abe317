// Package database owns the database connection lifecycle: dialling with
// retry, bootstrapping the schema, seeding demo data, and the one-way online
// flag the repositories consult before touching the connection.
package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"apachemart/config"
	"apachemart/database/seeders"
	"apachemart/internal/schema"
	"apachemart/pkg/logger"
)

// openFunc dials the database. Swapped for a stub in tests.
type openFunc func(driver, dsn string) (*gorm.DB, error)

// Manager holds the database connection and its readiness state.
//
// Initialize is deliberately forgiving: an unreachable database leaves the
// manager offline instead of failing startup, and every repository call then
// short-circuits with apperr.ErrOffline. The flag is one-way: once a
// connectivity error flips it, only a fresh Initialize brings it back.
type Manager struct {
	driver  string
	dsn     string
	dbName  string
	retries int
	backoff time.Duration

	open   openFunc
	db     *gorm.DB
	online atomic.Bool
}

// NewManager builds a Manager from the application config.
func NewManager() *Manager {
	dsn := config.DatabaseDSN()
	if config.Platform() == "android-emulator" {
		dsn = RewriteForEmulator(dsn)
	}
	return &Manager{
		driver:  config.DatabaseDriver(),
		dsn:     dsn,
		dbName:  config.DatabaseName(),
		retries: config.ConnectRetries(),
		backoff: config.ConnectBackoff(),
		open:    open,
	}
}

// NewManagerWithDB wraps an already-open gorm handle, marked online. Used
// by tests and by tooling that manages its own connection.
func NewManagerWithDB(db *gorm.DB) *Manager {
	m := &Manager{db: db, open: open}
	m.online.Store(true)
	return m
}

// Initialize dials the database, creates the database and tables when they
// are missing, and seeds demo data into an empty catalogue.
//
// Connectivity failures are not returned: the manager logs them and stays
// offline so the application can start in degraded mode. The returned error
// is reserved for configuration mistakes such as an unknown driver.
func (m *Manager) Initialize(ctx context.Context) error {
	if _, err := buildDialector(m.driver, m.dsn); err != nil {
		return err
	}

	m.ensureDatabase(ctx)

	db, err := m.connect(ctx)
	if err != nil {
		logger.Error("database unreachable, starting offline",
			"driver", m.driver, "attempts", m.retries, "error", err)
		return nil
	}
	m.db = db

	m.ensureTables()
	m.seedIfEmpty()

	m.online.Store(true)
	logger.Info("database ready", "driver", m.driver, "database", m.dbName)
	return nil
}

// connect dials with linear backoff: attempt n sleeps n*backoff before
// retrying. Returns the last error when every attempt fails.
func (m *Manager) connect(ctx context.Context) (*gorm.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= m.retries; attempt++ {
		db, err := m.open(m.driver, m.dsn)
		if err == nil {
			return db, nil
		}
		lastErr = err
		logger.Warn("database connect failed",
			"attempt", attempt, "of", m.retries, "error", err)

		if attempt == m.retries {
			break
		}
		select {
		case <-time.After(time.Duration(attempt) * m.backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// ensureDatabase creates the target database at server level for drivers
// that need it. Best effort: a failure here just means connect will report
// the real problem.
func (m *Manager) ensureDatabase(_ context.Context) {
	var stmt string
	switch m.driver {
	case "mysql":
		stmt = fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", m.dbName)
	case "postgres":
		stmt = fmt.Sprintf("CREATE DATABASE %q", m.dbName)
	default:
		return // sqlite creates its file on open
	}

	server, err := m.open(m.driver, ServerDSN(m.driver, m.dsn))
	if err != nil {
		logger.Warn("server-level connect failed, skipping database bootstrap", "error", err)
		return
	}
	defer closeDB(server)

	if m.driver == "postgres" {
		var count int64
		server.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", m.dbName).Scan(&count)
		if count > 0 {
			return
		}
	}
	if err := server.Exec(stmt).Error; err != nil {
		logger.Warn("create database failed", "database", m.dbName, "error", err)
	}
}

// ensureTables creates any missing tables. Each table is attempted
// independently so one bad migration does not block the rest.
func (m *Manager) ensureTables() {
	for _, model := range schema.All() {
		if err := m.db.AutoMigrate(model); err != nil {
			logger.Warn("table bootstrap failed", "model", fmt.Sprintf("%T", model), "error", err)
		}
	}
}

// seedIfEmpty loads demo data the first time the application sees an empty
// catalogue. An already-populated products table disables seeding entirely.
func (m *Manager) seedIfEmpty() {
	var count int64
	if err := m.db.Model(&schema.ProductRow{}).Count(&count).Error; err != nil {
		logger.Warn("seed check failed", "error", err)
		return
	}
	if count > 0 {
		return
	}
	logger.Info("empty catalogue, seeding demo data")
	if err := seeders.RunAll(m.db); err != nil {
		logger.Warn("seeding failed", "error", err)
	}
}

// DB returns the underlying gorm handle. Nil until Initialize connects.
func (m *Manager) DB() *gorm.DB { return m.db }

// IsOnline reports whether the database is considered reachable.
func (m *Manager) IsOnline() bool { return m.online.Load() }

// MarkOffline flips the manager into degraded mode. Called by repositories
// when an operation fails with a connectivity error.
func (m *Manager) MarkOffline() {
	if m.online.CompareAndSwap(true, false) {
		logger.Warn("database marked offline")
	}
}

// Close releases the underlying connection pool.
func (m *Manager) Close() {
	if m.db != nil {
		closeDB(m.db)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
