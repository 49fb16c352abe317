package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"apachemart/internal/schema"
)

func memoryOpen(t *testing.T) openFunc {
	t.Helper()
	return func(_, _ string) (*gorm.DB, error) {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
	}
}

func TestInitializeRetriesThenStaysOffline(t *testing.T) {
	attempts := 0
	m := &Manager{
		driver:  "sqlite",
		dsn:     "test.sqlite",
		retries: 3,
		backoff: time.Millisecond,
		open: func(_, _ string) (*gorm.DB, error) {
			attempts++
			return nil, errors.New("dial tcp: connection refused")
		},
	}

	err := m.Initialize(context.Background())
	assert.NoError(t, err) // unreachable database is not a startup error
	assert.Equal(t, 3, attempts)
	assert.False(t, m.IsOnline())
	assert.Nil(t, m.DB())
}

func TestInitializeRecoversOnLaterAttempt(t *testing.T) {
	attempts := 0
	good := memoryOpen(t)
	m := &Manager{
		driver:  "sqlite",
		dsn:     "test.sqlite",
		retries: 3,
		backoff: time.Millisecond,
		open: func(driver, dsn string) (*gorm.DB, error) {
			attempts++
			if attempts < 2 {
				return nil, errors.New("dial tcp: connection refused")
			}
			return good(driver, dsn)
		},
	}

	require.NoError(t, m.Initialize(context.Background()))
	assert.Equal(t, 2, attempts)
	assert.True(t, m.IsOnline())
	require.NotNil(t, m.DB())
}

func TestInitializeBootstrapsAndSeeds(t *testing.T) {
	m := &Manager{
		driver:  "sqlite",
		dsn:     "test.sqlite",
		retries: 1,
		backoff: time.Millisecond,
		open:    memoryOpen(t),
	}

	require.NoError(t, m.Initialize(context.Background()))
	require.True(t, m.IsOnline())

	// Tables exist and the demo catalogue is in place.
	var products int64
	require.NoError(t, m.DB().Model(&schema.ProductRow{}).Count(&products).Error)
	assert.EqualValues(t, 5, products)

	var customers int64
	require.NoError(t, m.DB().Model(&schema.CustomerRow{}).Count(&customers).Error)
	assert.EqualValues(t, 2, customers)

	var admins int64
	require.NoError(t, m.DB().Model(&schema.AdminRow{}).Count(&admins).Error)
	assert.EqualValues(t, 1, admins)
}

func TestSeedingSkipsPopulatedCatalogue(t *testing.T) {
	m := &Manager{
		driver:  "sqlite",
		dsn:     "test.sqlite",
		retries: 1,
		backoff: time.Millisecond,
		open:    memoryOpen(t),
	}
	require.NoError(t, m.Initialize(context.Background()))

	// Re-running Initialize against the same database must not duplicate
	// the seed rows.
	m2 := &Manager{
		driver:  "sqlite",
		dsn:     "test.sqlite",
		retries: 1,
		backoff: time.Millisecond,
		open:    memoryOpen(t),
	}
	require.NoError(t, m2.Initialize(context.Background()))

	var products int64
	require.NoError(t, m2.DB().Model(&schema.ProductRow{}).Count(&products).Error)
	assert.EqualValues(t, 5, products)
}

func TestUnknownDriverIsAConfigError(t *testing.T) {
	m := &Manager{driver: "oracle", dsn: "x", retries: 1, backoff: time.Millisecond, open: open}
	assert.Error(t, m.Initialize(context.Background()))
}

func TestMarkOfflineIsOneWay(t *testing.T) {
	m := &Manager{
		driver:  "sqlite",
		dsn:     "test.sqlite",
		retries: 1,
		backoff: time.Millisecond,
		open:    memoryOpen(t),
	}
	require.NoError(t, m.Initialize(context.Background()))
	require.True(t, m.IsOnline())

	m.MarkOffline()
	assert.False(t, m.IsOnline())

	// A second MarkOffline is a no-op, not a toggle.
	m.MarkOffline()
	assert.False(t, m.IsOnline())
}
