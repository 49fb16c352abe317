package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"apachemart/pkg/database"
	"apachemart/pkg/metrics"
)

func gaugeManager(t *testing.T) *database.Manager {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return database.NewManagerWithDB(db)
}

func TestSyncOnlineGaugeTracksManager(t *testing.T) {
	mgr := gaugeManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncOnlineGauge(ctx, mgr, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DatabaseOnline))

	mgr.MarkOffline()
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.DatabaseOnline) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSyncOnlineGaugeStopsOnCancel(t *testing.T) {
	mgr := gaugeManager(t)
	ctx, cancel := context.WithCancel(context.Background())

	syncOnlineGauge(ctx, mgr, 5*time.Millisecond)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.DatabaseOnline))

	cancel()
	// Let the goroutine observe the cancellation before flipping the flag.
	time.Sleep(30 * time.Millisecond)
	mgr.MarkOffline()

	// The stopped ticker must leave the gauge stale at its last value.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DatabaseOnline))
}
