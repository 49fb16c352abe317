package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"apachemart/config"
)

func TestDatabaseDefaults(t *testing.T) {
	assert.Equal(t, "sqlite", config.DatabaseDriver())
	assert.Equal(t, "apache_db", config.DatabaseName())
	assert.NotEmpty(t, config.DatabaseDSN())
}

func TestRetryDefaults(t *testing.T) {
	assert.Equal(t, 3, config.ConnectRetries())
	assert.Equal(t, 2*time.Second, config.ConnectBackoff())
}

func TestGetFallback(t *testing.T) {
	assert.Equal(t, "fallback", config.Get("DEFINITELY_NOT_SET_ANYWHERE", "fallback"))
	assert.Equal(t, "8080", config.AppPort())
}
