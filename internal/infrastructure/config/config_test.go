package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STOREFRONT_APP_NAME":               os.Getenv("STOREFRONT_APP_NAME"),
		"STOREFRONT_APP_ENV":                os.Getenv("STOREFRONT_APP_ENV"),
		"STOREFRONT_APP_PORT":               os.Getenv("STOREFRONT_APP_PORT"),
		"STOREFRONT_DATABASE_HOST":          os.Getenv("STOREFRONT_DATABASE_HOST"),
		"STOREFRONT_DATABASE_PASSWORD":      os.Getenv("STOREFRONT_DATABASE_PASSWORD"),
		"STOREFRONT_LOCALE_DEFAULT_COUNTRY": os.Getenv("STOREFRONT_LOCALE_DEFAULT_COUNTRY"),
		"STOREFRONT_CACHE_ASSIGNMENT_TTL":   os.Getenv("STOREFRONT_CACHE_ASSIGNMENT_TTL"),
		"STOREFRONT_LOG_LEVEL":              os.Getenv("STOREFRONT_LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storefront", cfg.Database.DBName)
		assert.Equal(t, "US", cfg.Locale.DefaultCountry)
		assert.Equal(t, 5*time.Minute, cfg.Cache.AssignmentTTL)
		assert.Equal(t, time.Minute, cfg.Cache.ListingTTL)
		assert.Equal(t, 10*time.Second, cfg.GeoIP.Timeout)
		assert.Equal(t, 2*time.Second, cfg.Localization.PollingInterval)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_PORT", "9090")
		os.Setenv("STOREFRONT_DATABASE_HOST", "db.internal")
		os.Setenv("STOREFRONT_DATABASE_PASSWORD", "secret")
		os.Setenv("STOREFRONT_LOCALE_DEFAULT_COUNTRY", "CA")
		os.Setenv("STOREFRONT_CACHE_ASSIGNMENT_TTL", "90s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "secret", cfg.Database.Password)
		assert.Equal(t, "CA", cfg.Locale.DefaultCountry)
		assert.Equal(t, 90*time.Second, cfg.Cache.AssignmentTTL)
	})

	t.Run("invalid log level rejected", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_LOG_LEVEL", "verbose")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid default country rejected", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_LOCALE_DEFAULT_COUNTRY", "USA")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		DBName:   "storefront",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=storefront sslmode=disable", cfg.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}
