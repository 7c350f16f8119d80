package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPLocator_CountryForIP(t *testing.T) {
	t.Run("resolves country from lookup service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/203.0.113.9", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"country_code":"ca"}`))
		}))
		defer server.Close()

		locator, err := NewHTTPLocator(server.URL, time.Second)
		require.NoError(t, err)

		country, err := locator.CountryForIP(context.Background(), "203.0.113.9")

		assert.NoError(t, err)
		assert.Equal(t, "CA", country)
	})

	t.Run("fails on non-success status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		locator, err := NewHTTPLocator(server.URL, time.Second)
		require.NoError(t, err)

		country, err := locator.CountryForIP(context.Background(), "203.0.113.9")

		assert.ErrorIs(t, err, ErrLookupFailed)
		assert.Empty(t, country)
	})

	t.Run("fails on unusable country code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"country_code":"unknown"}`))
		}))
		defer server.Close()

		locator, err := NewHTTPLocator(server.URL, time.Second)
		require.NoError(t, err)

		country, err := locator.CountryForIP(context.Background(), "203.0.113.9")

		assert.ErrorIs(t, err, ErrLookupFailed)
		assert.Empty(t, country)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		locator, err := NewHTTPLocator(server.URL, time.Second)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err = locator.CountryForIP(ctx, "203.0.113.9")

		assert.Error(t, err)
	})

	t.Run("rejects empty endpoint", func(t *testing.T) {
		locator, err := NewHTTPLocator("", time.Second)

		assert.Error(t, err)
		assert.Nil(t, locator)
	})
}
