package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the lookup service
const maxResponseSize = 64 * 1024

// ErrLookupFailed indicates the lookup service returned a non-success status
var ErrLookupFailed = errors.New("geoip: lookup failed")

// HTTPLocator resolves IP addresses to country codes using an external
// HTTP geolocation service. The endpoint receives the IP as a path
// segment and responds with JSON carrying a country_code field.
type HTTPLocator struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// HTTPLocatorOption configures an HTTPLocator
type HTTPLocatorOption func(*HTTPLocator)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) HTTPLocatorOption {
	return func(l *HTTPLocator) {
		l.httpClient = client
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) HTTPLocatorOption {
	return func(l *HTTPLocator) {
		l.logger = logger
	}
}

// NewHTTPLocator creates a new HTTPLocator for the given endpoint
func NewHTTPLocator(endpoint string, timeout time.Duration, opts ...HTTPLocatorOption) (*HTTPLocator, error) {
	if endpoint == "" {
		return nil, errors.New("geoip: endpoint cannot be empty")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("geoip: invalid endpoint: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	locator := &HTTPLocator{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(locator)
	}

	return locator, nil
}

type lookupResponse struct {
	CountryCode string `json:"country_code"`
}

// CountryForIP resolves the IP to an ISO 3166-1 alpha-2 country code
func (l *HTTPLocator) CountryForIP(ctx context.Context, ip string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint+"/"+url.PathEscape(ip), nil)
	if err != nil {
		return "", fmt.Errorf("geoip: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geoip: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("GeoIP lookup returned non-success status",
			zap.String("ip", ip),
			zap.Int("status", resp.StatusCode),
		)
		return "", fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("geoip: failed to read response: %w", err)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("geoip: failed to parse response: %w", err)
	}

	country := strings.ToUpper(strings.TrimSpace(parsed.CountryCode))
	if len(country) != 2 {
		return "", fmt.Errorf("%w: unusable country code %q", ErrLookupFailed, parsed.CountryCode)
	}

	return country, nil
}
