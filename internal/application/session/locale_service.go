package session

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/locale"
	"go.uber.org/zap"
)

// CountryLocator resolves an IP address to an ISO country code. It is
// an external collaborator; implementations live in infrastructure.
type CountryLocator interface {
	CountryForIP(ctx context.Context, ip string) (string, error)
}

// LocaleService handles locale resolution and IP-based country
// detection for session initialization
type LocaleService struct {
	locator        CountryLocator
	defaultCountry string
	lookupTimeout  time.Duration
	logger         *zap.Logger
}

// NewLocaleService creates a new LocaleService
func NewLocaleService(locator CountryLocator, defaultCountry string, lookupTimeout time.Duration, logger *zap.Logger) *LocaleService {
	if lookupTimeout <= 0 {
		lookupTimeout = 10 * time.Second
	}
	return &LocaleService{
		locator:        locator,
		defaultCountry: strings.ToUpper(defaultCountry),
		lookupTimeout:  lookupTimeout,
		logger:         logger,
	}
}

// ResolveLocale resolves the canonical locale code from the
// Accept-Language header and a detected country. Never fails.
func (s *LocaleService) ResolveLocale(acceptLanguage, detectedCountry string) string {
	return locale.ResolveLocale(acceptLanguage, detectedCountry)
}

// DetectCountryFromIP resolves an IP to a country code. Loopback and
// private addresses map to the configured default country without any
// network call. Lookup failures degrade to an empty string, never an
// error.
func (s *LocaleService) DetectCountryFromIP(ctx context.Context, ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || parsed.IsPrivate() {
		return s.defaultCountry
	}
	if s.locator == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	country, err := s.locator.CountryForIP(ctx, parsed.String())
	if err != nil {
		s.logger.Warn("ip country lookup failed",
			zap.String("ip", parsed.String()),
			zap.Error(err))
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(country))
}
