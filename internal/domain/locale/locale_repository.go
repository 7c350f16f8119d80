package locale

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// LocaleRepository defines the interface for locale persistence
type LocaleRepository interface {
	// FindByID finds a locale by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Locale, error)

	// FindByCode finds a locale by its canonical code
	FindByCode(ctx context.Context, code string) (*Locale, error)

	// FindActiveByCode finds an active locale by code
	FindActiveByCode(ctx context.Context, code string) (*Locale, error)

	// FindAll finds all locales matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Locale, error)

	// FindActive finds all active locales
	FindActive(ctx context.Context) ([]Locale, error)

	// Save creates or updates a locale
	Save(ctx context.Context, locale *Locale) error

	// ExistsByCode checks if a locale with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// CurrencyRepository defines the interface for currency persistence
type CurrencyRepository interface {
	// FindByCode finds a currency by its ISO 4217 code
	FindByCode(ctx context.Context, code string) (*Currency, error)

	// FindActive finds all active currencies
	FindActive(ctx context.Context) ([]Currency, error)

	// Save creates or updates a currency
	Save(ctx context.Context, currency *Currency) error
}
