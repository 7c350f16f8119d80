package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FinancialRepository defines the interface for effective-dated
// financial row persistence
type FinancialRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductLocaleFinancial, error)

	// FindEffective returns the row for the exact triple that is active
	// and whose effective window contains the given instant. Returns
	// shared.ErrNotFound when no such row exists; callers must not
	// substitute another catalog or locale.
	FindEffective(ctx context.Context, productID uuid.UUID, localeCode string, catalogID uuid.UUID, at time.Time) (*ProductLocaleFinancial, error)

	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*ProductLocaleFinancial, error)
	CountByCatalogProduct(ctx context.Context, catalogID, productID uuid.UUID) (total int64, localized int64, err error)
	Save(ctx context.Context, financial *ProductLocaleFinancial) error
}
