package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CatalogRepository defines the interface for catalog persistence and
// ranked assignment resolution
type CatalogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Catalog, error)
	FindByCode(ctx context.Context, code string) (*Catalog, error)
	FindActive(ctx context.Context) ([]*Catalog, error)
	FindDefault(ctx context.Context, regionCode string, segment MarketSegment) (*Catalog, error)
	Save(ctx context.Context, catalog *Catalog) error

	// AssignCatalog resolves the query signals to a catalog and locale
	// in a single ranked lookup. Match type precedence orders candidate
	// rows, rule priority breaks ties within a match type, and catalog
	// priority breaks the remainder. Returns shared.ErrNotFound when no
	// rule matches and no default exists.
	AssignCatalog(ctx context.Context, query AssignmentQuery) (*CatalogAssignment, error)
}

// CatalogProductRepository defines the interface for catalog product
// listings
type CatalogProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CatalogProduct, error)
	FindByCatalogAndProduct(ctx context.Context, catalogID, productID uuid.UUID) (*CatalogProduct, error)
	FindByCatalogAndProducts(ctx context.Context, catalogID uuid.UUID, productIDs []uuid.UUID) ([]*CatalogProduct, error)
	FindListedAt(ctx context.Context, catalogID uuid.UUID, at time.Time) ([]*CatalogProduct, error)
	Save(ctx context.Context, product *CatalogProduct) error
}

// AssignmentRuleRepository defines the interface for ranked rule
// administration. Resolution itself goes through CatalogRepository.
type AssignmentRuleRepository interface {
	FindByCatalog(ctx context.Context, catalogID uuid.UUID) ([]*AssignmentRule, error)
	Save(ctx context.Context, rule *AssignmentRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
