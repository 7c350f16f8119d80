package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CatalogProduct is the membership of a product in a catalog, carrying
// the catalog-scoped price adjustments. The effective selling price is
// derived, never stored: override wins over discount, discount over the
// base price.
type CatalogProduct struct {
	shared.BaseEntity
	CatalogID       uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_catalog_product"`
	ProductID       uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_catalog_product"`
	BasePrice       valueobject.Money  `gorm:"type:decimal(12,2);not null"`
	OverridePrice   *valueobject.Money `gorm:"type:decimal(12,2)"`
	DiscountPercent *decimal.Decimal   `gorm:"type:decimal(5,2)"`
	IsListed        bool               `gorm:"not null;default:true"`
	EffectiveFrom   *time.Time         `gorm:"index"`
	EffectiveTo     *time.Time         `gorm:"index"`
}

// TableName returns the table name for GORM
func (CatalogProduct) TableName() string {
	return "catalog_products"
}

// NewCatalogProduct creates a product listing inside a catalog
func NewCatalogProduct(catalogID, productID uuid.UUID, basePrice valueobject.Money) (*CatalogProduct, error) {
	if catalogID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATALOG", "Catalog ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	return &CatalogProduct{
		BaseEntity: shared.NewBaseEntity(),
		CatalogID:  catalogID,
		ProductID:  productID,
		BasePrice:  basePrice,
		IsListed:   true,
	}, nil
}

// SetOverridePrice fixes the selling price regardless of any discount
func (cp *CatalogProduct) SetOverridePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Override price cannot be negative")
	}
	if price.Currency() != cp.BasePrice.Currency() {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Override price currency must match the base price currency")
	}
	cp.OverridePrice = &price
	cp.UpdatedAt = time.Now()
	return nil
}

// ClearOverridePrice removes the price override
func (cp *CatalogProduct) ClearOverridePrice() {
	cp.OverridePrice = nil
	cp.UpdatedAt = time.Now()
}

// SetDiscount sets a percentage discount on the base price
func (cp *CatalogProduct) SetDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100 percent")
	}
	cp.DiscountPercent = &percent
	cp.UpdatedAt = time.Now()
	return nil
}

// ClearDiscount removes the discount
func (cp *CatalogProduct) ClearDiscount() {
	cp.DiscountPercent = nil
	cp.UpdatedAt = time.Now()
}

// Delist hides the product from the catalog without removing the row
func (cp *CatalogProduct) Delist() {
	cp.IsListed = false
	cp.UpdatedAt = time.Now()
}

// Relist makes the product visible in the catalog again
func (cp *CatalogProduct) Relist() {
	cp.IsListed = true
	cp.UpdatedAt = time.Now()
}

// FinalPrice computes the effective selling price. The override price,
// when set, replaces the base price as the discount base; the discount
// then applies to whichever base is in effect.
func (cp *CatalogProduct) FinalPrice() valueobject.Money {
	base := cp.BasePrice
	if cp.OverridePrice != nil {
		base = *cp.OverridePrice
	}
	if cp.DiscountPercent != nil {
		return base.ApplyDiscount(*cp.DiscountPercent).Round(2)
	}
	return base
}

// IsAvailableAt reports whether the listing is visible and inside its
// effective window at the given instant
func (cp *CatalogProduct) IsAvailableAt(t time.Time) bool {
	if !cp.IsListed {
		return false
	}
	window := valueobject.EffectiveWindow{From: cp.EffectiveFrom, To: cp.EffectiveTo}
	return window.Contains(t)
}
