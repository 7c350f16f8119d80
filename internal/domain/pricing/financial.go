package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductLocaleFinancial is the effective-dated financial row for a
// (product, locale, catalog) triple. At most one row per triple may be
// effective at any instant; overlapping windows are rejected at the
// store level.
type ProductLocaleFinancial struct {
	shared.BaseAggregateRoot
	ProductID        uuid.UUID        `gorm:"type:uuid;not null;index:idx_financial_triple"`
	LocaleCode       string           `gorm:"type:varchar(10);not null;index:idx_financial_triple"`
	CatalogID        uuid.UUID        `gorm:"type:uuid;not null;index:idx_financial_triple"`
	CurrencyCode     string           `gorm:"type:varchar(3);not null"`
	BasePrice        decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	LocalPrice       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TaxRate          decimal.Decimal  `gorm:"type:decimal(6,4);not null;default:0"`
	TaxAmount        decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	TaxIncludedPrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
	EffectiveFrom    *time.Time       `gorm:"index"`
	EffectiveTo      *time.Time       `gorm:"index"`
	IsActive         bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductLocaleFinancial) TableName() string {
	return "product_locale_financials"
}

// NewProductLocaleFinancial creates a financial row for the triple
func NewProductLocaleFinancial(productID uuid.UUID, localeCode string, catalogID uuid.UUID, currencyCode string, basePrice decimal.Decimal) (*ProductLocaleFinancial, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if localeCode == "" {
		return nil, shared.NewDomainError("INVALID_LOCALE", "Locale code cannot be empty")
	}
	if catalogID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATALOG", "Catalog ID cannot be empty")
	}
	if len(currencyCode) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code must be a 3-letter ISO 4217 code")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	return &ProductLocaleFinancial{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		LocaleCode:        localeCode,
		CatalogID:         catalogID,
		CurrencyCode:      currencyCode,
		BasePrice:         basePrice,
		TaxRate:           decimal.Zero,
		TaxAmount:         decimal.Zero,
		IsActive:          true,
	}, nil
}

// SetLocalPrice records the locale-converted price
func (f *ProductLocaleFinancial) SetLocalPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Local price cannot be negative")
	}
	f.LocalPrice = &price
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return nil
}

// SetTax records the tax rate and the derived amounts. The tax-included
// price is computed from the local price when one exists, otherwise
// from the base price.
func (f *ProductLocaleFinancial) SetTax(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	net := f.EffectiveLocalPrice()
	f.TaxRate = rate
	f.TaxAmount = net.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	included := net.Add(f.TaxAmount)
	f.TaxIncludedPrice = &included
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return nil
}

// SetEffectiveWindow sets the row validity window
func (f *ProductLocaleFinancial) SetEffectiveWindow(from, to *time.Time) error {
	window, err := valueobject.NewEffectiveWindow(from, to)
	if err != nil {
		return shared.NewDomainError("INVALID_WINDOW", err.Error())
	}
	f.EffectiveFrom = window.From
	f.EffectiveTo = window.To
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return nil
}

// Deactivate retires the row without deleting it
func (f *ProductLocaleFinancial) Deactivate() {
	f.IsActive = false
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}

// IsEffectiveAt reports whether the row is active and inside its
// effective window at the given instant. Null bounds are unbounded.
func (f *ProductLocaleFinancial) IsEffectiveAt(t time.Time) bool {
	if !f.IsActive {
		return false
	}
	window := valueobject.EffectiveWindow{From: f.EffectiveFrom, To: f.EffectiveTo}
	return window.Contains(t)
}

// EffectiveLocalPrice returns the local price, falling back to the base
// price when no conversion has been recorded
func (f *ProductLocaleFinancial) EffectiveLocalPrice() decimal.Decimal {
	if f.LocalPrice != nil {
		return *f.LocalPrice
	}
	return f.BasePrice
}

// FinalPrice returns the tax-included price, falling back to the
// effective local price when tax has not been computed
func (f *ProductLocaleFinancial) FinalPrice() decimal.Decimal {
	if f.TaxIncludedPrice != nil {
		return *f.TaxIncludedPrice
	}
	return f.EffectiveLocalPrice()
}
