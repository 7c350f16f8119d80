package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingInfo is the resolved pricing for one product in one locale
// and catalog
type PricingInfo struct {
	ProductID        uuid.UUID       `json:"product_id"`
	LocaleCode       string          `json:"locale_code"`
	CatalogID        uuid.UUID       `json:"catalog_id"`
	CurrencyCode     string          `json:"currency_code"`
	BasePrice        decimal.Decimal `json:"base_price"`
	LocalPrice       decimal.Decimal `json:"local_price"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	TaxIncludedPrice decimal.Decimal `json:"tax_included_price"`
	FinalPrice       decimal.Decimal `json:"final_price"`
	FormattedPrice   string          `json:"formatted_price"`
	FormattedFinal   string          `json:"formatted_final"`
	EffectiveFrom    *time.Time      `json:"effective_from,omitempty"`
	EffectiveTo      *time.Time      `json:"effective_to,omitempty"`
}

// ListPricingRequest requests listing prices for a set of products in
// one catalog
type ListPricingRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1,max=200"`
}

// ListingItem is one product's listing price. Products without a
// catalog entry are returned marked unavailable, never omitted.
type ListingItem struct {
	ProductID         uuid.UUID        `json:"product_id"`
	Available         bool             `json:"available"`
	UnavailableReason string           `json:"unavailable_reason,omitempty"`
	ListPrice         *decimal.Decimal `json:"list_price,omitempty"`
	DiscountPercent   *decimal.Decimal `json:"discount_percent,omitempty"`
	FinalPrice        *decimal.Decimal `json:"final_price,omitempty"`
	CurrencyCode      string           `json:"currency_code,omitempty"`
}

// ListingResponse is the listing price result for a catalog
type ListingResponse struct {
	CatalogID uuid.UUID     `json:"catalog_id"`
	Items     []ListingItem `json:"items"`
}
