package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/locale"
	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ListingCache is a short-TTL cache for per-catalog listing results.
// Listing prices change more often than catalog assignments, so the
// TTL is kept shorter. Implementations fail open.
type ListingCache interface {
	Get(ctx context.Context, catalogID uuid.UUID, productIDs []uuid.UUID) (*ListingResponse, bool)
	Set(ctx context.Context, catalogID uuid.UUID, productIDs []uuid.UUID, response *ListingResponse)
}

// PricingService resolves locale- and catalog-scoped pricing
type PricingService struct {
	financialRepo      pricing.FinancialRepository
	localeRepo         locale.LocaleRepository
	currencyRepo       locale.CurrencyRepository
	catalogProductRepo catalog.CatalogProductRepository
	listingCache       ListingCache
	logger             *zap.Logger
}

// NewPricingService creates a new PricingService
func NewPricingService(
	financialRepo pricing.FinancialRepository,
	localeRepo locale.LocaleRepository,
	currencyRepo locale.CurrencyRepository,
	catalogProductRepo catalog.CatalogProductRepository,
	listingCache ListingCache,
	logger *zap.Logger,
) *PricingService {
	return &PricingService{
		financialRepo:      financialRepo,
		localeRepo:         localeRepo,
		currencyRepo:       currencyRepo,
		catalogProductRepo: catalogProductRepo,
		listingCache:       listingCache,
		logger:             logger,
	}
}

// ResolvePricing returns the pricing for the exact (product, locale,
// catalog) triple, or nil when no row is currently effective. It never
// substitutes another catalog or locale.
func (s *PricingService) ResolvePricing(ctx context.Context, productID uuid.UUID, localeCode string, catalogID uuid.UUID) (*PricingInfo, error) {
	row, err := s.financialRepo.FindEffective(ctx, productID, localeCode, catalogID, time.Now())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("no effective financial row",
				zap.String("product_id", productID.String()),
				zap.String("locale", localeCode),
				zap.String("catalog_id", catalogID.String()))
			return nil, nil
		}
		return nil, err
	}

	localPrice := row.EffectiveLocalPrice()
	finalPrice := row.FinalPrice()

	info := &PricingInfo{
		ProductID:        row.ProductID,
		LocaleCode:       row.LocaleCode,
		CatalogID:        row.CatalogID,
		CurrencyCode:     row.CurrencyCode,
		BasePrice:        row.BasePrice,
		LocalPrice:       localPrice,
		TaxRate:          row.TaxRate,
		TaxAmount:        row.TaxAmount,
		TaxIncludedPrice: finalPrice,
		FinalPrice:       finalPrice,
		EffectiveFrom:    row.EffectiveFrom,
		EffectiveTo:      row.EffectiveTo,
	}

	rules, symbol, places := s.formatContext(ctx, localeCode, row.CurrencyCode)
	info.FormattedPrice = locale.FormatAmount(localPrice, rules, symbol, places)
	info.FormattedFinal = locale.FormatAmount(finalPrice, rules, symbol, places)

	return info, nil
}

// ListCatalogPricing resolves listing prices for a set of products in
// one catalog. Every requested product appears in the result; products
// without a listed catalog entry are marked unavailable with a reason.
func (s *PricingService) ListCatalogPricing(ctx context.Context, catalogID uuid.UUID, req ListPricingRequest) (*ListingResponse, error) {
	if len(req.ProductIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one product ID is required")
	}

	if s.listingCache != nil {
		if cached, ok := s.listingCache.Get(ctx, catalogID, req.ProductIDs); ok {
			return cached, nil
		}
	}

	rows, err := s.catalogProductRepo.FindByCatalogAndProducts(ctx, catalogID, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID]*catalog.CatalogProduct, len(rows))
	for _, row := range rows {
		byProduct[row.ProductID] = row
	}

	now := time.Now()
	response := &ListingResponse{
		CatalogID: catalogID,
		Items:     make([]ListingItem, 0, len(req.ProductIDs)),
	}

	for _, productID := range req.ProductIDs {
		row, ok := byProduct[productID]
		if !ok {
			response.Items = append(response.Items, ListingItem{
				ProductID:         productID,
				Available:         false,
				UnavailableReason: "product is not listed in this catalog",
			})
			continue
		}
		if !row.IsAvailableAt(now) {
			response.Items = append(response.Items, ListingItem{
				ProductID:         productID,
				Available:         false,
				UnavailableReason: "product listing is not currently effective",
			})
			continue
		}

		listPrice := row.BasePrice.Amount()
		finalPrice := row.FinalPrice().Amount()
		response.Items = append(response.Items, ListingItem{
			ProductID:       productID,
			Available:       true,
			ListPrice:       &listPrice,
			DiscountPercent: row.DiscountPercent,
			FinalPrice:      &finalPrice,
			CurrencyCode:    string(row.BasePrice.Currency()),
		})
	}

	if s.listingCache != nil {
		s.listingCache.Set(ctx, catalogID, req.ProductIDs, response)
	}

	return response, nil
}

// formatContext loads the locale format rules and currency symbol.
// Lookups fail soft: missing rows fall back to the generic format.
func (s *PricingService) formatContext(ctx context.Context, localeCode, currencyCode string) (locale.FormatRules, string, int32) {
	symbol := currencyCode + " "
	places := int32(2)

	if currency, err := s.currencyRepo.FindByCode(ctx, currencyCode); err == nil {
		symbol = currency.Symbol
		places = currency.DecimalPlaces
	}

	loc, err := s.localeRepo.FindActiveByCode(ctx, localeCode)
	if err != nil {
		s.logger.Warn("locale lookup failed, using fallback format",
			zap.String("locale", localeCode),
			zap.Error(err))
		return locale.FormatRules{}, symbol, places
	}

	return loc.Format, symbol, places
}
