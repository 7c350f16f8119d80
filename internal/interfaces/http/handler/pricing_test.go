package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	pricingapp "github.com/storefront/backend/internal/application/pricing"
	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/domain/shared"
)

func TestResolvePricingValidation(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		query     string
	}{
		{name: "invalid product id", productID: "nope", query: "?locale=en_US&catalog_id=550e8400-e29b-41d4-a716-446655440000"},
		{name: "missing locale", productID: "550e8400-e29b-41d4-a716-446655440000", query: "?catalog_id=550e8400-e29b-41d4-a716-446655440000"},
		{name: "missing catalog id", productID: "550e8400-e29b-41d4-a716-446655440000", query: "?locale=en_US"},
		{name: "malformed catalog id", productID: "550e8400-e29b-41d4-a716-446655440000", query: "?locale=en_US&catalog_id=bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPricingHandler(nil)
			c, w := testContext(t, "GET", "/pricing/products/"+tt.productID+tt.query, "")
			c.Params = gin.Params{{Key: "id", Value: tt.productID}}

			h.ResolvePricing(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// emptyFinancialRepository reports every effective-price lookup as
// missing. The embedded nil interface panics if any other method runs.
type emptyFinancialRepository struct {
	pricing.FinancialRepository
}

func (emptyFinancialRepository) FindEffective(context.Context, uuid.UUID, string, uuid.UUID, time.Time) (*pricing.ProductLocaleFinancial, error) {
	return nil, shared.ErrNotFound
}

func TestResolvePricingWithoutEffectiveRow(t *testing.T) {
	service := pricingapp.NewPricingService(emptyFinancialRepository{}, nil, nil, nil, nil, zap.NewNop())
	h := NewPricingHandler(service)

	productID := uuid.New().String()
	c, w := testContext(t, "GET", "/pricing/products/"+productID+"?locale=fr_CA&catalog_id="+uuid.New().String(), "")
	c.Params = gin.Params{{Key: "id", Value: productID}}

	h.ResolvePricing(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestListCatalogPricingValidation(t *testing.T) {
	t.Run("invalid catalog id", func(t *testing.T) {
		h := NewPricingHandler(nil)
		c, w := testContext(t, "POST", "/", `{"product_ids":["550e8400-e29b-41d4-a716-446655440000"]}`)
		c.Params = gin.Params{{Key: "id", Value: "bad"}}

		h.ListCatalogPricing(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty product list", func(t *testing.T) {
		h := NewPricingHandler(nil)
		c, w := testContext(t, "POST", "/", `{"product_ids":[]}`)
		c.Params = gin.Params{{Key: "id", Value: "550e8400-e29b-41d4-a716-446655440000"}}

		h.ListCatalogPricing(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
