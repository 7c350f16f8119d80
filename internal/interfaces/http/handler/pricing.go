package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pricingapp "github.com/storefront/backend/internal/application/pricing"
)

// PricingHandler handles catalog pricing endpoints
type PricingHandler struct {
	BaseHandler
	pricingService *pricingapp.PricingService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(pricingService *pricingapp.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// RegisterRoutes registers pricing endpoints
func (h *PricingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pricing := rg.Group("/pricing")
	{
		pricing.GET("/products/:id", h.ResolvePricing)
		pricing.POST("/catalogs/:id/listing", h.ListCatalogPricing)
	}
}

// ResolvePricing returns the fully resolved price for one product in
// the given catalog and locale, including tax and locale formatting.
//
// GET /api/v1/pricing/products/:id?locale=fr_CA&catalog_id=...
func (h *PricingHandler) ResolvePricing(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	localeCode := c.Query("locale")
	if localeCode == "" {
		h.BadRequest(c, "Missing required query parameter: locale")
		return
	}

	catalogID, err := uuid.Parse(c.Query("catalog_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing catalog_id")
		return
	}

	info, err := h.pricingService.ResolvePricing(c.Request.Context(), productID, localeCode, catalogID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if info == nil {
		h.NotFound(c, "No effective price for this product in the given catalog and locale")
		return
	}

	h.Success(c, info)
}

// ListCatalogPricing returns listing prices for a batch of products in
// one catalog. Products without a listed entry come back marked
// unavailable rather than being dropped.
//
// POST /api/v1/pricing/catalogs/:id/listing
func (h *PricingHandler) ListCatalogPricing(c *gin.Context) {
	catalogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid catalog ID")
		return
	}

	var req pricingapp.ListPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.pricingService.ListCatalogPricing(c.Request.Context(), catalogID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
