package catalog

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// CatalogCreatedEvent is published when a catalog is created
type CatalogCreatedEvent struct {
	shared.BaseDomainEvent
	Code          string        `json:"code"`
	RegionCode    string        `json:"region_code"`
	MarketSegment MarketSegment `json:"market_segment"`
	CurrencyCode  string        `json:"currency_code"`
}

// NewCatalogCreatedEvent creates a new catalog created event
func NewCatalogCreatedEvent(c *Catalog) *CatalogCreatedEvent {
	return &CatalogCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("catalog.created", "Catalog", c.ID),
		Code:            c.Code,
		RegionCode:      c.RegionCode,
		MarketSegment:   c.MarketSegment,
		CurrencyCode:    c.CurrencyCode,
	}
}

// CatalogAssignedEvent is published when a session is bound to a catalog
type CatalogAssignedEvent struct {
	shared.BaseDomainEvent
	CatalogCode      string           `json:"catalog_code"`
	LocaleCode       string           `json:"locale_code"`
	AssignmentMethod AssignmentMethod `json:"assignment_method"`
}

// NewCatalogAssignedEvent creates a new catalog assigned event
func NewCatalogAssignedEvent(assignment *CatalogAssignment) *CatalogAssignedEvent {
	return &CatalogAssignedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("catalog.assigned", "Catalog", assignment.CatalogID),
		CatalogCode:      assignment.CatalogCode,
		LocaleCode:       assignment.LocaleCode,
		AssignmentMethod: assignment.AssignmentMethod,
	}
}
