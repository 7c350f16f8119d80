package catalog

import (
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// MarketSegment identifies the commercial audience a catalog serves
type MarketSegment string

const (
	MarketSegmentRetail     MarketSegment = "retail"
	MarketSegmentWholesale  MarketSegment = "wholesale"
	MarketSegmentEnterprise MarketSegment = "enterprise"
)

// Catalog represents a region+market-segment+currency scoped pricing
// container. It is the aggregate root for catalog operations.
type Catalog struct {
	shared.BaseAggregateRoot
	Code          string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string        `gorm:"type:varchar(200);not null"`
	RegionCode    string        `gorm:"type:varchar(10);not null;index:idx_catalog_region_segment"`
	MarketSegment MarketSegment `gorm:"type:varchar(20);not null;index:idx_catalog_region_segment"`
	CurrencyCode  string        `gorm:"type:varchar(3);not null"`
	Priority      int           `gorm:"not null;default:0"`
	EffectiveFrom *time.Time    `gorm:"index"`
	EffectiveTo   *time.Time    `gorm:"index"`
	IsActive      bool          `gorm:"not null;default:true"`
	IsDefault     bool          `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Catalog) TableName() string {
	return "catalogs"
}

// NewCatalog creates a new catalog
func NewCatalog(code, name, regionCode string, segment MarketSegment, currencyCode string) (*Catalog, error) {
	if err := validateCatalogCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Catalog name cannot be empty")
	}
	if regionCode == "" {
		return nil, shared.NewDomainError("INVALID_REGION", "Region code cannot be empty")
	}
	switch segment {
	case MarketSegmentRetail, MarketSegmentWholesale, MarketSegmentEnterprise:
	default:
		return nil, shared.NewDomainError("INVALID_SEGMENT", "Unknown market segment")
	}
	if len(currencyCode) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code must be a 3-letter ISO 4217 code")
	}

	catalog := &Catalog{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		RegionCode:        strings.ToUpper(regionCode),
		MarketSegment:     segment,
		CurrencyCode:      currencyCode,
		IsActive:          true,
	}

	catalog.AddDomainEvent(NewCatalogCreatedEvent(catalog))

	return catalog, nil
}

// SetEffectiveWindow sets the catalog validity window
func (c *Catalog) SetEffectiveWindow(from, to *time.Time) error {
	window, err := valueobject.NewEffectiveWindow(from, to)
	if err != nil {
		return shared.NewDomainError("INVALID_WINDOW", err.Error())
	}
	c.EffectiveFrom = window.From
	c.EffectiveTo = window.To
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetPriority sets the tie-break priority among matching catalogs
func (c *Catalog) SetPriority(priority int) {
	c.Priority = priority
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// MarkDefault flags the catalog as the default for its (region, segment).
// The store enforces that at most one default exists per pair.
func (c *Catalog) MarkDefault() {
	c.IsDefault = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ClearDefault removes the default flag
func (c *Catalog) ClearDefault() {
	c.IsDefault = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate deactivates the catalog
func (c *Catalog) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Catalog is already inactive")
	}
	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsEffectiveAt reports whether the catalog is active and inside its
// effective window at the given instant
func (c *Catalog) IsEffectiveAt(t time.Time) bool {
	if !c.IsActive {
		return false
	}
	window := valueobject.EffectiveWindow{From: c.EffectiveFrom, To: c.EffectiveTo}
	return window.Contains(t)
}

// validateCatalogCode validates the catalog code
func validateCatalogCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Catalog code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Catalog code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Catalog code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
