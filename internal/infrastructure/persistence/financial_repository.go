package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFinancialRepository implements FinancialRepository using GORM
type GormFinancialRepository struct {
	db *gorm.DB
}

// NewGormFinancialRepository creates a new GormFinancialRepository
func NewGormFinancialRepository(db *gorm.DB) *GormFinancialRepository {
	return &GormFinancialRepository{db: db}
}

// FindByID finds a financial row by its ID
func (r *GormFinancialRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.ProductLocaleFinancial, error) {
	var financial pricing.ProductLocaleFinancial
	if err := r.db.WithContext(ctx).First(&financial, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &financial, nil
}

// FindEffective returns the active row for the exact triple whose
// effective window contains the given instant. The window lower bound
// is inclusive and the upper bound exclusive.
func (r *GormFinancialRepository) FindEffective(ctx context.Context, productID uuid.UUID, localeCode string, catalogID uuid.UUID, at time.Time) (*pricing.ProductLocaleFinancial, error) {
	var financial pricing.ProductLocaleFinancial
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND locale_code = ? AND catalog_id = ? AND is_active = ?",
			productID, localeCode, catalogID, true).
		Where("(effective_from IS NULL OR effective_from <= ?) AND (effective_to IS NULL OR effective_to > ?)", at, at).
		Order("effective_from DESC NULLS LAST").
		First(&financial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &financial, nil
}

// FindByProduct finds all financial rows for a product
func (r *GormFinancialRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*pricing.ProductLocaleFinancial, error) {
	var financials []*pricing.ProductLocaleFinancial
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("locale_code ASC").
		Find(&financials).Error; err != nil {
		return nil, err
	}
	return financials, nil
}

// CountByCatalogProduct counts financial rows for a product within a
// catalog, and how many of those already carry a local price
func (r *GormFinancialRepository) CountByCatalogProduct(ctx context.Context, catalogID, productID uuid.UUID) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&pricing.ProductLocaleFinancial{}).
		Where("catalog_id = ? AND product_id = ? AND is_active = ?", catalogID, productID, true).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var localized int64
	if err := r.db.WithContext(ctx).Model(&pricing.ProductLocaleFinancial{}).
		Where("catalog_id = ? AND product_id = ? AND is_active = ? AND local_price IS NOT NULL", catalogID, productID, true).
		Count(&localized).Error; err != nil {
		return 0, 0, err
	}

	return total, localized, nil
}

// Save creates or updates a financial row
func (r *GormFinancialRepository) Save(ctx context.Context, financial *pricing.ProductLocaleFinancial) error {
	return r.db.WithContext(ctx).Save(financial).Error
}
