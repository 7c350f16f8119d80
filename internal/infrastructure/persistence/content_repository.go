package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormContentRepository implements ContentRepository using GORM
type GormContentRepository struct {
	db *gorm.DB
}

// NewGormContentRepository creates a new GormContentRepository
func NewGormContentRepository(db *gorm.DB) *GormContentRepository {
	return &GormContentRepository{db: db}
}

// FindByID finds a content row by its ID
func (r *GormContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.ProductLocaleContent, error) {
	var row content.ProductLocaleContent
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindByProductAndLocale finds the content row for a product and locale
func (r *GormContentRepository) FindByProductAndLocale(ctx context.Context, productID uuid.UUID, localeCode string) (*content.ProductLocaleContent, error) {
	var row content.ProductLocaleContent
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND locale_code = ?", productID, localeCode).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindByProduct finds all content rows for a product
func (r *GormContentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*content.ProductLocaleContent, error) {
	var rows []*content.ProductLocaleContent
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("locale_code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByProduct counts content rows for a product, and how many have
// reached a translated state
func (r *GormContentRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&content.ProductLocaleContent{}).
		Where("product_id = ?", productID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var translated int64
	if err := r.db.WithContext(ctx).Model(&content.ProductLocaleContent{}).
		Where("product_id = ? AND translation_status IN ?", productID,
			[]content.TranslationStatus{content.TranslationStatusCompleted, content.TranslationStatusApproved}).
		Count(&translated).Error; err != nil {
		return 0, 0, err
	}

	return total, translated, nil
}

// Save creates or updates a content row
func (r *GormContentRepository) Save(ctx context.Context, row *content.ProductLocaleContent) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// SaveApproval appends an approval audit record
func (r *GormContentRepository) SaveApproval(ctx context.Context, approval *content.ContentApproval) error {
	return r.db.WithContext(ctx).Create(approval).Error
}

// FindApprovals finds all approval records for a content row, newest first
func (r *GormContentRepository) FindApprovals(ctx context.Context, contentID uuid.UUID) ([]*content.ContentApproval, error) {
	var approvals []*content.ContentApproval
	if err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("approved_at DESC").
		Find(&approvals).Error; err != nil {
		return nil, err
	}
	return approvals, nil
}
