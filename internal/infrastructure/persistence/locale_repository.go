package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/locale"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLocaleRepository implements LocaleRepository using GORM
type GormLocaleRepository struct {
	db *gorm.DB
}

// NewGormLocaleRepository creates a new GormLocaleRepository
func NewGormLocaleRepository(db *gorm.DB) *GormLocaleRepository {
	return &GormLocaleRepository{db: db}
}

// FindByID finds a locale by its ID
func (r *GormLocaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*locale.Locale, error) {
	var loc locale.Locale
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindByCode finds a locale by its canonical code
func (r *GormLocaleRepository) FindByCode(ctx context.Context, code string) (*locale.Locale, error) {
	var loc locale.Locale
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&loc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindActiveByCode finds an active locale by code
func (r *GormLocaleRepository) FindActiveByCode(ctx context.Context, code string) (*locale.Locale, error) {
	var loc locale.Locale
	if err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&loc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindAll finds all locales matching the filter
func (r *GormLocaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]locale.Locale, error) {
	var locales []locale.Locale
	query := r.db.WithContext(ctx).Model(&locale.Locale{})

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	if err := query.Order("code ASC").Find(&locales).Error; err != nil {
		return nil, err
	}
	return locales, nil
}

// FindActive finds all active locales
func (r *GormLocaleRepository) FindActive(ctx context.Context) ([]locale.Locale, error) {
	var locales []locale.Locale
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&locales).Error; err != nil {
		return nil, err
	}
	return locales, nil
}

// Save creates or updates a locale
func (r *GormLocaleRepository) Save(ctx context.Context, loc *locale.Locale) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

// ExistsByCode checks if a locale with the given code exists
func (r *GormLocaleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&locale.Locale{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormCurrencyRepository implements CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByCode finds a currency by its ISO 4217 code
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, code string) (*locale.Currency, error) {
	var currency locale.Currency
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&currency).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &currency, nil
}

// FindActive finds all active currencies
func (r *GormCurrencyRepository) FindActive(ctx context.Context) ([]locale.Currency, error) {
	var currencies []locale.Currency
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}

// Save creates or updates a currency
func (r *GormCurrencyRepository) Save(ctx context.Context, currency *locale.Currency) error {
	return r.db.WithContext(ctx).Save(currency).Error
}
