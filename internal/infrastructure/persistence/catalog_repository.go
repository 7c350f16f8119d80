package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindByID finds a catalog by its ID
func (r *GormCatalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Catalog, error) {
	var cat catalog.Catalog
	if err := r.db.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// FindByCode finds a catalog by its code
func (r *GormCatalogRepository) FindByCode(ctx context.Context, code string) (*catalog.Catalog, error) {
	var cat catalog.Catalog
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// FindActive finds all active catalogs
func (r *GormCatalogRepository) FindActive(ctx context.Context) ([]*catalog.Catalog, error) {
	var catalogs []*catalog.Catalog
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority DESC, code ASC").
		Find(&catalogs).Error; err != nil {
		return nil, err
	}
	return catalogs, nil
}

// FindDefault finds the default catalog for a region and market segment
func (r *GormCatalogRepository) FindDefault(ctx context.Context, regionCode string, segment catalog.MarketSegment) (*catalog.Catalog, error) {
	var cat catalog.Catalog
	if err := r.db.WithContext(ctx).
		Where("region_code = ? AND market_segment = ? AND is_default = ? AND is_active = ?",
			strings.ToUpper(regionCode), segment, true, true).
		First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// Save creates or updates a catalog
func (r *GormCatalogRepository) Save(ctx context.Context, cat *catalog.Catalog) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

// assignmentRow is the scan target for the ranked assignment query
type assignmentRow struct {
	CatalogID    uuid.UUID
	CatalogCode  string
	LocaleCode   string
	RegionCode   string
	CurrencyCode string
	MatchType    string
}

// assignmentRankOrder orders candidate rules so the strongest match type
// wins first, then rule priority, then catalog priority. The CASE ranks
// must stay aligned with AssignmentMethod.Rank.
const assignmentRankOrder = `CASE r.match_type
		WHEN 'country' THEN 0
		WHEN 'role' THEN 1
		WHEN 'tier' THEN 2
		WHEN 'user_type' THEN 3
		ELSE 4
	END ASC, r.priority DESC, c.priority DESC`

// AssignCatalog resolves the query signals to a catalog and locale in a
// single ranked lookup over active rules joined to effective catalogs
func (r *GormCatalogRepository) AssignCatalog(ctx context.Context, query catalog.AssignmentQuery) (*catalog.CatalogAssignment, error) {
	query = catalog.NormalizeQuery(query)
	now := time.Now()

	matchConds := []string{"r.match_type = 'default'"}
	matchArgs := []interface{}{}

	if query.Country != "" {
		matchConds = append(matchConds, "(r.match_type = 'country' AND r.match_value = ?)")
		matchArgs = append(matchArgs, query.Country)
	}
	if len(query.Roles) > 0 {
		matchConds = append(matchConds, "(r.match_type = 'role' AND r.match_value IN ?)")
		matchArgs = append(matchArgs, query.Roles)
	}
	if query.Tier != "" {
		matchConds = append(matchConds, "(r.match_type = 'tier' AND r.match_value = ?)")
		matchArgs = append(matchArgs, query.Tier)
	}
	if query.UserType != "" {
		matchConds = append(matchConds, "(r.match_type = 'user_type' AND r.match_value = ?)")
		matchArgs = append(matchArgs, query.UserType)
	}

	var rows []assignmentRow
	err := r.db.WithContext(ctx).
		Table("catalog_assignment_rules AS r").
		Select("c.id AS catalog_id, c.code AS catalog_code, r.locale_code AS locale_code, c.region_code AS region_code, c.currency_code AS currency_code, r.match_type AS match_type").
		Joins("JOIN catalogs c ON c.id = r.catalog_id").
		Where("r.is_active = ? AND c.is_active = ?", true, true).
		Where("(c.effective_from IS NULL OR c.effective_from <= ?) AND (c.effective_to IS NULL OR c.effective_to > ?)", now, now).
		Where("("+strings.Join(matchConds, " OR ")+")", matchArgs...).
		Order(assignmentRankOrder).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}

	row := rows[0]
	return &catalog.CatalogAssignment{
		CatalogID:        row.CatalogID,
		CatalogCode:      row.CatalogCode,
		LocaleCode:       row.LocaleCode,
		RegionCode:       row.RegionCode,
		CurrencyCode:     row.CurrencyCode,
		AssignmentMethod: catalog.AssignmentMethod(row.MatchType),
	}, nil
}

// GormCatalogProductRepository implements CatalogProductRepository using GORM
type GormCatalogProductRepository struct {
	db *gorm.DB
}

// NewGormCatalogProductRepository creates a new GormCatalogProductRepository
func NewGormCatalogProductRepository(db *gorm.DB) *GormCatalogProductRepository {
	return &GormCatalogProductRepository{db: db}
}

// FindByID finds a catalog product by its ID
func (r *GormCatalogProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CatalogProduct, error) {
	var cp catalog.CatalogProduct
	if err := r.db.WithContext(ctx).First(&cp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

// FindByCatalogAndProduct finds a product listing within a catalog
func (r *GormCatalogProductRepository) FindByCatalogAndProduct(ctx context.Context, catalogID, productID uuid.UUID) (*catalog.CatalogProduct, error) {
	var cp catalog.CatalogProduct
	if err := r.db.WithContext(ctx).
		Where("catalog_id = ? AND product_id = ?", catalogID, productID).
		First(&cp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

// FindByCatalogAndProducts finds listings for multiple products within a catalog
func (r *GormCatalogProductRepository) FindByCatalogAndProducts(ctx context.Context, catalogID uuid.UUID, productIDs []uuid.UUID) ([]*catalog.CatalogProduct, error) {
	if len(productIDs) == 0 {
		return []*catalog.CatalogProduct{}, nil
	}

	var products []*catalog.CatalogProduct
	if err := r.db.WithContext(ctx).
		Where("catalog_id = ? AND product_id IN ?", catalogID, productIDs).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindListedAt finds all listings in a catalog that are listed and
// effective at the given instant
func (r *GormCatalogProductRepository) FindListedAt(ctx context.Context, catalogID uuid.UUID, at time.Time) ([]*catalog.CatalogProduct, error) {
	var products []*catalog.CatalogProduct
	if err := r.db.WithContext(ctx).
		Where("catalog_id = ? AND is_listed = ?", catalogID, true).
		Where("(effective_from IS NULL OR effective_from <= ?) AND (effective_to IS NULL OR effective_to > ?)", at, at).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a catalog product
func (r *GormCatalogProductRepository) Save(ctx context.Context, product *catalog.CatalogProduct) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// GormAssignmentRuleRepository implements AssignmentRuleRepository using GORM
type GormAssignmentRuleRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRuleRepository creates a new GormAssignmentRuleRepository
func NewGormAssignmentRuleRepository(db *gorm.DB) *GormAssignmentRuleRepository {
	return &GormAssignmentRuleRepository{db: db}
}

// FindByCatalog finds all rules pointing at a catalog
func (r *GormAssignmentRuleRepository) FindByCatalog(ctx context.Context, catalogID uuid.UUID) ([]*catalog.AssignmentRule, error) {
	var rules []*catalog.AssignmentRule
	if err := r.db.WithContext(ctx).
		Where("catalog_id = ?", catalogID).
		Order("match_type ASC, priority DESC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Save creates or updates an assignment rule
func (r *GormAssignmentRuleRepository) Save(ctx context.Context, rule *catalog.AssignmentRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// Delete deletes an assignment rule
func (r *GormAssignmentRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.AssignmentRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
