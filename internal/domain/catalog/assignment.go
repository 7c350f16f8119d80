package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// AssignmentMethod labels which input signal drove a catalog match
type AssignmentMethod string

const (
	AssignmentMethodCountry  AssignmentMethod = "country"
	AssignmentMethodRole     AssignmentMethod = "role"
	AssignmentMethodTier     AssignmentMethod = "tier"
	AssignmentMethodUserType AssignmentMethod = "user_type"
	AssignmentMethodDefault  AssignmentMethod = "default"
)

// assignmentRank orders match types by precedence. Lower ranks win;
// within a rank the rule priority breaks ties.
var assignmentRank = map[AssignmentMethod]int{
	AssignmentMethodCountry:  0,
	AssignmentMethodRole:     1,
	AssignmentMethodTier:     2,
	AssignmentMethodUserType: 3,
	AssignmentMethodDefault:  4,
}

// Rank returns the precedence rank for the method, lower is stronger
func (m AssignmentMethod) Rank() int {
	rank, ok := assignmentRank[m]
	if !ok {
		return len(assignmentRank)
	}
	return rank
}

// IsValid reports whether the method is a known match type
func (m AssignmentMethod) IsValid() bool {
	_, ok := assignmentRank[m]
	return ok
}

// AssignmentQuery carries the session signals used for catalog
// resolution. All signals are matched simultaneously in one lookup.
type AssignmentQuery struct {
	Country  string
	UserType string
	Roles    []string
	Tier     string
}

// CatalogAssignment is the derived result of a catalog resolution.
// It is never persisted; callers may cache it only for a short TTL.
type CatalogAssignment struct {
	CatalogID        uuid.UUID        `json:"catalog_id"`
	CatalogCode      string           `json:"catalog_code"`
	LocaleCode       string           `json:"locale_code"`
	RegionCode       string           `json:"region_code"`
	CurrencyCode     string           `json:"currency_code"`
	AssignmentMethod AssignmentMethod `json:"assignment_method"`
}

// AssignmentRule is a ranked lookup row mapping one match signal to a
// catalog and locale. Rules for the same signal compete on priority.
type AssignmentRule struct {
	shared.BaseEntity
	CatalogID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	LocaleCode string           `gorm:"type:varchar(10);not null"`
	MatchType  AssignmentMethod `gorm:"type:varchar(20);not null;index:idx_rule_match"`
	MatchValue string           `gorm:"type:varchar(100);not null;index:idx_rule_match"`
	Priority   int              `gorm:"not null;default:0"`
	IsActive   bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AssignmentRule) TableName() string {
	return "catalog_assignment_rules"
}

// NewAssignmentRule creates a ranked assignment rule. Default rules
// carry an empty match value; every other match type requires one.
func NewAssignmentRule(catalogID uuid.UUID, localeCode string, matchType AssignmentMethod, matchValue string, priority int) (*AssignmentRule, error) {
	if catalogID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATALOG", "Catalog ID cannot be empty")
	}
	if localeCode == "" {
		return nil, shared.NewDomainError("INVALID_LOCALE", "Locale code cannot be empty")
	}
	if !matchType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MATCH_TYPE", "Unknown assignment match type")
	}
	if matchType == AssignmentMethodDefault {
		if matchValue != "" {
			return nil, shared.NewDomainError("INVALID_MATCH_VALUE", "Default rules cannot carry a match value")
		}
	} else if strings.TrimSpace(matchValue) == "" {
		return nil, shared.NewDomainError("INVALID_MATCH_VALUE", "Match value cannot be empty for non-default rules")
	}

	return &AssignmentRule{
		BaseEntity: shared.NewBaseEntity(),
		CatalogID:  catalogID,
		LocaleCode: localeCode,
		MatchType:  matchType,
		MatchValue: normalizeMatchValue(matchType, matchValue),
		Priority:   priority,
		IsActive:   true,
	}, nil
}

// Deactivate removes the rule from ranked lookups
func (r *AssignmentRule) Deactivate() {
	r.IsActive = false
	r.UpdatedAt = time.Now()
}

// normalizeMatchValue canonicalizes stored match values so lookups can
// compare exactly: country codes uppercase, everything else lowercase.
func normalizeMatchValue(matchType AssignmentMethod, value string) string {
	value = strings.TrimSpace(value)
	if matchType == AssignmentMethodCountry {
		return strings.ToUpper(value)
	}
	return strings.ToLower(value)
}

// NormalizeQuery canonicalizes query signals the same way rule values
// are stored
func NormalizeQuery(q AssignmentQuery) AssignmentQuery {
	out := AssignmentQuery{
		Country:  strings.ToUpper(strings.TrimSpace(q.Country)),
		UserType: strings.ToLower(strings.TrimSpace(q.UserType)),
		Tier:     strings.ToLower(strings.TrimSpace(q.Tier)),
	}
	for _, role := range q.Roles {
		role = strings.ToLower(strings.TrimSpace(role))
		if role != "" {
			out.Roles = append(out.Roles, role)
		}
	}
	return out
}
