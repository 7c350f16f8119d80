package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// TranslationStatus tracks the lifecycle of a localized content row
type TranslationStatus string

const (
	TranslationStatusPending    TranslationStatus = "pending"
	TranslationStatusInProgress TranslationStatus = "in_progress"
	TranslationStatusCompleted  TranslationStatus = "completed"
	TranslationStatusApproved   TranslationStatus = "approved"
	TranslationStatusFailed     TranslationStatus = "failed"
)

// translationTransitions lists the allowed status moves. Approved is
// terminal; failed rows go back through pending on retry.
var translationTransitions = map[TranslationStatus][]TranslationStatus{
	TranslationStatusPending:    {TranslationStatusInProgress, TranslationStatusFailed},
	TranslationStatusInProgress: {TranslationStatusCompleted, TranslationStatusFailed},
	TranslationStatusCompleted:  {TranslationStatusApproved, TranslationStatusPending},
	TranslationStatusFailed:     {TranslationStatusPending},
	TranslationStatusApproved:   {},
}

// CanTransitionTo reports whether the move is allowed
func (s TranslationStatus) CanTransitionTo(target TranslationStatus) bool {
	for _, allowed := range translationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s TranslationStatus) IsTerminal() bool {
	return len(translationTransitions[s]) == 0
}

// ProductLocaleContent is the localized content row for a
// (product, locale) pair. ContentVersion increases monotonically on
// every edit so downstream consumers can detect stale translations.
type ProductLocaleContent struct {
	shared.BaseAggregateRoot
	ProductID         uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_content_product_locale"`
	LocaleCode        string            `gorm:"type:varchar(10);not null;uniqueIndex:idx_content_product_locale"`
	Name              string            `gorm:"type:varchar(500)"`
	Description       string            `gorm:"type:text"`
	MarketingCopy     string            `gorm:"type:text"`
	SEOTitle          string            `gorm:"type:varchar(500)"`
	SEODescription    string            `gorm:"type:varchar(1000)"`
	TranslationStatus TranslationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ContentVersion    int               `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (ProductLocaleContent) TableName() string {
	return "product_locale_contents"
}

// NewProductLocaleContent creates a content row awaiting translation
func NewProductLocaleContent(productID uuid.UUID, localeCode string) (*ProductLocaleContent, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if localeCode == "" {
		return nil, shared.NewDomainError("INVALID_LOCALE", "Locale code cannot be empty")
	}

	return &ProductLocaleContent{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		LocaleCode:        localeCode,
		TranslationStatus: TranslationStatusPending,
		ContentVersion:    1,
	}, nil
}

// UpdateContent replaces the translated fields and bumps the content
// version. Editing an approved row sends it back to pending review.
func (c *ProductLocaleContent) UpdateContent(name, description, marketingCopy, seoTitle, seoDescription string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Content name cannot be empty")
	}
	c.Name = name
	c.Description = description
	c.MarketingCopy = marketingCopy
	c.SEOTitle = seoTitle
	c.SEODescription = seoDescription
	c.ContentVersion++
	if c.TranslationStatus == TranslationStatusApproved {
		c.TranslationStatus = TranslationStatusCompleted
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// TransitionStatus moves the row through the translation lifecycle
func (c *ProductLocaleContent) TransitionStatus(target TranslationStatus) error {
	if !c.TranslationStatus.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"Cannot transition translation from "+string(c.TranslationStatus)+" to "+string(target))
	}
	c.TranslationStatus = target
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Approve records a server-owned approval with actor and reason. Only
// completed translations can be approved.
func (c *ProductLocaleContent) Approve(actor, reason string) (*ContentApproval, error) {
	if actor == "" {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Approval actor cannot be empty")
	}
	if err := c.TransitionStatus(TranslationStatusApproved); err != nil {
		return nil, err
	}

	approval := &ContentApproval{
		BaseEntity:     shared.NewBaseEntity(),
		ContentID:      c.ID,
		ProductID:      c.ProductID,
		LocaleCode:     c.LocaleCode,
		ContentVersion: c.ContentVersion,
		Actor:          actor,
		Reason:         reason,
		ApprovedAt:     time.Now(),
	}
	return approval, nil
}

// ContentApproval is the audited approval record for a content row at
// a specific content version
type ContentApproval struct {
	shared.BaseEntity
	ContentID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	LocaleCode     string    `gorm:"type:varchar(10);not null"`
	ContentVersion int       `gorm:"not null"`
	Actor          string    `gorm:"type:varchar(100);not null"`
	Reason         string    `gorm:"type:varchar(500)"`
	ApprovedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContentApproval) TableName() string {
	return "content_approvals"
}
