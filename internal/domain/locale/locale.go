package locale

import (
	"regexp"

	"github.com/storefront/backend/internal/domain/shared"
)

// SymbolPosition controls where the currency symbol is rendered
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// FormatRules holds the locale-specific number and date formatting rules.
// These are structured columns, not free text, so formatting is deterministic.
type FormatRules struct {
	DecimalSeparator   string         `gorm:"type:varchar(4);not null;default:'.'" json:"decimal_separator"`
	ThousandsSeparator string         `gorm:"type:varchar(4);not null;default:','" json:"thousands_separator"`
	SymbolPosition     SymbolPosition `gorm:"type:varchar(10);not null;default:'before'" json:"symbol_position"`
	DatePattern        string         `gorm:"type:varchar(30);not null;default:'01/02/2006'" json:"date_pattern"`
}

// Locale represents a language+country pairing governing content translation
// and number/currency formatting. It is the aggregate root for locale data.
// Identity is the locale code; a locale referenced by financial or content
// rows must not change its code without a migration step.
type Locale struct {
	shared.BaseAggregateRoot
	Code         string      `gorm:"type:varchar(10);not null;uniqueIndex"`
	LanguageCode string      `gorm:"type:varchar(2);not null;index"`
	CountryCode  string      `gorm:"type:varchar(2);not null;index"`
	CurrencyCode string      `gorm:"type:varchar(3);not null"`
	IsRTL        bool        `gorm:"not null;default:false"`
	Format       FormatRules `gorm:"embedded;embeddedPrefix:format_"`
	IsActive     bool        `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Locale) TableName() string {
	return "locales"
}

var localeCodePattern = regexp.MustCompile(`^[a-z]{2}_[A-Z]{2}$`)

// NewLocale creates a new locale
func NewLocale(code, languageCode, countryCode, currencyCode string, rules FormatRules) (*Locale, error) {
	if err := ValidateLocaleCode(code); err != nil {
		return nil, err
	}
	if len(languageCode) != 2 {
		return nil, shared.NewDomainError("INVALID_LANGUAGE", "Language code must be a 2-letter ISO 639-1 code")
	}
	if len(countryCode) != 2 {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "Country code must be a 2-letter ISO 3166-1 code")
	}
	if len(currencyCode) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code must be a 3-letter ISO 4217 code")
	}
	if rules.SymbolPosition != SymbolBefore && rules.SymbolPosition != SymbolAfter {
		return nil, shared.NewDomainError("INVALID_FORMAT_RULES", "Symbol position must be 'before' or 'after'")
	}

	return &Locale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		LanguageCode:      languageCode,
		CountryCode:       countryCode,
		CurrencyCode:      currencyCode,
		Format:            rules,
		IsActive:          true,
	}, nil
}

// ValidateLocaleCode validates a canonical ll_CC locale code
func ValidateLocaleCode(code string) error {
	if !localeCodePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_LOCALE_CODE", "Locale code must match ll_CC (e.g. en_US)")
	}
	return nil
}

// MarkRTL flags the locale as right-to-left
func (l *Locale) MarkRTL() {
	l.IsRTL = true
	l.IncrementVersion()
}

// Deactivate deactivates the locale. Financial and content rows referencing
// a deactivated locale stop resolving.
func (l *Locale) Deactivate() error {
	if !l.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Locale is already inactive")
	}
	l.IsActive = false
	l.IncrementVersion()
	return nil
}

// Activate activates the locale
func (l *Locale) Activate() error {
	if l.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Locale is already active")
	}
	l.IsActive = true
	l.IncrementVersion()
	return nil
}
