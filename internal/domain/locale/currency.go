package locale

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Currency holds display configuration for an ISO 4217 currency
type Currency struct {
	shared.BaseAggregateRoot
	Code          string `gorm:"type:varchar(3);not null;uniqueIndex"`
	Symbol        string `gorm:"type:varchar(8);not null"`
	DecimalPlaces int32  `gorm:"not null;default:2"`
	IsActive      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Currency) TableName() string {
	return "currencies"
}

// NewCurrency creates a new currency
func NewCurrency(code, symbol string, decimalPlaces int32) (*Currency, error) {
	if len(code) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code must be a 3-letter ISO 4217 code")
	}
	if symbol == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency symbol cannot be empty")
	}
	if decimalPlaces < 0 || decimalPlaces > 4 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Decimal places must be between 0 and 4")
	}

	return &Currency{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Symbol:            symbol,
		DecimalPlaces:     decimalPlaces,
		IsActive:          true,
	}, nil
}
