package content

import (
	"context"

	"github.com/google/uuid"
)

// ContentRepository defines the interface for localized content
// persistence
type ContentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductLocaleContent, error)
	FindByProductAndLocale(ctx context.Context, productID uuid.UUID, localeCode string) (*ProductLocaleContent, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*ProductLocaleContent, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (total int64, translated int64, err error)
	Save(ctx context.Context, content *ProductLocaleContent) error
	SaveApproval(ctx context.Context, approval *ContentApproval) error
	FindApprovals(ctx context.Context, contentID uuid.UUID) ([]*ContentApproval, error)
}
