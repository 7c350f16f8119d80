package localization

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/localization"
	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCatalogProductRepository is a mock implementation of CatalogProductRepository
type MockCatalogProductRepository struct {
	mock.Mock
}

func (m *MockCatalogProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CatalogProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CatalogProduct), args.Error(1)
}

func (m *MockCatalogProductRepository) FindByCatalogAndProduct(ctx context.Context, catalogID, productID uuid.UUID) (*catalog.CatalogProduct, error) {
	args := m.Called(ctx, catalogID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CatalogProduct), args.Error(1)
}

func (m *MockCatalogProductRepository) FindByCatalogAndProducts(ctx context.Context, catalogID uuid.UUID, productIDs []uuid.UUID) ([]*catalog.CatalogProduct, error) {
	args := m.Called(ctx, catalogID, productIDs)
	return args.Get(0).([]*catalog.CatalogProduct), args.Error(1)
}

func (m *MockCatalogProductRepository) FindListedAt(ctx context.Context, catalogID uuid.UUID, at time.Time) ([]*catalog.CatalogProduct, error) {
	args := m.Called(ctx, catalogID, at)
	return args.Get(0).([]*catalog.CatalogProduct), args.Error(1)
}

func (m *MockCatalogProductRepository) Save(ctx context.Context, cp *catalog.CatalogProduct) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

// MockFinancialRepository is a mock implementation of FinancialRepository
type MockFinancialRepository struct {
	mock.Mock
}

func (m *MockFinancialRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.ProductLocaleFinancial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.ProductLocaleFinancial), args.Error(1)
}

func (m *MockFinancialRepository) FindEffective(ctx context.Context, productID uuid.UUID, localeCode string, catalogID uuid.UUID, at time.Time) (*pricing.ProductLocaleFinancial, error) {
	args := m.Called(ctx, productID, localeCode, catalogID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.ProductLocaleFinancial), args.Error(1)
}

func (m *MockFinancialRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*pricing.ProductLocaleFinancial, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*pricing.ProductLocaleFinancial), args.Error(1)
}

func (m *MockFinancialRepository) CountByCatalogProduct(ctx context.Context, catalogID, productID uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, catalogID, productID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockFinancialRepository) Save(ctx context.Context, financial *pricing.ProductLocaleFinancial) error {
	args := m.Called(ctx, financial)
	return args.Error(0)
}

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.ProductLocaleContent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.ProductLocaleContent), args.Error(1)
}

func (m *MockContentRepository) FindByProductAndLocale(ctx context.Context, productID uuid.UUID, localeCode string) (*content.ProductLocaleContent, error) {
	args := m.Called(ctx, productID, localeCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.ProductLocaleContent), args.Error(1)
}

func (m *MockContentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*content.ProductLocaleContent, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*content.ProductLocaleContent), args.Error(1)
}

func (m *MockContentRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockContentRepository) Save(ctx context.Context, c *content.ProductLocaleContent) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContentRepository) SaveApproval(ctx context.Context, approval *content.ContentApproval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *MockContentRepository) FindApprovals(ctx context.Context, contentID uuid.UUID) ([]*content.ContentApproval, error) {
	args := m.Called(ctx, contentID)
	return args.Get(0).([]*content.ContentApproval), args.Error(1)
}

func newProgressService(jobRepo *MockJobRepository, catalogProductRepo *MockCatalogProductRepository, financialRepo *MockFinancialRepository, contentRepo *MockContentRepository) *ProgressService {
	return NewProgressService(jobRepo, catalogProductRepo, financialRepo, contentRepo, 10*time.Minute, zap.NewNop())
}

func TestProgressService_GetProgress(t *testing.T) {
	ctx := context.Background()
	catalogProductID := uuid.New()

	t.Run("aggregates job rows", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		service := newProgressService(jobRepo, new(MockCatalogProductRepository), new(MockFinancialRepository), new(MockContentRepository))

		completed := runningJob(t, "w1")
		require.NoError(t, completed.Complete())
		running := runningJob(t, "w2")
		waiting := pendingJob(t)

		jobRepo.On("FindByCatalogProduct", ctx, catalogProductID).
			Return([]*localization.LocalizationJob{completed, running, waiting}, nil)

		resp, err := service.GetProgress(ctx, catalogProductID)
		require.NoError(t, err)

		assert.Equal(t, 3, resp.TotalJobs)
		assert.Equal(t, 1, resp.CompletedJobs)
		assert.Equal(t, 33, resp.OverallPercent)
		assert.Equal(t, "running", resp.Status)
		assert.Len(t, resp.Jobs, 3)
	})

	t.Run("repeated reads return the same snapshot", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		service := newProgressService(jobRepo, new(MockCatalogProductRepository), new(MockFinancialRepository), new(MockContentRepository))

		jobs := []*localization.LocalizationJob{pendingJob(t), runningJob(t, "w1")}
		jobRepo.On("FindByCatalogProduct", ctx, catalogProductID).Return(jobs, nil)

		first, err := service.GetProgress(ctx, catalogProductID)
		require.NoError(t, err)
		second, err := service.GetProgress(ctx, catalogProductID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("stale running jobs are counted, not reaped", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		service := NewProgressService(jobRepo, new(MockCatalogProductRepository), new(MockFinancialRepository), new(MockContentRepository), time.Nanosecond, zap.NewNop())

		stuck := runningJob(t, "w1")
		jobRepo.On("FindByCatalogProduct", ctx, catalogProductID).
			Return([]*localization.LocalizationJob{stuck}, nil)

		time.Sleep(time.Millisecond)

		resp, err := service.GetProgress(ctx, catalogProductID)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.StaleJobs)
		assert.Equal(t, localization.JobStatusRunning, stuck.Status)
	})

	t.Run("falls back to coarse counts without job rows", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		catalogProductRepo := new(MockCatalogProductRepository)
		financialRepo := new(MockFinancialRepository)
		contentRepo := new(MockContentRepository)
		service := newProgressService(jobRepo, catalogProductRepo, financialRepo, contentRepo)

		price, err := valueobject.NewMoneyFromFloat(10, valueobject.USD)
		require.NoError(t, err)
		listing, err := catalog.NewCatalogProduct(uuid.New(), uuid.New(), price)
		require.NoError(t, err)

		jobRepo.On("FindByCatalogProduct", ctx, catalogProductID).
			Return([]*localization.LocalizationJob{}, nil)
		catalogProductRepo.On("FindByID", ctx, catalogProductID).Return(listing, nil)
		financialRepo.On("CountByCatalogProduct", ctx, listing.CatalogID, listing.ProductID).
			Return(int64(4), int64(3), nil)
		contentRepo.On("CountByProduct", ctx, listing.ProductID).
			Return(int64(4), int64(2), nil)

		resp, err := service.GetProgress(ctx, catalogProductID)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.TotalJobs)
		assert.Equal(t, 75, resp.LocaleProgress)
		assert.Equal(t, 50, resp.ContentProgress)
		assert.Equal(t, 62, resp.OverallPercent)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("unknown catalog product yields empty pending snapshot", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		catalogProductRepo := new(MockCatalogProductRepository)
		service := newProgressService(jobRepo, catalogProductRepo, new(MockFinancialRepository), new(MockContentRepository))

		jobRepo.On("FindByCatalogProduct", ctx, catalogProductID).
			Return([]*localization.LocalizationJob{}, nil)
		catalogProductRepo.On("FindByID", ctx, catalogProductID).Return(nil, shared.ErrNotFound)

		resp, err := service.GetProgress(ctx, catalogProductID)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.OverallPercent)
		assert.Equal(t, "pending", resp.Status)
	})
}
