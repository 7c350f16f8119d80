package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListing(t *testing.T, base float64) *CatalogProduct {
	t.Helper()
	price, err := valueobject.NewMoneyFromFloat(base, valueobject.USD)
	require.NoError(t, err)
	cp, err := NewCatalogProduct(uuid.New(), uuid.New(), price)
	require.NoError(t, err)
	return cp
}

func TestNewCatalogProduct(t *testing.T) {
	price, err := valueobject.NewMoneyFromFloat(29.99, valueobject.USD)
	require.NoError(t, err)

	_, err = NewCatalogProduct(uuid.Nil, uuid.New(), price)
	assert.Error(t, err)

	_, err = NewCatalogProduct(uuid.New(), uuid.Nil, price)
	assert.Error(t, err)

	negative, err := valueobject.NewMoneyFromFloat(-1, valueobject.USD)
	require.NoError(t, err)
	_, err = NewCatalogProduct(uuid.New(), uuid.New(), negative)
	assert.Error(t, err)

	cp, err := NewCatalogProduct(uuid.New(), uuid.New(), price)
	require.NoError(t, err)
	assert.True(t, cp.IsListed)
}

func TestCatalogProduct_FinalPrice(t *testing.T) {
	t.Run("base price when nothing else set", func(t *testing.T) {
		cp := newTestListing(t, 100)
		assert.Equal(t, "100.00", cp.FinalPrice().StringFixed(2))
	})

	t.Run("discount applies to base price", func(t *testing.T) {
		cp := newTestListing(t, 100)
		require.NoError(t, cp.SetDiscount(decimal.NewFromInt(25)))
		assert.Equal(t, "75.00", cp.FinalPrice().StringFixed(2))
	})

	t.Run("override replaces base as the discount base", func(t *testing.T) {
		cp := newTestListing(t, 100)
		require.NoError(t, cp.SetDiscount(decimal.NewFromInt(10)))
		override, err := valueobject.NewMoneyFromFloat(50, valueobject.USD)
		require.NoError(t, err)
		require.NoError(t, cp.SetOverridePrice(override))
		assert.Equal(t, "45.00", cp.FinalPrice().StringFixed(2))
	})

	t.Run("override without discount stands as-is", func(t *testing.T) {
		cp := newTestListing(t, 100)
		override, err := valueobject.NewMoneyFromFloat(49.99, valueobject.USD)
		require.NoError(t, err)
		require.NoError(t, cp.SetOverridePrice(override))
		assert.Equal(t, "49.99", cp.FinalPrice().StringFixed(2))
	})

	t.Run("clearing the override restores the discount", func(t *testing.T) {
		cp := newTestListing(t, 100)
		require.NoError(t, cp.SetDiscount(decimal.NewFromInt(10)))
		override, err := valueobject.NewMoneyFromFloat(49.99, valueobject.USD)
		require.NoError(t, err)
		require.NoError(t, cp.SetOverridePrice(override))
		cp.ClearOverridePrice()
		assert.Equal(t, "90.00", cp.FinalPrice().StringFixed(2))
	})
}

func TestCatalogProduct_SetOverridePrice_CurrencyMismatch(t *testing.T) {
	cp := newTestListing(t, 100)
	override, err := valueobject.NewMoneyFromFloat(85, valueobject.EUR)
	require.NoError(t, err)
	assert.Error(t, cp.SetOverridePrice(override))
}

func TestCatalogProduct_SetDiscount_Bounds(t *testing.T) {
	cp := newTestListing(t, 100)

	assert.Error(t, cp.SetDiscount(decimal.NewFromInt(-1)))
	assert.Error(t, cp.SetDiscount(decimal.NewFromInt(101)))
	assert.NoError(t, cp.SetDiscount(decimal.NewFromInt(100)))
	assert.Equal(t, "0.00", cp.FinalPrice().StringFixed(2))
}

func TestCatalogProduct_IsAvailableAt(t *testing.T) {
	now := time.Now()
	from := now.Add(-time.Hour)
	to := now.Add(time.Hour)

	cp := newTestListing(t, 100)
	cp.EffectiveFrom = &from
	cp.EffectiveTo = &to

	assert.True(t, cp.IsAvailableAt(now))
	assert.False(t, cp.IsAvailableAt(to))

	cp.Delist()
	assert.False(t, cp.IsAvailableAt(now))

	cp.Relist()
	assert.True(t, cp.IsAvailableAt(now))
}
