package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFinancial(t *testing.T) *ProductLocaleFinancial {
	t.Helper()
	f, err := NewProductLocaleFinancial(uuid.New(), "en_US", uuid.New(), "USD", decimal.NewFromInt(100))
	require.NoError(t, err)
	return f
}

func TestNewProductLocaleFinancial(t *testing.T) {
	_, err := NewProductLocaleFinancial(uuid.Nil, "en_US", uuid.New(), "USD", decimal.NewFromInt(100))
	assert.Error(t, err)

	_, err = NewProductLocaleFinancial(uuid.New(), "", uuid.New(), "USD", decimal.NewFromInt(100))
	assert.Error(t, err)

	_, err = NewProductLocaleFinancial(uuid.New(), "en_US", uuid.Nil, "USD", decimal.NewFromInt(100))
	assert.Error(t, err)

	_, err = NewProductLocaleFinancial(uuid.New(), "en_US", uuid.New(), "US", decimal.NewFromInt(100))
	assert.Error(t, err)

	_, err = NewProductLocaleFinancial(uuid.New(), "en_US", uuid.New(), "USD", decimal.NewFromInt(-1))
	assert.Error(t, err)

	f := newTestFinancial(t)
	assert.True(t, f.IsActive)
	assert.Nil(t, f.LocalPrice)
	assert.Nil(t, f.TaxIncludedPrice)
}

func TestProductLocaleFinancial_PriceDerivation(t *testing.T) {
	f := newTestFinancial(t)

	assert.Equal(t, "100", f.EffectiveLocalPrice().String(), "local price defaults to base price")
	assert.Equal(t, "100", f.FinalPrice().String(), "final price defaults to local price")

	require.NoError(t, f.SetLocalPrice(decimal.NewFromFloat(135.50)))
	assert.Equal(t, "135.5", f.EffectiveLocalPrice().String())
	assert.Equal(t, "135.5", f.FinalPrice().String())

	require.NoError(t, f.SetTax(decimal.NewFromFloat(8.25)))
	assert.Equal(t, "11.18", f.TaxAmount.String())
	assert.Equal(t, "146.68", f.FinalPrice().String())
}

func TestProductLocaleFinancial_SetTax_WithoutLocalPrice(t *testing.T) {
	f := newTestFinancial(t)
	require.NoError(t, f.SetTax(decimal.NewFromInt(20)))

	assert.Equal(t, "20", f.TaxAmount.String())
	assert.Equal(t, "120", f.FinalPrice().String())
}

func TestProductLocaleFinancial_IsEffectiveAt(t *testing.T) {
	now := time.Now()
	from := now.Add(-24 * time.Hour)
	to := now.Add(24 * time.Hour)

	f := newTestFinancial(t)

	t.Run("unbounded window", func(t *testing.T) {
		assert.True(t, f.IsEffectiveAt(now))
		assert.True(t, f.IsEffectiveAt(now.AddDate(5, 0, 0)))
	})

	t.Run("half-open bounds", func(t *testing.T) {
		require.NoError(t, f.SetEffectiveWindow(&from, &to))
		assert.True(t, f.IsEffectiveAt(from))
		assert.True(t, f.IsEffectiveAt(now))
		assert.False(t, f.IsEffectiveAt(to))
	})

	t.Run("open lower bound", func(t *testing.T) {
		require.NoError(t, f.SetEffectiveWindow(nil, &to))
		assert.True(t, f.IsEffectiveAt(now.AddDate(-1, 0, 0)))
	})

	t.Run("inactive row is never effective", func(t *testing.T) {
		f.Deactivate()
		assert.False(t, f.IsEffectiveAt(now))
	})
}

func TestProductLocaleFinancial_SetEffectiveWindow_Inverted(t *testing.T) {
	now := time.Now()
	from := now.Add(time.Hour)
	to := now.Add(-time.Hour)

	f := newTestFinancial(t)
	assert.Error(t, f.SetEffectiveWindow(&from, &to))
}
