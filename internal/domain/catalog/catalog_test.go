package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		catalogName string
		region      string
		segment     MarketSegment
		currency    string
		wantErr     bool
	}{
		{
			name:        "valid retail catalog",
			code:        "US_RETAIL",
			catalogName: "US Retail",
			region:      "US",
			segment:     MarketSegmentRetail,
			currency:    "USD",
			wantErr:     false,
		},
		{
			name:        "valid wholesale catalog",
			code:        "eu-wholesale",
			catalogName: "EU Wholesale",
			region:      "eu",
			segment:     MarketSegmentWholesale,
			currency:    "EUR",
			wantErr:     false,
		},
		{
			name:        "empty code",
			code:        "",
			catalogName: "US Retail",
			region:      "US",
			segment:     MarketSegmentRetail,
			currency:    "USD",
			wantErr:     true,
		},
		{
			name:        "code with spaces",
			code:        "US RETAIL",
			catalogName: "US Retail",
			region:      "US",
			segment:     MarketSegmentRetail,
			currency:    "USD",
			wantErr:     true,
		},
		{
			name:        "empty name",
			code:        "US_RETAIL",
			catalogName: "",
			region:      "US",
			segment:     MarketSegmentRetail,
			currency:    "USD",
			wantErr:     true,
		},
		{
			name:        "empty region",
			code:        "US_RETAIL",
			catalogName: "US Retail",
			region:      "",
			segment:     MarketSegmentRetail,
			currency:    "USD",
			wantErr:     true,
		},
		{
			name:        "unknown segment",
			code:        "US_RETAIL",
			catalogName: "US Retail",
			region:      "US",
			segment:     MarketSegment("b2b2c"),
			currency:    "USD",
			wantErr:     true,
		},
		{
			name:        "bad currency code",
			code:        "US_RETAIL",
			catalogName: "US Retail",
			region:      "US",
			segment:     MarketSegmentRetail,
			currency:    "DOLLARS",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := NewCatalog(tt.code, tt.catalogName, tt.region, tt.segment, tt.currency)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, catalog)
				return
			}
			require.NoError(t, err)
			assert.True(t, catalog.IsActive)
			assert.False(t, catalog.IsDefault)
			assert.Len(t, catalog.GetDomainEvents(), 1)
		})
	}
}

func TestCatalog_CodeAndRegionUppercased(t *testing.T) {
	catalog, err := NewCatalog("eu-wholesale", "EU Wholesale", "eu", MarketSegmentWholesale, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EU-WHOLESALE", catalog.Code)
	assert.Equal(t, "EU", catalog.RegionCode)
}

func TestCatalog_IsEffectiveAt(t *testing.T) {
	now := time.Now()
	from := now.Add(-time.Hour)
	to := now.Add(time.Hour)

	catalog, err := NewCatalog("US_RETAIL", "US Retail", "US", MarketSegmentRetail, "USD")
	require.NoError(t, err)
	require.NoError(t, catalog.SetEffectiveWindow(&from, &to))

	assert.True(t, catalog.IsEffectiveAt(now))
	assert.True(t, catalog.IsEffectiveAt(from), "lower bound is inclusive")
	assert.False(t, catalog.IsEffectiveAt(to), "upper bound is exclusive")
	assert.False(t, catalog.IsEffectiveAt(to.Add(time.Minute)))

	require.NoError(t, catalog.Deactivate())
	assert.False(t, catalog.IsEffectiveAt(now), "inactive catalogs are never effective")
}

func TestCatalog_SetEffectiveWindow_Inverted(t *testing.T) {
	now := time.Now()
	from := now.Add(time.Hour)
	to := now.Add(-time.Hour)

	catalog, err := NewCatalog("US_RETAIL", "US Retail", "US", MarketSegmentRetail, "USD")
	require.NoError(t, err)

	err = catalog.SetEffectiveWindow(&from, &to)
	assert.Error(t, err)
}

func TestCatalog_UnboundedWindow(t *testing.T) {
	catalog, err := NewCatalog("US_RETAIL", "US Retail", "US", MarketSegmentRetail, "USD")
	require.NoError(t, err)

	assert.True(t, catalog.IsEffectiveAt(time.Now()))
	assert.True(t, catalog.IsEffectiveAt(time.Now().AddDate(10, 0, 0)))
}

func TestCatalog_Deactivate(t *testing.T) {
	catalog, err := NewCatalog("US_RETAIL", "US Retail", "US", MarketSegmentRetail, "USD")
	require.NoError(t, err)

	require.NoError(t, catalog.Deactivate())
	assert.Error(t, catalog.Deactivate(), "double deactivation should fail")
}
