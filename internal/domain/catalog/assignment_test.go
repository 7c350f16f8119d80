package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentMethod_Rank(t *testing.T) {
	assert.Less(t, AssignmentMethodCountry.Rank(), AssignmentMethodRole.Rank())
	assert.Less(t, AssignmentMethodRole.Rank(), AssignmentMethodTier.Rank())
	assert.Less(t, AssignmentMethodTier.Rank(), AssignmentMethodUserType.Rank())
	assert.Less(t, AssignmentMethodUserType.Rank(), AssignmentMethodDefault.Rank())
	assert.Greater(t, AssignmentMethod("bogus").Rank(), AssignmentMethodDefault.Rank())
}

func TestNewAssignmentRule(t *testing.T) {
	catalogID := uuid.New()

	tests := []struct {
		name       string
		matchType  AssignmentMethod
		matchValue string
		wantErr    bool
	}{
		{"country rule", AssignmentMethodCountry, "ca", false},
		{"role rule", AssignmentMethodRole, "Wholesale-Buyer", false},
		{"default rule without value", AssignmentMethodDefault, "", false},
		{"default rule with value", AssignmentMethodDefault, "US", true},
		{"country rule without value", AssignmentMethodCountry, "  ", true},
		{"unknown match type", AssignmentMethod("zipcode"), "90210", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewAssignmentRule(catalogID, "en_US", tt.matchType, tt.matchValue, 10)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, rule.IsActive)
			assert.Equal(t, 10, rule.Priority)
		})
	}
}

func TestNewAssignmentRule_NormalizesMatchValue(t *testing.T) {
	catalogID := uuid.New()

	country, err := NewAssignmentRule(catalogID, "en_CA", AssignmentMethodCountry, " ca ", 0)
	require.NoError(t, err)
	assert.Equal(t, "CA", country.MatchValue)

	role, err := NewAssignmentRule(catalogID, "en_US", AssignmentMethodRole, "Wholesale-Buyer", 0)
	require.NoError(t, err)
	assert.Equal(t, "wholesale-buyer", role.MatchValue)
}

func TestNormalizeQuery(t *testing.T) {
	got := NormalizeQuery(AssignmentQuery{
		Country:  " ca ",
		UserType: "Business",
		Roles:    []string{" Admin ", "", "Buyer"},
		Tier:     "GOLD",
	})

	assert.Equal(t, "CA", got.Country)
	assert.Equal(t, "business", got.UserType)
	assert.Equal(t, []string{"admin", "buyer"}, got.Roles)
	assert.Equal(t, "gold", got.Tier)
}
