package localization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowType_JobTypes(t *testing.T) {
	tests := []struct {
		workflowType WorkflowType
		want         []JobType
	}{
		{WorkflowTypeLocaleFinancials, []JobType{JobTypeCurrencyConversion}},
		{WorkflowTypeMultiLanguageContent, []JobType{JobTypeTranslation}},
		{WorkflowTypeFullLocalization, []JobType{JobTypeTranslation, JobTypeCurrencyConversion}},
	}

	for _, tt := range tests {
		t.Run(string(tt.workflowType), func(t *testing.T) {
			got, err := tt.workflowType.JobTypes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := WorkflowType("partial_localization").JobTypes()
	assert.Error(t, err)
	assert.False(t, WorkflowType("partial_localization").IsValid())
}
