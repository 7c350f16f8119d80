package localization

import "github.com/storefront/backend/internal/domain/shared"

// WorkflowType selects which job types a workflow fans out per target
// locale
type WorkflowType string

const (
	WorkflowTypeLocaleFinancials     WorkflowType = "locale_financials"
	WorkflowTypeMultiLanguageContent WorkflowType = "multi_language_content"
	WorkflowTypeFullLocalization     WorkflowType = "full_localization"
)

// workflowJobTypes is the fan-out table per workflow type
var workflowJobTypes = map[WorkflowType][]JobType{
	WorkflowTypeLocaleFinancials:     {JobTypeCurrencyConversion},
	WorkflowTypeMultiLanguageContent: {JobTypeTranslation},
	WorkflowTypeFullLocalization:     {JobTypeTranslation, JobTypeCurrencyConversion},
}

// IsValid reports whether the workflow type is known
func (t WorkflowType) IsValid() bool {
	_, ok := workflowJobTypes[t]
	return ok
}

// JobTypes returns the job types to create per target locale. Returns
// an error for unknown workflow types.
func (t WorkflowType) JobTypes() ([]JobType, error) {
	types, ok := workflowJobTypes[t]
	if !ok {
		return nil, shared.NewDomainError("INVALID_WORKFLOW_TYPE", "Unknown workflow type: "+string(t))
	}
	return types, nil
}
