package content

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContent(t *testing.T) *ProductLocaleContent {
	t.Helper()
	c, err := NewProductLocaleContent(uuid.New(), "fr_FR")
	require.NoError(t, err)
	return c
}

func TestNewProductLocaleContent(t *testing.T) {
	_, err := NewProductLocaleContent(uuid.Nil, "fr_FR")
	assert.Error(t, err)

	_, err = NewProductLocaleContent(uuid.New(), "")
	assert.Error(t, err)

	c := newTestContent(t)
	assert.Equal(t, TranslationStatusPending, c.TranslationStatus)
	assert.Equal(t, 1, c.ContentVersion)
}

func TestTranslationStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    TranslationStatus
		to      TranslationStatus
		allowed bool
	}{
		{TranslationStatusPending, TranslationStatusInProgress, true},
		{TranslationStatusPending, TranslationStatusFailed, true},
		{TranslationStatusPending, TranslationStatusApproved, false},
		{TranslationStatusInProgress, TranslationStatusCompleted, true},
		{TranslationStatusInProgress, TranslationStatusFailed, true},
		{TranslationStatusInProgress, TranslationStatusApproved, false},
		{TranslationStatusCompleted, TranslationStatusApproved, true},
		{TranslationStatusCompleted, TranslationStatusPending, true},
		{TranslationStatusFailed, TranslationStatusPending, true},
		{TranslationStatusFailed, TranslationStatusCompleted, false},
		{TranslationStatusApproved, TranslationStatusPending, false},
		{TranslationStatusApproved, TranslationStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, TranslationStatusApproved.IsTerminal())
	assert.False(t, TranslationStatusFailed.IsTerminal())
}

func TestProductLocaleContent_UpdateContent(t *testing.T) {
	c := newTestContent(t)

	require.NoError(t, c.UpdateContent("Nom", "Description", "", "", ""))
	assert.Equal(t, 2, c.ContentVersion)

	assert.Error(t, c.UpdateContent("", "Description", "", "", ""))
	assert.Equal(t, 2, c.ContentVersion, "failed edits do not bump the version")
}

func TestProductLocaleContent_Approve(t *testing.T) {
	c := newTestContent(t)

	_, err := c.Approve("reviewer@example.com", "looks good")
	assert.Error(t, err, "pending content cannot be approved")

	require.NoError(t, c.TransitionStatus(TranslationStatusInProgress))
	require.NoError(t, c.TransitionStatus(TranslationStatusCompleted))

	_, err = c.Approve("", "looks good")
	assert.Error(t, err, "approval requires an actor")

	approval, err := c.Approve("reviewer@example.com", "looks good")
	require.NoError(t, err)
	assert.Equal(t, TranslationStatusApproved, c.TranslationStatus)
	assert.Equal(t, c.ID, approval.ContentID)
	assert.Equal(t, c.ContentVersion, approval.ContentVersion)
	assert.Equal(t, "reviewer@example.com", approval.Actor)
	assert.False(t, approval.ApprovedAt.IsZero())
}

func TestProductLocaleContent_EditAfterApproval(t *testing.T) {
	c := newTestContent(t)
	require.NoError(t, c.TransitionStatus(TranslationStatusInProgress))
	require.NoError(t, c.TransitionStatus(TranslationStatusCompleted))
	_, err := c.Approve("reviewer@example.com", "ok")
	require.NoError(t, err)

	require.NoError(t, c.UpdateContent("Nouveau nom", "", "", "", ""))
	assert.Equal(t, TranslationStatusCompleted, c.TranslationStatus, "edits invalidate approval")
}
