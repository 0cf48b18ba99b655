package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ApprovalStatus
		ok       bool
	}{
		{ApprovalDraft, ApprovalEntry, true},
		{ApprovalDraft, ApprovalSubmitted, true},
		{ApprovalRejected, ApprovalSubmitted, true},
		{ApprovalSubmitted, ApprovalLevel1Approved, true},
		{ApprovalSubmitted, ApprovalLevel2Approved, true},
		{ApprovalLevel1Approved, ApprovalLevel2Approved, true},
		{ApprovalRejected, ApprovalLevel2Approved, true},
		{ApprovalLevel2Approved, ApprovalReviewed, true},
		{ApprovalReviewed, ApprovalPublished, true},
		{ApprovalSubmitted, ApprovalRejected, true},
		{ApprovalReviewed, ApprovalRejected, true},
		{ApprovalDraft, ApprovalReviewed, false},
		{ApprovalSubmitted, ApprovalPublished, false},
		{ApprovalDraft, ApprovalRejected, false},
		{ApprovalEntry, ApprovalRejected, false},
		{ApprovalPublished, ApprovalRejected, false},
		{ApprovalPublished, ApprovalDraft, false},
		{ApprovalLevel2Approved, ApprovalSubmitted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionFor(t *testing.T) {
	edge, ok := TransitionFor(ApprovalLevel1Approved, ActionApproveL2)
	assert.True(t, ok)
	assert.Equal(t, ApprovalLevel2Approved, edge.To)

	_, ok = TransitionFor(ApprovalPublished, ActionSubmit)
	assert.False(t, ok)
}

func TestAggregateStatus(t *testing.T) {
	assert.Equal(t, ApprovalDraft, AggregateStatus(nil))
	assert.Equal(t, ApprovalSubmitted, AggregateStatus([]ApprovalStatus{ApprovalLevel2Approved, ApprovalSubmitted, ApprovalReviewed}))
	assert.Equal(t, ApprovalRejected, AggregateStatus([]ApprovalStatus{ApprovalPublished, ApprovalRejected, ApprovalDraft}))
	assert.Equal(t, ApprovalPublished, AggregateStatus([]ApprovalStatus{ApprovalPublished, ApprovalPublished}))
	assert.Equal(t, ApprovalDraft.Priority(), AggregateStatus([]ApprovalStatus{"bogus", ApprovalSubmitted}).Priority())
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, ApprovalReviewed.AtLeast(ApprovalLevel2Approved))
	assert.False(t, ApprovalRejected.AtLeast(ApprovalDraft))
	assert.True(t, ApprovalPublished.Terminal())
	assert.False(t, ApprovalStatus("approved").Valid())
	assert.Equal(t, LevelReview, PendingReview.Level())
	assert.Equal(t, LevelNone, PendingLevel("entry").Level())
	assert.False(t, ApprovalLevel(5).Valid())
}
