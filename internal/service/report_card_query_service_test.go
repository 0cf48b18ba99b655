package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

func TestGetPendingApprovalsLevel2(t *testing.T) {
	tmpl := newTestTemplate()
	f := newServiceFixture(t, tmpl, classCards(t, tmpl, 3, 2)...)
	ctx := context.Background()

	items, err := f.svc.GetPendingApprovals(ctx, teacher(mathManager), models.PendingLevel2, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.False(t, item.IsViewerOnly)
		require.Len(t, item.Units, 1)
		assert.Equal(t, mathUnit, item.Units[0].Unit)
		assert.Equal(t, "scores:math", item.Units[0].Key)
	}

	items, err = f.svc.GetPendingApprovals(ctx, admin(), models.PendingLevel2, models.PendingFilter{ClassID: testClass})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].IsViewerOnly)

	items, err = f.svc.GetPendingApprovals(ctx, teacher(bioManager), models.PendingLevel2, models.PendingFilter{})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetPendingApprovalsLevel1AndEntry(t *testing.T) {
	tmpl := newTestTemplate()
	f := newServiceFixture(t, tmpl, classCards(t, tmpl, 2, 2)...)
	ctx := context.Background()

	_, err := f.svc.SubmitSection(ctx, teacher(homeroomTchr), "rc-01", UnitSelector{Section: models.SectionHomeroom})
	require.NoError(t, err)

	items, err := f.svc.GetPendingApprovals(ctx, teacher(gradeHead), models.PendingLevel1, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "rc-01", items[0].ReportCardID)

	items, err = f.svc.GetPendingApprovals(ctx, teacher(homeroomL2), models.PendingLevel2, models.PendingFilter{})
	require.NoError(t, err)
	assert.Empty(t, items, "homeroom waits for level 1 first")

	_, err = f.svc.RejectSingle(ctx, teacher(mathManager), "rc-02", mathSelector, models.LevelNone, "missing grades")
	require.NoError(t, err)

	items, err = f.svc.GetPendingApprovals(ctx, teacher(mathTeacher), models.PendingEntry, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "rc-02", items[0].ReportCardID)
	assert.Equal(t, models.EntryActionNeeded, items[0].Units[0].EntryAction)

	items, err = f.svc.GetPendingApprovals(ctx, teacher(bioTeacher), models.PendingEntry, models.PendingFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetPendingApprovalsReviewAndPublish(t *testing.T) {
	tmpl := newTestTemplate()
	f := newServiceFixture(t, tmpl, classCards(t, tmpl, 2, 0)...)
	ctx := context.Background()
	f.advanceToLevel2(t, "rc-01")

	items, err := f.svc.GetPendingApprovals(ctx, teacher(stageReviewer), models.PendingReview, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Len(t, items[0].Units, 3)
	assert.True(t, items[0].IsComplete)

	items, err = f.svc.GetPendingApprovals(ctx, teacher(principal), models.PendingPublish, models.PendingFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = f.svc.ReviewReport(ctx, teacher(stageReviewer), "rc-01")
	require.NoError(t, err)

	items, err = f.svc.GetPendingApprovals(ctx, teacher(principal), models.PendingPublish, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.ApprovalReviewed, items[0].ApprovalStatus)

	items, err = f.svc.GetPendingApprovals(ctx, teacher(mathManager), models.PendingPublish, models.PendingFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetPendingApprovalsValidation(t *testing.T) {
	tmpl := newTestTemplate()
	f := newServiceFixture(t, tmpl)
	ctx := context.Background()

	_, err := f.svc.GetPendingApprovals(ctx, admin(), "", models.PendingFilter{})
	assert.ErrorIs(t, err, appErrors.ErrMissingParameter)

	_, err = f.svc.GetPendingApprovals(ctx, admin(), models.PendingLevel("level_9"), models.PendingFilter{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	f.store.listErr = errors.New("timeout")
	_, err = f.svc.GetPendingApprovals(ctx, admin(), models.PendingLevel2, models.PendingFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestGetPendingApprovalsGroupedUsesCache(t *testing.T) {
	tmpl := newTestTemplate()
	f := newServiceFixture(t, tmpl, classCards(t, tmpl, 3, 2)...)
	ctx := context.Background()

	groups, err := f.svc.GetPendingApprovalsGrouped(ctx, teacher(mathManager), models.PendingLevel2, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, models.PendingGroup{
		TemplateID:    testTemplate,
		ClassID:       testClass,
		Section:       models.SectionScores,
		SubjectID:     "math",
		PendingCount:  2,
		ReportCardIDs: []string{"rc-01", "rc-02"},
	}, groups[0])
	assert.Equal(t, 1, f.cache.sets)

	f.store.listErr = errors.New("should not be queried")
	cached, err := f.svc.GetPendingApprovalsGrouped(ctx, teacher(mathManager), models.PendingLevel2, models.PendingFilter{})
	require.NoError(t, err)
	assert.Equal(t, groups, cached)

	f.store.listErr = nil
	_, err = f.svc.ApproveLevel2(ctx, teacher(mathManager), "rc-01", mathSelector)
	require.NoError(t, err)

	groups, err = f.svc.GetPendingApprovalsGrouped(ctx, teacher(mathManager), models.PendingLevel2, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"rc-02"}, groups[0].ReportCardIDs)
}

func TestGetPendingApprovalsGroupedIgnoresWritesFromBeforeATransition(t *testing.T) {
	tmpl := newTestTemplate()
	f := newServiceFixture(t, tmpl, classCards(t, tmpl, 3, 2)...)
	ctx := context.Background()

	stale, err := f.svc.GetPendingApprovalsGrouped(ctx, teacher(mathManager), models.PendingLevel2, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, stale, 1)
	staleKey := f.cache.lastSetKey

	_, err = f.svc.ApproveLevel2(ctx, teacher(mathManager), "rc-01", mathSelector)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.cache.generation)

	// a reader that loaded rows before the commit stores its result late
	require.NoError(t, f.cache.Set(ctx, staleKey, stale, time.Minute))

	groups, err := f.svc.GetPendingApprovalsGrouped(ctx, teacher(mathManager), models.PendingLevel2, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"rc-02"}, groups[0].ReportCardIDs)
	assert.NotEqual(t, staleKey, f.cache.lastSetKey)
}

func TestGetPendingApprovalsGroupedEntryQueueIsNeverCached(t *testing.T) {
	tmpl := newTestTemplate()
	f := newServiceFixture(t, tmpl, classCards(t, tmpl, 3, 2)...)
	ctx := context.Background()

	_, err := f.svc.RejectSingle(ctx, teacher(mathManager), "rc-01", mathSelector, models.LevelNone, "missing grades")
	require.NoError(t, err)

	groups, err := f.svc.GetPendingApprovalsGrouped(ctx, teacher(mathTeacher), models.PendingEntry, models.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].ReturnedCount)
	assert.Equal(t, 0, f.cache.sets)

	_, err = f.svc.SubmitSection(ctx, teacher(mathTeacher), "rc-01", mathSelector)
	require.NoError(t, err)
	groups, err = f.svc.GetPendingApprovalsGrouped(ctx, teacher(mathTeacher), models.PendingEntry, models.PendingFilter{})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupPendingCountsReturnedUnits(t *testing.T) {
	returned := models.UnitApproval{Unit: mathUnit, Approval: models.ApprovalSubRecord{Status: models.ApprovalRejected, RejectedFromLevel: models.LevelSubject}}
	items := []models.PendingApproval{
		{ReportCardID: "rc-01", TemplateID: testTemplate, ClassID: testClass, IsViewerOnly: true, Units: []models.UnitApproval{returned}},
		{ReportCardID: "rc-02", TemplateID: testTemplate, ClassID: testClass, Units: []models.UnitApproval{{Unit: mathUnit}, {Unit: bioUnit}}},
	}

	groups := groupPending(models.PendingEntry, items)

	require.Len(t, groups, 2)
	assert.Equal(t, "bio", groups[0].SubjectID)
	assert.Equal(t, 1, groups[0].PendingCount)
	assert.Equal(t, "math", groups[1].SubjectID)
	assert.Equal(t, 2, groups[1].PendingCount)
	assert.Equal(t, 1, groups[1].ReturnedCount)
	assert.False(t, groups[1].ViewerOnly)

	perReport := groupPending(models.PendingReview, items)
	require.Len(t, perReport, 1)
	assert.Equal(t, 2, perReport[0].PendingCount)
	assert.Empty(t, perReport[0].Section)
}

func TestGetReportCardScopedToCampus(t *testing.T) {
	tmpl := newTestTemplate()
	f := newServiceFixture(t, tmpl, newTestCard("rc-1", tmpl))
	ctx := context.Background()

	card, err := f.svc.GetReportCard(ctx, admin(), "rc-1")
	require.NoError(t, err)
	assert.Equal(t, "student-rc-1", card.StudentID)

	other := admin()
	other.CampusID = "campus-2"
	_, err = f.svc.GetReportCard(ctx, other, "rc-1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = f.svc.GetReportCard(ctx, admin(), "nope")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestGetApprovalOverview(t *testing.T) {
	tmpl := newTestTemplate()
	f := newServiceFixture(t, tmpl, newTestCard("rc-1", tmpl))
	ctx := context.Background()

	overview, err := f.svc.GetApprovalOverview(ctx, admin(), "rc-1")
	require.NoError(t, err)
	assert.Len(t, overview.Units, 3)
	assert.False(t, overview.CanReview)
	assert.Equal(t, []models.Section{models.SectionHomeroom, models.SectionScores}, overview.MissingSections)

	f.advanceToLevel2(t, "rc-1")
	overview, err = f.svc.GetApprovalOverview(ctx, admin(), "rc-1")
	require.NoError(t, err)
	assert.True(t, overview.CanReview)
	assert.Empty(t, overview.MissingSections)
	assert.Len(t, overview.History, 7)
}
