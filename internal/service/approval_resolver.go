package service

import "github.com/noah-isme/sma-reportcard-api/internal/models"

// ResolveEntryAction decides whether the data-entry role has to act on a
// unit again after a rejection. It only classifies the live sub-record; the
// answer changes silently on resubmission, so callers must not cache it.
func ResolveEntryAction(rec models.ApprovalSubRecord) models.EntryAction {
	switch {
	case rec.RejectedFromLevel >= models.LevelReview:
		// level 2 owns remediation of level 3 and 4 rejections
		return models.EntryActionNone
	case rec.RejectedFromLevel == models.LevelSubject:
		switch rec.Status {
		case models.ApprovalDraft, models.ApprovalEntry, models.ApprovalRejected:
			return models.EntryActionNeeded
		case models.ApprovalLevel1Approved:
			if !resubmittedSinceRejection(rec) {
				return models.EntryActionNeeded
			}
		}
		return models.EntryActionResolved
	case rec.RejectedFromLevel == models.LevelHomeroom:
		switch rec.Status {
		case models.ApprovalDraft, models.ApprovalEntry, models.ApprovalRejected:
			return models.EntryActionNeeded
		}
		return models.EntryActionResolved
	}
	return models.EntryActionNone
}

// resubmittedSinceRejection reports whether the unit went through submit
// after its latest rejection.
func resubmittedSinceRejection(rec models.ApprovalSubRecord) bool {
	if rec.SubmittedAt == nil {
		return false
	}
	return rec.RejectedAt == nil || !rec.SubmittedAt.Before(*rec.RejectedAt)
}
