package service

import (
	"github.com/noah-isme/sma-reportcard-api/internal/models"
)

// AggregateApprovals rewrites every derived field of card from its approval
// sub-records: section counters, section status mirrors, the overall status
// and the document-level rejection trail. Running it twice on the same data
// yields the same result.
func AggregateApprovals(card *models.ReportCard, tmpl *models.ReportCardTemplate) {
	store := NewApprovalStore(&card.Data)

	counters := models.ApprovalCounters{AllSectionsLevel2Approved: true}
	var all []models.ApprovalStatus
	var latest *models.ApprovalSubRecord
	var latestKey models.UnitKey

	for _, section := range models.Sections {
		units := tmpl.Units(section)
		if !tmpl.SectionEnabled(section) {
			card.SetSectionStatus(section, "")
			continue
		}
		statuses := make([]models.ApprovalStatus, 0, len(units))
		c := models.SectionCounters{Total: len(units)}
		for _, key := range units {
			rec := store.Get(key)
			statuses = append(statuses, rec.Status)
			if rec.Status != models.ApprovalDraft && rec.Status != models.ApprovalEntry {
				c.Submitted++
			}
			if rec.Status.AtLeast(models.ApprovalLevel2Approved) {
				c.Level2Approved++
			}
			if rec.Status == models.ApprovalRejected && rec.RejectedAt != nil {
				if latest == nil || rec.RejectedAt.After(*latest.RejectedAt) {
					r := rec
					latest, latestKey = &r, key
				}
			}
		}
		counters.Set(section, c)
		if !c.Complete() {
			counters.AllSectionsLevel2Approved = false
		}
		card.SetSectionStatus(section, models.AggregateStatus(statuses))
		all = append(all, statuses...)
	}

	card.ApprovalCounters = counters
	card.ApprovalStatus = models.AggregateStatus(all)

	switch {
	case card.ApprovalStatus == models.ApprovalRejected:
		card.Status = models.ReportCardRejected
	case len(all) > 0 && card.ApprovalStatus == models.ApprovalPublished:
		card.Status = models.ReportCardPublished
	default:
		card.Status = models.ReportCardDraft
	}

	if latest == nil {
		card.RejectedSection, card.RejectedFromLevel, card.RejectionReason = nil, models.LevelNone, nil
		return
	}
	section, reason := latestKey.Section, latest.RejectionReason
	card.RejectedSection = &section
	card.RejectedFromLevel = latest.RejectedFromLevel
	card.RejectionReason = &reason
}

// IncompleteSections lists enabled sections that have not fully passed level 2.
func IncompleteSections(card *models.ReportCard, tmpl *models.ReportCardTemplate) []models.Section {
	var missing []models.Section
	for _, section := range tmpl.EnabledSections() {
		if !card.ApprovalCounters.For(section).Complete() {
			missing = append(missing, section)
		}
	}
	return missing
}
