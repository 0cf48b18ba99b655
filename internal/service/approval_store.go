package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

// ApprovalStore reads and mutates the per-unit approval sub-records nested in
// a report card document. It never persists anything itself.
type ApprovalStore struct {
	data *models.ReportData
}

// NewApprovalStore wraps data. The document is mutated in place.
func NewApprovalStore(data *models.ReportData) *ApprovalStore {
	return &ApprovalStore{data: data}
}

// Get returns a copy of the sub-record for key, a draft record when absent.
func (s *ApprovalStore) Get(key models.UnitKey) models.ApprovalSubRecord {
	if rec := s.lookup(key, false); rec != nil {
		out := *rec
		if out.Status == "" {
			out.Status = models.ApprovalDraft
		}
		return out
	}
	return models.ApprovalSubRecord{Status: models.ApprovalDraft}
}

// Status is a shorthand for Get(key).Status.
func (s *ApprovalStore) Status(key models.UnitKey) models.ApprovalStatus {
	return s.Get(key).Status
}

// Set moves key to status and stamps the acting user for that step.
func (s *ApprovalStore) Set(key models.UnitKey, status models.ApprovalStatus, actor string, at time.Time) error {
	if err := key.Validate(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if status == models.ApprovalRejected {
		return appErrors.Clone(appErrors.ErrInvalidTransition, "rejection must carry a level and reason")
	}
	current := s.Get(key)
	if !models.CanTransition(current.Status, status) {
		return invalidTransition(key, current.Status, status)
	}
	if current.Status == models.ApprovalRejected && status == models.ApprovalLevel2Approved && current.RejectedFromLevel < models.LevelReview {
		return appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("%s was returned to data entry and must be resubmitted", key))
	}

	rec := s.lookup(key, true)
	if rec.Status == "" {
		rec.Status = models.ApprovalDraft
	}
	stamp := at.UTC()
	switch status {
	case models.ApprovalSubmitted:
		rec.SubmittedBy, rec.SubmittedAt = actor, &stamp
	case models.ApprovalLevel1Approved:
		rec.Level1ApprovedBy, rec.Level1ApprovedAt = actor, &stamp
	case models.ApprovalLevel2Approved:
		rec.Level2ApprovedBy, rec.Level2ApprovedAt = actor, &stamp
	case models.ApprovalReviewed:
		rec.ReviewedBy, rec.ReviewedAt = actor, &stamp
	case models.ApprovalPublished:
		rec.PublishedBy, rec.PublishedAt = actor, &stamp
	}
	rec.Status = status
	return nil
}

// Reject returns key to the rejected state, remembering who sent it back.
func (s *ApprovalStore) Reject(key models.UnitKey, from models.ApprovalLevel, reason, actor string, at time.Time) error {
	if err := key.Validate(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if !from.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid rejection level %d", from))
	}
	current := s.Get(key)
	if !models.CanReject(current.Status) {
		return invalidTransition(key, current.Status, models.ApprovalRejected)
	}
	rec := s.lookup(key, true)
	stamp := at.UTC()
	rec.Status = models.ApprovalRejected
	rec.RejectedFromLevel = from
	rec.RejectionReason = reason
	rec.RejectedBy = actor
	rec.RejectedAt = &stamp
	return nil
}

// SetContent stores the entered content of key. It does not touch the
// approval state; callers decide whether the edit is allowed.
func (s *ApprovalStore) SetContent(key models.UnitKey, content json.RawMessage) error {
	if err := key.Validate(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	s.lookup(key, true)
	d := s.data
	switch key.Section {
	case models.SectionHomeroom:
		d.Homeroom.Content = content
	case models.SectionScores:
		d.Scores[key.SubjectID].Content = content
	case models.SectionSubjectEval:
		d.SubjectEval[key.SubjectID].Content = content
	case models.SectionIntlScores:
		entry := d.IntlScores[key.SubjectID]
		if entry.BoardContent == nil {
			entry.BoardContent = map[models.Board]json.RawMessage{}
		}
		entry.BoardContent[key.Board] = content
	}
	return nil
}

// EnsureUnits materialises every unit the template declares as draft.
func (s *ApprovalStore) EnsureUnits(tmpl *models.ReportCardTemplate) {
	for _, key := range tmpl.AllUnits() {
		rec := s.lookup(key, true)
		if rec.Status == "" {
			rec.Status = models.ApprovalDraft
		}
	}
}

// lookup returns the live sub-record for key, creating the path when create is set.
func (s *ApprovalStore) lookup(key models.UnitKey, create bool) *models.ApprovalSubRecord {
	d := s.data
	switch key.Section {
	case models.SectionHomeroom:
		if d.Homeroom == nil {
			if !create {
				return nil
			}
			d.Homeroom = &models.SectionEntry{}
		}
		if d.Homeroom.Approval == nil && create {
			d.Homeroom.Approval = &models.ApprovalSubRecord{}
		}
		return d.Homeroom.Approval
	case models.SectionScores, models.SectionSubjectEval:
		entries := &d.Scores
		if key.Section == models.SectionSubjectEval {
			entries = &d.SubjectEval
		}
		if *entries == nil {
			if !create {
				return nil
			}
			*entries = map[string]*models.SectionEntry{}
		}
		entry := (*entries)[key.SubjectID]
		if entry == nil {
			if !create {
				return nil
			}
			entry = &models.SectionEntry{}
			(*entries)[key.SubjectID] = entry
		}
		if entry.Approval == nil && create {
			entry.Approval = &models.ApprovalSubRecord{}
		}
		return entry.Approval
	case models.SectionIntlScores:
		if d.IntlScores == nil {
			if !create {
				return nil
			}
			d.IntlScores = map[string]*models.IntlSubjectEntry{}
		}
		entry := d.IntlScores[key.SubjectID]
		if entry == nil {
			if !create {
				return nil
			}
			entry = &models.IntlSubjectEntry{}
			d.IntlScores[key.SubjectID] = entry
		}
		if entry.Approvals == nil {
			if !create {
				return nil
			}
			entry.Approvals = map[models.Board]*models.ApprovalSubRecord{}
		}
		rec := entry.Approvals[key.Board]
		if rec == nil && create {
			rec = &models.ApprovalSubRecord{}
			entry.Approvals[key.Board] = rec
		}
		return rec
	}
	return nil
}

func invalidTransition(key models.UnitKey, from, to models.ApprovalStatus) error {
	return appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("%s cannot move from %s to %s", key, from, to))
}
