package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

// GenerateClassReports creates a draft report card per student for the
// template. Students that already own one are skipped.
func (s *ReportCardApprovalService) GenerateClassReports(ctx context.Context, rc models.RequestContext, templateID, classID string, studentIDs []string) (*models.GenerateResult, error) {
	if strings.TrimSpace(templateID) == "" || strings.TrimSpace(classID) == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingParameter, "template and class are required")
	}
	if len(studentIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrMissingParameter, "at least one student is required")
	}
	if !s.directory.IsManager(rc.Role) {
		return nil, appErrors.Clone(appErrors.ErrPermissionDenied, "only managers may generate report cards")
	}
	tmpl, err := s.templateLoader()(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if rc.CampusID != "" && tmpl.CampusID != rc.CampusID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report card template not found")
	}

	existing, err := s.store.ExistingStudents(ctx, templateID, studentIDs)
	if err != nil {
		return nil, storeError(err, "report cards not found")
	}
	if existing == nil {
		existing = map[string]bool{}
	}

	result := &models.GenerateResult{Created: []string{}, Skipped: []string{}}
	cards := make([]models.ReportCard, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		if existing[studentID] {
			result.Skipped = append(result.Skipped, studentID)
			continue
		}
		existing[studentID] = true
		card := models.ReportCard{
			ID:         uuid.NewString(),
			TemplateID: tmpl.ID,
			StudentID:  studentID,
			ClassID:    classID,
			CampusID:   tmpl.CampusID,
			SchoolYear: tmpl.SchoolYear,
			Semester:   tmpl.Semester,
		}
		NewApprovalStore(&card.Data).EnsureUnits(tmpl)
		AggregateApprovals(&card, tmpl)
		cards = append(cards, card)
		result.Created = append(result.Created, card.ID)
	}

	if err := s.store.CreateBatch(ctx, cards); err != nil {
		return nil, storeError(err, "report cards not found")
	}
	s.logger.Info("report cards generated",
		zap.String("template_id", templateID),
		zap.String("class_id", classID),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)))
	s.afterCommit(ctx, cards)
	return result, nil
}

// DeleteReportCard removes a report card that has not been published.
func (s *ReportCardApprovalService) DeleteReportCard(ctx context.Context, rc models.RequestContext, id string) error {
	if !s.directory.IsManager(rc.Role) {
		return appErrors.Clone(appErrors.ErrPermissionDenied, "only managers may delete report cards")
	}
	card, err := s.GetReportCard(ctx, rc, id)
	if err != nil {
		return err
	}
	if card.Status == models.ReportCardPublished {
		return appErrors.Clone(appErrors.ErrInvalidTransition, "published report cards cannot be deleted")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError(err, "report card not found")
	}
	s.logger.Info("report card deleted", zap.String("report_card_id", id), zap.String("actor_id", rc.ActorID))
	s.afterCommit(ctx, []models.ReportCard{*card})
	return nil
}
