package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	"github.com/noah-isme/sma-reportcard-api/internal/repository"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

// SubmitClassReports submits the selected units on every report card of a class.
func (s *ReportCardApprovalService) SubmitClassReports(ctx context.Context, rc models.RequestContext, batch models.BatchSelection, sel UnitSelector) (*models.BatchResult, error) {
	return s.runBatch(ctx, rc, models.ActionSubmit, batch, s.submitFn(sel))
}

// ApproveClassReports approves the selected units at level 1 or 2 across a class.
func (s *ReportCardApprovalService) ApproveClassReports(ctx context.Context, rc models.RequestContext, batch models.BatchSelection, level models.PendingLevel, sel UnitSelector) (*models.BatchResult, error) {
	switch level {
	case models.PendingLevel1:
		return s.runBatch(ctx, rc, models.ActionApproveL1, batch, s.approveLevel1Fn())
	case models.PendingLevel2:
		return s.runBatch(ctx, rc, models.ActionApproveL2, batch, s.approveLevel2Fn(sel))
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("class approval supports level_1 and level_2, got %q", level))
	}
}

// ReviewBatchReports reviews every selected report card.
func (s *ReportCardApprovalService) ReviewBatchReports(ctx context.Context, rc models.RequestContext, batch models.BatchSelection) (*models.BatchResult, error) {
	return s.runBatch(ctx, rc, models.ActionReview, batch, s.reviewFn())
}

// PublishBatchReports publishes every selected report card.
func (s *ReportCardApprovalService) PublishBatchReports(ctx context.Context, rc models.RequestContext, batch models.BatchSelection) (*models.BatchResult, error) {
	return s.runBatch(ctx, rc, models.ActionPublish, batch, s.publishFn())
}

// RejectBatch rejects the selected units across a class at the level of the given queue.
func (s *ReportCardApprovalService) RejectBatch(ctx context.Context, rc models.RequestContext, batch models.BatchSelection, level models.PendingLevel, sel UnitSelector, reason string) (*models.BatchResult, error) {
	from := level.Level()
	if from == models.LevelNone {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid pending level %q", level))
	}
	return s.runBatch(ctx, rc, models.ActionReject, batch, s.rejectFn(sel, from, reason))
}

// runBatch applies one transition to every selected report card inside a
// single transaction. Each item runs under its own savepoint: rule
// violations roll back to it and are reported per item, while any other
// failure aborts and rolls back the whole batch.
func (s *ReportCardApprovalService) runBatch(ctx context.Context, rc models.RequestContext, action models.ApprovalAction, batch models.BatchSelection, apply applyFunc) (*models.BatchResult, error) {
	if batch.Empty() {
		return nil, appErrors.Clone(appErrors.ErrMissingParameter, "report card ids or template and class are required")
	}
	filter := models.ReportCardFilter{
		IDs:        batch.ReportCardIDs,
		TemplateID: batch.TemplateID,
		ClassID:    batch.ClassID,
		CampusID:   rc.CampusID,
	}

	loader := s.templateLoader()
	var (
		result   *models.BatchResult
		modified []models.ReportCard
	)
	err := s.store.WithinTx(ctx, func(tx repository.ReportCardTx) error {
		result = &models.BatchResult{Succeeded: []string{}, Failed: []models.BatchFailure{}}
		modified = nil

		cards, err := tx.ListForUpdate(ctx, filter)
		if err != nil {
			return storeError(err, "report cards not found")
		}
		missing := missingIDs(batch.ReportCardIDs, cards)
		if len(cards) == 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "no report cards match the selection")
		}
		if s.batchLimit > 0 && len(cards) > s.batchLimit {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("batch of %d report cards exceeds the limit of %d", len(cards), s.batchLimit))
		}
		result.Total = len(cards) + len(missing)
		for _, id := range missing {
			result.Failed = append(result.Failed, models.BatchFailure{ID: id, Code: appErrors.ErrNotFound.Code, Reason: "report card not found"})
		}

		for i := range cards {
			card := &cards[i]
			savepoint := fmt.Sprintf("batch_item_%d", i)
			if err := tx.Savepoint(ctx, savepoint); err != nil {
				return err
			}
			if err := s.applyToCard(ctx, tx, rc, card, loader, apply); err != nil {
				if !appErrors.IsBusiness(err) {
					return err
				}
				if rbErr := tx.RollbackToSavepoint(ctx, savepoint); rbErr != nil {
					return rbErr
				}
				appErr := appErrors.FromError(err)
				result.Failed = append(result.Failed, models.BatchFailure{ID: card.ID, Code: appErr.Code, Reason: appErr.Message})
				s.metrics.RecordBatchItem(string(action), "failed")
				continue
			}
			if err := tx.ReleaseSavepoint(ctx, savepoint); err != nil {
				return err
			}
			result.Succeeded = append(result.Succeeded, card.ID)
			modified = append(modified, *card)
			s.metrics.RecordBatchItem(string(action), "succeeded")
		}
		return nil
	})
	s.metrics.RecordApprovalTransition("batch_"+string(action), outcomeOf(err))
	if err != nil {
		err = asAppError(err, "batch update failed")
		s.logger.Error("report card batch aborted",
			zap.String("action", string(action)),
			zap.String("template_id", batch.TemplateID),
			zap.String("class_id", batch.ClassID),
			zap.String("actor_id", rc.ActorID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("report card batch applied",
		zap.String("action", string(action)),
		zap.String("template_id", batch.TemplateID),
		zap.String("class_id", batch.ClassID),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("total", result.Total))
	s.afterCommit(ctx, modified)
	return result, nil
}

func missingIDs(requested []string, found []models.ReportCard) []string {
	if len(requested) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(found))
	for _, card := range found {
		seen[card.ID] = true
	}
	var missing []string
	for _, id := range requested {
		if !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return missing
}
