package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	"github.com/noah-isme/sma-reportcard-api/internal/repository"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

// SystemActor stamps steps the engine takes on its own, such as skipping a
// level that has no configured reviewer.
const SystemActor = "system"

const (
	pendingCachePattern = "report_cards:pending:*"
	// pendingGenerationKey sits outside pendingCachePattern so invalidation keeps it.
	pendingGenerationKey = "report_cards:pending_generation"
)

type reportCardStore interface {
	WithinTx(ctx context.Context, fn func(repository.ReportCardTx) error) error
	FindByID(ctx context.Context, id string) (*models.ReportCard, error)
	List(ctx context.Context, filter models.ReportCardFilter) ([]models.ReportCard, error)
	ExistingStudents(ctx context.Context, templateID string, studentIDs []string) (map[string]bool, error)
	CreateBatch(ctx context.Context, cards []models.ReportCard) error
	Delete(ctx context.Context, id string) error
}

type templateFinder interface {
	FindByID(ctx context.Context, id string) (*models.ReportCardTemplate, error)
}

type approverDirectory interface {
	IsManager(role models.UserRole) bool
	EntryAccess(ctx context.Context, rc models.RequestContext, card *models.ReportCard, key models.UnitKey) (models.Access, error)
	ApproverAccess(ctx context.Context, rc models.RequestContext, level models.ApprovalLevel, tmpl *models.ReportCardTemplate, card *models.ReportCard, key models.UnitKey) (models.Access, error)
}

type publishNotifier interface {
	NotifyPublished(ctx context.Context, event models.ReportCardPublishedEvent)
}

type pendingCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
	Generation(ctx context.Context, key string) (int64, error)
	BumpGeneration(ctx context.Context, key string) error
}

// ReportCardApprovalService drives report cards through the approval levels.
type ReportCardApprovalService struct {
	store      reportCardStore
	templates  templateFinder
	directory  approverDirectory
	notifier   publishNotifier
	cache      pendingCache
	cacheTTL   time.Duration
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
	batchLimit int
}

// ApprovalOption customises the approval service.
type ApprovalOption func(*ReportCardApprovalService)

// WithPublishNotifier sets the collaborator told about publications.
func WithPublishNotifier(n publishNotifier) ApprovalOption {
	return func(s *ReportCardApprovalService) { s.notifier = n }
}

// WithPendingCache enables caching of grouped pending lists.
func WithPendingCache(c pendingCache, ttl time.Duration) ApprovalOption {
	return func(s *ReportCardApprovalService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithApprovalMetrics records transition outcomes.
func WithApprovalMetrics(m *MetricsService) ApprovalOption {
	return func(s *ReportCardApprovalService) { s.metrics = m }
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) ApprovalOption {
	return func(s *ReportCardApprovalService) { s.now = now }
}

// WithBatchLimit caps the number of report cards a batch may touch.
func WithBatchLimit(limit int) ApprovalOption {
	return func(s *ReportCardApprovalService) { s.batchLimit = limit }
}

// NewReportCardApprovalService wires the approval engine.
func NewReportCardApprovalService(store reportCardStore, templates templateFinder, directory approverDirectory, logger *zap.Logger, opts ...ApprovalOption) *ReportCardApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ReportCardApprovalService{
		store:     store,
		templates: templates,
		directory: directory,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// UnitSelector picks units inside one section. Empty subject means every
// subject of the section; empty board means every board of the subject.
type UnitSelector struct {
	Section   models.Section
	SubjectID string
	Board     models.Board
}

// applyFunc mutates one locked report card in memory.
type applyFunc func(ctx context.Context, rc models.RequestContext, card *models.ReportCard, tmpl *models.ReportCardTemplate) error

// SaveEntry stores data entered for one unit. The first save moves a draft
// unit to entry; units already handed to approvers are locked.
func (s *ReportCardApprovalService) SaveEntry(ctx context.Context, rc models.RequestContext, reportID string, key models.UnitKey, content json.RawMessage) (*models.ReportCard, error) {
	return s.transition(ctx, rc, reportID, models.ActionEnter, s.saveEntryFn(key, content))
}

// SubmitSection hands entered data to the approval chain.
func (s *ReportCardApprovalService) SubmitSection(ctx context.Context, rc models.RequestContext, reportID string, sel UnitSelector) (*models.ReportCard, error) {
	return s.transition(ctx, rc, reportID, models.ActionSubmit, s.submitFn(sel))
}

// ApproveLevel1 records the grade head's approval of the homeroom section.
func (s *ReportCardApprovalService) ApproveLevel1(ctx context.Context, rc models.RequestContext, reportID string) (*models.ReportCard, error) {
	return s.transition(ctx, rc, reportID, models.ActionApproveL1, s.approveLevel1Fn())
}

// ApproveLevel2 records a subject manager's approval.
func (s *ReportCardApprovalService) ApproveLevel2(ctx context.Context, rc models.RequestContext, reportID string, sel UnitSelector) (*models.ReportCard, error) {
	return s.transition(ctx, rc, reportID, models.ActionApproveL2, s.approveLevel2Fn(sel))
}

// ReviewReport records the stage reviewer's sign-off on a fully approved report.
func (s *ReportCardApprovalService) ReviewReport(ctx context.Context, rc models.RequestContext, reportID string) (*models.ReportCard, error) {
	return s.transition(ctx, rc, reportID, models.ActionReview, s.reviewFn())
}

// FinalPublish publishes a reviewed report. Publication is terminal.
func (s *ReportCardApprovalService) FinalPublish(ctx context.Context, rc models.RequestContext, reportID string) (*models.ReportCard, error) {
	return s.transition(ctx, rc, reportID, models.ActionPublish, s.publishFn())
}

// RejectSingle returns units of one report card to an earlier owner. A zero
// level is inferred from the furthest status among the selected units.
func (s *ReportCardApprovalService) RejectSingle(ctx context.Context, rc models.RequestContext, reportID string, sel UnitSelector, level models.ApprovalLevel, reason string) (*models.ReportCard, error) {
	return s.transition(ctx, rc, reportID, models.ActionReject, s.rejectFn(sel, level, reason))
}

func (s *ReportCardApprovalService) saveEntryFn(key models.UnitKey, content json.RawMessage) applyFunc {
	return func(ctx context.Context, rc models.RequestContext, card *models.ReportCard, tmpl *models.ReportCardTemplate) error {
		if err := key.Validate(); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
		if !tmpl.Declares(key) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("template does not declare %s", key))
		}
		if len(content) == 0 {
			return appErrors.Clone(appErrors.ErrMissingParameter, "content is required")
		}
		access, err := s.directory.EntryAccess(ctx, rc, card, key)
		if err != nil {
			return err
		}
		if !access.Allowed() {
			return permissionDenied("enter data for", key)
		}
		store := NewApprovalStore(&card.Data)
		switch status := store.Status(key); status {
		case models.ApprovalDraft:
			if err := store.Set(key, models.ApprovalEntry, rc.ActorID, s.now()); err != nil {
				return err
			}
		case models.ApprovalEntry, models.ApprovalRejected:
		default:
			return appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("%s is %s and locked for data entry", key, status))
		}
		return store.SetContent(key, content)
	}
}

func (s *ReportCardApprovalService) submitFn(sel UnitSelector) applyFunc {
	return func(ctx context.Context, rc models.RequestContext, card *models.ReportCard, tmpl *models.ReportCardTemplate) error {
		targets, err := selectUnits(tmpl, sel)
		if err != nil {
			return err
		}
		store := NewApprovalStore(&card.Data)
		return forTargets(targets, func(key models.UnitKey) error {
			access, err := s.directory.EntryAccess(ctx, rc, card, key)
			if err != nil {
				return err
			}
			if !access.Allowed() {
				return permissionDenied("submit", key)
			}
			if err := store.Set(key, models.ApprovalSubmitted, rc.ActorID, s.now()); err != nil {
				return err
			}
			s.appendHistory(card, models.LevelNone, models.ActionSubmit, key, rc.ActorID, "")
			if key.Section == models.SectionHomeroom {
				return s.skipUnstaffedHomeroomLevels(card, tmpl, store)
			}
			return nil
		})
	}
}

func (s *ReportCardApprovalService) approveLevel1Fn() applyFunc {
	return func(ctx context.Context, rc models.RequestContext, card *models.ReportCard, tmpl *models.ReportCardTemplate) error {
		if !tmpl.SectionEnabled(models.SectionHomeroom) {
			return appErrors.Clone(appErrors.ErrValidation, "homeroom section is not enabled for this template")
		}
		key := models.HomeroomUnit
		access, err := s.directory.ApproverAccess(ctx, rc, models.LevelHomeroom, tmpl, card, key)
		if err != nil {
			return err
		}
		if !access.Allowed() {
			return permissionDenied("approve level 1", key)
		}
		store := NewApprovalStore(&card.Data)
		if err := store.Set(key, models.ApprovalLevel1Approved, rc.ActorID, s.now()); err != nil {
			return err
		}
		s.appendHistory(card, models.LevelHomeroom, models.ActionApproveL1, key, rc.ActorID, "")
		return s.skipUnstaffedHomeroomLevels(card, tmpl, store)
	}
}

func (s *ReportCardApprovalService) approveLevel2Fn(sel UnitSelector) applyFunc {
	return func(ctx context.Context, rc models.RequestContext, card *models.ReportCard, tmpl *models.ReportCardTemplate) error {
		targets, err := selectUnits(tmpl, sel)
		if err != nil {
			return err
		}
		store := NewApprovalStore(&card.Data)
		return forTargets(targets, func(key models.UnitKey) error {
			access, err := s.directory.ApproverAccess(ctx, rc, models.LevelSubject, tmpl, card, key)
			if err != nil {
				return err
			}
			if !access.Allowed() {
				return permissionDenied("approve level 2", key)
			}
			if key.Section == models.SectionHomeroom && tmpl.HasLevel1Reviewer() && store.Status(key) == models.ApprovalSubmitted {
				return appErrors.Clone(appErrors.ErrInvalidTransition, "homeroom is awaiting level 1 approval")
			}
			if err := store.Set(key, models.ApprovalLevel2Approved, rc.ActorID, s.now()); err != nil {
				return err
			}
			s.appendHistory(card, models.LevelSubject, models.ActionApproveL2, key, rc.ActorID, "")
			return nil
		})
	}
}

func (s *ReportCardApprovalService) reviewFn() applyFunc {
	return func(ctx context.Context, rc models.RequestContext, card *models.ReportCard, tmpl *models.ReportCardTemplate) error {
		access, err := s.directory.ApproverAccess(ctx, rc, models.LevelReview, tmpl, card, models.UnitKey{})
		if err != nil {
			return err
		}
		if !access.Allowed() {
			return appErrors.Clone(appErrors.ErrPermissionDenied, "caller is not a level 3 reviewer for this education stage")
		}
		AggregateApprovals(card, tmpl)
		if missing := IncompleteSections(card, tmpl); len(missing) > 0 {
			return appErrors.Clone(appErrors.ErrInvalidTransition,
				fmt.Sprintf("sections not fully approved at level 2: %s", joinSections(missing)))
		}
		store := NewApprovalStore(&card.Data)
		moved := 0
		for _, key := range tmpl.AllUnits() {
			if store.Status(key) != models.ApprovalLevel2Approved {
				continue
			}
			if err := store.Set(key, models.ApprovalReviewed, rc.ActorID, s.now()); err != nil {
				return err
			}
			moved++
		}
		if moved == 0 {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "report card has nothing awaiting review")
		}
		s.appendHistory(card, models.LevelReview, models.ActionReview, models.UnitKey{}, rc.ActorID, "")
		return nil
	}
}

func (s *ReportCardApprovalService) publishFn() applyFunc {
	return func(ctx context.Context, rc models.RequestContext, card *models.ReportCard, tmpl *models.ReportCardTemplate) error {
		access, err := s.directory.ApproverAccess(ctx, rc, models.LevelPublish, tmpl, card, models.UnitKey{})
		if err != nil {
			return err
		}
		if !access.Allowed() {
			return appErrors.Clone(appErrors.ErrPermissionDenied, "caller is not a level 4 publisher for this education stage")
		}
		units := tmpl.AllUnits()
		if len(units) == 0 {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "template declares no units to publish")
		}
		store := NewApprovalStore(&card.Data)
		for _, key := range units {
			if status := store.Status(key); status != models.ApprovalReviewed {
				return invalidTransition(key, status, models.ApprovalPublished)
			}
		}
		for _, key := range units {
			if err := store.Set(key, models.ApprovalPublished, rc.ActorID, s.now()); err != nil {
				return err
			}
		}
		s.appendHistory(card, models.LevelPublish, models.ActionPublish, models.UnitKey{}, rc.ActorID, "")
		return nil
	}
}

func (s *ReportCardApprovalService) rejectFn(sel UnitSelector, level models.ApprovalLevel, reason string) applyFunc {
	return func(ctx context.Context, rc models.RequestContext, card *models.ReportCard, tmpl *models.ReportCardTemplate) error {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return appErrors.Clone(appErrors.ErrMissingParameter, "rejection reason is required")
		}
		if level != models.LevelNone && !level.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid rejection level %d", level))
		}
		targets, err := selectUnits(tmpl, sel)
		if err != nil {
			return err
		}
		store := NewApprovalStore(&card.Data)
		from := level
		if from == models.LevelNone {
			from = inferRejectionLevel(store, targets)
			if from == models.LevelNone {
				return appErrors.Clone(appErrors.ErrInvalidTransition, "nothing in the selection can be rejected")
			}
		}
		return forTargets(targets, func(key models.UnitKey) error {
			status := store.Status(key)
			if !rejectableAt(from, key, status) {
				return invalidTransition(key, status, models.ApprovalRejected)
			}
			access, err := s.directory.ApproverAccess(ctx, rc, from, tmpl, card, key)
			if err != nil {
				return err
			}
			if !access.Allowed() {
				return permissionDenied(fmt.Sprintf("reject at level %d", from), key)
			}
			if err := store.Reject(key, from, reason, rc.ActorID, s.now()); err != nil {
				return err
			}
			s.appendHistory(card, from, models.ActionReject, key, rc.ActorID, reason)
			return nil
		})
	}
}

// skipUnstaffedHomeroomLevels advances homeroom past levels nobody is
// configured to approve.
func (s *ReportCardApprovalService) skipUnstaffedHomeroomLevels(card *models.ReportCard, tmpl *models.ReportCardTemplate, store *ApprovalStore) error {
	key := models.HomeroomUnit
	if store.Status(key) == models.ApprovalSubmitted && !tmpl.HasLevel1Reviewer() {
		if err := store.Set(key, models.ApprovalLevel1Approved, SystemActor, s.now()); err != nil {
			return err
		}
		s.appendHistory(card, models.LevelHomeroom, models.ActionApproveL1, key, SystemActor, "no level 1 reviewer configured")
	}
	if store.Status(key) == models.ApprovalLevel1Approved && !tmpl.HasLevel2Reviewer() {
		if err := store.Set(key, models.ApprovalLevel2Approved, SystemActor, s.now()); err != nil {
			return err
		}
		s.appendHistory(card, models.LevelSubject, models.ActionApproveL2, key, SystemActor, "no level 2 reviewer configured")
	}
	return nil
}

func (s *ReportCardApprovalService) appendHistory(card *models.ReportCard, level models.ApprovalLevel, action models.ApprovalAction, key models.UnitKey, actor, comment string) {
	card.ApprovalHistory = append(card.ApprovalHistory, models.ApprovalHistoryEntry{
		ID:        uuid.NewString(),
		Level:     level,
		Action:    action,
		Section:   key.Section,
		SubjectID: key.SubjectID,
		Board:     key.Board,
		ActorID:   actor,
		Comment:   comment,
		At:        s.now().UTC(),
	})
}

// transition runs apply on one locked report card and persists the result.
func (s *ReportCardApprovalService) transition(ctx context.Context, rc models.RequestContext, reportID string, action models.ApprovalAction, apply applyFunc) (*models.ReportCard, error) {
	if strings.TrimSpace(reportID) == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingParameter, "report card id is required")
	}
	loader := s.templateLoader()
	var updated *models.ReportCard
	err := s.store.WithinTx(ctx, func(tx repository.ReportCardTx) error {
		card, err := tx.GetForUpdate(ctx, reportID)
		if err != nil {
			return storeError(err, "report card not found")
		}
		if err := s.applyToCard(ctx, tx, rc, card, loader, apply); err != nil {
			return err
		}
		updated = card
		return nil
	})
	s.metrics.RecordApprovalTransition(string(action), outcomeOf(err))
	if err != nil {
		err = asAppError(err, "failed to update report card")
		s.logger.Warn("report card transition failed",
			zap.String("report_card_id", reportID),
			zap.String("action", string(action)),
			zap.String("actor_id", rc.ActorID),
			zap.Error(err))
		return nil, err
	}
	s.logger.Info("report card transition applied",
		zap.String("report_card_id", reportID),
		zap.String("action", string(action)),
		zap.String("actor_id", rc.ActorID),
		zap.String("approval_status", string(updated.ApprovalStatus)))
	s.afterCommit(ctx, []models.ReportCard{*updated})
	return updated, nil
}

func (s *ReportCardApprovalService) applyToCard(ctx context.Context, tx repository.ReportCardTx, rc models.RequestContext, card *models.ReportCard, loader func(context.Context, string) (*models.ReportCardTemplate, error), apply applyFunc) error {
	if rc.CampusID != "" && card.CampusID != rc.CampusID {
		return appErrors.Clone(appErrors.ErrPermissionDenied, "report card belongs to another campus")
	}
	tmpl, err := loader(ctx, card.TemplateID)
	if err != nil {
		return err
	}
	if err := apply(ctx, rc, card, tmpl); err != nil {
		return err
	}
	AggregateApprovals(card, tmpl)
	if err := tx.Update(ctx, card); err != nil {
		return storeError(err, "report card not found")
	}
	return nil
}

// afterCommit runs side effects that must never undo a committed approval.
func (s *ReportCardApprovalService) afterCommit(ctx context.Context, cards []models.ReportCard) {
	if len(cards) == 0 {
		return
	}
	if s.cache != nil {
		if err := s.cache.BumpGeneration(ctx, pendingGenerationKey); err != nil {
			s.logger.Warn("bump pending approvals cache generation", zap.Error(err))
		}
		if err := s.cache.Invalidate(ctx, pendingCachePattern); err != nil {
			s.logger.Warn("invalidate pending approvals cache", zap.Error(err))
		}
	}
	if s.notifier == nil {
		return
	}
	for _, card := range cards {
		if card.Status != models.ReportCardPublished {
			continue
		}
		s.notifier.NotifyPublished(ctx, models.ReportCardPublishedEvent{
			ReportCardID: card.ID,
			StudentID:    card.StudentID,
			ClassID:      card.ClassID,
			TemplateID:   card.TemplateID,
			CampusID:     card.CampusID,
			SchoolYear:   card.SchoolYear,
			Semester:     card.Semester,
			PublishedAt:  s.now().UTC(),
		})
	}
}

// templateLoader memoises template lookups for the duration of one call.
func (s *ReportCardApprovalService) templateLoader() func(context.Context, string) (*models.ReportCardTemplate, error) {
	cache := map[string]*models.ReportCardTemplate{}
	return func(ctx context.Context, id string) (*models.ReportCardTemplate, error) {
		if tmpl, ok := cache[id]; ok {
			return tmpl, nil
		}
		tmpl, err := s.templates.FindByID(ctx, id)
		if err != nil {
			return nil, storeError(err, "report card template not found")
		}
		cache[id] = tmpl
		return tmpl, nil
	}
}

// selectUnits resolves a selector against the template's declared units.
func selectUnits(tmpl *models.ReportCardTemplate, sel UnitSelector) ([]models.UnitKey, error) {
	if sel.Section == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingParameter, "section is required")
	}
	if !sel.Section.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid section %q", sel.Section))
	}
	if sel.Board != "" && !sel.Board.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid board %q", sel.Board))
	}
	if !tmpl.SectionEnabled(sel.Section) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("section %s is not enabled for this template", sel.Section))
	}
	var units []models.UnitKey
	for _, key := range tmpl.Units(sel.Section) {
		if sel.SubjectID != "" && key.SubjectID != sel.SubjectID {
			continue
		}
		if sel.Board != "" && key.Board != sel.Board {
			continue
		}
		units = append(units, key)
	}
	if len(units) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("template declares no %s unit matching subject %q board %q", sel.Section, sel.SubjectID, sel.Board))
	}
	return units, nil
}

// forTargets applies step to each unit. A single unit reports its own error.
// With several units, rule violations skip the unit and only surface when
// nothing applied, preferring a state error over a permission error.
func forTargets(targets []models.UnitKey, step func(models.UnitKey) error) error {
	if len(targets) == 1 {
		return step(targets[0])
	}
	var stateErr, otherErr error
	applied := 0
	for _, key := range targets {
		err := step(key)
		switch {
		case err == nil:
			applied++
		case !appErrors.IsBusiness(err):
			return err
		case errors.Is(err, appErrors.ErrInvalidTransition):
			stateErr = err
		default:
			otherErr = err
		}
	}
	if applied > 0 {
		return nil
	}
	if stateErr != nil {
		return stateErr
	}
	return otherErr
}

func inferRejectionLevel(store *ApprovalStore, targets []models.UnitKey) models.ApprovalLevel {
	level := models.LevelNone
	for _, key := range targets {
		var l models.ApprovalLevel
		switch store.Status(key) {
		case models.ApprovalReviewed:
			l = models.LevelPublish
		case models.ApprovalLevel2Approved:
			l = models.LevelReview
		case models.ApprovalLevel1Approved:
			l = models.LevelSubject
		case models.ApprovalSubmitted:
			l = models.LevelSubject
			if key.Section == models.SectionHomeroom {
				l = models.LevelHomeroom
			}
		}
		if l > level {
			level = l
		}
	}
	return level
}

func rejectableAt(level models.ApprovalLevel, key models.UnitKey, status models.ApprovalStatus) bool {
	switch level {
	case models.LevelHomeroom:
		return key.Section == models.SectionHomeroom && status == models.ApprovalSubmitted
	case models.LevelSubject:
		return status == models.ApprovalSubmitted || status == models.ApprovalLevel1Approved
	case models.LevelReview:
		return status == models.ApprovalLevel2Approved
	case models.LevelPublish:
		return status == models.ApprovalReviewed
	}
	return false
}

func permissionDenied(action string, key models.UnitKey) error {
	return appErrors.Clone(appErrors.ErrPermissionDenied, fmt.Sprintf("caller may not %s %s", action, key))
}

// storeError maps persistence failures onto the error taxonomy.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	case errors.Is(err, repository.ErrVersionConflict):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "report card was modified concurrently, retry the request")
	default:
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "report card storage failure")
	}
}

func asAppError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	if appErr := appErrors.FromError(err); appErr != nil {
		return strings.ToLower(appErr.Code)
	}
	return "error"
}

func joinSections(sections []models.Section) string {
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
