package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

// GetReportCard loads one report card visible to the caller.
func (s *ReportCardApprovalService) GetReportCard(ctx context.Context, rc models.RequestContext, id string) (*models.ReportCard, error) {
	card, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "report card not found")
	}
	if rc.CampusID != "" && card.CampusID != rc.CampusID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report card not found")
	}
	return card, nil
}

// GetApprovalOverview returns every unit with its approval state and whether
// the data-entry role owes a resubmission.
func (s *ReportCardApprovalService) GetApprovalOverview(ctx context.Context, rc models.RequestContext, id string) (*models.ApprovalOverview, error) {
	card, err := s.GetReportCard(ctx, rc, id)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.templateLoader()(ctx, card.TemplateID)
	if err != nil {
		return nil, err
	}
	AggregateApprovals(card, tmpl)

	store := NewApprovalStore(&card.Data)
	units := tmpl.AllUnits()
	overview := &models.ApprovalOverview{
		ReportCardID:   card.ID,
		Status:         card.Status,
		ApprovalStatus: card.ApprovalStatus,
		Counters:       card.ApprovalCounters,
		Units:          make([]models.UnitApproval, 0, len(units)),
		History:        card.ApprovalHistory,
	}
	for _, key := range units {
		overview.Units = append(overview.Units, unitApproval(store, key))
	}
	overview.MissingSections = IncompleteSections(card, tmpl)
	overview.CanReview = card.AllSectionsLevel2Approved && len(units) > 0 && card.ApprovalStatus == models.ApprovalLevel2Approved
	return overview, nil
}

// GetPendingApprovals lists report cards with units waiting on the caller at level.
func (s *ReportCardApprovalService) GetPendingApprovals(ctx context.Context, rc models.RequestContext, level models.PendingLevel, filter models.PendingFilter) ([]models.PendingApproval, error) {
	if level == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingParameter, "level is required")
	}
	if level != models.PendingEntry && level.Level() == models.LevelNone {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid pending level %q", level))
	}
	cards, err := s.store.List(ctx, models.ReportCardFilter{
		TemplateID: filter.TemplateID,
		ClassID:    filter.ClassID,
		CampusID:   rc.CampusID,
		SchoolYear: filter.SchoolYear,
		Semester:   filter.Semester,
	})
	if err != nil {
		return nil, storeError(err, "report cards not found")
	}

	loader := s.templateLoader()
	items := make([]models.PendingApproval, 0)
	for i := range cards {
		card := &cards[i]
		tmpl, err := loader(ctx, card.TemplateID)
		if err != nil {
			s.logger.Warn("skip report card with unreadable template", zap.String("report_card_id", card.ID), zap.Error(err))
			continue
		}
		item, err := s.pendingFor(ctx, rc, level, card, tmpl)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, nil
}

// GetPendingApprovalsGrouped groups pending report cards by class and unit.
// Approver queues are cached under the current cache generation; a
// transition bumps the generation, so a result computed from rows that were
// read before the commit is stored under a key no reader asks for again. The
// entry queue is decided by ResolveEntryAction and is always computed live.
func (s *ReportCardApprovalService) GetPendingApprovalsGrouped(ctx context.Context, rc models.RequestContext, level models.PendingLevel, filter models.PendingFilter) ([]models.PendingGroup, error) {
	cacheKey := ""
	if s.cache != nil && level != models.PendingEntry {
		gen, err := s.cache.Generation(ctx, pendingGenerationKey)
		if err == nil {
			cacheKey = fmt.Sprintf("report_cards:pending:%d:%s:%s:%s:%s:%s:%s:%s",
				gen, rc.CampusID, rc.ActorID, level, filter.TemplateID, filter.ClassID, filter.SchoolYear, filter.Semester)
		}
	}
	if cacheKey != "" {
		var cached []models.PendingGroup
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := s.GetPendingApprovals(ctx, rc, level, filter)
	if err != nil {
		return nil, err
	}
	groups := groupPending(level, items)

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, groups, s.cacheTTL); err != nil {
			s.logger.Warn("cache pending approvals", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return groups, nil
}

// pendingFor returns the part of card awaiting the caller, nil when nothing is.
func (s *ReportCardApprovalService) pendingFor(ctx context.Context, rc models.RequestContext, level models.PendingLevel, card *models.ReportCard, tmpl *models.ReportCardTemplate) (*models.PendingApproval, error) {
	store := NewApprovalStore(&card.Data)
	item := &models.PendingApproval{
		ReportCardID:   card.ID,
		TemplateID:     card.TemplateID,
		StudentID:      card.StudentID,
		ClassID:        card.ClassID,
		SchoolYear:     card.SchoolYear,
		Semester:       card.Semester,
		ApprovalStatus: card.ApprovalStatus,
		IsComplete:     card.AllSectionsLevel2Approved,
		UpdatedAt:      card.UpdatedAt,
	}

	switch level {
	case models.PendingReview, models.PendingPublish:
		want := models.ApprovalLevel2Approved
		if level == models.PendingPublish {
			if card.ApprovalStatus != models.ApprovalReviewed {
				return nil, nil
			}
			want = models.ApprovalReviewed
		}
		for _, key := range tmpl.AllUnits() {
			if store.Status(key) == want {
				item.Units = append(item.Units, unitApproval(store, key))
			}
		}
		if len(item.Units) == 0 {
			return nil, nil
		}
		access, err := s.directory.ApproverAccess(ctx, rc, level.Level(), tmpl, card, models.UnitKey{})
		if err != nil {
			return nil, err
		}
		if !access.Allowed() {
			return nil, nil
		}
		item.IsViewerOnly = access == models.AccessManager
		return item, nil
	}

	viewerOnly := true
	for _, key := range tmpl.AllUnits() {
		rec := store.Get(key)
		if !awaiting(level, tmpl, key, rec) {
			continue
		}
		var (
			access models.Access
			err    error
		)
		if level == models.PendingEntry {
			access, err = s.directory.EntryAccess(ctx, rc, card, key)
		} else {
			access, err = s.directory.ApproverAccess(ctx, rc, level.Level(), tmpl, card, key)
		}
		if err != nil {
			return nil, err
		}
		if !access.Allowed() {
			continue
		}
		if access == models.AccessAssigned {
			viewerOnly = false
		}
		item.Units = append(item.Units, unitApproval(store, key))
	}
	if len(item.Units) == 0 {
		return nil, nil
	}
	item.IsViewerOnly = viewerOnly
	return item, nil
}

// awaiting reports whether a unit sits in the queue of level.
func awaiting(level models.PendingLevel, tmpl *models.ReportCardTemplate, key models.UnitKey, rec models.ApprovalSubRecord) bool {
	switch level {
	case models.PendingEntry:
		return ResolveEntryAction(rec) == models.EntryActionNeeded
	case models.PendingLevel1:
		return key.Section == models.SectionHomeroom && rec.Status == models.ApprovalSubmitted && tmpl.HasLevel1Reviewer()
	case models.PendingLevel2:
		switch rec.Status {
		case models.ApprovalSubmitted:
			return key.Section != models.SectionHomeroom || !tmpl.HasLevel1Reviewer()
		case models.ApprovalLevel1Approved:
			return true
		case models.ApprovalRejected:
			return rec.RejectedFromLevel >= models.LevelReview
		}
	}
	return false
}

func unitApproval(store *ApprovalStore, key models.UnitKey) models.UnitApproval {
	rec := store.Get(key)
	return models.UnitApproval{
		Unit:        key,
		Key:         key.String(),
		Approval:    rec,
		EntryAction: ResolveEntryAction(rec),
	}
}

func groupPending(level models.PendingLevel, items []models.PendingApproval) []models.PendingGroup {
	perReport := level == models.PendingReview || level == models.PendingPublish
	index := map[string]*models.PendingGroup{}
	var order []string
	for _, item := range items {
		seen := map[string]bool{}
		for _, unit := range item.Units {
			g := models.PendingGroup{TemplateID: item.TemplateID, ClassID: item.ClassID}
			if !perReport {
				g.Section, g.SubjectID, g.Board = unit.Unit.Section, unit.Unit.SubjectID, unit.Unit.Board
			}
			key := strings.Join([]string{g.TemplateID, g.ClassID, string(g.Section), g.SubjectID, string(g.Board)}, "|")
			group, ok := index[key]
			if !ok {
				g.ViewerOnly = true
				g.ReportCardIDs = []string{}
				group = &g
				index[key] = group
				order = append(order, key)
			}
			if unit.Approval.RejectedFromLevel != models.LevelNone {
				group.ReturnedCount++
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			group.PendingCount++
			group.ReportCardIDs = append(group.ReportCardIDs, item.ReportCardID)
			if !item.IsViewerOnly {
				group.ViewerOnly = false
			}
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i] < order[j] })
	groups := make([]models.PendingGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *index[key])
	}
	return groups
}
