package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

type assignmentChecker interface {
	TeachesSubject(ctx context.Context, userID, classID, subjectID string) (bool, error)
	IsHomeroomTeacher(ctx context.Context, userID, classID string) (bool, error)
}

type approvalConfigFinder interface {
	Find(ctx context.Context, campusID, stageID string) (*models.ApprovalConfig, error)
}

// ApproverDirectory answers who may enter data for, or approve, a unit.
// Manager roles act as a fallback at every level.
type ApproverDirectory struct {
	assignments  assignmentChecker
	configs      approvalConfigFinder
	managerRoles map[models.UserRole]struct{}
}

// NewApproverDirectory constructs the directory. Without manager roles,
// ADMIN and SUPERADMIN are used.
func NewApproverDirectory(assignments assignmentChecker, configs approvalConfigFinder, managerRoles ...models.UserRole) *ApproverDirectory {
	if len(managerRoles) == 0 {
		managerRoles = []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin}
	}
	roles := make(map[models.UserRole]struct{}, len(managerRoles))
	for _, r := range managerRoles {
		roles[r] = struct{}{}
	}
	return &ApproverDirectory{assignments: assignments, configs: configs, managerRoles: roles}
}

// IsManager reports whether the role bypasses assignment checks.
func (d *ApproverDirectory) IsManager(role models.UserRole) bool {
	_, ok := d.managerRoles[role]
	return ok
}

// EntryAccess resolves the data-entry role for key on card.
func (d *ApproverDirectory) EntryAccess(ctx context.Context, rc models.RequestContext, card *models.ReportCard, key models.UnitKey) (models.Access, error) {
	if rc.Role == models.RoleTeacher && d.assignments != nil {
		var (
			ok  bool
			err error
		)
		if key.Section == models.SectionHomeroom {
			ok, err = d.assignments.IsHomeroomTeacher(ctx, rc.ActorID, card.ClassID)
		} else {
			ok, err = d.assignments.TeachesSubject(ctx, rc.ActorID, card.ClassID, key.SubjectID)
		}
		if err != nil {
			return models.AccessNone, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve teacher assignment")
		}
		if ok {
			return models.AccessAssigned, nil
		}
	}
	return d.fallback(rc), nil
}

// ApproverAccess resolves the approver at level for key on card.
func (d *ApproverDirectory) ApproverAccess(ctx context.Context, rc models.RequestContext, level models.ApprovalLevel, tmpl *models.ReportCardTemplate, card *models.ReportCard, key models.UnitKey) (models.Access, error) {
	assigned := false
	switch level {
	case models.LevelHomeroom:
		assigned = key.Section == models.SectionHomeroom && tmpl.HasLevel1Reviewer() && *tmpl.HomeroomReviewerL1 == rc.ActorID
	case models.LevelSubject:
		if key.Section == models.SectionHomeroom {
			assigned = tmpl.HasLevel2Reviewer() && *tmpl.HomeroomReviewerL2 == rc.ActorID
		} else {
			assigned = contains(tmpl.SubjectManagers[key.SubjectID], rc.ActorID)
		}
	case models.LevelReview, models.LevelPublish:
		cfg, err := d.stageConfig(ctx, card.CampusID, tmpl.EducationStageID)
		if err != nil {
			return models.AccessNone, err
		}
		assigned = cfg.Includes(level, rc.ActorID)
	}
	if assigned {
		return models.AccessAssigned, nil
	}
	return d.fallback(rc), nil
}

func (d *ApproverDirectory) stageConfig(ctx context.Context, campusID, stageID string) (*models.ApprovalConfig, error) {
	if d.configs == nil {
		return nil, nil
	}
	cfg, err := d.configs.Find(ctx, campusID, stageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load approval config")
	}
	return cfg, nil
}

func (d *ApproverDirectory) fallback(rc models.RequestContext) models.Access {
	if d.IsManager(rc.Role) {
		return models.AccessManager
	}
	return models.AccessNone
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
