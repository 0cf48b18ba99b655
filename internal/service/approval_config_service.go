package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-reportcard-api/internal/dto"
	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

type approvalConfigStore interface {
	Find(ctx context.Context, campusID, stageID string) (*models.ApprovalConfig, error)
	Upsert(ctx context.Context, cfg *models.ApprovalConfig) error
}

// ApprovalConfigService maintains level 3 and 4 approvers per education stage.
type ApprovalConfigService struct {
	repo      approvalConfigStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApprovalConfigService constructs the service.
func NewApprovalConfigService(repo approvalConfigStore, validate *validator.Validate, logger *zap.Logger) *ApprovalConfigService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalConfigService{repo: repo, validator: validate, logger: logger}
}

// Get returns the approvers of an education stage on the caller's campus.
func (s *ApprovalConfigService) Get(ctx context.Context, rc models.RequestContext, stageID string) (*models.ApprovalConfig, error) {
	if stageID == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingParameter, "education stage is required")
	}
	cfg, err := s.repo.Find(ctx, rc.CampusID, stageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "approval config not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load approval config")
	}
	return cfg, nil
}

// Save replaces the approvers of an education stage on the caller's campus.
func (s *ApprovalConfigService) Save(ctx context.Context, rc models.RequestContext, req dto.SaveApprovalConfigRequest) (*models.ApprovalConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid approval config payload")
	}
	actor := rc.ActorID
	cfg := &models.ApprovalConfig{
		CampusID:         rc.CampusID,
		EducationStageID: req.EducationStageID,
		Level3Reviewers:  req.Level3Reviewers,
		Level4Approvers:  req.Level4Approvers,
		UpdatedBy:        &actor,
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save approval config")
	}
	s.logger.Info("approval config saved",
		zap.String("campus_id", rc.CampusID),
		zap.String("education_stage_id", req.EducationStageID),
		zap.String("actor_id", actor))
	return cfg, nil
}
