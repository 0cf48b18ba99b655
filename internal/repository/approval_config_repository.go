package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
)

// ApprovalConfigRepository stores level 3 and 4 approvers per education stage.
type ApprovalConfigRepository struct {
	db *sqlx.DB
}

// NewApprovalConfigRepository constructs the repository.
func NewApprovalConfigRepository(db *sqlx.DB) *ApprovalConfigRepository {
	return &ApprovalConfigRepository{db: db}
}

// Find returns the configuration of a campus education stage.
func (r *ApprovalConfigRepository) Find(ctx context.Context, campusID, stageID string) (*models.ApprovalConfig, error) {
	const query = `SELECT id, campus_id, education_stage_id, level_3_reviewers, level_4_approvers, updated_by, created_at, updated_at
FROM report_card_approval_configs WHERE campus_id = $1 AND education_stage_id = $2`
	var cfg models.ApprovalConfig
	if err := r.db.GetContext(ctx, &cfg, query, campusID, stageID); err != nil {
		return nil, fmt.Errorf("get approval config: %w", err)
	}
	return &cfg, nil
}

// Upsert creates or replaces the configuration of a campus education stage.
func (r *ApprovalConfigRepository) Upsert(ctx context.Context, cfg *models.ApprovalConfig) error {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	const query = `INSERT INTO report_card_approval_configs (id, campus_id, education_stage_id, level_3_reviewers, level_4_approvers, updated_by, created_at, updated_at)
VALUES (:id, :campus_id, :education_stage_id, :level_3_reviewers, :level_4_approvers, :updated_by, :created_at, :updated_at)
ON CONFLICT (campus_id, education_stage_id) DO UPDATE SET
	level_3_reviewers = EXCLUDED.level_3_reviewers,
	level_4_approvers = EXCLUDED.level_4_approvers,
	updated_by = EXCLUDED.updated_by,
	updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, cfg); err != nil {
		return fmt.Errorf("upsert approval config: %w", err)
	}
	return nil
}
