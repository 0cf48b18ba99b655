package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
)

// ReportCardTemplateRepository reads report card templates. Templates are
// maintained elsewhere, so the repository is read-only.
type ReportCardTemplateRepository struct {
	db *sqlx.DB
}

// NewReportCardTemplateRepository constructs the repository.
func NewReportCardTemplateRepository(db *sqlx.DB) *ReportCardTemplateRepository {
	return &ReportCardTemplateRepository{db: db}
}

// FindByID fetches a template by id.
func (r *ReportCardTemplateRepository) FindByID(ctx context.Context, id string) (*models.ReportCardTemplate, error) {
	const query = `SELECT id, campus_id, title, school_year, semester, education_stage_id, program_type,
	homeroom_enabled, scores_enabled, subject_eval_enabled,
	scores_subjects, subject_eval_subjects, intl_subjects, intl_boards,
	homeroom_reviewer_level_1, homeroom_reviewer_level_2, subject_managers, created_at, updated_at
FROM report_card_templates WHERE id = $1`
	var tmpl models.ReportCardTemplate
	if err := r.db.GetContext(ctx, &tmpl, query, id); err != nil {
		return nil, fmt.Errorf("get report card template: %w", err)
	}
	return &tmpl, nil
}
