package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
)

// ErrVersionConflict is returned when a report card changed under an update.
var ErrVersionConflict = errors.New("report card version conflict")

const reportCardColumns = `id, template_id, student_id, class_id, campus_id, school_year, semester, status,
	approval_status, homeroom_approval_status, scores_approval_status, subject_eval_approval_status, intl_approval_status,
	homeroom_submitted_count, homeroom_l2_approved_count, homeroom_total_count,
	scores_submitted_count, scores_l2_approved_count, scores_total_count,
	subject_eval_submitted_count, subject_eval_l2_approved_count, subject_eval_total_count,
	intl_submitted_count, intl_l2_approved_count, intl_total_count, all_sections_l2_approved,
	rejected_section, rejected_from_level, rejection_reason, data, approval_history, version, created_at, updated_at`

// ReportCardRepository persists report cards and their nested approval state.
type ReportCardRepository struct {
	db *sqlx.DB
}

// NewReportCardRepository constructs the repository.
func NewReportCardRepository(db *sqlx.DB) *ReportCardRepository {
	return &ReportCardRepository{db: db}
}

// ReportCardTx exposes row-scoped operations bound to an open transaction.
type ReportCardTx interface {
	GetForUpdate(ctx context.Context, id string) (*models.ReportCard, error)
	ListForUpdate(ctx context.Context, filter models.ReportCardFilter) ([]models.ReportCard, error)
	Update(ctx context.Context, card *models.ReportCard) error
	Savepoint(ctx context.Context, name string) error
	RollbackToSavepoint(ctx context.Context, name string) error
	ReleaseSavepoint(ctx context.Context, name string) error
}

// WithinTx runs fn in a transaction, committing when fn returns nil.
func (r *ReportCardRepository) WithinTx(ctx context.Context, fn func(ReportCardTx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report card transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&reportCardTx{tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit report card transaction: %w", err)
	}
	return nil
}

// FindByID loads a report card without locking it.
func (r *ReportCardRepository) FindByID(ctx context.Context, id string) (*models.ReportCard, error) {
	var card models.ReportCard
	query := `SELECT ` + reportCardColumns + ` FROM report_cards WHERE id = $1`
	if err := r.db.GetContext(ctx, &card, query, id); err != nil {
		return nil, fmt.Errorf("get report card: %w", err)
	}
	return &card, nil
}

// List returns report cards matching filter ordered by id.
func (r *ReportCardRepository) List(ctx context.Context, filter models.ReportCardFilter) ([]models.ReportCard, error) {
	query, args := buildReportCardSelect(filter, false)
	var cards []models.ReportCard
	if err := r.db.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, fmt.Errorf("list report cards: %w", err)
	}
	return cards, nil
}

// ExistingStudents returns the students that already own a card for the template.
func (r *ReportCardRepository) ExistingStudents(ctx context.Context, templateID string, studentIDs []string) (map[string]bool, error) {
	const query = `SELECT student_id FROM report_cards WHERE template_id = $1 AND student_id = ANY($2)`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, templateID, pq.Array(studentIDs)); err != nil {
		return nil, fmt.Errorf("list existing report cards: %w", err)
	}
	existing := make(map[string]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return existing, nil
}

// CreateBatch inserts cards in one transaction.
func (r *ReportCardRepository) CreateBatch(ctx context.Context, cards []models.ReportCard) (err error) {
	if len(cards) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report card insert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO report_cards (` + reportCardColumns + `) VALUES (
	:id, :template_id, :student_id, :class_id, :campus_id, :school_year, :semester, :status,
	:approval_status, :homeroom_approval_status, :scores_approval_status, :subject_eval_approval_status, :intl_approval_status,
	:homeroom_submitted_count, :homeroom_l2_approved_count, :homeroom_total_count,
	:scores_submitted_count, :scores_l2_approved_count, :scores_total_count,
	:subject_eval_submitted_count, :subject_eval_l2_approved_count, :subject_eval_total_count,
	:intl_submitted_count, :intl_l2_approved_count, :intl_total_count, :all_sections_l2_approved,
	:rejected_section, :rejected_from_level, :rejection_reason, :data, :approval_history, :version, :created_at, :updated_at)`

	now := time.Now().UTC()
	for i := range cards {
		card := &cards[i]
		if card.ID == "" {
			card.ID = uuid.NewString()
		}
		if card.CreatedAt.IsZero() {
			card.CreatedAt = now
		}
		card.UpdatedAt = now
		if card.Version == 0 {
			card.Version = 1
		}
		if _, err = tx.NamedExecContext(ctx, query, card); err != nil {
			return fmt.Errorf("insert report card %s: %w", card.StudentID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit report card insert: %w", err)
	}
	return nil
}

// Delete removes a card that has not been published.
func (r *ReportCardRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM report_cards WHERE id = $1 AND status <> 'published'`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete report card: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report card rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type reportCardTx struct {
	tx *sqlx.Tx
}

func (t *reportCardTx) GetForUpdate(ctx context.Context, id string) (*models.ReportCard, error) {
	var card models.ReportCard
	query := `SELECT ` + reportCardColumns + ` FROM report_cards WHERE id = $1 FOR UPDATE`
	if err := t.tx.GetContext(ctx, &card, query, id); err != nil {
		return nil, fmt.Errorf("lock report card: %w", err)
	}
	return &card, nil
}

func (t *reportCardTx) ListForUpdate(ctx context.Context, filter models.ReportCardFilter) ([]models.ReportCard, error) {
	query, args := buildReportCardSelect(filter, true)
	var cards []models.ReportCard
	if err := t.tx.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, fmt.Errorf("lock report cards: %w", err)
	}
	return cards, nil
}

func (t *reportCardTx) Update(ctx context.Context, card *models.ReportCard) error {
	const query = `UPDATE report_cards SET
	status = :status, approval_status = :approval_status,
	homeroom_approval_status = :homeroom_approval_status, scores_approval_status = :scores_approval_status,
	subject_eval_approval_status = :subject_eval_approval_status, intl_approval_status = :intl_approval_status,
	homeroom_submitted_count = :homeroom_submitted_count, homeroom_l2_approved_count = :homeroom_l2_approved_count, homeroom_total_count = :homeroom_total_count,
	scores_submitted_count = :scores_submitted_count, scores_l2_approved_count = :scores_l2_approved_count, scores_total_count = :scores_total_count,
	subject_eval_submitted_count = :subject_eval_submitted_count, subject_eval_l2_approved_count = :subject_eval_l2_approved_count, subject_eval_total_count = :subject_eval_total_count,
	intl_submitted_count = :intl_submitted_count, intl_l2_approved_count = :intl_l2_approved_count, intl_total_count = :intl_total_count,
	all_sections_l2_approved = :all_sections_l2_approved,
	rejected_section = :rejected_section, rejected_from_level = :rejected_from_level, rejection_reason = :rejection_reason,
	data = :data, approval_history = :approval_history,
	version = version + 1, updated_at = :updated_at
WHERE id = :id AND version = :version`

	card.UpdatedAt = time.Now().UTC()
	result, err := t.tx.NamedExecContext(ctx, query, card)
	if err != nil {
		return fmt.Errorf("update report card: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update report card rows affected: %w", err)
	}
	if rows == 0 {
		return ErrVersionConflict
	}
	card.Version++
	return nil
}

func (t *reportCardTx) Savepoint(ctx context.Context, name string) error {
	if _, err := t.tx.ExecContext(ctx, "SAVEPOINT "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("savepoint %s: %w", name, err)
	}
	return nil
}

func (t *reportCardTx) RollbackToSavepoint(ctx context.Context, name string) error {
	if _, err := t.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("rollback to savepoint %s: %w", name, err)
	}
	return nil
}

func (t *reportCardTx) ReleaseSavepoint(ctx context.Context, name string) error {
	if _, err := t.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("release savepoint %s: %w", name, err)
	}
	return nil
}

func buildReportCardSelect(filter models.ReportCardFilter, lock bool) (string, []interface{}) {
	var query strings.Builder
	query.WriteString(`SELECT ` + reportCardColumns + ` FROM report_cards WHERE 1=1`)

	var args []interface{}
	add := func(clause string, value interface{}) {
		args = append(args, value)
		fmt.Fprintf(&query, " AND "+clause, len(args))
	}
	if len(filter.IDs) > 0 {
		add("id = ANY($%d)", pq.Array(filter.IDs))
	}
	if filter.TemplateID != "" {
		add("template_id = $%d", filter.TemplateID)
	}
	if filter.ClassID != "" {
		add("class_id = $%d", filter.ClassID)
	}
	if filter.CampusID != "" {
		add("campus_id = $%d", filter.CampusID)
	}
	if filter.SchoolYear != "" {
		add("school_year = $%d", filter.SchoolYear)
	}
	if filter.Semester != "" {
		add("semester = $%d", filter.Semester)
	}
	query.WriteString(" ORDER BY id ASC")
	if lock {
		query.WriteString(" FOR UPDATE")
	}
	return query.String(), args
}
