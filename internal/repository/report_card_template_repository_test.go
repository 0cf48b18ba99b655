package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
)

func TestReportCardTemplateRepositoryFindByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewReportCardTemplateRepository(sqlx.NewDb(db, "sqlmock"))

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "campus_id", "title", "school_year", "semester", "education_stage_id", "program_type",
		"homeroom_enabled", "scores_enabled", "subject_eval_enabled",
		"scores_subjects", "subject_eval_subjects", "intl_subjects", "intl_boards",
		"homeroom_reviewer_level_1", "homeroom_reviewer_level_2", "subject_managers", "created_at", "updated_at",
	}).AddRow("tmpl-1", "campus-1", "Semester 1", "2024/2025", "1", "stage-sma", "international",
		true, true, false,
		"{math,bio}", "{}", "{english}", "{ielts}",
		"grade-head", nil, []byte(`{"math":["manager-1"]}`), now, now)
	mock.ExpectQuery("FROM report_card_templates WHERE id = \\$1").WithArgs("tmpl-1").WillReturnRows(rows)

	tmpl, err := repo.FindByID(context.Background(), "tmpl-1")
	require.NoError(t, err)

	assert.Equal(t, models.ProgramInternational, tmpl.ProgramType)
	assert.Equal(t, []string{"math", "bio"}, []string(tmpl.ScoresSubjects))
	assert.True(t, tmpl.HasLevel1Reviewer())
	assert.False(t, tmpl.HasLevel2Reviewer())
	assert.Equal(t, []string{"manager-1"}, tmpl.SubjectManagers["math"])
	assert.Equal(t, []models.UnitKey{
		models.HomeroomUnit,
		{Section: models.SectionScores, SubjectID: "math"},
		{Section: models.SectionScores, SubjectID: "bio"},
		{Section: models.SectionIntlScores, SubjectID: "english", Board: models.BoardIELTS},
	}, tmpl.AllUnits())
	assert.NoError(t, mock.ExpectationsWereMet())
}
