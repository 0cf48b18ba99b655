package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TeacherAssignmentRepository answers which classes and subjects a user teaches.
type TeacherAssignmentRepository struct {
	db *sqlx.DB
}

// NewTeacherAssignmentRepository constructs the repository.
func NewTeacherAssignmentRepository(db *sqlx.DB) *TeacherAssignmentRepository {
	return &TeacherAssignmentRepository{db: db}
}

// TeachesSubject reports whether the user is assigned to the subject in the class.
func (r *TeacherAssignmentRepository) TeachesSubject(ctx context.Context, userID, classID, subjectID string) (bool, error) {
	const query = `SELECT 1 FROM teacher_assignments ta
JOIN teachers tr ON tr.id = ta.teacher_id
JOIN users u ON u.email = tr.email
WHERE u.id = $1 AND ta.class_id = $2 AND ta.subject_id = $3
LIMIT 1`
	return r.exists(ctx, "check subject assignment", query, userID, classID, subjectID)
}

// IsHomeroomTeacher reports whether the user holds the homeroom role for the class.
func (r *TeacherAssignmentRepository) IsHomeroomTeacher(ctx context.Context, userID, classID string) (bool, error) {
	const query = `SELECT 1 FROM teacher_assignments ta
JOIN teachers tr ON tr.id = ta.teacher_id
JOIN users u ON u.email = tr.email
WHERE u.id = $1 AND ta.class_id = $2 AND ta.role = 'HOMEROOM'
LIMIT 1`
	return r.exists(ctx, "check homeroom assignment", query, userID, classID)
}

func (r *TeacherAssignmentRepository) exists(ctx context.Context, op, query string, args ...interface{}) (bool, error) {
	var found int
	if err := r.db.GetContext(ctx, &found, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
