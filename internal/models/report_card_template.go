package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ProgramType distinguishes domestic from international curricula.
type ProgramType string

const (
	ProgramDomestic      ProgramType = "domestic"
	ProgramInternational ProgramType = "international"
)

// SubjectManagers maps a subject id to the users approving it at level 2.
type SubjectManagers map[string][]string

// Value marshals managers to JSON for persistence.
func (m SubjectManagers) Value() (driver.Value, error) {
	if m == nil {
		m = SubjectManagers{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal subject managers: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB column into the managers map.
func (m *SubjectManagers) Scan(value interface{}) error {
	*m = SubjectManagers{}
	data, err := jsonBytes(value, "SubjectManagers")
	if err != nil || len(data) == 0 {
		return err
	}
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("unmarshal subject managers: %w", err)
	}
	return nil
}

// ReportCardTemplate declares which units a report card must contain and who
// approves them at levels 1 and 2.
type ReportCardTemplate struct {
	ID                  string          `db:"id" json:"id"`
	CampusID            string          `db:"campus_id" json:"campus_id"`
	Title               string          `db:"title" json:"title"`
	SchoolYear          string          `db:"school_year" json:"school_year"`
	Semester            string          `db:"semester" json:"semester"`
	EducationStageID    string          `db:"education_stage_id" json:"education_stage_id"`
	ProgramType         ProgramType     `db:"program_type" json:"program_type"`
	HomeroomEnabled     bool            `db:"homeroom_enabled" json:"homeroom_enabled"`
	ScoresEnabled       bool            `db:"scores_enabled" json:"scores_enabled"`
	SubjectEvalEnabled  bool            `db:"subject_eval_enabled" json:"subject_eval_enabled"`
	ScoresSubjects      pq.StringArray  `db:"scores_subjects" json:"scores_subjects"`
	SubjectEvalSubjects pq.StringArray  `db:"subject_eval_subjects" json:"subject_eval_subjects"`
	IntlSubjects        pq.StringArray  `db:"intl_subjects" json:"intl_subjects"`
	IntlBoards          pq.StringArray  `db:"intl_boards" json:"intl_boards"`
	HomeroomReviewerL1  *string         `db:"homeroom_reviewer_level_1" json:"homeroom_reviewer_level_1,omitempty"`
	HomeroomReviewerL2  *string         `db:"homeroom_reviewer_level_2" json:"homeroom_reviewer_level_2,omitempty"`
	SubjectManagers     SubjectManagers `db:"subject_managers" json:"subject_managers"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updated_at"`
}

// SectionEnabled reports whether the template turns section on.
func (t *ReportCardTemplate) SectionEnabled(section Section) bool {
	switch section {
	case SectionHomeroom:
		return t.HomeroomEnabled
	case SectionScores:
		return t.ScoresEnabled
	case SectionSubjectEval:
		return t.SubjectEvalEnabled
	case SectionIntlScores:
		return t.ProgramType == ProgramInternational
	}
	return false
}

// EnabledSections lists the enabled sections in display order.
func (t *ReportCardTemplate) EnabledSections() []Section {
	sections := make([]Section, 0, len(Sections))
	for _, s := range Sections {
		if t.SectionEnabled(s) {
			sections = append(sections, s)
		}
	}
	return sections
}

// boards returns the configured international boards, all of them when unset.
func (t *ReportCardTemplate) boards() []Board {
	if len(t.IntlBoards) == 0 {
		return Boards
	}
	boards := make([]Board, 0, len(t.IntlBoards))
	for _, raw := range t.IntlBoards {
		if b := Board(raw); b.Valid() {
			boards = append(boards, b)
		}
	}
	return boards
}

// Units returns the declared units of section, empty when it is disabled.
func (t *ReportCardTemplate) Units(section Section) []UnitKey {
	if !t.SectionEnabled(section) {
		return nil
	}
	switch section {
	case SectionHomeroom:
		return []UnitKey{HomeroomUnit}
	case SectionScores, SectionSubjectEval:
		subjects := t.ScoresSubjects
		if section == SectionSubjectEval {
			subjects = t.SubjectEvalSubjects
		}
		units := make([]UnitKey, 0, len(subjects))
		for _, id := range subjects {
			units = append(units, UnitKey{Section: section, SubjectID: id})
		}
		return units
	case SectionIntlScores:
		boards := t.boards()
		units := make([]UnitKey, 0, len(t.IntlSubjects)*len(boards))
		for _, id := range t.IntlSubjects {
			for _, b := range boards {
				units = append(units, UnitKey{Section: section, SubjectID: id, Board: b})
			}
		}
		return units
	}
	return nil
}

// AllUnits returns every declared unit across enabled sections.
func (t *ReportCardTemplate) AllUnits() []UnitKey {
	var units []UnitKey
	for _, s := range t.EnabledSections() {
		units = append(units, t.Units(s)...)
	}
	return units
}

// Declares reports whether key is one of the template's units.
func (t *ReportCardTemplate) Declares(key UnitKey) bool {
	for _, u := range t.Units(key.Section) {
		if u == key {
			return true
		}
	}
	return false
}

// HasLevel1Reviewer reports whether a grade head is configured for homeroom.
func (t *ReportCardTemplate) HasLevel1Reviewer() bool {
	return t.HomeroomReviewerL1 != nil && *t.HomeroomReviewerL1 != ""
}

// HasLevel2Reviewer reports whether a homeroom level 2 reviewer is configured.
func (t *ReportCardTemplate) HasLevel2Reviewer() bool {
	return t.HomeroomReviewerL2 != nil && *t.HomeroomReviewerL2 != ""
}

// ApprovalConfig holds the level 3 and level 4 approvers of one education stage.
type ApprovalConfig struct {
	ID               string         `db:"id" json:"id"`
	CampusID         string         `db:"campus_id" json:"campus_id"`
	EducationStageID string         `db:"education_stage_id" json:"education_stage_id"`
	Level3Reviewers  pq.StringArray `db:"level_3_reviewers" json:"level_3_reviewers"`
	Level4Approvers  pq.StringArray `db:"level_4_approvers" json:"level_4_approvers"`
	UpdatedBy        *string        `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// Includes reports whether userID is configured for level.
func (c *ApprovalConfig) Includes(level ApprovalLevel, userID string) bool {
	if c == nil {
		return false
	}
	var list []string
	switch level {
	case LevelReview:
		list = c.Level3Reviewers
	case LevelPublish:
		list = c.Level4Approvers
	}
	for _, id := range list {
		if id == userID {
			return true
		}
	}
	return false
}
