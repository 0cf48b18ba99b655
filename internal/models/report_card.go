package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Section is one report card category with its own approval track.
type Section string

const (
	SectionHomeroom    Section = "homeroom"
	SectionScores      Section = "scores"
	SectionSubjectEval Section = "subject_eval"
	SectionIntlScores  Section = "intl_scores"
)

// Sections lists every section in display order.
var Sections = []Section{SectionHomeroom, SectionScores, SectionSubjectEval, SectionIntlScores}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionHomeroom, SectionScores, SectionSubjectEval, SectionIntlScores:
		return true
	}
	return false
}

// Board identifies an international programme component of a subject.
type Board string

const (
	BoardMainScores Board = "main_scores"
	BoardIELTS      Board = "ielts"
	BoardComments   Board = "comments"
)

// Boards lists the supported international boards.
var Boards = []Board{BoardMainScores, BoardIELTS, BoardComments}

// Valid reports whether b is a known board.
func (b Board) Valid() bool {
	switch b {
	case BoardMainScores, BoardIELTS, BoardComments:
		return true
	}
	return false
}

// UnitKey addresses one independently approvable unit of a report card.
// Homeroom carries no subject, intl_scores carries both subject and board.
type UnitKey struct {
	Section   Section `json:"section"`
	SubjectID string  `json:"subject_id,omitempty"`
	Board     Board   `json:"board,omitempty"`
}

// HomeroomUnit is the single unit of the homeroom section.
var HomeroomUnit = UnitKey{Section: SectionHomeroom}

// Validate checks that the key shape matches its section.
func (k UnitKey) Validate() error {
	switch k.Section {
	case SectionHomeroom:
		if k.SubjectID != "" || k.Board != "" {
			return fmt.Errorf("homeroom unit takes no subject or board")
		}
	case SectionScores, SectionSubjectEval:
		if k.SubjectID == "" {
			return fmt.Errorf("%s unit requires a subject", k.Section)
		}
		if k.Board != "" {
			return fmt.Errorf("%s unit takes no board", k.Section)
		}
	case SectionIntlScores:
		if k.SubjectID == "" {
			return fmt.Errorf("intl_scores unit requires a subject")
		}
		if !k.Board.Valid() {
			return fmt.Errorf("invalid intl board %q", k.Board)
		}
	default:
		return fmt.Errorf("invalid section %q", k.Section)
	}
	return nil
}

// String renders the key as section[:subject[:board]].
func (k UnitKey) String() string {
	parts := []string{string(k.Section)}
	if k.SubjectID != "" {
		parts = append(parts, k.SubjectID)
	}
	if k.Board != "" {
		parts = append(parts, string(k.Board))
	}
	return strings.Join(parts, ":")
}

// ParseUnitKey is the inverse of UnitKey.String.
func ParseUnitKey(raw string) (UnitKey, error) {
	parts := strings.Split(raw, ":")
	if len(parts) > 3 {
		return UnitKey{}, fmt.Errorf("malformed unit key %q", raw)
	}
	key := UnitKey{Section: Section(parts[0])}
	if len(parts) > 1 {
		key.SubjectID = parts[1]
	}
	if len(parts) > 2 {
		key.Board = Board(parts[2])
	}
	if err := key.Validate(); err != nil {
		return UnitKey{}, err
	}
	return key, nil
}

// ApprovalSubRecord tracks the approval state of one unit.
type ApprovalSubRecord struct {
	Status            ApprovalStatus `json:"status"`
	SubmittedBy       string         `json:"submitted_by,omitempty"`
	SubmittedAt       *time.Time     `json:"submitted_at,omitempty"`
	Level1ApprovedBy  string         `json:"level_1_approved_by,omitempty"`
	Level1ApprovedAt  *time.Time     `json:"level_1_approved_at,omitempty"`
	Level2ApprovedBy  string         `json:"level_2_approved_by,omitempty"`
	Level2ApprovedAt  *time.Time     `json:"level_2_approved_at,omitempty"`
	ReviewedBy        string         `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time     `json:"reviewed_at,omitempty"`
	PublishedBy       string         `json:"published_by,omitempty"`
	PublishedAt       *time.Time     `json:"published_at,omitempty"`
	RejectionReason   string         `json:"rejection_reason,omitempty"`
	RejectedFromLevel ApprovalLevel  `json:"rejected_from_level,omitempty"`
	RejectedBy        string         `json:"rejected_by,omitempty"`
	RejectedAt        *time.Time     `json:"rejected_at,omitempty"`
}

// SectionEntry is a homeroom or per-subject block of report content.
type SectionEntry struct {
	Content  json.RawMessage    `json:"content,omitempty"`
	Approval *ApprovalSubRecord `json:"approval,omitempty"`
}

// IntlSubjectEntry carries content and one approval sub-record per board.
type IntlSubjectEntry struct {
	Content      json.RawMessage              `json:"content,omitempty"`
	BoardContent map[Board]json.RawMessage    `json:"board_content,omitempty"`
	Approvals    map[Board]*ApprovalSubRecord `json:"approvals,omitempty"`
}

// ReportData is the nested JSONB document of a report card.
type ReportData struct {
	Homeroom    *SectionEntry                `json:"homeroom,omitempty"`
	Scores      map[string]*SectionEntry     `json:"scores,omitempty"`
	SubjectEval map[string]*SectionEntry     `json:"subject_eval,omitempty"`
	IntlScores  map[string]*IntlSubjectEntry `json:"intl_scores,omitempty"`
}

// Value marshals the document for persistence.
func (d ReportData) Value() (driver.Value, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal report data: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB column into the document.
func (d *ReportData) Scan(value interface{}) error {
	*d = ReportData{}
	data, err := jsonBytes(value, "ReportData")
	if err != nil || len(data) == 0 {
		return err
	}
	if err := json.Unmarshal(data, d); err != nil {
		return fmt.Errorf("unmarshal report data: %w", err)
	}
	return nil
}

// ApprovalHistoryEntry records one approval action on a report card.
type ApprovalHistoryEntry struct {
	ID        string         `json:"id"`
	Level     ApprovalLevel  `json:"level"`
	Action    ApprovalAction `json:"action"`
	Section   Section        `json:"section,omitempty"`
	SubjectID string         `json:"subject_id,omitempty"`
	Board     Board          `json:"board,omitempty"`
	ActorID   string         `json:"actor_id"`
	Comment   string         `json:"comment,omitempty"`
	At        time.Time      `json:"at"`
}

// ApprovalHistory is the append-only action log stored with a report card.
type ApprovalHistory []ApprovalHistoryEntry

// Value marshals the history for persistence.
func (h ApprovalHistory) Value() (driver.Value, error) {
	if h == nil {
		h = ApprovalHistory{}
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("marshal approval history: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB column into the history.
func (h *ApprovalHistory) Scan(value interface{}) error {
	*h = nil
	data, err := jsonBytes(value, "ApprovalHistory")
	if err != nil || len(data) == 0 {
		return err
	}
	if err := json.Unmarshal(data, h); err != nil {
		return fmt.Errorf("unmarshal approval history: %w", err)
	}
	return nil
}

// SectionCounters are the derived counts of one section.
type SectionCounters struct {
	Submitted      int `json:"submitted_count"`
	Level2Approved int `json:"level_2_approved_count"`
	Total          int `json:"total_count"`
}

// Complete reports whether every unit of the section passed level 2.
func (c SectionCounters) Complete() bool {
	return c.Level2Approved == c.Total
}

// ApprovalCounters are stored as flat columns for filtering without decoding data.
type ApprovalCounters struct {
	HomeroomSubmitted         int  `db:"homeroom_submitted_count" json:"homeroom_submitted_count"`
	HomeroomLevel2Approved    int  `db:"homeroom_l2_approved_count" json:"homeroom_level_2_approved_count"`
	HomeroomTotal             int  `db:"homeroom_total_count" json:"homeroom_total_count"`
	ScoresSubmitted           int  `db:"scores_submitted_count" json:"scores_submitted_count"`
	ScoresLevel2Approved      int  `db:"scores_l2_approved_count" json:"scores_level_2_approved_count"`
	ScoresTotal               int  `db:"scores_total_count" json:"scores_total_count"`
	SubjectEvalSubmitted      int  `db:"subject_eval_submitted_count" json:"subject_eval_submitted_count"`
	SubjectEvalLevel2Approved int  `db:"subject_eval_l2_approved_count" json:"subject_eval_level_2_approved_count"`
	SubjectEvalTotal          int  `db:"subject_eval_total_count" json:"subject_eval_total_count"`
	IntlSubmitted             int  `db:"intl_submitted_count" json:"intl_submitted_count"`
	IntlLevel2Approved        int  `db:"intl_l2_approved_count" json:"intl_level_2_approved_count"`
	IntlTotal                 int  `db:"intl_total_count" json:"intl_total_count"`
	AllSectionsLevel2Approved bool `db:"all_sections_l2_approved" json:"all_sections_level_2_approved"`
}

// For returns the counters of section.
func (c ApprovalCounters) For(section Section) SectionCounters {
	switch section {
	case SectionHomeroom:
		return SectionCounters{c.HomeroomSubmitted, c.HomeroomLevel2Approved, c.HomeroomTotal}
	case SectionScores:
		return SectionCounters{c.ScoresSubmitted, c.ScoresLevel2Approved, c.ScoresTotal}
	case SectionSubjectEval:
		return SectionCounters{c.SubjectEvalSubmitted, c.SubjectEvalLevel2Approved, c.SubjectEvalTotal}
	case SectionIntlScores:
		return SectionCounters{c.IntlSubmitted, c.IntlLevel2Approved, c.IntlTotal}
	}
	return SectionCounters{}
}

// Set overwrites the counters of section.
func (c *ApprovalCounters) Set(section Section, v SectionCounters) {
	switch section {
	case SectionHomeroom:
		c.HomeroomSubmitted, c.HomeroomLevel2Approved, c.HomeroomTotal = v.Submitted, v.Level2Approved, v.Total
	case SectionScores:
		c.ScoresSubmitted, c.ScoresLevel2Approved, c.ScoresTotal = v.Submitted, v.Level2Approved, v.Total
	case SectionSubjectEval:
		c.SubjectEvalSubmitted, c.SubjectEvalLevel2Approved, c.SubjectEvalTotal = v.Submitted, v.Level2Approved, v.Total
	case SectionIntlScores:
		c.IntlSubmitted, c.IntlLevel2Approved, c.IntlTotal = v.Submitted, v.Level2Approved, v.Total
	}
}

// ReportCardStatus is the informational document status.
type ReportCardStatus string

const (
	ReportCardDraft     ReportCardStatus = "draft"
	ReportCardRejected  ReportCardStatus = "rejected"
	ReportCardPublished ReportCardStatus = "published"
)

// ReportCard is one student's report for one template.
type ReportCard struct {
	ID         string           `db:"id" json:"id"`
	TemplateID string           `db:"template_id" json:"template_id"`
	StudentID  string           `db:"student_id" json:"student_id"`
	ClassID    string           `db:"class_id" json:"class_id"`
	CampusID   string           `db:"campus_id" json:"campus_id"`
	SchoolYear string           `db:"school_year" json:"school_year"`
	Semester   string           `db:"semester" json:"semester"`
	Status     ReportCardStatus `db:"status" json:"status"`

	ApprovalStatus            ApprovalStatus `db:"approval_status" json:"approval_status"`
	HomeroomApprovalStatus    ApprovalStatus `db:"homeroom_approval_status" json:"homeroom_approval_status"`
	ScoresApprovalStatus      ApprovalStatus `db:"scores_approval_status" json:"scores_approval_status"`
	SubjectEvalApprovalStatus ApprovalStatus `db:"subject_eval_approval_status" json:"subject_eval_approval_status"`
	IntlApprovalStatus        ApprovalStatus `db:"intl_approval_status" json:"intl_approval_status"`

	ApprovalCounters

	RejectedSection   *Section      `db:"rejected_section" json:"rejected_section,omitempty"`
	RejectedFromLevel ApprovalLevel `db:"rejected_from_level" json:"rejected_from_level,omitempty"`
	RejectionReason   *string       `db:"rejection_reason" json:"rejection_reason,omitempty"`

	Data            ReportData      `db:"data" json:"data"`
	ApprovalHistory ApprovalHistory `db:"approval_history" json:"approval_history"`

	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SectionStatus returns the stored mirror of section.
func (r *ReportCard) SectionStatus(section Section) ApprovalStatus {
	switch section {
	case SectionHomeroom:
		return r.HomeroomApprovalStatus
	case SectionScores:
		return r.ScoresApprovalStatus
	case SectionSubjectEval:
		return r.SubjectEvalApprovalStatus
	case SectionIntlScores:
		return r.IntlApprovalStatus
	}
	return ""
}

// SetSectionStatus overwrites the stored mirror of section.
func (r *ReportCard) SetSectionStatus(section Section, status ApprovalStatus) {
	switch section {
	case SectionHomeroom:
		r.HomeroomApprovalStatus = status
	case SectionScores:
		r.ScoresApprovalStatus = status
	case SectionSubjectEval:
		r.SubjectEvalApprovalStatus = status
	case SectionIntlScores:
		r.IntlApprovalStatus = status
	}
}

// ReportCardFilter selects report cards for batch and pending queries.
type ReportCardFilter struct {
	IDs        []string
	TemplateID string
	ClassID    string
	CampusID   string
	SchoolYear string
	Semester   string
}

// RequestContext identifies the caller of an approval operation.
type RequestContext struct {
	ActorID  string
	Role     UserRole
	CampusID string
}

func jsonBytes(value interface{}, target string) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported type %T for %s", value, target)
	}
}
