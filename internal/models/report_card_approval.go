package models

import "time"

// Access describes how a caller is entitled to act on a unit.
type Access int

const (
	AccessNone Access = iota
	// AccessManager is granted through a manager role rather than an assignment.
	AccessManager
	AccessAssigned
)

// Allowed reports whether the caller may act at all.
func (a Access) Allowed() bool {
	return a != AccessNone
}

// PendingEntry lists units that were returned to data entry.
const PendingEntry PendingLevel = "entry"

// BatchSelection chooses the report cards a batch operation applies to.
type BatchSelection struct {
	ReportCardIDs []string
	TemplateID    string
	ClassID       string
}

// Empty reports whether nothing was selected.
func (s BatchSelection) Empty() bool {
	return len(s.ReportCardIDs) == 0 && (s.TemplateID == "" || s.ClassID == "")
}

// BatchFailure explains why one report card was left untouched.
type BatchFailure struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// BatchResult aggregates the per-item outcome of a batch operation.
type BatchResult struct {
	Succeeded []string       `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
	Total     int            `json:"total"`
}

// UnitApproval is one unit as exposed to readers.
type UnitApproval struct {
	Unit        UnitKey           `json:"unit"`
	Key         string            `json:"key"`
	Approval    ApprovalSubRecord `json:"approval"`
	EntryAction EntryAction       `json:"entry_action"`
}

// ApprovalOverview is the full approval picture of a report card.
type ApprovalOverview struct {
	ReportCardID    string           `json:"report_card_id"`
	Status          ReportCardStatus `json:"status"`
	ApprovalStatus  ApprovalStatus   `json:"approval_status"`
	Counters        ApprovalCounters `json:"counters"`
	Units           []UnitApproval   `json:"units"`
	CanReview       bool             `json:"can_review"`
	MissingSections []Section        `json:"missing_sections,omitempty"`
	History         ApprovalHistory  `json:"history"`
}

// PendingApproval is a report card waiting on the caller.
type PendingApproval struct {
	ReportCardID   string         `json:"report_card_id"`
	TemplateID     string         `json:"template_id"`
	StudentID      string         `json:"student_id"`
	ClassID        string         `json:"class_id"`
	SchoolYear     string         `json:"school_year"`
	Semester       string         `json:"semester"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	Units          []UnitApproval `json:"units"`
	IsComplete     bool           `json:"is_complete"`
	IsViewerOnly   bool           `json:"is_viewer_only"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// PendingGroup summarises pending report cards sharing a class and unit.
type PendingGroup struct {
	TemplateID    string   `json:"template_id"`
	ClassID       string   `json:"class_id"`
	Section       Section  `json:"section,omitempty"`
	SubjectID     string   `json:"subject_id,omitempty"`
	Board         Board    `json:"board,omitempty"`
	PendingCount  int      `json:"pending_count"`
	// ReturnedCount counts units that were rejected at least once.
	ReturnedCount int      `json:"returned_count"`
	ViewerOnly    bool     `json:"viewer_only"`
	ReportCardIDs []string `json:"report_card_ids"`
}

// PendingFilter narrows pending approval queries.
type PendingFilter struct {
	TemplateID string `json:"template_id,omitempty"`
	ClassID    string `json:"class_id,omitempty"`
	SchoolYear string `json:"school_year,omitempty"`
	Semester   string `json:"semester,omitempty"`
}

// ReportCardPublishedEvent is emitted once a report card is published.
type ReportCardPublishedEvent struct {
	ReportCardID string    `json:"report_card_id"`
	StudentID    string    `json:"student_id"`
	ClassID      string    `json:"class_id"`
	TemplateID   string    `json:"template_id"`
	CampusID     string    `json:"campus_id"`
	SchoolYear   string    `json:"school_year"`
	Semester     string    `json:"semester"`
	PublishedAt  time.Time `json:"published_at"`
}

// GenerateResult reports a bulk report card generation.
type GenerateResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}
