package dto

import (
	"encoding/json"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
)

// UnitSelection names a section and optionally one subject and board inside it.
type UnitSelection struct {
	Section   models.Section `json:"section" validate:"required,oneof=homeroom scores subject_eval intl_scores"`
	SubjectID string         `json:"subjectId"`
	Board     models.Board   `json:"board" validate:"omitempty,oneof=main_scores ielts comments"`
}

// SaveEntryRequest stores entered content for one unit, addressed as
// homeroom, scores:<subject>, subject_eval:<subject> or intl_scores:<subject>:<board>.
type SaveEntryRequest struct {
	Unit    string          `json:"unit" validate:"required"`
	Content json.RawMessage `json:"content" validate:"required"`
}

// SubmitSectionRequest submits a section of one report card.
type SubmitSectionRequest struct {
	UnitSelection
}

// ApproveLevel2Request approves a section of one report card at level 2.
type ApproveLevel2Request struct {
	UnitSelection
}

// RejectReportCardRequest rejects units of one report card.
type RejectReportCardRequest struct {
	UnitSelection
	Reason string `json:"reason" validate:"required"`
	Level  int    `json:"level" validate:"omitempty,min=1,max=4"`
}

// ClassSelection picks report cards by template and class, or by id.
type ClassSelection struct {
	TemplateID    string   `json:"templateId"`
	ClassID       string   `json:"classId"`
	ReportCardIDs []string `json:"reportCardIds"`
}

// Batch converts the selection into its domain form.
func (s ClassSelection) Batch() models.BatchSelection {
	return models.BatchSelection{ReportCardIDs: s.ReportCardIDs, TemplateID: s.TemplateID, ClassID: s.ClassID}
}

// SubmitClassRequest submits a section on every report card of a class.
type SubmitClassRequest struct {
	ClassSelection
	UnitSelection
}

// ApproveClassRequest approves a section at level 1 or 2 across a class.
type ApproveClassRequest struct {
	ClassSelection
	Level   models.PendingLevel `json:"level" validate:"required,oneof=level_1 level_2"`
	Section models.Section      `json:"section" validate:"omitempty,oneof=homeroom scores subject_eval intl_scores"`
	Subject string              `json:"subjectId"`
	Board   models.Board        `json:"board" validate:"omitempty,oneof=main_scores ielts comments"`
}

// BatchReportsRequest reviews or publishes a set of report cards.
type BatchReportsRequest struct {
	ClassSelection
}

// RejectBatchRequest rejects a section across a class at one queue level.
type RejectBatchRequest struct {
	ClassSelection
	UnitSelection
	Level  models.PendingLevel `json:"level" validate:"required,oneof=level_1 level_2 review publish"`
	Reason string              `json:"reason" validate:"required"`
}

// GenerateReportCardsRequest creates draft report cards for a class.
type GenerateReportCardsRequest struct {
	ClassID    string   `json:"classId" validate:"required"`
	StudentIDs []string `json:"studentIds" validate:"required,min=1,dive,required"`
}

// SaveApprovalConfigRequest replaces level 3 and 4 approvers of an education stage.
type SaveApprovalConfigRequest struct {
	EducationStageID string   `json:"educationStageId" validate:"required"`
	Level3Reviewers  []string `json:"level3Reviewers" validate:"dive,required"`
	Level4Approvers  []string `json:"level4Approvers" validate:"dive,required"`
}
