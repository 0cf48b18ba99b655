package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-reportcard-api/internal/dto"
	"github.com/noah-isme/sma-reportcard-api/internal/models"
	"github.com/noah-isme/sma-reportcard-api/internal/service"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
	"github.com/noah-isme/sma-reportcard-api/pkg/response"
)

type reportCardService interface {
	GetReportCard(ctx context.Context, rc models.RequestContext, id string) (*models.ReportCard, error)
	GetApprovalOverview(ctx context.Context, rc models.RequestContext, id string) (*models.ApprovalOverview, error)
	GetPendingApprovals(ctx context.Context, rc models.RequestContext, level models.PendingLevel, filter models.PendingFilter) ([]models.PendingApproval, error)
	GetPendingApprovalsGrouped(ctx context.Context, rc models.RequestContext, level models.PendingLevel, filter models.PendingFilter) ([]models.PendingGroup, error)
	SaveEntry(ctx context.Context, rc models.RequestContext, reportID string, key models.UnitKey, content json.RawMessage) (*models.ReportCard, error)
	SubmitSection(ctx context.Context, rc models.RequestContext, reportID string, sel service.UnitSelector) (*models.ReportCard, error)
	ApproveLevel1(ctx context.Context, rc models.RequestContext, reportID string) (*models.ReportCard, error)
	ApproveLevel2(ctx context.Context, rc models.RequestContext, reportID string, sel service.UnitSelector) (*models.ReportCard, error)
	ReviewReport(ctx context.Context, rc models.RequestContext, reportID string) (*models.ReportCard, error)
	FinalPublish(ctx context.Context, rc models.RequestContext, reportID string) (*models.ReportCard, error)
	RejectSingle(ctx context.Context, rc models.RequestContext, reportID string, sel service.UnitSelector, level models.ApprovalLevel, reason string) (*models.ReportCard, error)
	SubmitClassReports(ctx context.Context, rc models.RequestContext, batch models.BatchSelection, sel service.UnitSelector) (*models.BatchResult, error)
	ApproveClassReports(ctx context.Context, rc models.RequestContext, batch models.BatchSelection, level models.PendingLevel, sel service.UnitSelector) (*models.BatchResult, error)
	ReviewBatchReports(ctx context.Context, rc models.RequestContext, batch models.BatchSelection) (*models.BatchResult, error)
	PublishBatchReports(ctx context.Context, rc models.RequestContext, batch models.BatchSelection) (*models.BatchResult, error)
	RejectBatch(ctx context.Context, rc models.RequestContext, batch models.BatchSelection, level models.PendingLevel, sel service.UnitSelector, reason string) (*models.BatchResult, error)
	GenerateClassReports(ctx context.Context, rc models.RequestContext, templateID, classID string, studentIDs []string) (*models.GenerateResult, error)
	DeleteReportCard(ctx context.Context, rc models.RequestContext, id string) error
}

// ReportCardHandler exposes the report card approval workflow.
type ReportCardHandler struct {
	service   reportCardService
	validator *validator.Validate
}

// NewReportCardHandler builds a new handler.
func NewReportCardHandler(service reportCardService, validate *validator.Validate) *ReportCardHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &ReportCardHandler{service: service, validator: validate}
}

// Get godoc
// @Summary Get a report card
// @Tags ReportCards
// @Produce json
// @Param id path string true "Report card ID"
// @Success 200 {object} response.Envelope
// @Router /report-cards/{id} [get]
func (h *ReportCardHandler) Get(c *gin.Context) {
	card, err := h.service.GetReportCard(c.Request.Context(), requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card)
}

// Approvals godoc
// @Summary Per-unit approval state of a report card
// @Tags ReportCards
// @Produce json
// @Param id path string true "Report card ID"
// @Success 200 {object} response.Envelope
// @Router /report-cards/{id}/approvals [get]
func (h *ReportCardHandler) Approvals(c *gin.Context) {
	overview, err := h.service.GetApprovalOverview(c.Request.Context(), requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// Pending godoc
// @Summary List report cards awaiting the caller
// @Tags ReportCards
// @Produce json
// @Param level query string true "entry, level_1, level_2, review or publish"
// @Param templateId query string false "Template filter"
// @Param classId query string false "Class filter"
// @Param schoolYear query string false "School year filter"
// @Param semester query string false "Semester filter"
// @Success 200 {object} response.Envelope
// @Router /report-cards/pending [get]
func (h *ReportCardHandler) Pending(c *gin.Context) {
	items, err := h.service.GetPendingApprovals(c.Request.Context(), requestContext(c), models.PendingLevel(c.Query("level")), pendingFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, response.Meta{"count": len(items)})
}

// PendingGrouped godoc
// @Summary Pending report cards grouped by class and unit
// @Tags ReportCards
// @Produce json
// @Param level query string true "entry, level_1, level_2, review or publish"
// @Param templateId query string false "Template filter"
// @Param classId query string false "Class filter"
// @Success 200 {object} response.Envelope
// @Router /report-cards/pending/grouped [get]
func (h *ReportCardHandler) PendingGrouped(c *gin.Context) {
	groups, err := h.service.GetPendingApprovalsGrouped(c.Request.Context(), requestContext(c), models.PendingLevel(c.Query("level")), pendingFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// SaveEntry godoc
// @Summary Save entered data for one unit
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param id path string true "Report card ID"
// @Param payload body dto.SaveEntryRequest true "Unit and content"
// @Success 200 {object} response.Envelope
// @Router /report-cards/{id}/entry [put]
func (h *ReportCardHandler) SaveEntry(c *gin.Context) {
	var req dto.SaveEntryRequest
	if !h.bind(c, &req, "invalid entry payload") {
		return
	}
	key, err := models.ParseUnitKey(req.Unit)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unit"))
		return
	}
	card, err := h.service.SaveEntry(c.Request.Context(), requestContext(c), c.Param("id"), key, req.Content)
	h.respondCard(c, card, err)
}

// Submit godoc
// @Summary Submit a section for approval
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param id path string true "Report card ID"
// @Param payload body dto.SubmitSectionRequest true "Section"
// @Success 200 {object} response.Envelope
// @Router /report-cards/{id}/submit [post]
func (h *ReportCardHandler) Submit(c *gin.Context) {
	var req dto.SubmitSectionRequest
	if !h.bind(c, &req, "invalid submit payload") {
		return
	}
	card, err := h.service.SubmitSection(c.Request.Context(), requestContext(c), c.Param("id"), selector(req.UnitSelection))
	h.respondCard(c, card, err)
}

// ApproveLevel1 godoc
// @Summary Approve the homeroom section at level 1
// @Tags ReportCards
// @Produce json
// @Param id path string true "Report card ID"
// @Success 200 {object} response.Envelope
// @Router /report-cards/{id}/approve-level-1 [post]
func (h *ReportCardHandler) ApproveLevel1(c *gin.Context) {
	card, err := h.service.ApproveLevel1(c.Request.Context(), requestContext(c), c.Param("id"))
	h.respondCard(c, card, err)
}

// ApproveLevel2 godoc
// @Summary Approve a section at level 2
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param id path string true "Report card ID"
// @Param payload body dto.ApproveLevel2Request true "Section"
// @Success 200 {object} response.Envelope
// @Router /report-cards/{id}/approve-level-2 [post]
func (h *ReportCardHandler) ApproveLevel2(c *gin.Context) {
	var req dto.ApproveLevel2Request
	if !h.bind(c, &req, "invalid approval payload") {
		return
	}
	card, err := h.service.ApproveLevel2(c.Request.Context(), requestContext(c), c.Param("id"), selector(req.UnitSelection))
	h.respondCard(c, card, err)
}

// Review godoc
// @Summary Review a report card at level 3
// @Tags ReportCards
// @Produce json
// @Param id path string true "Report card ID"
// @Success 200 {object} response.Envelope
// @Router /report-cards/{id}/review [post]
func (h *ReportCardHandler) Review(c *gin.Context) {
	card, err := h.service.ReviewReport(c.Request.Context(), requestContext(c), c.Param("id"))
	h.respondCard(c, card, err)
}

// Publish godoc
// @Summary Publish a report card at level 4
// @Tags ReportCards
// @Produce json
// @Param id path string true "Report card ID"
// @Success 200 {object} response.Envelope
// @Router /report-cards/{id}/publish [post]
func (h *ReportCardHandler) Publish(c *gin.Context) {
	card, err := h.service.FinalPublish(c.Request.Context(), requestContext(c), c.Param("id"))
	h.respondCard(c, card, err)
}

// Reject godoc
// @Summary Reject units of a report card
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param id path string true "Report card ID"
// @Param payload body dto.RejectReportCardRequest true "Rejection"
// @Success 200 {object} response.Envelope
// @Router /report-cards/{id}/reject [post]
func (h *ReportCardHandler) Reject(c *gin.Context) {
	var req dto.RejectReportCardRequest
	if !h.bind(c, &req, "invalid rejection payload") {
		return
	}
	card, err := h.service.RejectSingle(c.Request.Context(), requestContext(c), c.Param("id"), selector(req.UnitSelection), models.ApprovalLevel(req.Level), req.Reason)
	h.respondCard(c, card, err)
}

// Delete godoc
// @Summary Delete an unpublished report card
// @Tags ReportCards
// @Param id path string true "Report card ID"
// @Success 204
// @Router /report-cards/{id} [delete]
func (h *ReportCardHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteReportCard(c.Request.Context(), requestContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SubmitClass godoc
// @Summary Submit a section on every report card of a class
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param payload body dto.SubmitClassRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /report-cards/batch/submit [post]
func (h *ReportCardHandler) SubmitClass(c *gin.Context) {
	var req dto.SubmitClassRequest
	if !h.bind(c, &req, "invalid batch submit payload") {
		return
	}
	result, err := h.service.SubmitClassReports(c.Request.Context(), requestContext(c), req.Batch(), selector(req.UnitSelection))
	h.respondBatch(c, result, err)
}

// ApproveClass godoc
// @Summary Approve a section at level 1 or 2 across a class
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param payload body dto.ApproveClassRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /report-cards/batch/approve [post]
func (h *ReportCardHandler) ApproveClass(c *gin.Context) {
	var req dto.ApproveClassRequest
	if !h.bind(c, &req, "invalid batch approval payload") {
		return
	}
	sel := service.UnitSelector{Section: req.Section, SubjectID: req.Subject, Board: req.Board}
	if req.Level == models.PendingLevel2 && sel.Section == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrMissingParameter, "section is required for level 2 approval"))
		return
	}
	result, err := h.service.ApproveClassReports(c.Request.Context(), requestContext(c), req.Batch(), req.Level, sel)
	h.respondBatch(c, result, err)
}

// ReviewBatch godoc
// @Summary Review a set of report cards
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param payload body dto.BatchReportsRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /report-cards/batch/review [post]
func (h *ReportCardHandler) ReviewBatch(c *gin.Context) {
	var req dto.BatchReportsRequest
	if !h.bind(c, &req, "invalid batch review payload") {
		return
	}
	result, err := h.service.ReviewBatchReports(c.Request.Context(), requestContext(c), req.Batch())
	h.respondBatch(c, result, err)
}

// PublishBatch godoc
// @Summary Publish a set of report cards
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param payload body dto.BatchReportsRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /report-cards/batch/publish [post]
func (h *ReportCardHandler) PublishBatch(c *gin.Context) {
	var req dto.BatchReportsRequest
	if !h.bind(c, &req, "invalid batch publish payload") {
		return
	}
	result, err := h.service.PublishBatchReports(c.Request.Context(), requestContext(c), req.Batch())
	h.respondBatch(c, result, err)
}

// RejectBatch godoc
// @Summary Reject a section across a class
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param payload body dto.RejectBatchRequest true "Rejection"
// @Success 200 {object} response.Envelope
// @Router /report-cards/batch/reject [post]
func (h *ReportCardHandler) RejectBatch(c *gin.Context) {
	var req dto.RejectBatchRequest
	if !h.bind(c, &req, "invalid batch rejection payload") {
		return
	}
	result, err := h.service.RejectBatch(c.Request.Context(), requestContext(c), req.Batch(), req.Level, selector(req.UnitSelection), req.Reason)
	h.respondBatch(c, result, err)
}

// Generate godoc
// @Summary Generate draft report cards for a class
// @Tags ReportCards
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param payload body dto.GenerateReportCardsRequest true "Students"
// @Success 201 {object} response.Envelope
// @Router /report-card-templates/{id}/generate [post]
func (h *ReportCardHandler) Generate(c *gin.Context) {
	var req dto.GenerateReportCardsRequest
	if !h.bind(c, &req, "invalid generate payload") {
		return
	}
	result, err := h.service.GenerateClassReports(c.Request.Context(), requestContext(c), c.Param("id"), req.ClassID, req.StudentIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *ReportCardHandler) bind(c *gin.Context, req interface{}, message string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}

func (h *ReportCardHandler) respondCard(c *gin.Context, card *models.ReportCard, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card, response.Meta{
		"approval_status":               card.ApprovalStatus,
		"all_sections_level_2_approved": card.AllSectionsLevel2Approved,
	})
}

func (h *ReportCardHandler) respondBatch(c *gin.Context, result *models.BatchResult, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Batch(c, result)
}

func selector(sel dto.UnitSelection) service.UnitSelector {
	return service.UnitSelector{Section: sel.Section, SubjectID: sel.SubjectID, Board: sel.Board}
}

func pendingFilter(c *gin.Context) models.PendingFilter {
	return models.PendingFilter{
		TemplateID: c.Query("templateId"),
		ClassID:    c.Query("classId"),
		SchoolYear: c.Query("schoolYear"),
		Semester:   c.Query("semester"),
	}
}
