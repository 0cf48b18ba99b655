package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-reportcard-api/internal/dto"
	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
	"github.com/noah-isme/sma-reportcard-api/pkg/response"
)

type approvalConfigService interface {
	Get(ctx context.Context, rc models.RequestContext, stageID string) (*models.ApprovalConfig, error)
	Save(ctx context.Context, rc models.RequestContext, req dto.SaveApprovalConfigRequest) (*models.ApprovalConfig, error)
}

// ApprovalConfigHandler exposes level 3 and 4 approver configuration.
type ApprovalConfigHandler struct {
	service approvalConfigService
}

// NewApprovalConfigHandler builds a new handler.
func NewApprovalConfigHandler(service approvalConfigService) *ApprovalConfigHandler {
	return &ApprovalConfigHandler{service: service}
}

// Get godoc
// @Summary Get approvers of an education stage
// @Tags ReportCardApprovalConfig
// @Produce json
// @Param stageId path string true "Education stage ID"
// @Success 200 {object} response.Envelope
// @Router /report-card-approval-configs/{stageId} [get]
func (h *ApprovalConfigHandler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context(), requestContext(c), c.Param("stageId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg)
}

// Save godoc
// @Summary Replace approvers of an education stage
// @Tags ReportCardApprovalConfig
// @Accept json
// @Produce json
// @Param payload body dto.SaveApprovalConfigRequest true "Approvers"
// @Success 200 {object} response.Envelope
// @Router /report-card-approval-configs [put]
func (h *ApprovalConfigHandler) Save(c *gin.Context) {
	var req dto.SaveApprovalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approval config payload"))
		return
	}
	cfg, err := h.service.Save(c.Request.Context(), requestContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg)
}
