package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-reportcard-api/internal/middleware"
	"github.com/noah-isme/sma-reportcard-api/internal/models"
)

// RegisterReportCardRoutes mounts the approval workflow under rg. Callers must
// install the authentication middleware on rg first.
func RegisterReportCardRoutes(rg *gin.RouterGroup, cards *ReportCardHandler, configs *ApprovalConfigHandler) {
	staff := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleTeacher)
	managers := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin)

	reportCards := rg.Group("/report-cards", staff)
	reportCards.GET("/pending", cards.Pending)
	reportCards.GET("/pending/grouped", cards.PendingGrouped)
	reportCards.POST("/batch/submit", cards.SubmitClass)
	reportCards.POST("/batch/approve", cards.ApproveClass)
	reportCards.POST("/batch/review", cards.ReviewBatch)
	reportCards.POST("/batch/publish", cards.PublishBatch)
	reportCards.POST("/batch/reject", cards.RejectBatch)
	reportCards.GET("/:id", cards.Get)
	reportCards.DELETE("/:id", managers, cards.Delete)
	reportCards.GET("/:id/approvals", cards.Approvals)
	reportCards.PUT("/:id/entry", cards.SaveEntry)
	reportCards.POST("/:id/submit", cards.Submit)
	reportCards.POST("/:id/approve-level-1", cards.ApproveLevel1)
	reportCards.POST("/:id/approve-level-2", cards.ApproveLevel2)
	reportCards.POST("/:id/review", cards.Review)
	reportCards.POST("/:id/publish", cards.Publish)
	reportCards.POST("/:id/reject", cards.Reject)

	rg.POST("/report-card-templates/:id/generate", managers, cards.Generate)

	approvalConfigs := rg.Group("/report-card-approval-configs", managers)
	approvalConfigs.GET("/:stageId", configs.Get)
	approvalConfigs.PUT("", configs.Save)
}
