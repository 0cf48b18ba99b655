package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-reportcard-api/internal/models"
	appErrors "github.com/noah-isme/sma-reportcard-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data  interface{}      `json:"data,omitempty"`
	Error *appErrors.Error `json:"error,omitempty"`
	Meta  Meta             `json:"meta,omitempty"`
}

// Meta carries response details that do not belong to the payload itself.
type Meta map[string]interface{}

// JSON sends a success response. Only the first meta is used.
func JSON(c *gin.Context, status int, data interface{}, meta ...Meta) {
	noStore(c)
	envelope := Envelope{Data: data}
	if len(meta) > 0 && len(meta[0]) > 0 {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Batch responds with a batch outcome. Partial failure is still 200; the
// counts in meta tell clients whether anything was left behind.
func Batch(c *gin.Context, result *models.BatchResult) {
	if result == nil {
		result = &models.BatchResult{}
	}
	JSON(c, http.StatusOK, result, Meta{
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
		"total":     result.Total,
	})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
