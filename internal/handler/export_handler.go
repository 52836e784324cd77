package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/seido-dojo/portal-api/internal/models"
	"github.com/seido-dojo/portal-api/internal/service"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
	"github.com/seido-dojo/portal-api/pkg/response"
)

type historyExporter interface {
	Generate(ctx context.Context, member *models.SessionClaims, category string, pendingOnly bool, format string) (*service.ExportResult, error)
}

// ExportHandler serves request-history downloads.
type ExportHandler struct {
	service historyExporter
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc historyExporter) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export godoc
// @Summary Download request history
// @Description The member's filtered request history as a CSV or PDF attachment
// @Tags Requests
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv | pdf"
// @Param category query string false "leave | contact | all"
// @Param pending query boolean false "only not-yet-resolved requests"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /me/requests/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	claims, ok := currentMember(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.service.Generate(
		c.Request.Context(),
		claims,
		categoryFilter(c.Query("category")),
		pendingFilter(c.Query("pending")),
		c.DefaultQuery("format", service.FormatCSV),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Payload)
}
