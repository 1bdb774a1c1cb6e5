package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/service/builder"
	"github.com/mamadbah2/qclab/internal/service/reporting"
)

// ReportHandler serves the dashboard and the static lookup tables.
type ReportHandler struct {
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(reportingSvc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reporting: reportingSvc, logger: logger}
}

// Dashboard returns the status counts and trend series.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dash, err := h.reporting.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("failed computing dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to compute dashboard"})
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Labels returns the display labels of every enumeration.
func (h *ReportHandler) Labels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":     models.CategoryLabels,
		"statuses":       models.StatusLabels,
		"reportPurposes": models.ReportPurposeLabels,
	})
}

// Templates lists the parameter templates.
func (h *ReportHandler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, builder.Templates())
}

// Template returns a fresh copy of one template's parameters.
func (h *ReportHandler) Template(c *gin.Context) {
	tpl, err := builder.LookupTemplate(c.Param("key"))
	if err != nil {
		if errors.Is(err, builder.ErrUnknownTemplate) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load template"})
		return
	}

	params := tpl.Parameters
	if params == nil {
		params = []models.QCParameter{}
	}
	c.JSON(http.StatusOK, gin.H{"key": tpl.Key, "label": tpl.Label, "parameters": params})
}
