package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/repository/memory"
	"github.com/mamadbah2/qclab/internal/service/analysis"
	"github.com/mamadbah2/qclab/internal/service/builder"
	"github.com/mamadbah2/qclab/internal/service/records"
)

// RecordHandler exposes record listing, creation and analysis endpoints.
type RecordHandler struct {
	records  *records.Service
	analysis *analysis.Service
	logger   *zap.Logger
}

// NewRecordHandler constructs the HTTP handler adapter.
func NewRecordHandler(recordSvc *records.Service, analysisSvc *analysis.Service, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{records: recordSvc, analysis: analysisSvc, logger: logger}
}

// List returns the records matching the query filters.
func (h *RecordHandler) List(c *gin.Context) {
	var spec models.FilterSpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter"})
		return
	}

	listing, err := h.records.List(c.Request.Context(), spec)
	if err != nil {
		h.logger.Error("failed listing records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to list records"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Get returns a single record.
func (h *RecordHandler) Get(c *gin.Context) {
	rec, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Create builds and stores a record from a draft body. An optional
// template query parameter replaces the draft's parameters first. The body
// is taken as sent; empty enum fields fall back to their defaults in the
// builder.
func (h *RecordHandler) Create(c *gin.Context) {
	var draft models.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.logger.Warn("invalid draft payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if key := c.Query("template"); key != "" {
		var err error
		if draft, err = builder.ApplyTemplate(draft, key); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	rec, err := h.records.Create(c.Request.Context(), draft)
	if err != nil {
		var verr *builder.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft", "problems": verr.Problems})
			return
		}
		h.logger.Error("failed creating record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to create record"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// RequestAnalysis starts the AI summary of a record.
func (h *RecordHandler) RequestAnalysis(c *gin.Context) {
	rec, ok := h.lookup(c)
	if !ok {
		return
	}

	entry, issued := h.analysis.Request(rec)
	h.logger.Debug("analysis requested", zap.String("id", rec.ID), zap.Bool("issued", issued), zap.String("state", string(entry.State)))
	c.JSON(http.StatusAccepted, entry)
}

// GetAnalysis returns the cached analysis entry of a record.
func (h *RecordHandler) GetAnalysis(c *gin.Context) {
	entry, ok := h.analysis.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not requested"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *RecordHandler) lookup(c *gin.Context) (models.QCRecord, bool) {
	rec, err := h.records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, memory.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return models.QCRecord{}, false
		}
		h.logger.Error("failed loading record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load record"})
		return models.QCRecord{}, false
	}
	return rec, true
}
