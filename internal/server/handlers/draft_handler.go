package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/service/builder"
)

// DraftHandler backs the record entry form.
type DraftHandler struct {
	logger *zap.Logger
}

// NewDraftHandler constructs the HTTP handler adapter.
func NewDraftHandler(logger *zap.Logger) *DraftHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftHandler{logger: logger}
}

// editParametersRequest carries the form's current parameter list and one change.
type editParametersRequest struct {
	Parameters []models.QCParameter `json:"parameters"`
	builder.ParameterChange
}

// NewDraft returns an entry form pre-filled with defaults.
func (h *DraftHandler) NewDraft(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewDraft())
}

// EditParameters applies an add, update or remove to the submitted
// parameter list and returns the new list.
func (h *DraftHandler) EditParameters(c *gin.Context) {
	var req editParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	params, err := builder.ApplyChange(req.Parameters, req.ParameterChange)
	if err != nil {
		h.logger.Debug("rejected parameter change", zap.String("op", req.Op), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params == nil {
		params = []models.QCParameter{}
	}

	c.JSON(http.StatusOK, gin.H{"parameters": params})
}
