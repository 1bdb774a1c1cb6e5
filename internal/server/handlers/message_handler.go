package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/service/notify"
)

// MessageHandler sends manual WhatsApp messages.
type MessageHandler struct {
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewMessageHandler constructs the HTTP handler adapter.
func NewMessageHandler(notifier notify.Notifier, logger *zap.Logger) *MessageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &MessageHandler{notifier: notifier, logger: logger}
}

// SendMessage allows sending outbound manual messages.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid outbound payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.notifier.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("failed sending outbound", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.Status(http.StatusAccepted)
}
