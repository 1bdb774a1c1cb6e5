// Package notify pushes QC alerts and summaries to the QC manager over
// WhatsApp.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/config"
	"github.com/mamadbah2/qclab/internal/domain/models"
	client "github.com/mamadbah2/qclab/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// Notifier describes the outbound notifications the application sends.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	NotifyRejected(ctx context.Context, record models.QCRecord) error
	SendDailySummary(ctx context.Context, text string) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg    config.WhatsAppConfig
	client client.Client
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// SendOutbound sends a single text message.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return fmt.Errorf("send outbound message: %w", err)
	}

	if resp != nil && len(resp.Messages) > 0 {
		s.logger.Debug("whatsapp message accepted", zap.String("message_id", resp.Messages[0].ID))
	}
	return nil
}

// NotifyRejected alerts the QC manager about a rejected record. Records
// with any other status are ignored.
func (s *MetaWhatsAppService) NotifyRejected(ctx context.Context, record models.QCRecord) error {
	if record.Status != models.StatusRejected {
		return nil
	}
	return s.SendOutbound(ctx, models.OutboundMessageRequest{
		To:      s.cfg.ManagerID,
		Message: RejectedMessage(record),
	})
}

// SendDailySummary delivers a formatted daily summary to the QC manager.
func (s *MetaWhatsAppService) SendDailySummary(ctx context.Context, text string) error {
	return s.SendOutbound(ctx, models.OutboundMessageRequest{
		To:      s.cfg.ManagerID,
		Message: text,
	})
}

// RejectedMessage renders the alert for a rejected record.
func RejectedMessage(record models.QCRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "QC alert: batch %s (%s) was %s.\n", record.BatchNumber, record.ProductName, record.Status.Label())
	fmt.Fprintf(&b, "Category: %s\n", record.Category.Label())
	fmt.Fprintf(&b, "Technician: %s\n", record.Technician)
	if record.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", record.CustomerName)
	}
	for _, p := range record.Parameters {
		if outOfRange(p) {
			fmt.Fprintf(&b, "Out of range: %s = %s %s\n", p.Name, p.Value.String(), p.Unit)
		}
	}
	if record.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", record.Notes)
	}
	return strings.TrimRight(b.String(), "\n")
}

func outOfRange(p models.QCParameter) bool {
	v, ok := p.Value.Float()
	if !ok {
		return false
	}
	return (p.Min != nil && v < *p.Min) || (p.Max != nil && v > *p.Max)
}

// Noop discards every notification. It is used when WhatsApp is not
// configured.
type Noop struct{}

// SendOutbound implements Notifier.
func (Noop) SendOutbound(context.Context, models.OutboundMessageRequest) error { return nil }

// NotifyRejected implements Notifier.
func (Noop) NotifyRejected(context.Context, models.QCRecord) error { return nil }

// SendDailySummary implements Notifier.
func (Noop) SendDailySummary(context.Context, string) error { return nil }
