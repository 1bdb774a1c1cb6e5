package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/qclab/internal/config"
	"github.com/mamadbah2/qclab/internal/domain/models"
	client "github.com/mamadbah2/qclab/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (f *fakeClient) SendTextMessage(ctx context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a deadline")
	}
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

func newService(fc *fakeClient) *MetaWhatsAppService {
	return NewMetaWhatsAppService(config.WhatsAppConfig{ManagerID: "98912"}, fc, nil)
}

func rejected() models.QCRecord {
	rec := models.SampleRecords(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC))[1]
	rec.Status = models.StatusRejected
	rec.Parameters[0].Value = models.Numeric(35)
	return rec
}

func TestNotifyRejected(t *testing.T) {
	fc := &fakeClient{}
	require.NoError(t, newService(fc).NotifyRejected(context.Background(), rejected()))

	require.Len(t, fc.sent, 1)
	assert.Equal(t, "98912", fc.sent[0].To)
	assert.Contains(t, fc.sent[0].Body, "batch SOL-D86-09 (Special Solvent 402)")
	assert.Contains(t, fc.sent[0].Body, "Out of range: Flash Point = 35 °C")
	assert.NotContains(t, fc.sent[0].Body, "ASTM D86 - IBP")
	assert.Contains(t, fc.sent[0].Body, "Customer: بازرگانی اتحاد")
}

func TestNotifyRejectedIgnoresOtherStatuses(t *testing.T) {
	fc := &fakeClient{}
	rec := rejected()
	rec.Status = models.StatusApproved

	require.NoError(t, newService(fc).NotifyRejected(context.Background(), rec))
	assert.Empty(t, fc.sent)
}

func TestSendDailySummary(t *testing.T) {
	fc := &fakeClient{}
	require.NoError(t, newService(fc).SendDailySummary(context.Background(), "summary"))
	require.Len(t, fc.sent, 1)
	assert.Equal(t, "summary", fc.sent[0].Body)
}

func TestSendOutboundWrapsErrors(t *testing.T) {
	cause := errors.New("network down")
	err := newService(&fakeClient{err: cause}).SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: "x"})
	assert.ErrorIs(t, err, cause)
}

func TestNoop(t *testing.T) {
	var n Notifier = Noop{}
	assert.NoError(t, n.NotifyRejected(context.Background(), rejected()))
	assert.NoError(t, n.SendDailySummary(context.Background(), "x"))
	assert.NoError(t, n.SendOutbound(context.Background(), models.OutboundMessageRequest{}))
}
