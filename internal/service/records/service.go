// Package records implements the record use cases: create, list, get.
package records

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/metrics"
	"github.com/mamadbah2/qclab/internal/repository/memory"
	"github.com/mamadbah2/qclab/internal/service/builder"
	"github.com/mamadbah2/qclab/internal/service/notify"
	"github.com/mamadbah2/qclab/internal/service/search"
)

// Exporter mirrors created records to an external sheet.
type Exporter interface {
	Export(ctx context.Context, record models.QCRecord) error
}

// Listing is a filtered view of the collection together with the customer
// facet of the unfiltered collection.
type Listing struct {
	Records   []models.QCRecord `json:"records"`
	Customers []string          `json:"customers"`
	Total     int               `json:"total"`
}

// Service coordinates record construction, storage and side channels.
type Service struct {
	repo     memory.Repository
	builder  *builder.Builder
	exporter Exporter
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithExporter enables the record export side channel.
func WithExporter(e Exporter) Option {
	return func(s *Service) { s.exporter = e }
}

// WithNotifier enables rejected-record alerts.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithMetrics records creation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService wires a record service.
func NewService(repo memory.Repository, b *builder.Builder, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if b == nil {
		b = builder.New()
	}
	s := &Service{
		repo:     repo,
		builder:  b,
		notifier: notify.Noop{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics.SetStored(repo.Len())
	return s
}

// Create builds a record from draft and prepends it to the collection.
// Export and notification failures are logged and do not fail the call.
func (s *Service) Create(ctx context.Context, draft models.Draft) (models.QCRecord, error) {
	record, err := s.builder.Build(draft)
	if err != nil {
		return models.QCRecord{}, err
	}

	if err := s.repo.Append(ctx, record); err != nil {
		return models.QCRecord{}, fmt.Errorf("store record: %w", err)
	}
	s.metrics.RecordCreated(string(record.Status), s.repo.Len())

	s.logger.Info("record created",
		zap.String("id", record.ID),
		zap.String("batch", record.BatchNumber),
		zap.String("status", string(record.Status)),
		zap.String("purpose", string(record.ReportPurpose)),
	)

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, record); err != nil {
			s.logger.Warn("record export failed", zap.String("id", record.ID), zap.Error(err))
		}
	}

	if err := s.notifier.NotifyRejected(ctx, record); err != nil {
		s.logger.Warn("rejected record alert failed", zap.String("id", record.ID), zap.Error(err))
	}

	return record, nil
}

// List returns the records matching spec in collection order.
func (s *Service) List(ctx context.Context, spec models.FilterSpec) (Listing, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("load records: %w", err)
	}

	filtered := search.Filter(all, spec)
	return Listing{
		Records:   filtered,
		Customers: search.Customers(all),
		Total:     len(filtered),
	}, nil
}

// Get returns the record with id.
func (s *Service) Get(ctx context.Context, id string) (models.QCRecord, error) {
	return s.repo.Get(ctx, id)
}

// All returns the whole collection, most recent first.
func (s *Service) All(ctx context.Context) ([]models.QCRecord, error) {
	return s.repo.List(ctx)
}
