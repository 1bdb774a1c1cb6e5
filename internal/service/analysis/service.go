// Package analysis tracks AI-written record analyses, at most one request in
// flight per record.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/domain/models"
)

// Placeholder texts stored when the model cannot deliver an analysis.
const (
	EmptyAnalysisText       = "خطا در دریافت تحلیل از هوش مصنوعی."
	UnavailableAnalysisText = "متاسفانه ارتباط با هوش مصنوعی برقرار نشد. لطفاً کلید API را بررسی کنید."
)

// DefaultTimeout bounds a single summarization call.
const DefaultTimeout = 30 * time.Second

// State is the lifecycle stage of a record analysis.
type State string

const (
	StatePending State = "pending"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Entry is the cached analysis of one record.
type Entry struct {
	RecordID  string    `json:"recordId"`
	State     State     `json:"state"`
	Text      string    `json:"text,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Observer is notified whenever an analysis settles.
type Observer func(state State)

// Option customizes a Service.
type Option func(*Service)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithObserver registers a settle callback.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// Service caches analyses per record id.
type Service struct {
	summarizer Summarizer
	timeout    time.Duration
	observer   Observer
	logger     *zap.Logger
	now        func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	entries map[string]Entry
}

// NewService wires the cache. A nil summarizer makes every request fail with
// UnavailableAnalysisText.
func NewService(summarizer Summarizer, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		summarizer: summarizer,
		timeout:    DefaultTimeout,
		logger:     logger,
		now:        time.Now,
		ctx:        ctx,
		cancel:     cancel,
		entries:    make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request starts an analysis of record unless one is already pending or
// done. It reports the current entry and whether a new request was issued.
// Failed analyses may be requested again.
func (s *Service) Request(record models.QCRecord) (Entry, bool) {
	s.mu.Lock()
	if entry, ok := s.entries[record.ID]; ok && entry.State != StateFailed {
		s.mu.Unlock()
		return entry, false
	}

	if s.summarizer == nil {
		entry := Entry{RecordID: record.ID, State: StateFailed, Text: UnavailableAnalysisText, Error: "summarizer disabled", UpdatedAt: s.now()}
		s.entries[record.ID] = entry
		s.mu.Unlock()
		s.notify(StateFailed)
		return entry, true
	}

	entry := Entry{RecordID: record.ID, State: StatePending, UpdatedAt: s.now()}
	s.entries[record.ID] = entry
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(record.Clone())

	return entry, true
}

// Get returns the entry for a record id.
func (s *Service) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	return entry, ok
}

// Wait blocks until every in-flight analysis has settled.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight analyses and waits for them to settle.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Service) run(record models.QCRecord) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	text, err := s.await(ctx, record)

	entry := Entry{RecordID: record.ID, UpdatedAt: s.now()}
	switch {
	case err != nil:
		s.logger.Warn("record analysis failed", zap.String("record_id", record.ID), zap.Error(err))
		entry.State = StateFailed
		entry.Text = UnavailableAnalysisText
		entry.Error = err.Error()
	case strings.TrimSpace(text) == "":
		s.logger.Warn("record analysis returned no text", zap.String("record_id", record.ID))
		entry.State = StateFailed
		entry.Text = EmptyAnalysisText
		entry.Error = ErrEmptyResponse.Error()
	default:
		s.logger.Info("record analysis completed", zap.String("record_id", record.ID), zap.Int("chars", len(text)))
		entry.State = StateDone
		entry.Text = text
	}

	s.mu.Lock()
	s.entries[record.ID] = entry
	s.mu.Unlock()

	s.notify(entry.State)
}

type outcome struct {
	text string
	err  error
}

// await bounds the summarizer call by ctx even when the summarizer ignores
// it. A late result is discarded.
func (s *Service) await(ctx context.Context, record models.QCRecord) (string, error) {
	done := make(chan outcome, 1)
	go func() {
		text, err := s.summarize(ctx, record)
		done <- outcome{text: text, err: err}
	}()

	select {
	case out := <-done:
		return out.text, out.err
	case <-ctx.Done():
		return "", fmt.Errorf("await analysis: %w", ctx.Err())
	}
}

func (s *Service) summarize(ctx context.Context, record models.QCRecord) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("summarizer panic: %v", r)
		}
	}()
	return s.summarizer.Summarize(ctx, record)
}

func (s *Service) notify(state State) {
	if s.observer != nil {
		s.observer(state)
	}
}
