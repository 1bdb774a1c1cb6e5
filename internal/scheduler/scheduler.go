package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/config"
	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/service/notify"
	"github.com/mamadbah2/qclab/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// Archive persists daily summaries.
type Archive interface {
	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	schedule     string
	location     *time.Location
	reportingSvc *reporting.Service
	notifier     notify.Notifier
	archive      Archive
	now          func() time.Time
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. archive may be nil when no
// summary store is configured.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, notifier notify.Notifier, archive Archive, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:         c,
		schedule:     cfg.CronSchedule,
		location:     loc,
		reportingSvc: reportingSvc,
		notifier:     notifier,
		archive:      archive,
		now:          time.Now,
		logger:       logger,
	}, nil
}

// Start registers the daily summary job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.sendDailySummary); err != nil {
		return fmt.Errorf("schedule daily summary %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendDailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunDailySummary(ctx); err != nil {
		s.logger.Error("daily summary failed", zap.Error(err))
		return
	}
	s.logger.Info("daily summary sent successfully")
}

// RunDailySummary builds today's summary, archives it when a store is
// configured and sends it to the QC manager. Archive and delivery are both
// attempted; their errors are joined.
func (s *Scheduler) RunDailySummary(ctx context.Context) error {
	s.logger.Info("generating daily summary")

	summary, err := s.reportingSvc.DailySummary(ctx, s.now().In(s.location))
	if err != nil {
		return fmt.Errorf("build daily summary: %w", err)
	}

	var errs []error
	if s.archive != nil {
		if err := s.archive.SaveDailySummary(ctx, summary); err != nil {
			errs = append(errs, fmt.Errorf("archive daily summary: %w", err))
		}
	}

	if err := s.notifier.SendDailySummary(ctx, reporting.FormatSummary(summary)); err != nil {
		errs = append(errs, fmt.Errorf("send daily summary: %w", err))
	}

	return errors.Join(errs...)
}
