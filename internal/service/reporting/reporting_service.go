package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/repository/memory"
	"github.com/mamadbah2/qclab/internal/service/stats"
	"github.com/mamadbah2/qclab/internal/service/trends"
)

const dateLayout = "2006-01-02"

// Service exposes the dashboard aggregates and the daily summary.
type Service struct {
	repo   memory.Repository
	trends *trends.Deriver
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repository memory.Repository, opts trends.Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repository,
		trends: trends.NewDeriver(opts),
		now:    time.Now,
		logger: logger,
	}
}

// Dashboard computes the status counts and both trend series over the
// whole collection.
func (s *Service) Dashboard(ctx context.Context) (models.Dashboard, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("load records: %w", err)
	}

	return models.Dashboard{
		Stats:   stats.Compute(records),
		Density: s.trends.Density(records),
		Purity:  s.trends.Purity(records),
	}, nil
}

// DailySummary snapshots the dashboard for the calendar day of now.
func (s *Service) DailySummary(ctx context.Context, now time.Time) (models.DailySummary, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("load records: %w", err)
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	next := day.AddDate(0, 0, 1)
	today := 0
	for _, rec := range records {
		if !rec.Date.Before(day) && rec.Date.Before(next) {
			today++
		}
	}

	summary := models.DailySummary{
		Date:          day,
		Stats:         stats.Compute(records),
		RecordsToday:  today,
		LatestDensity: latestPoint(records, s.trends.Density),
		LatestPurity:  latestPoint(records, s.trends.Purity),
		CreatedAt:     s.now().UTC(),
	}

	s.logger.Debug("daily summary computed",
		zap.String("date", day.Format(dateLayout)),
		zap.Int("total", summary.Stats.Total),
		zap.Int("today", today),
	)
	return summary, nil
}

// FormatSummary renders a summary as a WhatsApp message.
func FormatSummary(summary models.DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "QC daily summary (%s)\n", summary.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Records today: %d\n", summary.RecordsToday)
	fmt.Fprintf(&b, "Total: %d | %s: %d | %s: %d | %s/%s: %d\n",
		summary.Stats.Total,
		models.StatusApproved.Label(), summary.Stats.Approved,
		models.StatusRejected.Label(), summary.Stats.Rejected,
		models.StatusConditional.Label(), models.StatusPending.Label(), summary.Stats.ConditionalOrPending,
	)
	b.WriteString(formatPoint("Latest density", summary.LatestDensity))
	b.WriteString(formatPoint("Latest purity", summary.LatestPurity))
	return strings.TrimRight(b.String(), "\n")
}

func formatPoint(title string, p *models.TrendPoint) string {
	if p == nil {
		return fmt.Sprintf("%s: no data\n", title)
	}
	return fmt.Sprintf("%s: %g (%s, %s, batch %s)\n", title, p.Value, p.Parameter, p.Product, p.Label)
}

// latestPoint returns the point of the most recently dated record that
// yields one. Seeded records are not guaranteed to be in date order.
func latestPoint(records []models.QCRecord, series func([]models.QCRecord) []models.TrendPoint) *models.TrendPoint {
	var (
		latest *models.TrendPoint
		at     time.Time
	)
	for _, rec := range records {
		points := series([]models.QCRecord{rec})
		if len(points) == 0 {
			continue
		}
		if latest == nil || rec.Date.After(at) {
			p := points[0]
			latest, at = &p, rec.Date
		}
	}
	return latest
}
