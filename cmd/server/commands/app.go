package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/config"
	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/metrics"
	"github.com/mamadbah2/qclab/internal/repository/memory"
	"github.com/mamadbah2/qclab/internal/repository/mongodb"
	"github.com/mamadbah2/qclab/internal/repository/sheets"
	"github.com/mamadbah2/qclab/internal/service/analysis"
	"github.com/mamadbah2/qclab/internal/service/builder"
	"github.com/mamadbah2/qclab/internal/service/notify"
	"github.com/mamadbah2/qclab/internal/service/records"
	"github.com/mamadbah2/qclab/internal/service/reporting"
	"github.com/mamadbah2/qclab/internal/service/trends"
	"github.com/mamadbah2/qclab/pkg/clients/anthropic"
	"github.com/mamadbah2/qclab/pkg/clients/gemini"
	whatsappclient "github.com/mamadbah2/qclab/pkg/clients/whatsapp"
	"github.com/mamadbah2/qclab/pkg/logger"
)

const connectTimeout = 10 * time.Second

// app holds the wired services of one process.
type app struct {
	metrics   *metrics.Metrics
	store     *memory.Store
	records   *records.Service
	reporting *reporting.Service
	analysis  *analysis.Service
	notifier  notify.Notifier
	archive   *mongodb.MongoDBRepository
	logger    *zap.Logger
}

func newStore(cfg *config.Config) *memory.Store {
	if cfg.Store.SeedSampleData {
		return memory.NewStore(models.SampleRecords(time.Now()))
	}
	return memory.NewStore(nil)
}

func trendOptions(cfg *config.Config) trends.Options {
	return trends.Options{CaseInsensitive: cfg.Trends.CaseInsensitive, Limit: cfg.Trends.Limit}
}

func newApp(ctx context.Context, cfg *config.Config, base *zap.Logger) (*app, error) {
	a := &app{
		metrics: metrics.New(),
		store:   newStore(cfg),
		logger:  base,
	}

	a.notifier = notify.Noop{}
	if cfg.WhatsApp.Enabled() {
		a.notifier = notify.NewMetaWhatsAppService(cfg.WhatsApp, whatsappclient.NewClient(cfg.WhatsApp), logger.Named(base, "svc.notify"))
		base.Info("whatsapp notifications enabled")
	} else {
		base.Warn("whatsapp token missing, notifications disabled")
	}

	recordOpts := []records.Option{records.WithNotifier(a.notifier), records.WithMetrics(a.metrics)}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named(base, "repo.sheets"))
		if err != nil {
			return nil, fmt.Errorf("init sheets repository: %w", err)
		}
		recordOpts = append(recordOpts, records.WithExporter(sheets.NewRecordExporter(sheetsRepo, cfg.Sheets.Range)))
		base.Info("record export to google sheets enabled")
	}

	if cfg.MongoDB.Enabled() {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		archive, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, fmt.Errorf("init mongodb repository: %w", err)
		}
		a.archive = archive
		base.Info("daily summary archive enabled")
	}

	summarizer, err := newSummarizer(ctx, cfg.AI, base)
	if err != nil {
		return nil, err
	}

	a.records = records.NewService(a.store, builder.New(), logger.Named(base, "svc.records"), recordOpts...)
	a.reporting = reporting.NewService(a.store, trendOptions(cfg), logger.Named(base, "svc.reporting"))
	a.analysis = analysis.NewService(summarizer, logger.Named(base, "svc.analysis"),
		analysis.WithTimeout(cfg.AI.SummaryTimeout),
		analysis.WithObserver(func(state analysis.State) {
			a.metrics.AnalysisSettled(string(state))
		}),
	)

	return a, nil
}

func newSummarizer(ctx context.Context, cfg config.AIConfig, base *zap.Logger) (analysis.Summarizer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.GeminiKey, Model: cfg.GeminiModel})
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		base.Info("gemini analysis enabled", zap.String("model", client.Model()))
		return analysis.NewPromptSummarizer(client, cfg.Company, cfg.Language), nil
	case config.ProviderAnthropic:
		client := anthropic.NewClient(anthropic.Config{APIKey: cfg.AnthropicKey, Model: cfg.AnthropicModel})
		base.Info("anthropic analysis enabled")
		return analysis.NewPromptSummarizer(client, cfg.Company, cfg.Language), nil
	default:
		base.Warn("no ai api key configured, record analysis disabled")
		return nil, nil
	}
}

func (a *app) close(ctx context.Context) {
	a.analysis.Close()
	if a.archive != nil {
		if err := a.archive.Close(ctx); err != nil {
			a.logger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}
}
