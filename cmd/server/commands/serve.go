package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/qclab/internal/scheduler"
	"github.com/mamadbah2/qclab/internal/server/handlers"
	"github.com/mamadbah2/qclab/internal/server/router"
	"github.com/mamadbah2/qclab/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the daily summary scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, baseLogger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.close(closeCtx)
	}()

	var archive scheduler.Archive
	if a.archive != nil {
		archive = a.archive
	}
	sched, err := scheduler.NewScheduler(cfg.Reporting, a.reporting, a.notifier, archive, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	engine := router.New(router.Handlers{
		Records:  handlers.NewRecordHandler(a.records, a.analysis, logger.Named(baseLogger, "handlers.records")),
		Reports:  handlers.NewReportHandler(a.reporting, logger.Named(baseLogger, "handlers.reports")),
		Drafts:   handlers.NewDraftHandler(logger.Named(baseLogger, "handlers.drafts")),
		Messages: handlers.NewMessageHandler(a.notifier, logger.Named(baseLogger, "handlers.messages")),
		Metrics:  a.metrics.Handler(),
	}, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		baseLogger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			baseLogger.Error("graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	})

	return g.Wait()
}
