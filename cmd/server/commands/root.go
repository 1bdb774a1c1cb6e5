package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/qclab/internal/config"
	"github.com/mamadbah2/qclab/pkg/logger"
)

var (
	envFile string

	cfg        *config.Config
	baseLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "qclab",
	Short: "QC lab record service",
	Long: `Records quality-control analyses of product batches, serves the dashboard
and report views over HTTP and sends daily summaries to the QC manager.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}

		baseLogger, err = logger.NewWithOptions(logger.Options{File: cfg.Log.File})
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(baseLogger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if baseLogger != nil {
			_ = baseLogger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (defaults to ./.env when present)")
	rootCmd.AddCommand(serveCmd, dashboardCmd)
}
