package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/platformbuilds/loan-approval/internal/config"
	"github.com/platformbuilds/loan-approval/internal/utils"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "loan-approval",
	Short:        "Loan approval decision service",
	Long:         "Scores loan applications with the credit-history and reduced classifiers and serves decisions over gRPC and REST.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		l, err := utils.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to configuration file (default $LOAN_APPROVAL_CONFIG or ./config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
