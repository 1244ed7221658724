package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/platformbuilds/loan-approval/internal/models"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Inspect or change the active prediction mode",
}

var modeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the active prediction mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := newCacheProvider(cfg, logger)
		defer provider.Close()
		store, err := newModeStore(cfg, provider, logger)
		if err != nil {
			return err
		}
		mode, err := store.Active(cmd.Context())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", mode, mode.Description())
		return err
	},
}

var modeSetCmd = &cobra.Command{
	Use:   "set <mode>",
	Short: "Change the active prediction mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := models.ParseMode(args[0])
		if err != nil {
			return err
		}
		if !cfg.Cache.Enabled {
			logger.Warn("cache disabled; the mode change only lasts for this process", zap.String("mode", mode.String()))
		}
		provider := newCacheProvider(cfg, logger)
		defer provider.Close()
		store, err := newModeStore(cfg, provider, logger)
		if err != nil {
			return err
		}
		if err := store.SetActive(cmd.Context(), mode); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", mode, mode.Description())
		return err
	},
}

func init() {
	modeCmd.AddCommand(modeGetCmd, modeSetCmd)
	rootCmd.AddCommand(modeCmd)
}
