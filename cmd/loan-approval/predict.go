package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/platformbuilds/loan-approval/internal/api"
	"github.com/platformbuilds/loan-approval/internal/models"
	"github.com/platformbuilds/loan-approval/internal/services"
	"github.com/platformbuilds/loan-approval/internal/validation"
)

var (
	predictFile string
	predictMode string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score one application from a JSON file (or - for stdin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := readApplication(cmd.InOrStdin(), predictFile)
		if err != nil {
			return err
		}

		provider := newCacheProvider(cfg, logger)
		defer provider.Close()
		store, err := newModeStore(cfg, provider, logger)
		if err != nil {
			return err
		}
		svc := services.NewApprovalService(logger, newAccessor(cfg, logger), store)

		decision, err := svc.Decide(cmd.Context(), services.DecisionRequest{Application: app, Mode: predictMode})
		if err != nil {
			var invalid *validation.Error
			if errors.As(err, &invalid) {
				_ = writeIndented(cmd.OutOrStdout(), invalid.Result.AsMap())
			}
			return err
		}
		return writeIndented(cmd.OutOrStdout(), api.ToPredictResponse(decision))
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictFile, "file", "", "application JSON file, - for stdin")
	predictCmd.Flags().StringVar(&predictMode, "mode", "", "prediction mode (mode1, mode2, mode3); default is the active mode")
	_ = predictCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(predictCmd)
}

func readApplication(stdin io.Reader, path string) (models.Application, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "open application %s", path)
		}
		defer f.Close()
		r = f
	}

	var app models.Application
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&app); err != nil {
		return nil, eris.Wrap(err, "decode application")
	}
	if len(app) == 0 {
		return nil, fmt.Errorf("application %s is empty", path)
	}
	return app, nil
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
