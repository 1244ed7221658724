package utils

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a zap.Logger configured for the desired verbosity and format.
// format "json" selects the production encoder; anything else logs to the console.
func NewLogger(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	parsed := zapcore.InfoLevel
	if level != "" {
		var err error
		if parsed, err = zapcore.ParseLevel(strings.ToLower(level)); err != nil {
			return nil, eris.Wrapf(err, "parse log level %q", level)
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.OutputPaths = []string{"stdout"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "build logger")
	}
	return logger, nil
}
