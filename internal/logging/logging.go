// Package logging builds the logr.Logger used by the command line tool.
package logging

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const (
	FormatAuto    = ""
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Options struct {
	Verbose bool
	// Format selects the encoder. FormatAuto uses console output when stderr
	// is a terminal and JSON otherwise.
	Format string
}

// New returns a zap-backed logger writing to stderr and a function flushing it.
// Verbose enables V(1) messages.
func New(opts Options) (logr.Logger, func() error, error) {
	format := opts.Format
	if format == FormatAuto {
		format = FormatJSON
		if term.IsTerminal(int(os.Stderr.Fd())) {
			format = FormatConsole
		}
	}

	var cfg zap.Config
	switch format {
	case FormatConsole:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case FormatJSON:
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	default:
		return logr.Discard(), nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("building logger: %w", err)
	}
	return zapr.NewLogger(zl), zl.Sync, nil
}
