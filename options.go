package tprint

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PrinterOption configures a Printer.
type PrinterOption func(*printerConfig)

type printerConfig struct {
	format Format
	color  bool
	logger *zap.Logger
	clear  func() error
	sleep  func(context.Context, time.Duration) error
}

// WithFormat sets the geometry used when a call passes a zero Format.
func WithFormat(f Format) PrinterOption {
	return func(cfg *printerConfig) {
		cfg.format = f
	}
}

// WithColor enables or disables ANSI sequences in printed output.
func WithColor(enabled bool) PrinterOption {
	return func(cfg *printerConfig) {
		cfg.color = enabled
	}
}

// WithLogger sets the logger for prompt and loading events.
func WithLogger(logger *zap.Logger) PrinterOption {
	return func(cfg *printerConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithClear replaces the clear-screen action.
func WithClear(clear func() error) PrinterOption {
	return func(cfg *printerConfig) {
		cfg.clear = clear
	}
}

// WithSleep replaces the sleep used by Pause.
func WithSleep(sleep func(context.Context, time.Duration) error) PrinterOption {
	return func(cfg *printerConfig) {
		cfg.sleep = sleep
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
