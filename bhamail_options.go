package bhamail

import (
	"io"
	"log/slog"
	"os"

	phuslog "github.com/phuslu/log"

	"github.com/bhamail/bhamail/core"
)

// DefaultLoggerOptions provides default settings for slog handlers.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelInfo,
}

// WithPhusLogger configures slog with phuslu/log's JSON handler.
// Offers better performance than the standard library handlers.
func WithPhusLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	return core.WithLogger(logger)
}

// WithTextLogger configures slog with the standard library's text handler.
func WithTextLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	return core.WithLogger(logger)
}

// WithDiscardLogger configures a logger that discards all output. Used in
// benchmarks and tests.
func WithDiscardLogger() core.Option {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return core.WithLogger(logger)
}
