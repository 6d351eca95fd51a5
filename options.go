package qaprep

import (
	"log/slog"
	"runtime"
)

// Option configures a Pipeline or Generator.
type Option func(*options)

type options struct {
	poolSize     int
	maxAnswerLen int
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		poolSize:     runtime.NumCPU(),
		maxAnswerLen: 32,
		logger:       slog.Default(),
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
// Only the Generator uses sessions.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithMaxAnswerLen caps the number of tokens the Generator decodes per
// answer (default: 32).
func WithMaxAnswerLen(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAnswerLen = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
