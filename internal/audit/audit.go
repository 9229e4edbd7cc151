// Package audit provides the diagnostic event sink consumed by the task
// service. Events are free-form, human-readable strings; emitting one never
// fails from the caller's point of view.
package audit

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink accepts diagnostic events. Fire-and-forget: implementations must not
// return errors or panic, and callers never wait on delivery.
type Sink interface {
	Eventf(format string, args ...interface{})
}

// ZapSink logs events through a zap logger, stamping each with a generated
// event id so log lines from one operation can be correlated.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapSink{log: log}
}

func (s *ZapSink) Eventf(format string, args ...interface{}) {
	s.log.Info(fmt.Sprintf(format, args...), zap.String("event_id", uuid.NewString()))
}

// Nop is a Sink that discards everything. Useful default for tests and
// callers that don't care about diagnostics.
type Nop struct{}

func (Nop) Eventf(string, ...interface{}) {}

// NewLogger builds the process logger. Level falls back to info on a bad
// value; an empty path logs to stderr.
func NewLogger(path, level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if path != "" {
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
