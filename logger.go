package logging

import (
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// NamedLogger is the registry's handle for one logger name. It is shared by
// everyone asking for that name and follows every reconfiguration.
type NamedLogger struct {
	name     string
	isRoot   bool
	registry *Registry

	logger   atomic.Pointer[zerolog.Logger]
	disabled atomic.Bool

	mu    sync.Mutex
	hooks []zerolog.Hook
}

func newNamedLogger(r *Registry, name string, isRoot bool) *NamedLogger {
	return &NamedLogger{
		name:     name,
		isRoot:   isRoot,
		registry: r,
	}
}

// rebuild recreates the underlying zerolog.Logger from s.
func (l *NamedLogger) rebuild(s *state) {
	l.mu.Lock()
	defer l.mu.Unlock()

	logger := s.build(l.name, l.isRoot, l.disabled.Load(), l.hooks)
	l.logger.Store(&logger)
}

// Name returns the registry name of the logger.
func (l *NamedLogger) Name() string {
	return l.name
}

// Level returns the effective severity threshold.
func (l *NamedLogger) Level() zerolog.Level {
	logger := l.logger.Load()
	if logger == nil {
		return zerolog.Disabled
	}
	return logger.GetLevel()
}

// Disabled reports whether the last configuration disabled this logger.
func (l *NamedLogger) Disabled() bool {
	return l.disabled.Load()
}

// Zerolog returns a snapshot of the current underlying logger. The snapshot
// does not follow later reconfiguration.
func (l *NamedLogger) Zerolog() zerolog.Logger {
	logger := l.logger.Load()
	if logger == nil {
		return zerolog.Nop()
	}
	return *logger
}

// Hook adds hooks to every record of this logger. Hooks are kept across
// reconfiguration.
func (l *NamedLogger) Hook(hooks ...zerolog.Hook) {
	if len(hooks) == 0 {
		return
	}

	// Hold the registry read lock so Configure cannot swap state mid-rebuild
	l.registry.mu.RLock()
	defer l.registry.mu.RUnlock()

	l.mu.Lock()
	l.hooks = append(l.hooks, hooks...)
	l.mu.Unlock()

	l.rebuild(l.registry.state)
}

// TraceWith returns a LogEvent for structured Trace-level logging.
func (l *NamedLogger) TraceWith() LogEvent {
	return l.event(zerolog.TraceLevel)
}

// DebugWith returns a LogEvent for structured Debug-level logging.
func (l *NamedLogger) DebugWith() LogEvent {
	return l.event(zerolog.DebugLevel)
}

// InfoWith returns a LogEvent for structured Info-level logging.
// Example: logger.InfoWith().Str("user_id", id).Int("count", 5).Msg("User processed")
func (l *NamedLogger) InfoWith() LogEvent {
	return l.event(zerolog.InfoLevel)
}

// WarnWith returns a LogEvent for structured Warn-level logging.
func (l *NamedLogger) WarnWith() LogEvent {
	return l.event(zerolog.WarnLevel)
}

// ErrorWith returns a LogEvent for structured Error-level logging.
// Example: logger.ErrorWith().Err(err).Str("operation", "database").Msg("Query failed")
func (l *NamedLogger) ErrorWith() LogEvent {
	return l.event(zerolog.ErrorLevel)
}

// FatalWith returns a LogEvent for structured Fatal-level logging.
// The program will exit after the log is written.
func (l *NamedLogger) FatalWith() LogEvent {
	return l.event(zerolog.FatalLevel)
}

// PanicWith returns a LogEvent for structured Panic-level logging.
// Msg panics after the log is written.
func (l *NamedLogger) PanicWith() LogEvent {
	return l.event(zerolog.PanicLevel)
}

// With returns a LogContext for creating a child logger with pre-populated fields.
// The child is bound to the configuration current at the time of the call.
// Example: reqLogger := logger.With().Str("request_id", id).Logger()
func (l *NamedLogger) With() LogContext {
	if l == nil {
		return &noopLogContext{}
	}
	logger := l.logger.Load()
	if logger == nil {
		return &noopLogContext{}
	}
	return &logContext{context: logger.With()}
}

func (l *NamedLogger) event(level zerolog.Level) LogEvent {
	if l == nil {
		return newLogEvent(nil)
	}
	logger := l.logger.Load()
	if logger == nil {
		return newLogEvent(nil)
	}
	return levelEvent(logger, level)
}

// levelEvent creates a zerolog event for level, or a no-op event when the
// level is not enabled on logger.
func levelEvent(logger *zerolog.Logger, level zerolog.Level) LogEvent {
	if logger.GetLevel() > level {
		return newLogEvent(nil)
	}

	switch level {
	case zerolog.TraceLevel:
		return newLogEvent(logger.Trace())
	case zerolog.DebugLevel:
		return newLogEvent(logger.Debug())
	case zerolog.InfoLevel:
		return newLogEvent(logger.Info())
	case zerolog.WarnLevel:
		return newLogEvent(logger.Warn())
	case zerolog.ErrorLevel:
		return newLogEvent(logger.Error())
	case zerolog.FatalLevel:
		return newLogEvent(logger.Fatal())
	case zerolog.PanicLevel:
		return newLogEvent(logger.Panic())
	default:
		return newLogEvent(nil)
	}
}
