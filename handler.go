package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// handler is a built output sink: a writer that drops records below its own level.
type handler struct {
	name   string
	writer zerolog.LevelWriter
	closer io.Closer
}

func (r *Registry) buildHandlers(cfg *Config) (map[string]*handler, error) {
	const op errors.Op = "logging.buildHandlers"

	built := make(map[string]*handler, len(cfg.Handlers))
	for _, name := range sortedKeys(cfg.Handlers) {
		h, err := r.newHandler(name, cfg.Handlers[name], cfg.Formatters)
		if err != nil {
			closeHandlers(built)
			return nil, errors.New(op).Err(err).Msg(errMsgHandlerBuild)
		}
		built[name] = h
	}
	return built, nil
}

func (r *Registry) newHandler(name string, hc HandlerConfig, formatters map[string]FormatterConfig) (*handler, error) {
	h := &handler{name: name}

	var out io.Writer
	switch hc.Type {
	case handlerFile:
		fw, err := newRollingFileWriter(hc)
		if err != nil {
			return nil, err
		}
		out = fw
		h.closer = fw
	case handlerDiscard:
		out = io.Discard
	default:
		out = r.stderr
		if hc.Stream == streamStdout {
			out = r.stdout
		}
	}

	if fc, ok := formatters[hc.Formatter]; ok && fc.Type == formatterConsole {
		out = zerolog.ConsoleWriter{Out: out, NoColor: fc.NoColor, TimeFormat: fc.TimeFormat}
	}

	level := zerolog.TraceLevel
	if hc.Level != emptyString {
		l, err := parseLevel(hc.Level)
		if err != nil {
			return nil, err
		}
		level = l
	}

	h.writer = &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: out},
		Level:  level,
	}
	return h, nil
}

func newRollingFileWriter(hc HandlerConfig) (*lumberjack.Logger, error) {
	path := filepath.Clean(hc.Filename)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxBackups: hc.MaxBackups,
		MaxAge:     hc.MaxAgeDays,
		MaxSize:    hc.MaxSizeMB,
		Compress:   hc.Compress,
	}, nil
}

// lastResortHandler is used by loggers that reach no configured handler.
func (r *Registry) lastResortHandler() *handler {
	return &handler{
		name: "lastResort",
		writer: &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{Out: r.stderr}},
			Level:  zerolog.WarnLevel,
		},
	}
}

func closeHandlers(handlers map[string]*handler) error {
	var firstErr error
	for _, h := range handlers {
		if h.closer == nil {
			continue
		}
		if err := h.closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
