package logging

import (
	"io"
	"os"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// zerolog filters below its global level before any per-logger check, so the
// global level is opened once and every registry logger carries its own level.
// This is process-wide: zerolog loggers built outside this package are then
// filtered by their own levels only.
func init() {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

// Registry is a logging subsystem: the set of named loggers and the
// configuration they are built from. The package keeps a process-wide
// instance behind GetLogger, Configure, BasicConfig and Setup.
type Registry struct {
	stdout io.Writer
	stderr io.Writer

	mu      sync.RWMutex
	loggers map[string]*NamedLogger
	root    *NamedLogger
	state   *state
}

// RegistryOption customizes a Registry created by NewRegistry.
type RegistryOption func(*Registry)

// WithStdout sets the writer used by handlers with stream "stdout".
func WithStdout(w io.Writer) RegistryOption {
	return func(r *Registry) { r.stdout = w }
}

// WithStderr sets the writer used by handlers with stream "stderr" and by the
// last-resort handler.
func WithStderr(w io.Writer) RegistryOption {
	return func(r *Registry) { r.stderr = w }
}

// NewRegistry returns a registry whose root logger writes WARN and above to
// stderr until it is configured.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		loggers: make(map[string]*NamedLogger),
	}
	for _, opt := range opts {
		opt(r)
	}

	// Stream handlers cannot fail to build.
	initial, _ := r.newState(BasicOptions{Level: "WARN"}.basicConfig())
	r.state = initial
	r.root = newNamedLogger(r, RootLoggerName, true)
	r.root.rebuild(initial)
	return r
}

// Root returns the root logger.
func (r *Registry) Root() *NamedLogger {
	return r.root
}

// GetLogger returns the logger registered under name, creating it on first use.
// Every call with the same name returns the same *NamedLogger. The empty name
// and "root" both refer to the root logger.
func (r *Registry) GetLogger(name string) *NamedLogger {
	if name == emptyString || name == RootLoggerName {
		return r.root
	}

	r.mu.RLock()
	l, ok := r.loggers[name]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock
	if l, ok = r.loggers[name]; ok {
		return l
	}
	l = newNamedLogger(r, name, false)
	l.rebuild(r.state)
	r.loggers[name] = l
	return l
}

// Configure applies a declarative configuration, replacing all handlers and
// logger settings. Loggers that already exist are rebuilt; those the document
// does not cover are disabled when DisableExistingLoggers is nil or true.
// Configure may be called again at any time; nothing carries over from the
// previous configuration.
func (r *Registry) Configure(cfg *Config) error {
	const op errors.Op = "logging.Configure"
	if r == nil {
		return errors.New(op).Msg(errMsgNilRegistry)
	}

	if err := validateConfig(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgApplyConfig)
	}

	next, err := r.newState(cfg)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgApplyConfig)
	}

	r.mu.Lock()
	prev := r.state
	r.state = next
	disable := cfg.disableExisting()
	for name, l := range r.loggers {
		l.disabled.Store(disable && !next.covers(name))
		l.rebuild(next)
	}
	r.root.rebuild(next)
	r.mu.Unlock()

	if prev != nil {
		_ = closeHandlers(prev.handlers)
	}
	return nil
}

// BasicConfig applies the small option form: the root logger gets opts.Level
// and a console handler on stderr. Loggers created earlier stay enabled unless
// opts.DisableExistingLoggers is set.
func (r *Registry) BasicConfig(opts BasicOptions) error {
	const op errors.Op = "logging.BasicConfig"
	if err := validateBasicOptions(opts); err != nil {
		return errors.New(op).Err(err).Msg(errMsgApplyConfig)
	}
	return r.Configure(opts.basicConfig())
}

// Close releases file handlers. Loggers stay usable; file handlers reopen
// their file on the next write.
func (r *Registry) Close() error {
	const op errors.Op = "logging.Close"
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.state == nil {
		return nil
	}
	if err := closeHandlers(r.state.handlers); err != nil {
		return errors.New(op).Err(err).Msg(errMsgHandlersCloseFail)
	}
	return nil
}

// state is one applied configuration with its handlers built.
type state struct {
	cfg        *Config
	handlers   map[string]*handler
	levels     map[string]zerolog.Level
	rootLevel  zerolog.Level
	rootConfig LoggerConfig
	lastResort *handler
}

func (r *Registry) newState(cfg *Config) (*state, error) {
	handlers, err := r.buildHandlers(cfg)
	if err != nil {
		return nil, err
	}

	s := &state{
		cfg:        cfg,
		handlers:   handlers,
		levels:     make(map[string]zerolog.Level, len(cfg.Loggers)),
		rootLevel:  zerolog.WarnLevel,
		rootConfig: cfg.rootConfig(),
		lastResort: r.lastResortHandler(),
	}

	if s.rootConfig.Level != emptyString {
		if l, err := parseLevel(s.rootConfig.Level); err == nil {
			s.rootLevel = l
		}
	}
	for name, lc := range cfg.Loggers {
		// notset leaves the level to the nearest configured ancestor
		if lc.Level == emptyString || isNotSet(lc.Level) {
			continue
		}
		if l, err := parseLevel(lc.Level); err == nil {
			s.levels[name] = l
		}
	}
	return s, nil
}

// covers reports whether name is configured by the document directly or
// through one of its ancestors.
func (s *state) covers(name string) bool {
	if _, ok := s.cfg.Loggers[name]; ok {
		return true
	}
	for configured := range s.cfg.Loggers {
		if isDescendant(name, configured) {
			return true
		}
	}
	return false
}

// resolve walks from name towards root collecting the effective level and the
// handlers records reach.
func (s *state) resolve(name string, isRoot bool) (zerolog.Level, []*handler) {
	level := zerolog.NoLevel
	var names []string
	reachedRoot := true

	if !isRoot {
		for n, ok := name, true; ok; n, ok = parentName(n) {
			lc, configured := s.cfg.Loggers[n]
			if !configured {
				continue
			}
			if lvl, has := s.levels[n]; has && level == zerolog.NoLevel {
				level = lvl
			}
			names = append(names, lc.Handlers...)
			if !lc.propagates() {
				reachedRoot = false
				break
			}
		}
	}

	if level == zerolog.NoLevel {
		level = s.rootLevel
	}
	if reachedRoot {
		names = append(names, s.rootConfig.Handlers...)
	}

	seen := make(map[string]bool, len(names))
	handlers := make([]*handler, 0, len(names))
	for _, n := range names {
		h, ok := s.handlers[n]
		if !ok || seen[n] {
			continue
		}
		seen[n] = true
		handlers = append(handlers, h)
	}
	if len(handlers) == 0 {
		handlers = append(handlers, s.lastResort)
	}
	return level, handlers
}

func (s *state) build(name string, isRoot, disabled bool, hooks []zerolog.Hook) zerolog.Logger {
	if disabled {
		return zerolog.Nop()
	}

	level, handlers := s.resolve(name, isRoot)
	writers := make([]io.Writer, 0, len(handlers))
	for _, h := range handlers {
		writers = append(writers, h.writer)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Str(LoggerFieldName, name)
	if s.cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if s.cfg.CallerSkipFrames > 0 {
		ctx = ctx.CallerWithSkipFrameCount(s.cfg.CallerSkipFrames)
	}

	logger := ctx.Logger()
	if len(hooks) > 0 {
		logger = logger.Hook(hooks...)
	}
	return logger
}
