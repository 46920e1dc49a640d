package logging

import (
	"os"

	"github.com/Station-Manager/errors"
)

var std = NewRegistry()

// Default returns the process-wide registry used by the package-level functions.
func Default() *Registry {
	return std
}

// GetLogger returns the process-wide logger registered under name.
func GetLogger(name string) *NamedLogger {
	return std.GetLogger(name)
}

// Root returns the process-wide root logger.
func Root() *NamedLogger {
	return std.Root()
}

// Configure applies cfg to the process-wide registry.
func Configure(cfg *Config) error {
	return std.Configure(cfg)
}

// BasicConfig applies opts to the process-wide registry.
func BasicConfig(opts BasicOptions) error {
	return std.BasicConfig(opts)
}

// Setup initializes process-wide logging. See (*Registry).Setup.
func Setup(configPath, configPathEnv string) error {
	return std.Setup(configPath, configPathEnv)
}

// Close releases the process-wide registry's file handlers.
func Close() error {
	return std.Close()
}

// ResolveConfigPath returns the configuration path Setup would use.
// A non-empty value of the environment variable configPathEnv (LOG_CFG_PATH
// when empty) wins over configPath (logging.yaml when empty). An empty
// variable counts as unset.
func ResolveConfigPath(configPath, configPathEnv string) string {
	if configPathEnv == emptyString {
		configPathEnv = DefaultConfigPathEnv
	}
	if configPath == emptyString {
		configPath = DefaultConfigPath
	}
	if override, ok := os.LookupEnv(configPathEnv); ok && override != emptyString {
		return override
	}
	return configPath
}

// Setup resolves the configuration path and applies the document found there.
// When nothing exists at the path, the registry gets DefaultBasicOptions
// instead. Read, parse and apply failures are returned as they are; there is
// no fallback once a file has been found.
//
// Setup emits no records and registers no loggers of its own. Every call
// reconfigures the registry from scratch.
func (r *Registry) Setup(configPath, configPathEnv string) error {
	const op errors.Op = "logging.Setup"
	if r == nil {
		return errors.New(op).Msg(errMsgNilRegistry)
	}

	path := ResolveConfigPath(configPath, configPathEnv)

	if _, err := os.Stat(path); err != nil {
		if err := r.BasicConfig(DefaultBasicOptions()); err != nil {
			return errors.New(op).Err(err).Msg(errMsgApplyConfig)
		}
		return nil
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigParse)
	}
	if err = r.Configure(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgApplyConfig)
	}
	return nil
}
