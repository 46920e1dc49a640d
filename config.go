package logging

import (
	"os"
	"path/filepath"

	"github.com/Station-Manager/errors"
	"gopkg.in/yaml.v3"
)

// Config is a declarative logging configuration document. Applying it with
// Configure replaces every handler, formatter and logger setting at once.
type Config struct {
	// Version must be 1.
	Version int `yaml:"version" validate:"eq=1"`
	// DisableExistingLoggers disables loggers created before Configure that the
	// document does not mention. Nil means true.
	DisableExistingLoggers *bool `yaml:"disable_existing_loggers"`
	// Level is shorthand for Root.Level; Root.Level wins when both are set.
	Level            string `yaml:"level" validate:"omitempty,loglevel"`
	Timestamp        bool   `yaml:"timestamp"`
	CallerSkipFrames int    `yaml:"caller_skip_frames" validate:"gte=0"`

	Formatters map[string]FormatterConfig `yaml:"formatters" validate:"dive"`
	Handlers   map[string]HandlerConfig   `yaml:"handlers" validate:"dive"`
	Loggers    map[string]LoggerConfig    `yaml:"loggers" validate:"dive"`
	Root       *LoggerConfig              `yaml:"root"`
}

// FormatterConfig selects how a handler renders records.
type FormatterConfig struct {
	Type       string `yaml:"type" validate:"omitempty,oneof=json console"`
	TimeFormat string `yaml:"time_format"`
	NoColor    bool   `yaml:"no_color"`
}

// HandlerConfig describes one output sink.
type HandlerConfig struct {
	Type      string `yaml:"type" validate:"required,oneof=stream file discard"`
	Stream    string `yaml:"stream" validate:"omitempty,oneof=stdout stderr"`
	Level     string `yaml:"level" validate:"omitempty,loglevel"`
	Formatter string `yaml:"formatter"`

	Filename   string `yaml:"filename" validate:"required_if=Type file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// LoggerConfig sets the level and handlers of one named logger (or root).
type LoggerConfig struct {
	Level    string   `yaml:"level" validate:"omitempty,loglevel"`
	Handlers []string `yaml:"handlers"`
	// Propagate passes records on to ancestor handlers. Nil means true.
	Propagate *bool `yaml:"propagate"`
}

// BasicOptions is the small option set accepted by BasicConfig.
type BasicOptions struct {
	Level                  string `validate:"required,loglevel"`
	DisableExistingLoggers bool
}

// DefaultBasicOptions is applied by Setup when no configuration file exists.
func DefaultBasicOptions() BasicOptions {
	return BasicOptions{
		Level:                  "INFO",
		DisableExistingLoggers: false,
	}
}

// LoadConfig reads and parses the configuration document at path.
func LoadConfig(path string) (*Config, error) {
	const op errors.Op = "logging.LoadConfig"

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgConfigRead)
	}

	return ParseConfig(contents)
}

// ParseConfig parses a YAML configuration document. Unknown keys are ignored;
// semantic checks happen when the document is applied.
func ParseConfig(data []byte) (*Config, error) {
	const op errors.Op = "logging.ParseConfig"

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New(op).Err(err).Msg(errMsgConfigParse)
	}
	return &cfg, nil
}

func (c *Config) disableExisting() bool {
	return c.DisableExistingLoggers == nil || *c.DisableExistingLoggers
}

func (c *Config) rootConfig() LoggerConfig {
	var root LoggerConfig
	if c.Root != nil {
		root = *c.Root
	}
	if root.Level == emptyString {
		root.Level = c.Level
	}
	return root
}

func (lc LoggerConfig) propagates() bool {
	return lc.Propagate == nil || *lc.Propagate
}

// basicConfig expands BasicOptions into the equivalent declarative document.
func (o BasicOptions) basicConfig() *Config {
	disable := o.DisableExistingLoggers
	return &Config{
		Version:                configVersion,
		DisableExistingLoggers: &disable,
		Timestamp:              true,
		Formatters: map[string]FormatterConfig{
			"basic": {Type: formatterConsole},
		},
		Handlers: map[string]HandlerConfig{
			"basic": {Type: handlerStream, Stream: streamStderr, Formatter: "basic"},
		},
		Root: &LoggerConfig{
			Level:    o.Level,
			Handlers: []string{"basic"},
		},
	}
}
