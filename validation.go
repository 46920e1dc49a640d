package logging

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func validatorInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			_, err := parseLevel(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

func validateConfig(cfg *Config) error {
	const op errors.Op = "logging.validateConfig"
	if cfg == nil {
		return errors.New(op).Msg(errMsgNilConfig)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	if err := validateReferences(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	return nil
}

func validateBasicOptions(opts BasicOptions) error {
	const op errors.Op = "logging.validateBasicOptions"
	if err := validatorInstance().Struct(opts); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	return nil
}

// validateReferences checks that every formatter and handler a document
// refers to is defined by the same document. Names are visited in sorted
// order so the reported error is stable.
func validateReferences(cfg *Config) error {
	for _, name := range sortedKeys(cfg.Handlers) {
		hc := cfg.Handlers[name]
		if hc.Formatter == emptyString {
			continue
		}
		if _, ok := cfg.Formatters[hc.Formatter]; !ok {
			return fmt.Errorf(errMsgUnknownFormatter, name, hc.Formatter)
		}
	}

	check := func(logger string, lc LoggerConfig) error {
		for _, h := range lc.Handlers {
			if _, ok := cfg.Handlers[h]; !ok {
				return fmt.Errorf(errMsgUnknownHandler, logger, h)
			}
		}
		return nil
	}

	for _, name := range sortedKeys(cfg.Loggers) {
		if err := check(name, cfg.Loggers[name]); err != nil {
			return err
		}
	}
	return check(RootLoggerName, cfg.rootConfig())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
