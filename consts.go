package logging

const (
	// DefaultConfigPath is used when the caller passes no configuration path.
	DefaultConfigPath = "logging.yaml"
	// DefaultConfigPathEnv names the environment variable that overrides the configuration path.
	DefaultConfigPathEnv = "LOG_CFG_PATH"

	// RootLoggerName is the name reported by the root logger.
	RootLoggerName = "root"
	// LoggerFieldName is the record field carrying the logger name.
	LoggerFieldName = "logger"

	configVersion = 1
	emptyString   = ""
)

const (
	formatterConsole = "console"

	handlerStream  = "stream"
	handlerFile    = "file"
	handlerDiscard = "discard"

	streamStdout = "stdout"
	streamStderr = "stderr"
)

const (
	errMsgNilConfig         = "Logging config is nil."
	errMsgNilRegistry       = "Logger registry is nil."
	errMsgConfigInvalid     = "Logging configuration is invalid."
	errMsgConfigRead        = "Logging configuration file could not be read."
	errMsgConfigParse       = "Logging configuration file could not be parsed."
	errMsgHandlerBuild      = "Logging handler could not be built."
	errMsgApplyConfig       = "Logging configuration could not be applied."
	errMsgUnknownFormatter  = "handler %q references unknown formatter %q"
	errMsgUnknownHandler    = "logger %q references unknown handler %q"
	errMsgHandlersCloseFail = "Logging handlers could not be closed."
)
