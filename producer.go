package logging

import (
	"reflect"
)

// LogProducer carries a named logger for the type embedding it. Set it from
// the owner's constructor:
//
//	w := &Worker{}
//	w.LogProducer = logging.NewLogProducer(w, "worker-3")
type LogProducer struct {
	log *NamedLogger
}

// NewLogProducer binds the process-wide logger for owner (see ComponentName)
// and the optional subname.
func NewLogProducer(owner any, subname string) LogProducer {
	return std.NewLogProducer(owner, subname)
}

// NewLogProducer binds the logger for owner and subname from r.
func (r *Registry) NewLogProducer(owner any, subname string) LogProducer {
	return LogProducer{log: r.GetLogger(LoggerName(ComponentName(owner), subname))}
}

// Log returns the bound logger, or the process-wide root logger for a zero LogProducer.
func (p LogProducer) Log() *NamedLogger {
	if p.log == nil {
		return std.Root()
	}
	return p.log
}

// LoggerName returns the name of the bound logger.
func (p LogProducer) LoggerName() string {
	return p.Log().Name()
}

// NewComponentLogger returns the process-wide logger for a component path and optional subname.
func NewComponentLogger(component, subname string) *NamedLogger {
	return std.GetLogger(LoggerName(component, subname))
}

// ComponentName returns "<package path>.<type name>" for owner's type,
// looking through pointers. A string owner is returned unchanged so callers
// can name components without a type.
func ComponentName(owner any) string {
	if s, ok := owner.(string); ok {
		return s
	}

	t := reflect.TypeOf(owner)
	if t == nil {
		return RootLoggerName
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.PkgPath() == emptyString {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// LoggerName joins a component path and an instance label:
// "pkg.Worker" and "worker-3" become "pkg.Worker (worker-3)".
func LoggerName(component, subname string) string {
	if subname == emptyString {
		return component
	}
	return component + " (" + subname + ")"
}
