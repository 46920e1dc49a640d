package logging

import (
	stderrs "errors"
	"fmt"
	"strings"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// parseLevel parses a level name or a numeric Python-style level into a zerolog.Level.
// Names are case-insensitive; "warning", "critical" and "notset" are accepted aliases.
// Returns zerolog.NoLevel and an error if parsing fails.
func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "notset", "0":
		return zerolog.TraceLevel, nil
	case "10":
		return zerolog.DebugLevel, nil
	case "20":
		return zerolog.InfoLevel, nil
	case "warning", "30":
		return zerolog.WarnLevel, nil
	case "40":
		return zerolog.ErrorLevel, nil
	case "critical", "50":
		return zerolog.FatalLevel, nil
	case emptyString:
		return zerolog.NoLevel, fmt.Errorf("empty log level")
	}

	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, err
	}
	return l, nil
}

// isNotSet reports whether level is the "no level of its own" marker.
func isNotSet(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "notset", "0":
		return true
	}
	return false
}

// parentName returns the name of the closest ancestor of a dotted (or
// slash-separated) logger name, and false once the chain reaches root.
func parentName(name string) (string, bool) {
	i := strings.LastIndexAny(name, "./")
	if i <= 0 {
		return emptyString, false
	}
	return name[:i], true
}

// isDescendant reports whether name sits below ancestor in the hierarchy.
func isDescendant(name, ancestor string) bool {
	for p, ok := parentName(name); ok; p, ok = parentName(p) {
		if p == ancestor {
			return true
		}
	}
	return false
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// The traversal prefers Station-Manager DetailedError.Cause() and then
// falls back to stdlib errors.Unwrap. It guards against excessive depth
// and repeated messages to avoid cycles.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			ops = append(ops, string(dErr.Op()))
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, emptyString)
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return emptyString
	}
	return strings.Join(chain, " -> ")
}
