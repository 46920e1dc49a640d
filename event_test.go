package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pickupAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func decodeOne(t *testing.T, buf *bytes.Buffer) logEntry {
	t.Helper()
	var entry logEntry
	require.NoError(t, json.NewDecoder(buf).Decode(&entry))
	return entry
}

func TestLogEvent_TypedFields(t *testing.T) {
	tests := []struct {
		name string
		emit func(LogEvent) LogEvent
		key  string
		want any
	}{
		{"Str", func(e LogEvent) LogEvent { return e.Str("route", "north") }, "route", "north"},
		{"Strs", func(e LogEvent) LogEvent { return e.Strs("stops", []string{"a", "b"}) }, "stops", []any{"a", "b"}},
		{"Stringer", func(e LogEvent) LogEvent { return e.Stringer("wait", 90 * time.Second) }, "wait", "1m30s"},
		{"Int", func(e LogEvent) LogEvent { return e.Int("attempt", 3) }, "attempt", float64(3)},
		{"Int64", func(e LogEvent) LogEvent { return e.Int64("offset", -7) }, "offset", float64(-7)},
		{"Uint64", func(e LogEvent) LogEvent { return e.Uint64("bytes", 42) }, "bytes", float64(42)},
		{"Float64", func(e LogEvent) LogEvent { return e.Float64("load", 2.5) }, "load", 2.5},
		{"Bool", func(e LogEvent) LogEvent { return e.Bool("late", true) }, "late", true},
		{"Time", func(e LogEvent) LogEvent { return e.Time("at", pickupAt) }, "at", "2026-03-14T09:30:00Z"},
		{"Dur", func(e LogEvent) LogEvent { return e.Dur("took", 1500 * time.Millisecond) }, "took", float64(1500)},
		{"Interface", func(e LogEvent) LogEvent { return e.Interface("meta", map[string]int{"bins": 2}) }, "meta", map[string]any{"bins": float64(2)}},
		{"Dict", func(e LogEvent) LogEvent {
			return e.Dict("truck", func(d LogEvent) { d.Str("id", "t-9").Int("axles", 3) })
		}, "truck", map[string]any{"id": "t-9", "axles": float64(3)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			tc.emit(newLogEvent(logger.Info())).Send()

			entry := decodeOne(t, &buf)
			assert.Equal(t, tc.want, entry[tc.key])
			assert.Equal(t, "info", entry[zerolog.LevelFieldName])
		})
	}
}

func TestLogEvent_Msgf(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	newLogEvent(logger.Warn()).Msgf("%d pickups missed on %s", 2, "tuesday")

	entry := decodeOne(t, &buf)
	assert.Equal(t, "2 pickups missed on tuesday", entry[zerolog.MessageFieldName])
	assert.Equal(t, "warn", entry[zerolog.LevelFieldName])
}

func TestLogContext_TypedFields(t *testing.T) {
	tests := []struct {
		name string
		with func(LogContext) LogContext
		key  string
		want any
	}{
		{"Str", func(c LogContext) LogContext { return c.Str("route", "south") }, "route", "south"},
		{"Strs", func(c LogContext) LogContext { return c.Strs("zones", []string{"z1"}) }, "zones", []any{"z1"}},
		{"Int", func(c LogContext) LogContext { return c.Int("worker", 4) }, "worker", float64(4)},
		{"Int64", func(c LogContext) LogContext { return c.Int64("seq", 1 << 40) }, "seq", float64(1 << 40)},
		{"Uint64", func(c LogContext) LogContext { return c.Uint64("bytes", 8) }, "bytes", float64(8)},
		{"Float64", func(c LogContext) LogContext { return c.Float64("ratio", 0.25) }, "ratio", 0.25},
		{"Bool", func(c LogContext) LogContext { return c.Bool("dry_run", false) }, "dry_run", false},
		{"Time", func(c LogContext) LogContext { return c.Time("since", pickupAt) }, "since", "2026-03-14T09:30:00Z"},
		{"Err", func(c LogContext) LogContext { return c.Err(fmt.Errorf("route closed")) }, zerolog.ErrorFieldName, "route closed"},
		{"Interface", func(c LogContext) LogContext { return c.Interface("tags", []int{1, 2}) }, "tags", []any{float64(1), float64(2)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			child := tc.with(&logContext{context: logger.With()}).Logger()
			child.InfoWith().Msg("first")
			child.InfoWith().Msg("second")

			dec := json.NewDecoder(&buf)
			for _, msg := range []string{"first", "second"} {
				var entry logEntry
				require.NoError(t, dec.Decode(&entry))
				assert.Equal(t, msg, entry[zerolog.MessageFieldName])
				assert.Equal(t, tc.want, entry[tc.key], "context fields repeat on every record")
			}
		})
	}
}

func TestNoopLogContext(t *testing.T) {
	var ctx LogContext = &noopLogContext{}
	assert.NotPanics(t, func() {
		child := ctx.Str("k", "v").Strs("ks", nil).Int("n", 1).Int64("n64", 2).Uint64("u", 3).
			Float64("f", 4).Bool("b", true).Time("t", pickupAt).Err(fmt.Errorf("x")).Interface("i", nil).Logger()
		child.ErrorWith().Msg("dropped")
		child.With().Str("k", "v").Logger().InfoWith().Send()
	})
}
