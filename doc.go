// Package logging bootstraps process-wide logging over rs/zerolog and hands out
// named, hierarchical loggers.
//
// Key features
//   - Setup resolves a YAML configuration file (LOG_CFG_PATH overrides the
//     caller's default path) and applies it declaratively; when no file
//     exists it falls back to a basic INFO configuration that keeps any
//     loggers created earlier
//   - A registry of named loggers: the same name always yields the same
//     *NamedLogger, levels and handlers are inherited along dotted names
//   - Stream, file (lumberjack) and discard handlers with per-handler levels
//     and console or JSON formatting
//   - LogProducer derives a logger name from a type's package path and name,
//     optionally suffixed with an instance label, e.g. "pkg.Worker (worker-3)"
//   - Error history enrichment on Err/AnErr, as in the structured event API
//
// Typical usage
//
//	if err := logging.Setup("", ""); err != nil { panic(err) }
//	defer logging.Close()
//
//	type Worker struct {
//		logging.LogProducer
//	}
//	w := &Worker{}
//	w.LogProducer = logging.NewLogProducer(w, "worker-3")
//	w.Log().InfoWith().Str("job", id).Msg("processed")
package logging
