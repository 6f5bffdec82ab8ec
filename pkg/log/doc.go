// Package log records a machine-readable trace of host notifications.
//
// The trace is separate from operational logging (slog). Every buffer a
// client handles produces one Event: the raw record bytes, the decoded
// notification, or the decode error. Traces can be replayed with the
// midinotify CLI to see exactly what the host delivered.
//
// # Basic Usage
//
//	// Development: print events through slog
//	cfg.Capture = log.NewSlogAdapter(slog.Default())
//
//	// Production: append to a CBOR file
//	cfg.Capture, _ = log.NewFileLogger("/var/log/midinotify/session.mnlog")
//
//	// Both
//	cfg.Capture = log.NewMultiLogger(console, file)
//
// # File Format
//
// Capture files are a plain concatenation of CBOR-encoded events with
// integer keys, conventionally named *.mnlog. Use [Reader] to stream them.
package log
