// Package services defines shared utilities consumed by the organizing
// operations and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, operation names, and the current
//     document for logging.
//   - Structured error markers plus the Wrap helper that separate per-file
//     failures (logged, batch continues) from fatal ones (reported to the
//     operator).
//
// Use these helpers when wiring new operations so error handling and
// observability stay uniform across commands.
package services
