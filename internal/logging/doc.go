// Package logging provides snipkit's two log sinks.
//
// The structured sink is opt-in file logging through log/slog with size-based
// rotation, enabled by the global --debug flag and written to
// ~/.snipkit/logs/snipkit.log.
//
// The debug log is a plain append-only text file, one timestamped line per
// entry:
//
//	[TEST] Logging check at 2026-10-17T09:30:00.123456789Z
//
// Appends are serialized across processes with an advisory file lock, and the
// file can be tailed or followed with [Viewer].
package logging
