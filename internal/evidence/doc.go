// Package evidence maintains the append-only compliance evidence log.
//
// The log is a JSON Lines file at .ngaio/evidence.jsonl. Each record gets a
// monotonically increasing sequence number and a generation timestamp at
// append time. Records are only ever appended, never rewritten; the log
// forms a simple audit trail proving controls operated at points in time.
//
// Concurrent appenders (for example multiple CI jobs sharing a workspace)
// are serialized through an adjacent .lock file created with O_EXCL.
// A crashed appender's leftover lock is reclaimed after a staleness window.
package evidence
