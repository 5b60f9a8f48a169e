package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/flock"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
)

// DefaultDebugTag is used when Append is called with an empty tag.
const DefaultDebugTag = "DEBUG"

// DebugTimeLayout is the timestamp layout of debug log lines: UTC with
// millisecond precision, always three fractional digits.
const DebugTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// debugLinePattern matches "[TAG] message at TIMESTAMP". The message group is
// greedy so a message containing " at " still splits on the last one.
var debugLinePattern = regexp.MustCompile(`^\[([^\]]+)\] (.*) at (\S+)$`)

// DebugEntry is one parsed debug log line.
type DebugEntry struct {
	Tag  string
	Msg  string
	Time time.Time
	Raw  string
}

// DebugLog appends timestamped lines to a single file.
// It is safe for concurrent use across goroutines and processes.
type DebugLog struct {
	Path string

	retry snipErrors.RetryConfig
	now   func() time.Time
}

// NewDebugLog returns a debug log writing to <dir>/session_debug.log.
func NewDebugLog(dir string) *DebugLog {
	return NewDebugLogAt(filepath.Join(dir, DebugLogFile))
}

// NewDebugLogAt returns a debug log writing to path.
func NewDebugLogAt(path string) *DebugLog {
	retry := snipErrors.DefaultRetryConfig()
	retry.MaxRetries = 20
	retry.InitialDelay = 5 * time.Millisecond
	retry.MaxDelay = 100 * time.Millisecond
	retry.Jitter = true
	retry.ShouldRetry = snipErrors.IsRetryable
	return &DebugLog{Path: path, retry: retry, now: time.Now}
}

// Append writes "[TAG] msg at <UTC timestamp>" plus a newline, creating the
// directory if needed. The write happens under an exclusive lock on
// <Path>.lock, retried with backoff while another process holds it.
func (d *DebugLog) Append(ctx context.Context, tag, msg string) error {
	if err := os.MkdirAll(filepath.Dir(d.Path), 0o755); err != nil {
		return snipErrors.IOError("failed to create debug log directory", err).
			WithDetail("path", filepath.Dir(d.Path))
	}

	lock := flock.New(d.Path + ".lock")
	err := snipErrors.Retry(ctx, d.retry, func() error {
		ok, err := lock.TryLock()
		if err != nil {
			return snipErrors.IOError("failed to lock debug log", err).
				WithDetail("path", lock.Path())
		}
		if !ok {
			return snipErrors.New(snipErrors.ErrCodeLockBusy, "debug log is locked by another writer", nil).
				WithDetail("path", lock.Path())
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.OpenFile(d.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return snipErrors.IOError("failed to open debug log", err).
			WithDetail("path", d.Path)
	}

	line := FormatDebugLine(tag, msg, d.now())
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return snipErrors.IOError("failed to write debug log", err).
			WithDetail("path", d.Path)
	}
	if err := f.Close(); err != nil {
		return snipErrors.IOError("failed to close debug log", err).
			WithDetail("path", d.Path)
	}
	return nil
}

// Check writes the "[TEST] Logging check" line.
func (d *DebugLog) Check(ctx context.Context) error {
	return d.Append(ctx, "TEST", "Logging check")
}

// NormalizeTag returns tag as it appears in the log: upper-cased, brackets
// replaced by '_', inner whitespace collapsed to a single '_'. An empty tag
// becomes DefaultDebugTag.
func NormalizeTag(tag string) string {
	tag = tagBrackets.Replace(tag)
	tag = strings.Join(strings.Fields(tag), "_")
	if tag == "" {
		return DefaultDebugTag
	}
	return strings.ToUpper(tag)
}

var tagBrackets = strings.NewReplacer("[", "_", "]", "_")

// FormatDebugLine renders one debug log line without the trailing newline.
// Newlines inside msg are replaced by spaces to keep one entry per line.
func FormatDebugLine(tag, msg string, t time.Time) string {
	msg = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(msg)
	return fmt.Sprintf("[%s] %s at %s", NormalizeTag(tag), msg, t.UTC().Format(DebugTimeLayout))
}

// ParseDebugLine parses a line written by Append. ok is false for lines in
// any other format; Raw is always set.
func ParseDebugLine(line string) (DebugEntry, bool) {
	entry := DebugEntry{Raw: line}

	m := debugLinePattern.FindStringSubmatch(line)
	if m == nil {
		return entry, false
	}
	ts, err := time.Parse(time.RFC3339Nano, m[3])
	if err != nil {
		return entry, false
	}

	entry.Tag = m[1]
	entry.Msg = m[2]
	entry.Time = ts
	return entry, true
}
