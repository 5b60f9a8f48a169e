package logging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
)

// ViewerConfig configures the debug log viewer.
type ViewerConfig struct {
	Tag     string         // Only show entries with this tag, compared after NormalizeTag
	Pattern *regexp.Regexp // Only show lines matching this pattern
	NoColor bool
}

// Viewer tails, follows and prints debug log files.
type Viewer struct {
	config ViewerConfig
	out    io.Writer

	tagStyle  lipgloss.Style
	timeStyle lipgloss.Style
}

// NewViewer creates a viewer printing to out.
func NewViewer(cfg ViewerConfig, out io.Writer) *Viewer {
	return &Viewer{
		config:    cfg,
		out:       out,
		tagStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("154")),
		timeStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Tail returns the last n matching entries of the file at path.
// Lines that are not in debug log format are kept with only Raw set.
func (v *Viewer) Tail(path string, n int) ([]DebugEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, snipErrors.IOError("failed to open debug log", err).
			WithDetail("path", path)
	}
	defer func() { _ = file.Close() }()

	var entries []DebugEntry
	scanner := bufio.NewScanner(file)
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		entry, _ := ParseDebugLine(line)
		if v.matches(entry) {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, snipErrors.IOError("failed to read debug log", err).
			WithDetail("path", path)
	}

	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Follow sends entries appended to path after the call starts, until ctx is
// done. File changes are detected with fsnotify.
func (v *Viewer) Follow(ctx context.Context, path string, entries chan<- DebugEntry) error {
	file, err := os.Open(path)
	if err != nil {
		return snipErrors.IOError("failed to open debug log", err).
			WithDetail("path", path)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	reader := bufio.NewReader(file)
	var partial strings.Builder

	// Catch lines written between the seek and the watch registration.
	if err := v.drain(ctx, reader, &partial, entries); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				return fmt.Errorf("debug log %s was removed", path)
			}
			if !ev.Has(fsnotify.Write) {
				continue
			}
			if err := v.drain(ctx, reader, &partial, entries); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

// drain reads every complete line available and sends the matching ones.
// A trailing fragment without newline is kept in partial for the next call.
func (v *Viewer) drain(ctx context.Context, r *bufio.Reader, partial *strings.Builder, entries chan<- DebugEntry) error {
	for {
		chunk, err := r.ReadString('\n')
		partial.WriteString(chunk)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read debug log: %w", err)
		}

		line := strings.TrimRight(partial.String(), "\r\n")
		partial.Reset()
		if line == "" {
			continue
		}

		entry, _ := ParseDebugLine(line)
		if !v.matches(entry) {
			continue
		}
		select {
		case entries <- entry:
		case <-ctx.Done():
			return nil
		}
	}
}

// FormatEntry renders an entry for display. Unparsed lines are returned raw.
func (v *Viewer) FormatEntry(entry DebugEntry) string {
	if entry.Tag == "" {
		return entry.Raw
	}

	ts := entry.Time.Local().Format("2006-01-02 15:04:05.000")
	tag := fmt.Sprintf("%-6s", entry.Tag)
	if !v.config.NoColor {
		ts = v.timeStyle.Render(ts)
		tag = v.tagStyle.Render(tag)
	}
	return fmt.Sprintf("%s %s %s", ts, tag, entry.Msg)
}

// Print writes entries to the viewer's output.
func (v *Viewer) Print(entries []DebugEntry) {
	for _, entry := range entries {
		_, _ = fmt.Fprintln(v.out, v.FormatEntry(entry))
	}
}

func (v *Viewer) matches(entry DebugEntry) bool {
	if v.config.Tag != "" && !strings.EqualFold(NormalizeTag(v.config.Tag), entry.Tag) {
		return false
	}
	if v.config.Pattern != nil && !v.config.Pattern.MatchString(entry.Raw) {
		return false
	}
	return true
}
