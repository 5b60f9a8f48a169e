// Package csvsplit reads delimiter-separated text by splitting each line on a
// fixed delimiter.
//
// Quoting and escaping are not interpreted: a delimiter inside quotes still
// splits the field. Use encoding/csv when RFC 4180 semantics are needed.
package csvsplit

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
)

// DefaultDelimiter separates fields when Options.Delimiter is empty.
const DefaultDelimiter = ","

// Options controls how text is split into rows.
type Options struct {
	// Delimiter separates fields within a line.
	Delimiter string
	// TrimCR strips one trailing '\r' from each line (CRLF input).
	TrimCR bool
	// SkipEmpty drops lines that are empty after trimming.
	SkipEmpty bool
}

// DefaultOptions returns comma-separated splitting with CRLF tolerance.
func DefaultOptions() Options {
	return Options{
		Delimiter: DefaultDelimiter,
		TrimCR:    true,
	}
}

// File is the result of reading one path.
type File struct {
	Path string     `json:"path"`
	Rows [][]string `json:"rows"`
}

// Split splits data into lines on '\n' and each line into fields on the
// delimiter. An empty line yields a single empty field unless SkipEmpty is set,
// so input ending in a newline produces a trailing [""] row.
func Split(data string, opts Options) [][]string {
	delim := opts.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	lines := strings.Split(data, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if opts.TrimCR {
			line = strings.TrimSuffix(line, "\r")
		}
		if opts.SkipEmpty && line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, delim))
	}
	return rows
}

// ReadFile reads path and splits it with Split. A missing file yields
// ERR_201_FILE_NOT_FOUND and no rows.
func ReadFile(path string, opts Options) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, snipErrors.IOError("failed to read delimited file", err).
			WithDetail("path", path)
	}

	rows := Split(string(data), opts)
	slog.Debug("delimited file read",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return rows, nil
}

// ReadFiles reads paths concurrently. Results keep the order of paths; the
// first failure cancels outstanding reads and is returned.
func ReadFiles(ctx context.Context, paths []string, opts Options) ([]File, error) {
	files := make([]File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := ReadFile(path, opts)
			if err != nil {
				return err
			}
			files[i] = File{Path: path, Rows: rows}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
