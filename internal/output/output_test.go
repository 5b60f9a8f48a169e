package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BufferIsNotTerminal_DisablesColor(t *testing.T) {
	// Given: a non-terminal writer
	buf := &bytes.Buffer{}

	// When: creating an output writer
	w := New(buf, false)

	// Then: color is off and text is unstyled
	assert.False(t, w.UseColor())
	w.Header("Results")
	assert.Equal(t, "Results\n", buf.String())
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name string
		w    func(t *testing.T) io.Writer
		want bool
	}{
		{
			name: "buffer",
			w:    func(t *testing.T) io.Writer { return &bytes.Buffer{} },
			want: false,
		},
		{
			name: "regular file",
			w: func(t *testing.T) io.Writer {
				f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
				require.NoError(t, err)
				t.Cleanup(func() { _ = f.Close() })
				return f
			},
			want: false,
		},
		{
			name: "nil file",
			w:    func(t *testing.T) io.Writer { return (*os.File)(nil) },
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTerminal(tt.w(t)))
		})
	}
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}

func TestWriter_Messages_IncludeMarkers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w *Writer)
		expect string
	}{
		{name: "success", write: func(w *Writer) { w.Successf("wrote %d", 3) }, expect: "✓ wrote 3\n"},
		{name: "warning", write: func(w *Writer) { w.Warning("careful") }, expect: "! careful\n"},
		{name: "error", write: func(w *Writer) { w.Errorf("bad %s", "input") }, expect: "✗ bad input\n"},
		{name: "line", write: func(w *Writer) { w.Linef("%d", -1) }, expect: "-1\n"},
		{name: "newline", write: func(w *Writer) { w.Newline() }, expect: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.write(New(buf, true))
			assert.Equal(t, tt.expect, buf.String())
		})
	}
}

func TestWriter_Field_AlignsLabel(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf, true)

	w.Field("delimiter", ",")

	assert.Equal(t, "  delimiter:     ,\n", buf.String())
}

func TestWriter_Rows_JoinsCells(t *testing.T) {
	// Given: rows including an empty one
	buf := &bytes.Buffer{}
	w := New(buf, true)

	// When: printing with a tab separator
	w.Rows([][]string{{"a", "b"}, {""}, {"c"}}, "\t")

	// Then: each row is one line and the empty row stays empty without color
	assert.Equal(t, "a\tb\n\nc\n", buf.String())
}

func TestWriter_JSON_WritesIndented(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf, true)

	require.NoError(t, w.JSON(map[string]int{"index": 2}))

	var got map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got["index"])
	assert.Contains(t, buf.String(), "\n  \"index\"")
}

func TestPlainStyles_RenderUnchanged(t *testing.T) {
	s := PlainStyles()
	assert.Equal(t, "text", s.Header.Render("text"))
	assert.Equal(t, "text", s.Error.Render("text"))
}
