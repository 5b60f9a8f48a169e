package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
)

func requireNonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestOptions_Enabled(t *testing.T) {
	assert.False(t, Options{}.Enabled())
	assert.True(t, Options{Mem: "m"}.Enabled())
	assert.True(t, Options{CPU: "c"}.Enabled())
	assert.True(t, Options{Trace: "t"}.Enabled())
}

func TestSession_AllProfiles_WritesFiles(t *testing.T) {
	// Given: all three profiles requested
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.prof"),
		Mem:   filepath.Join(dir, "mem.prof"),
		Trace: filepath.Join(dir, "trace.out"),
	}

	// When: running some work inside a session
	s, err := Start(opts)
	require.NoError(t, err)
	sum := 0
	for i := 0; i < 1_000_000; i++ {
		sum += i
	}
	_ = sum
	require.NoError(t, s.Stop())

	// Then: every profile has content
	requireNonEmpty(t, opts.CPU)
	requireNonEmpty(t, opts.Mem)
	requireNonEmpty(t, opts.Trace)
}

func TestSession_StopTwice_IsSafe(t *testing.T) {
	dir := t.TempDir()
	s, err := Start(Options{Mem: filepath.Join(dir, "mem.prof")})
	require.NoError(t, err)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}

func TestSession_NilStop_IsNoop(t *testing.T) {
	var s *Session
	assert.NoError(t, s.Stop())
}

func TestStart_UnwritablePath_ReturnsIOError(t *testing.T) {
	// Given: a CPU profile path in a missing directory
	path := filepath.Join(t.TempDir(), "missing", "cpu.prof")

	// When: starting
	s, err := Start(Options{CPU: path})

	// Then: a file-not-found error is returned
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Equal(t, snipErrors.ErrCodeFileNotFound, snipErrors.GetCode(err))
}

func TestStart_TraceFails_StopsCPUProfile(t *testing.T) {
	// Given: a valid CPU path and an invalid trace path
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.prof")

	// When: starting
	_, err := Start(Options{CPU: cpu, Trace: filepath.Join(dir, "missing", "trace.out")})
	require.Error(t, err)

	// Then: CPU profiling was stopped so a new one can start
	s, err := Start(Options{CPU: cpu})
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}
