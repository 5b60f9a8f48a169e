package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
)

// setupEnv isolates a test from the user's config and working directory and
// returns the new working directory.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"SNIPKIT_CSV_DELIMITER",
		"SNIPKIT_CSV_SKIP_EMPTY",
		"SNIPKIT_DEBUG_LOG_DIR",
		"SNIPKIT_LOG_LEVEL",
		"SNIPKIT_FACTORIAL_MEMO_SIZE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Chdir(dir)
	return dir
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	// Given: the root command
	root := NewRootCmd()

	// Then: every subcommand is registered
	for _, name := range []string{"search", "factorial", "csv", "debuglog", "logs", "config", "version"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"debug", "no-color", "profile-cpu", "profile-mem", "profile-trace"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_DebugFlag_WritesLogFile(t *testing.T) {
	// Given: an isolated home directory
	setupEnv(t)
	home := os.Getenv("HOME")
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		debugMode = false
	})

	// When: running any command with --debug
	_, _, err := execute(t, "--debug", "version", "--short")

	// Then: the structured log exists under ~/.snipkit/logs
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, ".snipkit", "logs", "snipkit.log"))
}

func TestRootCmd_ProfileMem_WritesProfile(t *testing.T) {
	dir := setupEnv(t)

	_, _, err := execute(t, "--profile-mem", "mem.prof", "factorial", "5")

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "mem.prof"))
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		json     bool
		contains []string
	}{
		{
			name:     "structured error shows code and hint",
			err:      snipErrors.ValidationError("bad input", nil).WithSuggestion("try again"),
			contains: []string{"Error: bad input", "Hint: try again", snipErrors.ErrCodeInvalidInput},
		},
		{
			name:     "plain error printed as is",
			err:      assert.AnError,
			contains: []string{"✗ Error: " + assert.AnError.Error()},
		},
		{
			name:     "json output",
			err:      snipErrors.ValidationError("bad input", nil),
			json:     true,
			contains: []string{`"code":"` + snipErrors.ErrCodeInvalidInput + `"`, `"message":"bad input"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debugMode, noColor = false, false
			buf := &bytes.Buffer{}
			printError(buf, tt.err, tt.json)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestRunRoot_JSONCommandFailure_PrintsJSONError(t *testing.T) {
	// Given: a --json command that fails validation
	setupEnv(t)
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"search", "--json", "--target", "x", "1", "2"})
	stderr := &bytes.Buffer{}

	// When: running through the top-level error handler
	err := runRoot(root, stderr)

	// Then: stderr holds one JSON error object
	require.Error(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &got))
	assert.Equal(t, snipErrors.ErrCodeInvalidInput, got["code"])
	assert.Equal(t, "VALIDATION", got["category"])
}

func TestRunRoot_DebugFailure_LogsErrorAttrs(t *testing.T) {
	// Given: debug logging and a failing command
	setupEnv(t)
	home := os.Getenv("HOME")
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		debugMode = false
	})
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--debug", "factorial", "21"})
	stderr := &bytes.Buffer{}

	// When: running through the top-level error handler
	err := runRoot(root, stderr)

	// Then: the failure is logged with its code and the log is closed
	require.Error(t, err)
	assert.Nil(t, loggingCleanup)
	data, rerr := os.ReadFile(filepath.Join(home, ".snipkit", "logs", "snipkit.log"))
	require.NoError(t, rerr)
	assert.Contains(t, string(data), `"msg":"Command failed"`)
	assert.Contains(t, string(data), `"error_code":"`+snipErrors.ErrCodeNumericOverflow+`"`)
	assert.Contains(t, stderr.String(), "Suggestion:")
}
