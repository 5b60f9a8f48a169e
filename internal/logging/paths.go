package logging

import (
	"os"
	"path/filepath"
)

// DebugLogFile is the file name used by the append-only debug log.
const DebugLogFile = "session_debug.log"

// DefaultLogDir returns the structured log directory (~/.snipkit/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".snipkit", "logs")
	}
	return filepath.Join(home, ".snipkit", "logs")
}

// DefaultLogPath returns the structured log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "snipkit.log")
}

// DefaultDebugDir returns <cwd>/data, or ./data when the working directory
// cannot be determined.
func DefaultDebugDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "data"
	}
	return filepath.Join(wd, "data")
}
