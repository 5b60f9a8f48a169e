// Package config loads snipkit configuration from defaults, YAML files and
// environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
	"github.com/Aman-CERP/snipkit/internal/logging"
)

// Project config file names, in lookup order.
const (
	ProjectConfigYAML = ".snipkit.yaml"
	ProjectConfigYML  = ".snipkit.yml"
)

// Config is the complete snipkit configuration.
type Config struct {
	Version   int             `yaml:"version" json:"version"`
	CSV       CSVConfig       `yaml:"csv" json:"csv"`
	DebugLog  DebugLogConfig  `yaml:"debug_log" json:"debug_log"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Factorial FactorialConfig `yaml:"factorial" json:"factorial"`
}

// CSVConfig configures the delimited-line reader.
type CSVConfig struct {
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	// TrimCR strips a trailing carriage return from each line.
	TrimCR    bool `yaml:"trim_cr" json:"trim_cr"`
	SkipEmpty bool `yaml:"skip_empty" json:"skip_empty"`
}

// DebugLogConfig configures the append-only debug log.
type DebugLogConfig struct {
	// Dir defaults to <cwd>/data.
	Dir  string `yaml:"dir" json:"dir"`
	File string `yaml:"file" json:"file"`
}

// Path returns the debug log file path.
func (d DebugLogConfig) Path() string {
	return filepath.Join(d.Dir, d.File)
}

// LoggingConfig configures structured --debug logging.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// FactorialConfig configures factorial memoization.
type FactorialConfig struct {
	MemoSize int `yaml:"memo_size" json:"memo_size"`
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		CSV: CSVConfig{
			Delimiter: ",",
			TrimCR:    true,
			SkipEmpty: false, // matches plain split: a trailing newline yields an empty row
		},
		DebugLog: DebugLogConfig{
			Dir:  logging.DefaultDebugDir(),
			File: logging.DebugLogFile,
		},
		Logging: LoggingConfig{
			Level:     "debug",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
		Factorial: FactorialConfig{
			MemoSize: 256,
		},
	}
}

// GetUserConfigPath returns the user configuration path:
//   - $XDG_CONFIG_HOME/snipkit/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/snipkit/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snipkit", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "snipkit", "config.yaml")
	}
	return filepath.Join(home, ".config", "snipkit", "config.yaml")
}

// Load builds the configuration for the project in dir. Sources are applied
// in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/snipkit/config.yaml)
//  3. Project config (.snipkit.yaml or .snipkit.yml in dir)
//  4. Environment variables (SNIPKIT_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userPath := GetUserConfigPath(); fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, err
		}
	}

	if projectPath := FindProjectConfig(dir); projectPath != "" {
		if err := cfg.loadYAML(projectPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindProjectConfig returns the project config file in dir, preferring
// .snipkit.yaml over .snipkit.yml, or "" when neither exists.
func FindProjectConfig(dir string) string {
	for _, name := range []string{ProjectConfigYAML, ProjectConfigYML} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// loadYAML decodes path on top of c. Keys missing from the file keep their
// current values; unknown keys are rejected.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return snipErrors.IOError("failed to read config file", err).
			WithDetail("path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return snipErrors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err).
			WithDetail("path", path)
	}
	return nil
}

// applyEnvOverrides applies SNIPKIT_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v, ok := os.LookupEnv("SNIPKIT_CSV_DELIMITER"); ok {
		c.CSV.Delimiter = v
	}
	if v := os.Getenv("SNIPKIT_CSV_SKIP_EMPTY"); v != "" {
		b, err := parseBool(v)
		if err != nil {
			return snipErrors.ConfigError("SNIPKIT_CSV_SKIP_EMPTY must be a boolean", err).
				WithDetail("value", v)
		}
		c.CSV.SkipEmpty = b
	}
	if v := os.Getenv("SNIPKIT_DEBUG_LOG_DIR"); v != "" {
		c.DebugLog.Dir = v
	}
	if v := os.Getenv("SNIPKIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SNIPKIT_FACTORIAL_MEMO_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return snipErrors.ConfigError("SNIPKIT_FACTORIAL_MEMO_SIZE must be an integer", err).
				WithDetail("value", v)
		}
		c.Factorial.MemoSize = n
	}
	return nil
}

// parseBool accepts 1/0, true/false, yes/no and on/off in any case.
func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch {
	case c.CSV.Delimiter == "":
		return snipErrors.ConfigError("csv.delimiter must not be empty", nil)
	case strings.ContainsAny(c.CSV.Delimiter, "\r\n"):
		return snipErrors.ConfigError("csv.delimiter must not contain line breaks", nil).
			WithDetail("delimiter", strconv.Quote(c.CSV.Delimiter))
	case c.DebugLog.File == "" || strings.ContainsRune(c.DebugLog.File, filepath.Separator):
		return snipErrors.ConfigError("debug_log.file must be a plain file name", nil).
			WithDetail("file", c.DebugLog.File)
	case !logging.ValidLevel(c.Logging.Level):
		return snipErrors.ConfigError(fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level), nil)
	case c.Logging.MaxSizeMB <= 0:
		return snipErrors.ConfigError("logging.max_size_mb must be positive", nil)
	case c.Logging.MaxFiles <= 0:
		return snipErrors.ConfigError("logging.max_files must be positive", nil)
	case c.Factorial.MemoSize <= 0:
		return snipErrors.ConfigError("factorial.memo_size must be positive", nil)
	}
	return nil
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return snipErrors.InternalError("failed to encode config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return snipErrors.IOError("failed to write config file", err).
			WithDetail("path", path)
	}
	return nil
}

// FindProjectRoot walks up from startDir looking for a .git directory or a
// project config file. It returns the absolute startDir when neither is found.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absDir
	for {
		if dirExists(filepath.Join(current, ".git")) || FindProjectConfig(current) != "" {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return absDir, nil
		}
		current = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
