package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run history configuration
type HistoryConfig struct {
	// Enabled enables recording runs to the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`
}

// Config represents pagemark configuration options
type Config struct {
	// InputDir is the directory scanned for source PDFs
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory numbered copies are written to
	OutputDir string `yaml:"output_dir"`

	// CoordsFile is the coordinates file describing label placement
	CoordsFile string `yaml:"coords_file"`

	// OutputSuffix is appended to the stem of every numbered copy
	OutputSuffix string `yaml:"output_suffix"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs will be written
	LogDir string `yaml:"log_dir"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		InputDir:     "input",
		OutputDir:    "output",
		CoordsFile:   "coords.env",
		OutputSuffix: "_numbered",
		LogLevel:     "info",
		LogDir:       ".pagemark/logs",
		History: HistoryConfig{
			Enabled: true,
			DBPath:  ".pagemark/history/runs.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-empty values from file (merging with defaults)
	if fileCfg.InputDir != "" {
		cfg.InputDir = fileCfg.InputDir
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	if fileCfg.CoordsFile != "" {
		cfg.CoordsFile = fileCfg.CoordsFile
	}
	if fileCfg.OutputSuffix != "" {
		cfg.OutputSuffix = fileCfg.OutputSuffix
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}

	// Merge the history section - booleans need presence checks so an
	// explicit "enabled: false" survives the merge
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			historyMap, _ := historySection.(map[string]interface{})

			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				cfg.History.DBPath = fileCfg.History.DBPath
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .pagemark/config.yaml in the
// specified directory. Missing directory or file returns defaults.
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".pagemark", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(inputDir, outputDir, coordsFile, logDir *string) {
	if inputDir != nil {
		c.InputDir = *inputDir
	}
	if outputDir != nil {
		c.OutputDir = *outputDir
	}
	if coordsFile != nil {
		c.CoordsFile = *coordsFile
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
}

// Resolve makes every configured path absolute against the given home
// directory. Paths that are already absolute are left alone.
func (c *Config) Resolve(home string) {
	c.InputDir = absAgainst(home, c.InputDir)
	c.OutputDir = absAgainst(home, c.OutputDir)
	c.CoordsFile = absAgainst(home, c.CoordsFile)
	c.LogDir = absAgainst(home, c.LogDir)
	c.History.DBPath = absAgainst(home, c.History.DBPath)
}

func absAgainst(home, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(home, path)
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.CoordsFile == "" {
		return fmt.Errorf("coords_file cannot be empty")
	}

	// An empty suffix would write the copy under the source name, which is
	// too easy to confuse with the input
	if c.OutputSuffix == "" {
		return fmt.Errorf("output_suffix cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
