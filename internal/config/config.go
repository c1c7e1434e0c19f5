// Package config provides application configuration from command-line
// overrides, environment variables, and .env files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Data   DataConfig
	Search SearchConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds storage configuration.
type DataConfig struct {
	// Path is the base directory for the database and search index
	// (default: ~/.booktrack).
	Path string
}

// SearchConfig holds search index configuration.
type SearchConfig struct {
	Enabled bool
}

// Overrides carries values from the CLI flags. The command layer owns flag
// parsing (cobra), so unlike a flag.Parse-based loader this package only
// receives the results. Empty strings mean "not set".
type Overrides struct {
	Environment string
	LogLevel    string
	DataPath    string
	EnvFile     string
}

// LoadConfig builds configuration with precedence:
// 1. CLI overrides (highest), 2. environment variables, 3. .env file,
// 4. defaults.
func LoadConfig(overrides Overrides) (*Config, error) {
	envFile := overrides.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Load .env if present; a missing file is not an error.
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(overrides.Environment, "BOOKTRACK_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(overrides.LogLevel, "BOOKTRACK_LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			Path: getConfigValue(overrides.DataPath, "BOOKTRACK_DATA_PATH", ""),
		},
		Search: SearchConfig{
			Enabled: getBoolConfigValue("", "BOOKTRACK_SEARCH_ENABLED", true),
		},
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that all config values are usable.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.Path == "" {
		return fmt.Errorf("data path cannot be empty after expansion")
	}
	return nil
}

// expandDataPath expands ~ and makes the path absolute, defaulting to
// ~/.booktrack.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	path := c.Data.Path
	if path == "" {
		c.Data.Path = filepath.Join(homeDir, ".booktrack")
		return nil
	}

	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir, path[2:])
	}
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}
	c.Data.Path = filepath.Clean(path)
	return nil
}

// getConfigValue returns the first non-empty value from override, env var, or default.
func getConfigValue(override, envKey, defaultValue string) string {
	if override != "" {
		return override
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from override, env var, or default.
// Accepts "true", "1", "yes" (case-insensitive) as true.
func getBoolConfigValue(override, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(override, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	switch strings.ToLower(strValue) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments). Real environment
// variables take precedence over file entries.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- config file path comes from the user
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
