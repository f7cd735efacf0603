// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout is the default timeout for a single Trench API request.
	defaultRequestTimeout = 10 * time.Second
	// defaultPollInterval is the wait loop's default delay between time queries.
	defaultPollInterval = 100 * time.Millisecond
	// defaultWaitTimeout caps a wait at one simulated day of real time.
	defaultWaitTimeout = 86400 * time.Second
	// APITokenEnv overrides the configured API token when set.
	APITokenEnv = "TRENCH_API_TOKEN"
)

// Config represents the top-level application configuration.
type Config struct {
	APIBaseURL      string `json:"apiBaseUrl"`
	APIToken        string `json:"apiToken,omitempty"`
	Debug           bool   `json:"debug"`
	MCPBinary       string `json:"mcpBinary,omitempty"`
	MCPHTTPAddr     string `json:"mcpHttpAddr,omitempty"`
	TimeoutSeconds  int    `json:"timeout,omitempty"`
	PollIntervalMS  int    `json:"pollIntervalMs,omitempty"`
	WaitTimeoutSecs int    `json:"waitTimeout,omitempty"`
	LogFile         string `json:"logFile,omitempty"`
	ConfigPath      string `json:"-"`
}

// RequestTimeout returns the timeout duration for Trench API requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PollInterval returns the delay between wait-loop time queries.
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalMS <= 0 {
		return defaultPollInterval
	}
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// WaitTimeout returns the wall-clock bound on a single wait.
func (c Config) WaitTimeout() time.Duration {
	if c.WaitTimeoutSecs <= 0 {
		return defaultWaitTimeout
	}
	return time.Duration(c.WaitTimeoutSecs) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "trench.log"
}

// MCPBinaryPath returns the resolved MCP server binary path, choosing a default based on the OS if not provided.
func (c Config) MCPBinaryPath() string {
	if b := strings.TrimSpace(c.MCPBinary); b != "" {
		return b
	}
	switch runtime.GOOS {
	case "windows":
		return "dist/trench-mcp_windows_amd64_v1/trench-mcp.exe"
	case "linux":
		return "dist/trench-mcp_linux_amd64_v1/trench-mcp"
	default:
		return "dist/trench-mcp"
	}
}

// ResolveAPIToken returns the bearer token for the Trench API. The
// TRENCH_API_TOKEN environment variable wins over the config file so
// credentials can stay out of checked-in configs.
func (c Config) ResolveAPIToken() string {
	if env := strings.TrimSpace(os.Getenv(APITokenEnv)); env != "" {
		return env
	}
	return strings.TrimSpace(c.APIToken)
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		return finalize(config, path)
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				return finalize(config, legacyConfigPath)
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q): %w", DefaultConfigPath, legacyConfigPath, os.ErrNotExist)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q: %w", path, os.ErrNotExist)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// finalize validates a decoded config and records where it came from.
func finalize(config Config, path string) (Config, error) {
	if strings.TrimSpace(config.APIBaseURL) == "" {
		return Config{}, errors.New("config must set apiBaseUrl")
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
