// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"testing"
	"time"
)

// TestLoad tests the Load function to ensure it correctly handles various
// scenarios, including valid and invalid configurations. It verifies that a
// valid configuration file is loaded without error, while files with invalid
// JSON, no API base URL, or that are nonexistent result in an appropriate
// error.
func TestLoad(t *testing.T) {
	validConfig := `{
        "apiBaseUrl": "http://localhost:8099",
        "apiToken": "file-token",
        "pollIntervalMs": 250
    }`
	tmpfile, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.Write([]byte(validConfig)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8099" {
		t.Fatalf("expected base URL to round-trip, got %q", cfg.APIBaseURL)
	}

	if cfg.TimeoutSeconds != 10 {
		t.Fatalf("expected default timeout of 10 seconds, got %d", cfg.TimeoutSeconds)
	}

	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("expected default request timeout of 10s, got %v", cfg.RequestTimeout())
	}

	if cfg.PollInterval() != 250*time.Millisecond {
		t.Fatalf("expected configured poll interval of 250ms, got %v", cfg.PollInterval())
	}

	if cfg.WaitTimeout() != 86400*time.Second {
		t.Fatalf("expected default wait timeout of 86400s, got %v", cfg.WaitTimeout())
	}

	invalidJSON := `{ "apiBaseUrl": `
	tmpfile2, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile2.Name())
	if _, err := tmpfile2.Write([]byte(invalidJSON)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile2.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpfile2.Name()); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	noBaseURL := `{ "debug": true }`
	tmpfile3, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile3.Name())
	if _, err := tmpfile3.Write([]byte(noBaseURL)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile3.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpfile3.Name()); err == nil {
		t.Fatal("Load() without apiBaseUrl should have failed")
	}

	if _, err := Load("nonexistent.json"); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestDefaultsWithoutConfigValues(t *testing.T) {
	var cfg Config

	if cfg.PollInterval() != 100*time.Millisecond {
		t.Errorf("expected default poll interval 100ms, got %v", cfg.PollInterval())
	}
	if cfg.WaitTimeout() != 86400*time.Second {
		t.Errorf("expected default wait timeout 86400s, got %v", cfg.WaitTimeout())
	}
	if cfg.LogFilePath() != "trench.log" {
		t.Errorf("expected default log file trench.log, got %q", cfg.LogFilePath())
	}
	if cfg.MCPBinaryPath() == "" {
		t.Error("expected a default MCP binary path")
	}
}

func TestResolveAPIToken(t *testing.T) {
	cfg := Config{APIToken: "file-token"}

	t.Setenv(APITokenEnv, "")
	if got := cfg.ResolveAPIToken(); got != "file-token" {
		t.Errorf("expected file token without env override, got %q", got)
	}

	t.Setenv(APITokenEnv, "env-token")
	if got := cfg.ResolveAPIToken(); got != "env-token" {
		t.Errorf("expected env token to win, got %q", got)
	}

	empty := Config{}
	t.Setenv(APITokenEnv, "")
	if got := empty.ResolveAPIToken(); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
}
