package main

import (
	"errors"
	"testing"

	"github.com/mwiater/trench/internal/appconfig"
	"github.com/mwiater/trench/internal/observe"
)

func TestMainWiring(t *testing.T) {
	origLoadConfig := loadConfig
	origInitLogging := initLogging
	origCloseLogging := closeLogging
	origGetMetrics := getMetrics
	origSetVersion := setVersionInfo
	origExecute := executeCmd
	t.Cleanup(func() {
		loadConfig = origLoadConfig
		initLogging = origInitLogging
		closeLogging = origCloseLogging
		getMetrics = origGetMetrics
		setVersionInfo = origSetVersion
		executeCmd = origExecute
	})

	calls := struct {
		load    bool
		initLog bool
		close   bool
		metrics bool
		version bool
		exec    bool
	}{}

	loadConfig = func(path string) (appconfig.Config, error) {
		calls.load = true
		if path != "" {
			t.Fatalf("expected empty path, got %q", path)
		}
		return appconfig.Config{APIBaseURL: "http://localhost:8099", LogFile: "test.log"}, nil
	}
	initLogging = func(path string) error {
		calls.initLog = true
		if path != "test.log" {
			t.Fatalf("expected log path test.log, got %q", path)
		}
		return nil
	}
	closeLogging = func() error {
		calls.close = true
		return nil
	}
	getMetrics = func() *observe.Metrics {
		calls.metrics = true
		return observe.DefaultMetrics()
	}
	setVersionInfo = func(v, c, d string) {
		calls.version = true
		if v == "" || c == "" || d == "" {
			t.Fatalf("expected version info to be set")
		}
	}
	executeCmd = func() {
		calls.exec = true
	}

	main()

	if !calls.load || !calls.initLog || !calls.close || !calls.metrics || !calls.version || !calls.exec {
		t.Fatalf("expected all wiring calls, got %+v", calls)
	}
}

// TestMainToleratesMissingConfig verifies a failed config load falls back to
// the default log path instead of aborting.
func TestMainToleratesMissingConfig(t *testing.T) {
	origLoadConfig := loadConfig
	origInitLogging := initLogging
	origCloseLogging := closeLogging
	origGetMetrics := getMetrics
	origSetVersion := setVersionInfo
	origExecute := executeCmd
	t.Cleanup(func() {
		loadConfig = origLoadConfig
		initLogging = origInitLogging
		closeLogging = origCloseLogging
		getMetrics = origGetMetrics
		setVersionInfo = origSetVersion
		executeCmd = origExecute
	})

	loadConfig = func(path string) (appconfig.Config, error) {
		return appconfig.Config{}, errors.New("no configuration file found")
	}
	var gotLogPath string
	initLogging = func(path string) error {
		gotLogPath = path
		return nil
	}
	closeLogging = func() error { return nil }
	getMetrics = func() *observe.Metrics { return observe.DefaultMetrics() }
	setVersionInfo = func(v, c, d string) {}
	executed := false
	executeCmd = func() { executed = true }

	main()

	if gotLogPath != "trench.log" {
		t.Fatalf("expected default log path trench.log, got %q", gotLogPath)
	}
	if !executed {
		t.Fatal("expected the root command to execute despite the missing config")
	}
}
