// cmd/trench/main.go
package main

import (
	"log"

	"github.com/mwiater/trench/internal/appconfig"
	cmd "github.com/mwiater/trench/internal/cli"
	"github.com/mwiater/trench/internal/logging"
	"github.com/mwiater/trench/internal/observe"
)

// Build-time version information, injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	loadConfig     = appconfig.Load
	initLogging    = logging.Init
	closeLogging   = logging.Close
	getMetrics     = observe.DefaultMetrics
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main wires logging, metrics, and version info, then hands control to the
// cobra root command. A missing config file is tolerated here; commands that
// need the API report it themselves.
func main() {
	logPath := appconfig.Config{}.LogFilePath()
	if cfg, err := loadConfig(""); err == nil {
		logPath = cfg.LogFilePath()
	}
	if err := initLogging(logPath); err != nil {
		log.Printf("could not open log file %s: %v", logPath, err)
	}
	defer func() { _ = closeLogging() }()

	getMetrics()

	setVersionInfo(version, commit, date)
	executeCmd()
}
