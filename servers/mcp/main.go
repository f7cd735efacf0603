// servers/mcp/main.go
// trench-mcp exposes the Trench mission tools over the Model Context
// Protocol: stdio by default, streamable HTTP with --http.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwiater/trench/internal/appconfig"
	"github.com/mwiater/trench/internal/logging"
	"github.com/mwiater/trench/internal/mcpserver"
	"github.com/mwiater/trench/internal/observe"
	"github.com/mwiater/trench/internal/trench"
	"github.com/mwiater/trench/mcp/tools"
)

// version is injected at build time.
var version = "dev"

var (
	configPath string
	httpAddr   string
)

func init() {
	flag.StringVar(&configPath, "config", "", "path to the config file")
	flag.StringVar(&httpAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
}

func main() {
	flag.Parse()

	cfg, err := appconfig.Load(configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Stdout may carry the stdio protocol, so logs go to stderr and the file.
	if err := logging.InitQuiet(cfg.LogFilePath()); err != nil {
		log.Fatalf("logging error: %v", err)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    mcpserver.ServerName,
		ServiceVersion: version,
	})
	if err != nil {
		log.Fatalf("metrics error: %v", err)
	}
	defer func() { _ = shutdownMetrics(context.Background()) }()

	client := trench.NewClient(cfg.APIBaseURL, cfg.ResolveAPIToken(), cfg.RequestTimeout())
	registry := tools.NewRegistry(client)
	registry.PollInterval = cfg.PollInterval()
	registry.WaitTimeout = cfg.WaitTimeout()

	addr := httpAddr
	if addr == "" {
		addr = cfg.MCPHTTPAddr
	}

	start := time.Now()
	err = mcpserver.Run(ctx, mcpserver.Config{
		Registry: registry,
		Version:  version,
		HTTPAddr: addr,
	})
	logging.LogEvent("trench-mcp stopped after %s", time.Since(start).Round(time.Millisecond))
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}
