package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mwiater/trench/internal/logging"
	"github.com/mwiater/trench/internal/observe"
	"github.com/mwiater/trench/mcp/tools"
)

// Config describes one server run.
type Config struct {
	Registry *tools.Registry
	Version  string

	// HTTPAddr switches the server from stdio to streamable HTTP when set,
	// e.g. ":8084". The HTTP listener also serves GET /healthz and
	// GET /metrics.
	HTTPAddr string
}

// Run serves the registry until ctx is cancelled. In stdio mode it returns
// when the client disconnects; in HTTP mode the listener is shut down
// gracefully once ctx ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := Build(cfg.Registry, cfg.Version)
	if err != nil {
		return err
	}

	if cfg.HTTPAddr == "" {
		return server.Run(ctx, &mcp.StdioTransport{})
	}

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           observe.Middleware(observe.DefaultMetrics())(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logging.LogEvent("trench mcp server listening on %s", cfg.HTTPAddr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
