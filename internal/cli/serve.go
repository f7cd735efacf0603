// internal/cli/serve.go
package trench

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mwiater/trench/internal/mcpserver"
	"github.com/mwiater/trench/internal/observe"
	"github.com/mwiater/trench/mcp/tools"
)

// serveCmd runs the MCP server in-process, sharing the bootstrap with the
// standalone trench-mcp binary.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Trench MCP server",
	Long:  `The 'serve' command runs the MCP server in-process: stdio by default, streamable HTTP with --http.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		cfg := getConfig()

		registry := tools.NewRegistry(client)
		registry.PollInterval = cfg.PollInterval()
		registry.WaitTimeout = cfg.WaitTimeout()

		httpAddr, _ := cmd.Flags().GetString("http")
		if httpAddr == "" {
			httpAddr = cfg.MCPHTTPAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{
			ServiceName:    mcpserver.ServerName,
			ServiceVersion: buildVersion,
		})
		if err != nil {
			return err
		}
		defer func() { _ = shutdownMetrics(context.Background()) }()

		return mcpserver.Run(ctx, mcpserver.Config{
			Registry: registry,
			Version:  buildVersion,
			HTTPAddr: httpAddr,
		})
	},
}

func init() {
	serveCmd.Flags().String("http", "", "serve streamable HTTP on this address instead of stdio")
	rootCmd.AddCommand(serveCmd)
}
