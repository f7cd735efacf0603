// internal/cli/call.go
package trench

import (
	"encoding/json"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwiater/trench/internal/mcpclient"
)

// callCmd invokes a single tool on the Trench MCP server.
var callCmd = &cobra.Command{
	Use:          "call <tool>",
	Short:        "Call one MCP tool",
	Long:         `The 'call' command connects to the Trench MCP server, invokes one tool with JSON arguments, and prints the result.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rawArgs, _ := cmd.Flags().GetString("args")
		toolArgs, err := parseToolArgs(rawArgs)
		if err != nil {
			return err
		}
		endpoint, _ := cmd.Flags().GetString("endpoint")

		client, err := mcpclient.Connect(cmd.Context(), mcpclient.Options{
			BinaryPath:   getConfig().MCPBinaryPath(),
			ConfigPath:   cfgFile,
			HTTPEndpoint: endpoint,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		if DebugEnabled() {
			raw, err := client.CallToolRaw(cmd.Context(), args[0], toolArgs)
			if err != nil {
				return err
			}
			pp.Println(raw)
			if raw.IsError {
				return fmt.Errorf("tool %s reported an error", args[0])
			}
			return nil
		}

		result, err := client.CallTool(cmd.Context(), args[0], toolArgs)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		if result.IsError {
			return fmt.Errorf("tool %s reported an error", args[0])
		}
		return nil
	},
}

// parseToolArgs decodes the --args JSON object into tool arguments.
func parseToolArgs(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("--args must be a JSON object: %w", err)
	}
	return args, nil
}

func init() {
	callCmd.Flags().String("args", "", "tool arguments as a JSON object")
	callCmd.Flags().String("endpoint", "", "connect to a running MCP server over streamable HTTP instead of spawning one")
	rootCmd.AddCommand(callCmd)
}
