// internal/cli/tools.go
package trench

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/trench/internal/mcpclient"
)

// toolsCmd lists the tools exposed by the Trench MCP server, spawning the
// configured server binary unless an HTTP endpoint is given.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP server's tools",
	Long:  `The 'tools' command connects to the Trench MCP server and lists every tool it exposes in a two-column format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		toolList, err := client.Tools(cmd.Context())
		if err != nil {
			return err
		}
		listTools(cmd.OutOrStdout(), toolList)
		return nil
	},
}

func init() {
	toolsCmd.Flags().String("endpoint", "", "connect to a running MCP server over streamable HTTP instead of spawning one")
	rootCmd.AddCommand(toolsCmd)
}
