// internal/cli/list.go
package trench

import (
	"github.com/spf13/cobra"
)

// listCmd represents the 'list' command group for listing resources.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
	Long:  `The 'list' command groups subcommands that list resources known to trench.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
