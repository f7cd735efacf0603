// internal/cli/show_config.go
package trench

import (
	"github.com/spf13/cobra"
)

// showConfigCmd implements 'show config', which prints the effective
// configuration after file loading and flag overrides.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		runShowConfig()
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
