// internal/cli/show_config_entry.go
package trench

import (
	"os"

	"github.com/spf13/viper"

	"github.com/mwiater/trench/internal/appconfig"
)

// runShowConfig prints the resolved configuration. When no typed config
// loaded, the defaults of a zero config are shown instead.
func runShowConfig() {
	appconfig.ShowConfig(os.Stdout, viper.ConfigFileUsed(), getConfig(), appconfig.Config{})
}
