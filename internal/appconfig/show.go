package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary. The API token is never
// printed, only whether one is resolvable.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	effective := fallback
	if cfg != nil {
		effective = *cfg
	}

	token := "unset"
	if effective.ResolveAPIToken() != "" {
		token = "set"
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  API Base URL:    %s\n", effective.APIBaseURL)
	fmt.Fprintf(out, "  API Token:       %s\n", token)
	fmt.Fprintf(out, "  Debug:           %v\n", effective.Debug)
	fmt.Fprintf(out, "  Request Timeout: %s\n", effective.RequestTimeout())
	fmt.Fprintf(out, "  Poll Interval:   %s\n", effective.PollInterval())
	fmt.Fprintf(out, "  Wait Timeout:    %s\n", effective.WaitTimeout())
	fmt.Fprintf(out, "  MCP Binary:      %s\n", effective.MCPBinaryPath())
	fmt.Fprintf(out, "  MCP HTTP Addr:   %s\n", effective.MCPHTTPAddr)
	fmt.Fprintf(out, "  Log File:        %s\n", effective.LogFilePath())
}
