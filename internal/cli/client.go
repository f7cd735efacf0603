// internal/cli/client.go
package trench

import (
	"errors"

	api "github.com/mwiater/trench/internal/trench"
)

// apiClient builds the Trench API client from the merged configuration.
func apiClient() (*api.Client, error) {
	cfg := getConfig()
	if cfg.APIBaseURL == "" {
		return nil, errors.New("no Trench API base URL configured (set apiBaseUrl in the config file or pass --api-url)")
	}
	return api.NewClient(cfg.APIBaseURL, cfg.ResolveAPIToken(), cfg.RequestTimeout()), nil
}
