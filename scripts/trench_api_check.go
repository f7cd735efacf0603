// scripts/trench_api_check.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mwiater/trench/internal/appconfig"
	"github.com/mwiater/trench/internal/timewait"
	api "github.com/mwiater/trench/internal/trench"
)

func main() {
	configPath := flag.String("config", appconfig.DefaultConfigPath, "Path to config JSON")
	baseURL := flag.String("url", "", "Override Trench API base URL")
	token := flag.String("token", "", "Override bearer token")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP timeout")
	flag.Parse()

	base, bearer, err := resolveTarget(*configPath, *baseURL, *token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: *timeout}

	fmt.Printf("Target API: %s\n\n", base)

	if err := checkHealth(client, base); err != nil {
		fmt.Fprintf(os.Stderr, "health check failed: %v\n", err)
	}
	if err := checkTime(client, base, bearer); err != nil {
		fmt.Fprintf(os.Stderr, "time check failed: %v\n", err)
	}
	if err := checkSatellites(client, base, bearer); err != nil {
		fmt.Fprintf(os.Stderr, "satellites check failed: %v\n", err)
	}
	if err := checkEvents(client, base, bearer); err != nil {
		fmt.Fprintf(os.Stderr, "events check failed: %v\n", err)
	}
}

func resolveTarget(configPath, overrideURL, overrideToken string) (string, string, error) {
	if overrideURL != "" {
		return strings.TrimRight(overrideURL, "/"), overrideToken, nil
	}

	cfg, err := appconfig.Load(configPath)
	if err != nil {
		return "", "", err
	}

	bearer := overrideToken
	if bearer == "" {
		bearer = cfg.ResolveAPIToken()
	}
	return strings.TrimRight(cfg.APIBaseURL, "/"), bearer, nil
}

func checkHealth(client *http.Client, base string) error {
	fmt.Println("== /healthz ==")
	status, body, err := getJSON(client, base+"/healthz", "")
	if err != nil {
		return err
	}
	fmt.Printf("Status: %d\n%s\n\n", status, indentJSON(body))
	return nil
}

func checkTime(client *http.Client, base, bearer string) error {
	fmt.Println("== /api/v1/time ==")
	status, body, err := getJSON(client, base+"/api/v1/time", bearer)
	if err != nil {
		return err
	}
	fmt.Printf("Status: %d\n", status)
	fmt.Println("Raw:")
	fmt.Println(indentJSON(body))

	var reading api.TimeReading
	if err := json.Unmarshal(body, &reading); err != nil {
		fmt.Printf("Parse: %v\n\n", err)
		return nil
	}

	fmt.Printf("current_time: %s\n", reading.CurrentTime)
	parsed, err := timewait.ParseTimestamp(reading.CurrentTime)
	if err != nil {
		fmt.Printf("ParseTimestamp: %v\n\n", err)
		return nil
	}
	fmt.Printf("normalized:   %s\n", parsed.Format(time.RFC3339))
	fmt.Printf("clock_speed:  %gx\n\n", reading.ClockSpeed)
	return nil
}

func checkSatellites(client *http.Client, base, bearer string) error {
	fmt.Println("== /api/v1/satellites ==")
	status, body, err := getJSON(client, base+"/api/v1/satellites", bearer)
	if err != nil {
		return err
	}
	fmt.Printf("Status: %d\n", status)

	var payload struct {
		Satellites []api.Satellite `json:"satellites"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		fmt.Printf("Parse: %v\n\n", err)
		return nil
	}

	fmt.Printf("Parsed satellites: %d\n", len(payload.Satellites))
	for _, sat := range payload.Satellites {
		fmt.Printf("  - %s %s (status=%s)\n", sat.ID, sat.Name, sat.Status)
	}
	fmt.Println()
	return nil
}

func checkEvents(client *http.Client, base, bearer string) error {
	fmt.Println("== /api/v1/events?limit=5 ==")
	status, body, err := getJSON(client, base+"/api/v1/events?limit=5", bearer)
	if err != nil {
		return err
	}
	fmt.Printf("Status: %d\n", status)

	var payload struct {
		Events []api.Event `json:"events"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		fmt.Printf("Parse: %v\n\n", err)
		return nil
	}

	fmt.Printf("Parsed events: %d\n", len(payload.Events))
	for _, ev := range payload.Events {
		fmt.Printf("  - [%s] %s: %s\n", ev.Severity, ev.Timestamp, ev.Message)
	}
	fmt.Println()
	return nil
}

func getJSON(client *http.Client, url, bearer string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), client.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func indentJSON(body []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}
