// internal/trench/client.go
// Package trench is the HTTP client for the Trench mission simulation API.
// Every method performs one authenticated request and returns either a typed
// payload or a wrapped error; there is no retry, caching, or token refresh.
package trench

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	apiPrefix = "/api/v1"
	// defaultRequestTimeout bounds a single API request when the caller
	// does not configure one.
	defaultRequestTimeout = 10 * time.Second
)

// ErrMissingCurrentTime reports a well-formed /time response whose
// current_time field is absent or blank. It is deliberately distinct from a
// parse failure: the field was never there, as opposed to there but malformed.
var ErrMissingCurrentTime = errors.New("time response missing current_time field")

// Client talks to one Trench API deployment. It is safe for concurrent use;
// the underlying http.Client is reused across requests.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	timeout time.Duration
}

// NewClient returns a Client for the API at baseURL authenticating with the
// given bearer token. A non-positive timeout falls back to the default.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest executes one API request with the bearer token and a per-request
// timeout layered on the caller's context.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, context.CancelFunc, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return resp, cancel, nil
}

// getJSON performs a GET and decodes the 200 response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, cancel, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer cancel()
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trench api returned status %s for %s: %s", resp.Status, path, strings.TrimSpace(string(payload)))
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}

// postJSON performs a POST with a JSON payload and decodes a 2xx response into out.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}
	resp, cancel, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer cancel()
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", path, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("trench api returned status %s for %s: %s", resp.Status, path, strings.TrimSpace(string(respBody)))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}

// Time fetches the current simulation time reading.
func (c *Client) Time(ctx context.Context) (TimeReading, error) {
	var reading TimeReading
	if err := c.getJSON(ctx, "/time", &reading); err != nil {
		return TimeReading{}, err
	}
	return reading, nil
}

// CurrentTime returns the raw current-time text from /time, satisfying the
// waiter's time-source contract. A response without the field yields
// ErrMissingCurrentTime.
func (c *Client) CurrentTime(ctx context.Context) (string, error) {
	reading, err := c.Time(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reading.CurrentTime) == "" {
		return "", ErrMissingCurrentTime
	}
	return reading.CurrentTime, nil
}

// Simulation fetches the overall simulation status.
func (c *Client) Simulation(ctx context.Context) (Simulation, error) {
	var sim Simulation
	if err := c.getJSON(ctx, "/simulation", &sim); err != nil {
		return Simulation{}, err
	}
	return sim, nil
}

// Satellites lists the satellite catalog.
func (c *Client) Satellites(ctx context.Context) ([]Satellite, error) {
	var payload struct {
		Satellites []Satellite `json:"satellites"`
	}
	if err := c.getJSON(ctx, "/satellites", &payload); err != nil {
		return nil, err
	}
	return payload.Satellites, nil
}

// Satellite fetches one satellite with its live position.
func (c *Client) Satellite(ctx context.Context, id string) (Satellite, error) {
	var sat Satellite
	if err := c.getJSON(ctx, "/satellites/"+url.PathEscape(id), &sat); err != nil {
		return Satellite{}, err
	}
	return sat, nil
}

// GroundStations lists the ground-station catalog.
func (c *Client) GroundStations(ctx context.Context) ([]GroundStation, error) {
	var payload struct {
		Stations []GroundStation `json:"stations"`
	}
	if err := c.getJSON(ctx, "/groundstations", &payload); err != nil {
		return nil, err
	}
	return payload.Stations, nil
}

// Passes lists upcoming passes matching the query, soonest AOS first.
func (c *Client) Passes(ctx context.Context, query PassQuery) ([]Pass, error) {
	values := url.Values{}
	if query.SatelliteID != "" {
		values.Set("satellite", query.SatelliteID)
	}
	if query.StationID != "" {
		values.Set("station", query.StationID)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	path := "/passes"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var payload struct {
		Passes []Pass `json:"passes"`
	}
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Passes, nil
}

// Telemetry fetches the latest telemetry frame for one satellite.
func (c *Client) Telemetry(ctx context.Context, satelliteID string) (TelemetryFrame, error) {
	var frame TelemetryFrame
	if err := c.getJSON(ctx, "/satellites/"+url.PathEscape(satelliteID)+"/telemetry", &frame); err != nil {
		return TelemetryFrame{}, err
	}
	return frame, nil
}

// SendCommand enqueues a command for one satellite and returns the receipt.
func (c *Client) SendCommand(ctx context.Context, satelliteID, command string, args map[string]any) (CommandReceipt, error) {
	payload := map[string]any{"command": command}
	if len(args) > 0 {
		payload["args"] = args
	}
	var receipt CommandReceipt
	if err := c.postJSON(ctx, "/satellites/"+url.PathEscape(satelliteID)+"/commands", payload, &receipt); err != nil {
		return CommandReceipt{}, err
	}
	return receipt, nil
}

// Command fetches the lifecycle record of an enqueued command.
func (c *Client) Command(ctx context.Context, commandID string) (CommandStatus, error) {
	var status CommandStatus
	if err := c.getJSON(ctx, "/commands/"+url.PathEscape(commandID), &status); err != nil {
		return CommandStatus{}, err
	}
	return status, nil
}

// Events lists recent simulation events, newest first. A non-positive limit
// leaves the server default in place.
func (c *Client) Events(ctx context.Context, limit int) ([]Event, error) {
	path := "/events"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var payload struct {
		Events []Event `json:"events"`
	}
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Events, nil
}
