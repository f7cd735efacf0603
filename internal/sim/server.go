// internal/sim/server.go
package sim

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const maxCommandBody = 1 << 20 // 1 MiB

// apiError is the JSON error body for every non-2xx response.
type apiError struct {
	Error string `json:"error"`
}

// commandRequest is the body of POST /api/v1/satellites/{id}/commands.
type commandRequest struct {
	Command string         `json:"command"`
	Args    map[string]any `json:"args,omitempty"`
}

// Server exposes an Engine over the Trench API's HTTP surface.
type Server struct {
	engine *Engine
	token  string
}

// NewServer wraps an engine. An empty token disables the bearer check.
func NewServer(engine *Engine, token string) *Server {
	return &Server{engine: engine, token: token}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/v1/time", s.authed(s.handleTime))
	mux.HandleFunc("GET /api/v1/simulation", s.authed(s.handleSimulation))
	mux.HandleFunc("GET /api/v1/satellites", s.authed(s.handleSatellites))
	mux.HandleFunc("GET /api/v1/satellites/{id}", s.authed(s.handleSatellite))
	mux.HandleFunc("GET /api/v1/satellites/{id}/telemetry", s.authed(s.handleTelemetry))
	mux.HandleFunc("POST /api/v1/satellites/{id}/commands", s.authed(s.handleSendCommand))
	mux.HandleFunc("GET /api/v1/commands/{id}", s.authed(s.handleCommand))
	mux.HandleFunc("GET /api/v1/groundstations", s.authed(s.handleGroundStations))
	mux.HandleFunc("GET /api/v1/passes", s.authed(s.handlePasses))
	mux.HandleFunc("GET /api/v1/events", s.authed(s.handleEvents))

	return mux
}

// authed enforces the bearer token when one is configured.
func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			got := r.Header.Get("Authorization")
			if got != "Bearer "+s.token {
				log.Printf("sim: unauthorized %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
				writeJSON(w, http.StatusUnauthorized, apiError{Error: "unauthorized"})
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleTime(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.TimeReading())
}

func (s *Server) handleSimulation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Simulation())
}

func (s *Server) handleSatellites(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"satellites": s.engine.Satellites()})
}

func (s *Server) handleSatellite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sat, ok := s.engine.Satellite(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError{Error: "satellite not found: " + id})
		return
	}
	writeJSON(w, http.StatusOK, sat)
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	frame, ok := s.engine.Telemetry(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError{Error: "satellite not found: " + id})
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (s *Server) handleSendCommand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.engine.HasSatellite(id) {
		writeJSON(w, http.StatusNotFound, apiError{Error: "satellite not found: " + id})
		return
	}

	var req commandRequest
	if err := decodeJSON(w, r, &req, maxCommandBody); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Command) == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "command is required"})
		return
	}

	receipt := s.engine.IssueCommand(id, req.Command)
	log.Printf("sim: command %s accepted for %s (%s)", req.Command, id, receipt.CommandID)
	writeJSON(w, http.StatusAccepted, receipt)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	status, ok := s.engine.CommandStatus(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError{Error: "command not found: " + id})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleGroundStations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"stations": s.engine.GroundStations()})
}

func (s *Server) handlePasses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	passes := s.engine.Passes(q.Get("satellite"), q.Get("station"), limit)
	writeJSON(w, http.StatusOK, map[string]any{"passes": passes})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": s.engine.Events(limit)})
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	return n, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
