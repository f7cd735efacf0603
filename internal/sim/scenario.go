// internal/sim/scenario.go
// Package sim is an in-memory Trench API simulator for local development.
// A YAML scenario file seeds the world; the engine advances simulation time
// from the real clock and a speed multiplier, and the server exposes the same
// HTTP surface the production API does.
package sim

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/mwiater/trench/internal/timewait"
	"github.com/mwiater/trench/internal/trench"
)

const (
	defaultScenarioName = "trench-sim"
	defaultHost         = "127.0.0.1"
	defaultPort         = 8099
)

// Scenario is the parsed simulator scenario file.
type Scenario struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	Token      string            `yaml:"token"`
	EpochStart string            `yaml:"epoch_start"`
	ClockSpeed float64           `yaml:"clock_speed"`
	Satellites []SatelliteConfig `yaml:"satellites"`
	Stations   []StationConfig   `yaml:"ground_stations"`
	Passes     []PassConfig      `yaml:"passes"`
	Events     []EventConfig     `yaml:"events"`

	// epoch is EpochStart parsed to UTC, set during validation.
	epoch time.Time
}

// SatelliteConfig seeds one satellite in the catalog.
type SatelliteConfig struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	NoradID int         `yaml:"norad_id"`
	Status  string      `yaml:"status"`
	Orbit   OrbitConfig `yaml:"orbit"`
}

// OrbitConfig carries the orbital elements the API reports.
type OrbitConfig struct {
	ApogeeKM       float64 `yaml:"apogee_km"`
	PerigeeKM      float64 `yaml:"perigee_km"`
	InclinationDeg float64 `yaml:"inclination_deg"`
	PeriodMinutes  float64 `yaml:"period_minutes"`
}

// StationConfig seeds one ground station.
type StationConfig struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	LatitudeDeg  float64 `yaml:"latitude_deg"`
	LongitudeDeg float64 `yaml:"longitude_deg"`
	ElevationM   float64 `yaml:"elevation_m"`
	Status       string  `yaml:"status"`
}

// PassConfig schedules one pass relative to the epoch so scenario files do
// not go stale.
type PassConfig struct {
	SatelliteID     string  `yaml:"satellite_id"`
	StationID       string  `yaml:"station_id"`
	AOSOffsetMin    float64 `yaml:"aos_offset_min"`
	DurationMin     float64 `yaml:"duration_min"`
	MaxElevationDeg float64 `yaml:"max_elevation_deg"`
}

// EventConfig schedules one canned event relative to the epoch.
type EventConfig struct {
	OffsetMin float64 `yaml:"offset_min"`
	Severity  string  `yaml:"severity"`
	Source    string  `yaml:"source"`
	Message   string  `yaml:"message"`
}

// LoadScenario reads and validates a scenario file, applying defaults.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if strings.TrimSpace(sc.Name) == "" {
		sc.Name = defaultScenarioName
	}
	if strings.TrimSpace(sc.Host) == "" {
		sc.Host = defaultHost
	}
	if sc.Port == 0 {
		sc.Port = defaultPort
	}
	if sc.Port < 0 || sc.Port > 65535 {
		return fmt.Errorf("port %d out of range", sc.Port)
	}
	if sc.ClockSpeed == 0 {
		sc.ClockSpeed = 1
	}
	if sc.ClockSpeed < 0 {
		return fmt.Errorf("clock_speed must be positive, got %g", sc.ClockSpeed)
	}

	if strings.TrimSpace(sc.EpochStart) == "" {
		return fmt.Errorf("epoch_start is required")
	}
	epoch, err := timewait.ParseTimestamp(sc.EpochStart)
	if err != nil {
		return fmt.Errorf("epoch_start: %w", err)
	}
	sc.epoch = epoch

	sats := make(map[string]bool, len(sc.Satellites))
	for i, sat := range sc.Satellites {
		if strings.TrimSpace(sat.ID) == "" {
			return fmt.Errorf("satellites[%d]: id is required", i)
		}
		if sats[sat.ID] {
			return fmt.Errorf("duplicate satellite id %q", sat.ID)
		}
		sats[sat.ID] = true
	}

	stations := make(map[string]bool, len(sc.Stations))
	for i, st := range sc.Stations {
		if strings.TrimSpace(st.ID) == "" {
			return fmt.Errorf("ground_stations[%d]: id is required", i)
		}
		if stations[st.ID] {
			return fmt.Errorf("duplicate ground station id %q", st.ID)
		}
		stations[st.ID] = true
	}

	for i, pass := range sc.Passes {
		if !sats[pass.SatelliteID] {
			return fmt.Errorf("passes[%d]: unknown satellite %q", i, pass.SatelliteID)
		}
		if !stations[pass.StationID] {
			return fmt.Errorf("passes[%d]: unknown ground station %q", i, pass.StationID)
		}
		if pass.DurationMin <= 0 {
			return fmt.Errorf("passes[%d]: duration_min must be positive", i)
		}
	}

	for i, ev := range sc.Events {
		if strings.TrimSpace(ev.Message) == "" {
			return fmt.Errorf("events[%d]: message is required", i)
		}
	}

	return nil
}

// Epoch returns the parsed epoch start in UTC.
func (sc *Scenario) Epoch() time.Time {
	return sc.epoch
}

// Addr is the host:port the simulator should listen on.
func (sc *Scenario) Addr() string {
	return fmt.Sprintf("%s:%d", sc.Host, sc.Port)
}

// passWindow resolves a scheduled pass to absolute simulation time.
func (sc *Scenario) passWindow(pass PassConfig) (aos, los time.Time) {
	aos = sc.epoch.Add(time.Duration(pass.AOSOffsetMin * float64(time.Minute)))
	los = aos.Add(time.Duration(pass.DurationMin * float64(time.Minute)))
	return aos, los
}

// eventTime resolves a scheduled event to absolute simulation time.
func (sc *Scenario) eventTime(ev EventConfig) time.Time {
	return sc.epoch.Add(time.Duration(ev.OffsetMin * float64(time.Minute)))
}

// satellite converts a seed entry to its API form, without live position.
func (sat SatelliteConfig) satellite() trench.Satellite {
	status := sat.Status
	if status == "" {
		status = "nominal"
	}
	name := sat.Name
	if name == "" {
		name = strings.ToUpper(sat.ID)
	}
	return trench.Satellite{
		ID:      sat.ID,
		Name:    name,
		NoradID: sat.NoradID,
		Status:  status,
		Orbit: trench.Orbit{
			ApogeeKM:       sat.Orbit.ApogeeKM,
			PerigeeKM:      sat.Orbit.PerigeeKM,
			InclinationDeg: sat.Orbit.InclinationDeg,
			PeriodMinutes:  sat.Orbit.PeriodMinutes,
		},
	}
}

// station converts a seed entry to its API form.
func (st StationConfig) station() trench.GroundStation {
	status := st.Status
	if status == "" {
		status = "online"
	}
	return trench.GroundStation{
		ID:           st.ID,
		Name:         st.Name,
		LatitudeDeg:  st.LatitudeDeg,
		LongitudeDeg: st.LongitudeDeg,
		ElevationM:   st.ElevationM,
		Status:       status,
	}
}
