// internal/sim/engine.go
package sim

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mwiater/trench/internal/trench"
)

// wireTimeLayout renders UTC instants with an explicit +00:00 offset, matching
// the production API's timestamp style.
const wireTimeLayout = "2006-01-02T15:04:05-07:00"

const (
	// Simulated time a command spends in each lifecycle stage.
	commandQueueTime   = 10 * time.Second
	commandExecuteTime = 30 * time.Second

	earthRadiusKM = 6371.0

	defaultEventLimit = 20
)

// commandRecord tracks one enqueued command. Status is derived from the
// simulation clock on read, never stored.
type commandRecord struct {
	id          string
	satelliteID string
	command     string
	issuedSim   time.Time
}

// Engine holds the simulated world. All methods are safe for concurrent use.
type Engine struct {
	scenario *Scenario
	nowFn    func() time.Time
	started  time.Time

	mu       sync.Mutex
	commands map[string]*commandRecord
	nextCmd  int
	events   []timedEvent
}

type timedEvent struct {
	at    time.Time
	event trench.Event
}

// NewEngine starts an engine on the real clock.
func NewEngine(sc *Scenario) *Engine {
	return newEngine(sc, time.Now)
}

// newEngine lets tests pin the wall clock.
func newEngine(sc *Scenario, nowFn func() time.Time) *Engine {
	e := &Engine{
		scenario: sc,
		nowFn:    nowFn,
		started:  nowFn(),
		commands: map[string]*commandRecord{},
	}
	for _, ev := range sc.Events {
		severity := ev.Severity
		if severity == "" {
			severity = "info"
		}
		source := ev.Source
		if source == "" {
			source = "simulator"
		}
		at := sc.eventTime(ev)
		e.events = append(e.events, timedEvent{
			at: at,
			event: trench.Event{
				Timestamp: at.Format(wireTimeLayout),
				Severity:  severity,
				Source:    source,
				Message:   ev.Message,
			},
		})
	}
	return e
}

// SimNow is the current simulation instant: the epoch plus real elapsed time
// scaled by the clock-speed multiplier.
func (e *Engine) SimNow() time.Time {
	elapsed := e.nowFn().Sub(e.started)
	scaled := time.Duration(float64(elapsed) * e.scenario.ClockSpeed)
	return e.scenario.Epoch().Add(scaled)
}

// TimeReading is the /time payload at the current instant.
func (e *Engine) TimeReading() trench.TimeReading {
	return trench.TimeReading{
		CurrentTime: e.SimNow().Format(wireTimeLayout),
		EpochStart:  e.scenario.Epoch().Format(wireTimeLayout),
		ClockSpeed:  e.scenario.ClockSpeed,
	}
}

// Simulation is the /simulation payload at the current instant.
func (e *Engine) Simulation() trench.Simulation {
	now := e.SimNow()
	return trench.Simulation{
		Name:           e.scenario.Name,
		State:          "running",
		EpochStart:     e.scenario.Epoch().Format(wireTimeLayout),
		ClockSpeed:     e.scenario.ClockSpeed,
		ElapsedSeconds: now.Sub(e.scenario.Epoch()).Seconds(),
	}
}

// Satellites returns the catalog without live positions.
func (e *Engine) Satellites() []trench.Satellite {
	out := make([]trench.Satellite, 0, len(e.scenario.Satellites))
	for _, cfg := range e.scenario.Satellites {
		out = append(out, cfg.satellite())
	}
	return out
}

// Satellite returns one satellite with its synthesized live position.
func (e *Engine) Satellite(id string) (trench.Satellite, bool) {
	for _, cfg := range e.scenario.Satellites {
		if cfg.ID == id {
			sat := cfg.satellite()
			pos := e.position(sat.Orbit)
			sat.Position = &pos
			return sat, true
		}
	}
	return trench.Satellite{}, false
}

// position derives a plausible subsatellite point from the orbit geometry and
// the orbital phase at the current instant. It is illustrative, not an
// ephemeris.
func (e *Engine) position(orbit trench.Orbit) trench.Position {
	period := orbit.PeriodMinutes
	if period <= 0 {
		period = 90
	}
	elapsedMin := e.SimNow().Sub(e.scenario.Epoch()).Minutes()
	phase := 2 * math.Pi * math.Mod(elapsedMin, period) / period

	latAmplitude := math.Min(math.Abs(orbit.InclinationDeg), 90)
	lat := latAmplitude * math.Sin(phase)

	lon := math.Mod(elapsedMin/period*360, 360)
	if lon > 180 {
		lon -= 360
	}

	// Altitude swings between perigee and apogee once per revolution.
	mean := (orbit.ApogeeKM + orbit.PerigeeKM) / 2
	half := (orbit.ApogeeKM - orbit.PerigeeKM) / 2
	alt := mean - half*math.Cos(phase)
	if alt <= 0 {
		alt = 550
	}

	velocity := 2 * math.Pi * (earthRadiusKM + alt) / (period * 60)

	return trench.Position{
		LatitudeDeg:  round1(lat),
		LongitudeDeg: round1(lon),
		AltitudeKM:   round1(alt),
		VelocityKMS:  math.Round(velocity*100) / 100,
	}
}

// Telemetry synthesizes the latest frame for one satellite.
func (e *Engine) Telemetry(id string) (trench.TelemetryFrame, bool) {
	var orbit trench.Orbit
	var status string
	found := false
	for _, cfg := range e.scenario.Satellites {
		if cfg.ID == id {
			sat := cfg.satellite()
			orbit = sat.Orbit
			status = sat.Status
			found = true
			break
		}
	}
	if !found {
		return trench.TelemetryFrame{}, false
	}

	period := orbit.PeriodMinutes
	if period <= 0 {
		period = 90
	}
	now := e.SimNow()
	elapsedMin := now.Sub(e.scenario.Epoch()).Minutes()
	phase := 2 * math.Pi * math.Mod(elapsedMin, period) / period

	// Battery and temperature follow the sunlit/eclipse cycle of the orbit.
	return trench.TelemetryFrame{
		SatelliteID:  id,
		Timestamp:    now.Format(wireTimeLayout),
		BatteryPct:   round1(72 + 22*math.Sin(phase)),
		TemperatureC: round1(5 + 27*math.Cos(phase)),
		SignalDBM:    round1(-92 + 12*math.Sin(phase/2)),
		Mode:         strings.ToUpper(status),
	}, true
}

// GroundStations returns the station catalog.
func (e *Engine) GroundStations() []trench.GroundStation {
	out := make([]trench.GroundStation, 0, len(e.scenario.Stations))
	for _, cfg := range e.scenario.Stations {
		out = append(out, cfg.station())
	}
	return out
}

// Passes returns scheduled passes that have not yet ended, soonest AOS first.
// Empty filter values match everything; limit <= 0 means no limit.
func (e *Engine) Passes(satelliteID, stationID string, limit int) []trench.Pass {
	now := e.SimNow()
	var out []trench.Pass
	for _, cfg := range e.scenario.Passes {
		if satelliteID != "" && cfg.SatelliteID != satelliteID {
			continue
		}
		if stationID != "" && cfg.StationID != stationID {
			continue
		}
		aos, los := e.scenario.passWindow(cfg)
		if los.Before(now) {
			continue
		}
		out = append(out, trench.Pass{
			SatelliteID:     cfg.SatelliteID,
			StationID:       cfg.StationID,
			AOS:             aos.Format(wireTimeLayout),
			LOS:             los.Format(wireTimeLayout),
			MaxElevationDeg: cfg.MaxElevationDeg,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AOS < out[j].AOS })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// IssueCommand enqueues a command and logs an event for it.
func (e *Engine) IssueCommand(satelliteID, command string) trench.CommandReceipt {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextCmd++
	id := fmt.Sprintf("cmd-%d", e.nextCmd)
	now := e.SimNow()
	e.commands[id] = &commandRecord{
		id:          id,
		satelliteID: satelliteID,
		command:     command,
		issuedSim:   now,
	}
	e.events = append(e.events, timedEvent{
		at: now,
		event: trench.Event{
			Timestamp: now.Format(wireTimeLayout),
			Severity:  "info",
			Source:    satelliteID,
			Message:   fmt.Sprintf("command %s queued as %s", command, id),
		},
	})
	return trench.CommandReceipt{CommandID: id, Status: "queued"}
}

// CommandStatus derives the lifecycle stage of a command from how much
// simulated time has passed since it was issued.
func (e *Engine) CommandStatus(id string) (trench.CommandStatus, bool) {
	e.mu.Lock()
	rec, ok := e.commands[id]
	e.mu.Unlock()
	if !ok {
		return trench.CommandStatus{}, false
	}

	status := trench.CommandStatus{
		CommandID:   rec.id,
		SatelliteID: rec.satelliteID,
		Command:     rec.command,
		IssuedAt:    rec.issuedSim.Format(wireTimeLayout),
	}

	age := e.SimNow().Sub(rec.issuedSim)
	switch {
	case age < commandQueueTime:
		status.Status = "queued"
	case age < commandQueueTime+commandExecuteTime:
		status.Status = "executing"
	default:
		status.Status = "completed"
		completed := rec.issuedSim.Add(commandQueueTime + commandExecuteTime)
		status.CompletedAt = completed.Format(wireTimeLayout)
		status.Detail = fmt.Sprintf("%s executed", rec.command)
	}
	return status, true
}

// Events returns events that have occurred by the current instant, newest
// first. limit <= 0 applies the default.
func (e *Engine) Events(limit int) []trench.Event {
	if limit <= 0 {
		limit = defaultEventLimit
	}
	now := e.SimNow()

	e.mu.Lock()
	occurred := make([]timedEvent, 0, len(e.events))
	for _, ev := range e.events {
		if !ev.at.After(now) {
			occurred = append(occurred, ev)
		}
	}
	e.mu.Unlock()

	sort.SliceStable(occurred, func(i, j int) bool { return occurred[i].at.After(occurred[j].at) })
	if len(occurred) > limit {
		occurred = occurred[:limit]
	}
	out := make([]trench.Event, 0, len(occurred))
	for _, ev := range occurred {
		out = append(out, ev.event)
	}
	return out
}

// HasSatellite reports whether the catalog contains id.
func (e *Engine) HasSatellite(id string) bool {
	for _, cfg := range e.scenario.Satellites {
		if cfg.ID == id {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
