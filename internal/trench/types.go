// internal/trench/types.go
package trench

// TimeReading is the payload of GET /api/v1/time. CurrentTime is the field
// the waiter consumes; epoch start and clock speed feed the formatting layer.
type TimeReading struct {
	CurrentTime string  `json:"current_time"`
	EpochStart  string  `json:"epoch_start"`
	ClockSpeed  float64 `json:"clock_speed"`
}

// Simulation is the payload of GET /api/v1/simulation.
type Simulation struct {
	Name           string  `json:"name"`
	State          string  `json:"state"`
	EpochStart     string  `json:"epoch_start"`
	ClockSpeed     float64 `json:"clock_speed"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// Orbit describes a satellite's orbital elements as the Trench API reports them.
type Orbit struct {
	ApogeeKM       float64 `json:"apogee_km"`
	PerigeeKM      float64 `json:"perigee_km"`
	InclinationDeg float64 `json:"inclination_deg"`
	PeriodMinutes  float64 `json:"period_minutes"`
}

// Position is a satellite's instantaneous position, present on detail reads.
type Position struct {
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
	AltitudeKM   float64 `json:"altitude_km"`
	VelocityKMS  float64 `json:"velocity_kms"`
}

// Satellite is one tracked spacecraft.
type Satellite struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	NoradID  int       `json:"norad_id,omitempty"`
	Status   string    `json:"status"`
	Orbit    Orbit     `json:"orbit"`
	Position *Position `json:"position,omitempty"`
}

// GroundStation is one tracking station.
type GroundStation struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
	ElevationM   float64 `json:"elevation_m"`
	Status       string  `json:"status"`
}

// Pass is one satellite pass over a ground station, bounded by AOS and LOS
// in simulation time.
type Pass struct {
	SatelliteID     string  `json:"satellite_id"`
	StationID       string  `json:"station_id"`
	AOS             string  `json:"aos"`
	LOS             string  `json:"los"`
	MaxElevationDeg float64 `json:"max_elevation_deg"`
}

// TelemetryFrame is the latest telemetry snapshot for one satellite.
type TelemetryFrame struct {
	SatelliteID  string  `json:"satellite_id"`
	Timestamp    string  `json:"timestamp"`
	BatteryPct   float64 `json:"battery_percent"`
	TemperatureC float64 `json:"temperature_c"`
	SignalDBM    float64 `json:"signal_dbm"`
	Mode         string  `json:"mode"`
}

// CommandReceipt acknowledges an enqueued spacecraft command.
type CommandReceipt struct {
	CommandID string `json:"command_id"`
	Status    string `json:"status"`
}

// CommandStatus is the lifecycle record of a spacecraft command.
type CommandStatus struct {
	CommandID   string `json:"command_id"`
	SatelliteID string `json:"satellite_id"`
	Command     string `json:"command"`
	Status      string `json:"status"`
	IssuedAt    string `json:"issued_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Event is one entry from the simulation event log.
type Event struct {
	Timestamp string `json:"timestamp"`
	Severity  string `json:"severity"`
	Source    string `json:"source"`
	Message   string `json:"message"`
}

// PassQuery filters GET /api/v1/passes. Zero values mean "no filter".
type PassQuery struct {
	SatelliteID string
	StationID   string
	Limit       int
}
