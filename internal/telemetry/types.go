package telemetry

import (
	"errors"
	"time"
)

// Device represents a registered microcontroller (MCU). A device acts as a
// gateway for one or more sensors and is owned by exactly one user.
type Device struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Place     string    `json:"place"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Sensor is a logical measurement source attached to one device.
type Sensor struct {
	ID        string    `json:"id"`
	MCUID     string    `json:"mcu_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Unit      string    `json:"unit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Reading is one timestamped measurement from a sensor. Readings are
// append-only: rows are never updated or deleted.
type Reading struct {
	ID          int64     `json:"id"`
	SensorID    string    `json:"sensor_id"`
	Value       float64   `json:"value"`
	ReadingTime time.Time `json:"reading_time"`
}

// Setpoint is one row of the append-only command log: a user-issued target
// value for a sensor, recorded with issuer and timestamp. The "current"
// setpoint is a derived concept - the head of the ordered history.
type Setpoint struct {
	ID       int64     `json:"id"`
	MCUID    string    `json:"mcu_id"`
	SensorID string    `json:"sensor_id"`
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Value    float64   `json:"value"`
	SetTime  time.Time `json:"set_time"`
}

// SetpointInput is one item of a setpoint submission batch.
type SetpointInput struct {
	SensorID string  `json:"sensor_id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
}

// Sentinel errors for the telemetry package.
var (
	// ErrInvalidDevice is returned when a device is missing required fields.
	ErrInvalidDevice = errors.New("telemetry: invalid device")

	// ErrInvalidSensor is returned when a sensor is missing required fields.
	ErrInvalidSensor = errors.New("telemetry: invalid sensor")

	// ErrInvalidSetpoint is returned when a batch item is malformed; the
	// whole batch is aborted, never partially applied.
	ErrInvalidSetpoint = errors.New("telemetry: invalid setpoint")
)
