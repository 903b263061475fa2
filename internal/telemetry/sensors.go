package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/telemetry-core/internal/infrastructure/database"
)

// SensorRepository defines persistence for sensors.
type SensorRepository interface {
	Create(ctx context.Context, sensor *Sensor) error
	ListByDevice(ctx context.Context, mcuID string) ([]Sensor, error)
}

// SQLiteSensorRepository implements SensorRepository against the SQLite store.
type SQLiteSensorRepository struct {
	q database.Querier
}

// NewSensorRepository creates a sensor repository bound to q.
func NewSensorRepository(q database.Querier) *SQLiteSensorRepository {
	return &SQLiteSensorRepository{q: q}
}

// Create inserts a new sensor. The ID is generated if empty.
func (r *SQLiteSensorRepository) Create(ctx context.Context, sensor *Sensor) error {
	if sensor.MCUID == "" || sensor.Name == "" || sensor.Type == "" {
		return ErrInvalidSensor
	}
	if sensor.ID == "" {
		sensor.ID = "sen-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	sensor.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sensors (id, mcu_id, name, type, unit, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sensor.ID, sensor.MCUID, sensor.Name, sensor.Type, sensor.Unit, now,
	)
	if err != nil {
		return fmt.Errorf("creating sensor: %w", err)
	}

	return nil
}

// ListByDevice returns all sensors attached to the given device, oldest
// first. An unknown mcu id yields an empty slice, not an error.
func (r *SQLiteSensorRepository) ListByDevice(ctx context.Context, mcuID string) ([]Sensor, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, mcu_id, name, type, unit, created_at
		 FROM sensors
		 WHERE mcu_id = ?
		 ORDER BY created_at ASC, id ASC`,
		mcuID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sensors: %w", err)
	}
	defer rows.Close()

	sensors := []Sensor{}
	for rows.Next() {
		var s Sensor
		var createdAt string
		if err := rows.Scan(&s.ID, &s.MCUID, &s.Name, &s.Type, &s.Unit, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning sensor: %w", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		sensors = append(sensors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sensors: %w", err)
	}

	return sensors, nil
}
