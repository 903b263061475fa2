package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/telemetry-core/internal/infrastructure/database"
)

// ReadingRepository defines persistence for sensor readings.
type ReadingRepository interface {
	Insert(ctx context.Context, reading *Reading) error
	Latest(ctx context.Context, sensorID string) ([]Reading, error)
}

// SQLiteReadingRepository implements ReadingRepository against the SQLite store.
type SQLiteReadingRepository struct {
	q database.Querier
}

// NewReadingRepository creates a reading repository bound to q.
func NewReadingRepository(q database.Querier) *SQLiteReadingRepository {
	return &SQLiteReadingRepository{q: q}
}

// Insert appends one reading to the log. A zero ReadingTime defaults to now.
func (r *SQLiteReadingRepository) Insert(ctx context.Context, reading *Reading) error {
	if reading.SensorID == "" {
		return fmt.Errorf("sensor id is required")
	}
	if reading.ReadingTime.IsZero() {
		reading.ReadingTime = time.Now().UTC()
	}

	result, err := r.q.ExecContext(ctx,
		`INSERT INTO sensor_readings (sensor_id, value, reading_time)
		 VALUES (?, ?, ?)`,
		reading.SensorID, reading.Value, reading.ReadingTime.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reading: %w", err)
	}

	reading.ID, _ = result.LastInsertId() //nolint:errcheck // always available on SQLite

	return nil
}

// Latest returns the single most recent reading for the sensor, or an empty
// slice if the sensor has no readings or does not exist. Equal timestamps
// are broken by insertion order (higher row id wins).
func (r *SQLiteReadingRepository) Latest(ctx context.Context, sensorID string) ([]Reading, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, sensor_id, value, reading_time
		 FROM sensor_readings
		 WHERE sensor_id = ?
		 ORDER BY reading_time DESC, id DESC
		 LIMIT 1`,
		sensorID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying latest reading: %w", err)
	}
	defer rows.Close()

	readings := []Reading{}
	for rows.Next() {
		var rd Reading
		var readingTime string
		if err := rows.Scan(&rd.ID, &rd.SensorID, &rd.Value, &readingTime); err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}
		rd.ReadingTime, _ = time.Parse(time.RFC3339, readingTime) //nolint:errcheck // format is controlled
		readings = append(readings, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating readings: %w", err)
	}

	return readings, nil
}
