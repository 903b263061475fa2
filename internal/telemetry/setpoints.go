package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/telemetry-core/internal/infrastructure/database"
)

// recentSetpointLimit caps how many history rows a single query returns.
const recentSetpointLimit = 100

// SetpointLog defines the append-only setpoint command log.
type SetpointLog interface {
	Append(ctx context.Context, mcuID, userID string, items []SetpointInput) (int, error)
	Recent(ctx context.Context, mcuID string) ([]Setpoint, error)
}

// SQLiteSetpointLog implements SetpointLog against the SQLite store.
//
// Unlike the other repositories it holds the database handle directly,
// because Append opens its own transaction.
type SQLiteSetpointLog struct {
	db *database.DB
}

// NewSetpointLog creates a setpoint log backed by db.
func NewSetpointLog(db *database.DB) *SQLiteSetpointLog {
	return &SQLiteSetpointLog{db: db}
}

// Append records one row per batch item inside a single transaction: either
// every item commits or none do. An empty batch is a valid no-op and returns
// zero. A malformed item (missing sensor id or name) aborts the whole batch
// with ErrInvalidSetpoint before anything is visible.
//
// Returns the number of rows appended.
func (l *SQLiteSetpointLog) Append(ctx context.Context, mcuID, userID string, items []SetpointInput) (int, error) {
	if mcuID == "" || userID == "" {
		return 0, ErrInvalidSetpoint
	}
	for _, item := range items {
		if item.SensorID == "" || item.Name == "" {
			return 0, ErrInvalidSetpoint
		}
	}
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	now := time.Now().UTC().Format(time.RFC3339)
	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO setpoints (mcu_id, sensor_id, user_id, name, value, set_time)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			mcuID, item.SensorID, userID, item.Name, item.Value, now,
		); err != nil {
			return 0, fmt.Errorf("appending setpoint for sensor %s: %w", item.SensorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing setpoint batch: %w", err)
	}

	return len(items), nil
}

// Recent returns up to the 100 most recent setpoint rows for the device,
// newest first. Equal timestamps are broken by insertion order.
func (l *SQLiteSetpointLog) Recent(ctx context.Context, mcuID string) ([]Setpoint, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, mcu_id, sensor_id, user_id, name, value, set_time
		 FROM setpoints
		 WHERE mcu_id = ?
		 ORDER BY set_time DESC, id DESC
		 LIMIT ?`,
		mcuID, recentSetpointLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying setpoints: %w", err)
	}
	defer rows.Close()

	setpoints := []Setpoint{}
	for rows.Next() {
		var sp Setpoint
		var setTime string
		if err := rows.Scan(&sp.ID, &sp.MCUID, &sp.SensorID, &sp.UserID, &sp.Name, &sp.Value, &setTime); err != nil {
			return nil, fmt.Errorf("scanning setpoint: %w", err)
		}
		sp.SetTime, _ = time.Parse(time.RFC3339, setTime) //nolint:errcheck // format is controlled
		setpoints = append(setpoints, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating setpoints: %w", err)
	}

	return setpoints, nil
}
