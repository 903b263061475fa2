package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/telemetry-core/internal/infrastructure/database"
)

// DeviceRepository defines persistence for microcontrollers.
type DeviceRepository interface {
	Create(ctx context.Context, device *Device) error
	ListByOwner(ctx context.Context, ownerID string) ([]Device, error)
}

// SQLiteDeviceRepository implements DeviceRepository against the SQLite store.
type SQLiteDeviceRepository struct {
	q database.Querier
}

// NewDeviceRepository creates a device repository bound to q.
func NewDeviceRepository(q database.Querier) *SQLiteDeviceRepository {
	return &SQLiteDeviceRepository{q: q}
}

// Create inserts a new microcontroller. The ID is generated if empty.
func (r *SQLiteDeviceRepository) Create(ctx context.Context, device *Device) error {
	if device.Name == "" || device.OwnerID == "" {
		return ErrInvalidDevice
	}
	if device.ID == "" {
		device.ID = "mcu-" + uuid.NewString()[:8]
	}
	if device.Place == "" {
		device.Place = "Not specified"
	}

	now := time.Now().UTC().Format(time.RFC3339)
	device.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO microcontrollers (id, name, place, owner_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		device.ID, device.Name, device.Place, device.OwnerID, now,
	)
	if err != nil {
		return fmt.Errorf("creating device: %w", err)
	}

	return nil
}

// ListByOwner returns all devices owned by the given user, oldest first.
// An unknown or empty owner id yields an empty slice, not an error.
func (r *SQLiteDeviceRepository) ListByOwner(ctx context.Context, ownerID string) ([]Device, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, place, owner_id, created_at
		 FROM microcontrollers
		 WHERE owner_id = ?
		 ORDER BY created_at ASC, id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	defer rows.Close()

	devices := []Device{}
	for rows.Next() {
		var d Device
		var createdAt string
		if err := rows.Scan(&d.ID, &d.Name, &d.Place, &d.OwnerID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}

	return devices, nil
}
