package telemetry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nerrad567/telemetry-core/internal/infrastructure/database"
)

// testDB creates a temporary SQLite database with the telemetry schema
// applied. The database file is cleaned up when the test completes.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "telemetry-test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schemaSQL := `
		CREATE TABLE users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			email         TEXT NOT NULL,
			created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE TABLE microcontrollers (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			place      TEXT NOT NULL,
			owner_id   TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (owner_id) REFERENCES users(id)
		) STRICT;

		CREATE TABLE sensors (
			id         TEXT PRIMARY KEY,
			mcu_id     TEXT NOT NULL,
			name       TEXT NOT NULL,
			type       TEXT NOT NULL,
			unit       TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (mcu_id) REFERENCES microcontrollers(id)
		) STRICT;

		CREATE TABLE sensor_readings (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			sensor_id    TEXT NOT NULL,
			value        REAL NOT NULL,
			reading_time TEXT NOT NULL,
			FOREIGN KEY (sensor_id) REFERENCES sensors(id)
		) STRICT;

		CREATE TABLE setpoints (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			mcu_id    TEXT NOT NULL,
			sensor_id TEXT NOT NULL,
			user_id   TEXT NOT NULL,
			name      TEXT NOT NULL,
			value     REAL NOT NULL,
			set_time  TEXT NOT NULL,
			FOREIGN KEY (mcu_id) REFERENCES microcontrollers(id),
			FOREIGN KEY (sensor_id) REFERENCES sensors(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		) STRICT;
	`
	if _, err := db.Exec(schemaSQL); err != nil {
		t.Fatalf("applying telemetry schema: %v", err)
	}

	return db
}

// seedUser inserts a user row directly and returns its id. Foreign keys are
// enforced, so device and setpoint tests need a real owner.
func seedUser(t *testing.T, db *database.DB, username string) string {
	t.Helper()

	id := "usr-" + username
	_, err := db.Exec(
		`INSERT INTO users (id, username, password_hash, email) VALUES (?, ?, 'x', ?)`,
		id, username, username+"@example.com",
	)
	if err != nil {
		t.Fatalf("seeding user %s: %v", username, err)
	}
	return id
}

// seedDevice inserts a microcontroller via the repository and returns its id.
func seedDevice(t *testing.T, db *database.DB, ownerID, name string) string {
	t.Helper()

	device := &Device{Name: name, OwnerID: ownerID}
	if err := NewDeviceRepository(db).Create(context.Background(), device); err != nil {
		t.Fatalf("seeding device %s: %v", name, err)
	}
	return device.ID
}

// seedSensor inserts a sensor via the repository and returns its id.
func seedSensor(t *testing.T, db *database.DB, mcuID, name string) string {
	t.Helper()

	sensor := &Sensor{MCUID: mcuID, Name: name, Type: "temperature", Unit: "C"}
	if err := NewSensorRepository(db).Create(context.Background(), sensor); err != nil {
		t.Fatalf("seeding sensor %s: %v", name, err)
	}
	return sensor.ID
}
