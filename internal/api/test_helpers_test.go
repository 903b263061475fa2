package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/nerrad567/telemetry-core/internal/account"
	"github.com/nerrad567/telemetry-core/internal/infrastructure/config"
	"github.com/nerrad567/telemetry-core/internal/infrastructure/database"
	"github.com/nerrad567/telemetry-core/internal/infrastructure/logging"
	"github.com/nerrad567/telemetry-core/internal/telemetry"
)

// newTestServer builds a fully wired server over a temporary SQLite database
// and returns its router for use with httptest.
func newTestServer(t *testing.T) (http.Handler, *database.DB) {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "api-test.db"),
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
		t.Fatalf("applying schema: %v", err)
	}

	log := logging.Default()
	server, err := New(Deps{
		Config:    config.APIConfig{Host: "127.0.0.1", Port: 0},
		Logger:    log,
		DB:        db,
		Accounts:  account.NewService(db, log),
		Devices:   telemetry.NewDeviceRepository(db),
		Sensors:   telemetry.NewSensorRepository(db),
		Readings:  telemetry.NewReadingRepository(db),
		Setpoints: telemetry.NewSetpointLog(db),
		Version:   "test",
	})
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	return server.buildRouter(), db
}

// doJSON performs a request against the handler with a JSON-encoded body.
func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a JSON response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

// registerUser registers a user through the API and returns their id via login.
func registerUser(t *testing.T, handler http.Handler, username, password string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"password": password,
		"email":    username + "@example.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		UserID string `json:"user_id"`
	}
	decodeBody(t, rec, &resp)
	if resp.UserID == "" {
		t.Fatal("login response missing user_id")
	}
	return resp.UserID
}

// errorBody extracts the "error" field all error responses carry.
func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	return resp.Error
}
