// Package telemetry holds the device/sensor data model and the setpoint
// command protocol for the dashboard backend.
//
// The ownership chain is user -> microcontroller -> sensor. Readings and
// setpoints are append-only logs: rows are inserted, never mutated. The
// query surface is deliberately narrow:
//   - devices owned by a user
//   - sensors belonging to a device
//   - the single most recent reading per sensor
//   - the newest 100 setpoint rows per device
//
// Repositories bind to a database.Querier so callers can run them on the
// shared connection or inside an explicit transaction. Batch setpoint
// submission opens its own transaction: all rows commit or none do.
package telemetry
