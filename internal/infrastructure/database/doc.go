// Package database provides the SQLite-backed transactional store for the
// telemetry backend.
//
// It wraps database/sql with:
//   - Connection setup (WAL mode, busy timeout, foreign key enforcement)
//   - Embedded schema migrations (see the migrations package)
//   - Health checks and lifecycle management
//
// The store enforces no domain invariants itself beyond schema constraints;
// services open explicit transactions for multi-statement sequences.
//
// Thread Safety: the wrapped *sql.DB is safe for concurrent use; SQLite
// serialises writers via its single-writer model.
package database
