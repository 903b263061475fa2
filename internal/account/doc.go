// Package account provides user registration and login for the telemetry
// dashboard.
//
// Passwords are hashed with Argon2id (fixed cost, PHC string format).
// Registration inserts the user and their default microcontroller in one
// transaction; username uniqueness is enforced by the store's UNIQUE
// constraint rather than a racy check-then-insert read.
//
// Login verifies credentials and returns the user id only - there are no
// sessions or tokens, so downstream handlers treat client-supplied ids as
// untrusted input.
package account
