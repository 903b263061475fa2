package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Accounts
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		// Device & sensor directory
		r.Get("/devices", s.handleListDevices)
		r.Post("/devices", s.handleCreateDevice)
		r.Get("/sensors", s.handleListSensors)
		r.Post("/sensors", s.handleCreateSensor)

		// Telemetry query
		r.Get("/sensor_readings", s.handleLatestReading)

		// Setpoint command log
		r.Post("/set_point", s.handleSubmitSetpoints)
		r.Get("/setpoints", s.handleSetpointHistory)
	})

	return r
}

// handleHealth returns the server health status, including a store ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			s.logger.Error("health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
