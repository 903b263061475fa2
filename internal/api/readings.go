package api

import (
	"net/http"
)

// handleLatestReading returns the most recent reading for a sensor.
//
// GET /api/sensor_readings?sensor_id=
// Always 200 with a JSON array of zero or one readings. The array shape is
// kept (rather than an optional object) so every read endpoint returns a
// collection.
func (s *Server) handleLatestReading(w http.ResponseWriter, r *http.Request) {
	sensorID := r.URL.Query().Get("sensor_id")

	readings, err := s.readings.Latest(r.Context(), sensorID)
	if err != nil {
		s.logger.Error("latest reading failed", "error", err)
		writeInternalError(w, "failed to query readings")
		return
	}

	writeJSON(w, http.StatusOK, readings)
}
