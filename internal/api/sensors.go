package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/telemetry-core/internal/telemetry"
)

type createSensorRequest struct {
	MCUID string `json:"mcu_id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Unit  string `json:"unit"`
}

// handleListSensors returns all sensors attached to a device.
//
// GET /api/sensors?mcu_id=
// Always 200 with a JSON array; an unknown mcu_id yields [].
func (s *Server) handleListSensors(w http.ResponseWriter, r *http.Request) {
	mcuID := r.URL.Query().Get("mcu_id")

	sensors, err := s.sensors.ListByDevice(r.Context(), mcuID)
	if err != nil {
		s.logger.Error("list sensors failed", "error", err)
		writeInternalError(w, "failed to list sensors")
		return
	}

	writeJSON(w, http.StatusOK, sensors)
}

// handleCreateSensor provisions a sensor on a device.
//
// POST /api/sensors {mcu_id, name, type, unit}
func (s *Server) handleCreateSensor(w http.ResponseWriter, r *http.Request) {
	var req createSensorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	sensor := &telemetry.Sensor{
		MCUID: req.MCUID,
		Name:  req.Name,
		Type:  req.Type,
		Unit:  req.Unit,
	}
	if err := s.sensors.Create(r.Context(), sensor); err != nil {
		if errors.Is(err, telemetry.ErrInvalidSensor) {
			writeBadRequest(w, "mcu_id, name, and type are required")
			return
		}
		s.logger.Error("create sensor failed", "error", err)
		writeInternalError(w, "failed to create sensor")
		return
	}

	writeJSON(w, http.StatusCreated, sensor)
}
