package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/telemetry-core/internal/telemetry"
)

type createDeviceRequest struct {
	Name    string `json:"name"`
	Place   string `json:"place"`
	OwnerID string `json:"owner_id"`
}

// handleListDevices returns all devices owned by a user.
//
// GET /api/devices?user_id=
// Always 200 with a JSON array; an unknown or absent user_id yields [].
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	devices, err := s.devices.ListByOwner(r.Context(), userID)
	if err != nil {
		s.logger.Error("list devices failed", "error", err)
		writeInternalError(w, "failed to list devices")
		return
	}

	writeJSON(w, http.StatusOK, devices)
}

// handleCreateDevice registers a microcontroller explicitly, outside the
// default one created at account registration.
//
// POST /api/devices {name, place, owner_id}
func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var req createDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	device := &telemetry.Device{
		Name:    req.Name,
		Place:   req.Place,
		OwnerID: req.OwnerID,
	}
	if err := s.devices.Create(r.Context(), device); err != nil {
		if errors.Is(err, telemetry.ErrInvalidDevice) {
			writeBadRequest(w, "name and owner_id are required")
			return
		}
		s.logger.Error("create device failed", "error", err)
		writeInternalError(w, "failed to create device")
		return
	}

	writeJSON(w, http.StatusCreated, device)
}
