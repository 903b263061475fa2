package api

import (
	"encoding/json"
	"net/http"

	"github.com/nerrad567/telemetry-core/internal/telemetry"
)

type submitSetpointsRequest struct {
	MCUID     string                    `json:"mcu_id"`
	UserID    string                    `json:"user_id"`
	Setpoints []telemetry.SetpointInput `json:"setpoints"`
}

// handleSubmitSetpoints appends a batch of setpoint commands for a device.
//
// POST /api/set_point {mcu_id, user_id, setpoints:[{sensor_id,name,value}]}
// 200 {message} on success (an empty batch is a valid no-op); 500 with error
// text on any failure - the batch is all-or-nothing, a malformed item or
// store error leaves no rows behind.
//
// The user_id is taken from the request body as-is; there are no sessions,
// so issuer identity is client-supplied by design.
func (s *Server) handleSubmitSetpoints(w http.ResponseWriter, r *http.Request) {
	var req submitSetpointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	count, err := s.setpoints.Append(r.Context(), req.MCUID, req.UserID, req.Setpoints)
	if err != nil {
		s.logger.Error("setpoint submission failed", "error", err, "mcu_id", req.MCUID)
		writeInternalError(w, err.Error())
		return
	}

	s.logger.Info("setpoints saved", "mcu_id", req.MCUID, "count", count)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Set points saved successfully!",
	})
}

// handleSetpointHistory returns the newest 100 setpoint rows for a device,
// newest first.
//
// GET /api/setpoints?mcu_id=
func (s *Server) handleSetpointHistory(w http.ResponseWriter, r *http.Request) {
	mcuID := r.URL.Query().Get("mcu_id")

	setpoints, err := s.setpoints.Recent(r.Context(), mcuID)
	if err != nil {
		s.logger.Error("setpoint history failed", "error", err)
		writeInternalError(w, "failed to query setpoints")
		return
	}

	writeJSON(w, http.StatusOK, setpoints)
}
