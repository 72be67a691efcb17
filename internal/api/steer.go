package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Helm/internal/fuzzy"
	"github.com/MikeSquared-Agency/Helm/internal/steering"
)

type SteerHandler struct {
	ctrl   *steering.Controller
	logger *slog.Logger
}

func NewSteerHandler(ctrl *steering.Controller, logger *slog.Logger) *SteerHandler {
	return &SteerHandler{ctrl: ctrl, logger: logger}
}

type steerRequest struct {
	VehicleID string   `json:"vehicle_id"`
	Position  *float64 `json:"position"`
	Velocity  *float64 `json:"velocity"`
}

func (h *SteerHandler) Steer(w http.ResponseWriter, r *http.Request) {
	var req steerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Position == nil || req.Velocity == nil {
		writeError(w, http.StatusBadRequest, "position and velocity are required")
		return
	}

	vehicle := r.Header.Get(VehicleHeader)
	if vehicle == "" {
		vehicle = req.VehicleID
	}
	d, err := h.ctrl.Decide(r.Context(), steering.Reading{
		VehicleID: vehicle,
		Position:  *req.Position,
		Velocity:  *req.Velocity,
	})
	switch {
	case errors.Is(err, steering.ErrOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		h.logger.Error("steer failed", "vehicle", vehicle, "error", err)
		writeError(w, http.StatusInternalServerError, "inference failed")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type fuzzifyResponse struct {
	Variable string         `json:"variable"`
	Value    float64        `json:"value"`
	Terms    fuzzy.FuzzySet `json:"terms"`
	Text     string         `json:"text"`
}

func (h *SteerHandler) Fuzzify(w http.ResponseWriter, r *http.Request) {
	variable := chi.URLParam(r, "variable")
	raw := r.URL.Query().Get("value")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "value must be a number")
		return
	}

	set, err := h.ctrl.Fuzzify(variable, value)
	if errors.Is(err, fuzzy.ErrUnknownVariable) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, fuzzifyResponse{
		Variable: variable,
		Value:    value,
		Terms:    set,
		Text:     set.String(),
	})
}

func (h *SteerHandler) Engine(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Describe())
}

func (h *SteerHandler) FLL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.ctrl.FLL()))
}

func (h *SteerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Stats())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
