package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
	"github.com/regionalsports/player-registry/registration-service/internal/metrics"
)

// PlayerHandler serves the public endpoints: registration submission, status
// search by national ID and the self-service profile view.
type PlayerHandler struct {
	workflow ports.RegistrationWorkflow
	metrics  *metrics.Metrics
}

func NewPlayerHandler(workflow ports.RegistrationWorkflow, m *metrics.Metrics) *PlayerHandler {
	return &PlayerHandler{workflow: workflow, metrics: m}
}

type playerReceipt struct {
	ID       string        `json:"id"`
	FullName string        `json:"full_name"`
	Email    string        `json:"email,omitempty"`
	Status   domain.Status `json:"status"`
}

func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	reg, err := h.workflow.Submit(r.Context(), sub)
	if err != nil {
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			h.metrics.RegistrationConflicts.Inc()
			writeError(w, http.StatusConflict, "Registration failed: "+conflictErr.Error())
			return
		}
		respondError(w, err)
		return
	}

	h.metrics.RegistrationsSubmitted.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Player registration successful! Your application is now pending approval.",
		"player": playerReceipt{
			ID:       reg.ID,
			FullName: reg.FullName,
			Status:   reg.Status,
		},
	})
}

func (h *PlayerHandler) Search(w http.ResponseWriter, r *http.Request) {
	nationalID := r.URL.Query().Get("id")
	if nationalID == "" {
		writeError(w, http.StatusBadRequest, "National ID number is required")
		return
	}

	reg, err := h.workflow.Lookup(r.Context(), nationalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No player found with this national ID number")
			return
		}
		respondError(w, err)
		return
	}

	// Status check only: no contact, family or image fields leave this path.
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"player": playerReceipt{
			ID:       reg.ID,
			FullName: reg.FullName,
			Status:   reg.Status,
		},
	})
}

// Profile returns the full record without a session. It is reachable only by
// callers who already hold the registration's ID.
func (h *PlayerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	reg, err := h.workflow.Detail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"player":  reg,
	})
}
