package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
	"github.com/regionalsports/player-registry/registration-service/internal/metrics"
)

// AdminHandler serves the session-gated review dashboard endpoints plus the
// key-gated staff setup endpoint.
type AdminHandler struct {
	workflow  ports.RegistrationWorkflow
	reporting ports.Reporting
	auth      ports.AuthService
	metrics   *metrics.Metrics
}

func NewAdminHandler(
	workflow ports.RegistrationWorkflow,
	reporting ports.Reporting,
	auth ports.AuthService,
	m *metrics.Metrics,
) *AdminHandler {
	return &AdminHandler{
		workflow:  workflow,
		reporting: reporting,
		auth:      auth,
		metrics:   m,
	}
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	result, err := h.reporting.List(r.Context(), page, limit, query.Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"players": result.Players,
		"pagination": map[string]any{
			"total":      result.Total,
			"page":       result.Page,
			"limit":      result.Limit,
			"totalPages": result.TotalPages,
		},
	})
}

// Create is the staff-side registration path. It runs the same submission
// operation as the public form, behind the role gate.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
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
		}
		respondError(w, err)
		return
	}

	h.metrics.RegistrationsSubmitted.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Player registered successfully",
		"player": playerReceipt{
			ID:       reg.ID,
			FullName: reg.FullName,
			Email:    reg.Email,
			Status:   reg.Status,
		},
	})
}

func (h *AdminHandler) Detail(w http.ResponseWriter, r *http.Request) {
	reg, err := h.workflow.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"player":  reg,
	})
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	reg, err := h.workflow.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Player updated successfully",
		"player": playerReceipt{
			ID:       reg.ID,
			FullName: reg.FullName,
			Email:    reg.Email,
			Status:   reg.Status,
		},
	})
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.workflow.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Player deleted successfully",
	})
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	reg, err := h.workflow.Transition(r.Context(), chi.URLParam(r, "id"), domain.Status(body.Status))
	if err != nil {
		respondError(w, err)
		return
	}

	h.metrics.StatusTransitions.WithLabelValues(string(reg.Status)).Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Player status updated to %s", reg.Status),
		"player": playerReceipt{
			ID:       reg.ID,
			FullName: reg.FullName,
			Status:   reg.Status,
		},
	})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reporting.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

func (h *AdminHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key      string `json:"key"`
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	account, err := h.auth.ProvisionAccount(r.Context(), body.Key, body.Username, body.Password, body.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Staff account %s created successfully with role: %s", account.Username, account.Role),
	})
}
