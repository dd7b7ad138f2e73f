package handler

import (
	"encoding/json"
	"net/http"

	"github.com/regionalsports/player-registry/registration-service/internal/adapters/middleware"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
	"github.com/regionalsports/player-registry/registration-service/internal/metrics"
)

type AuthHandler struct {
	auth    ports.AuthService
	metrics *metrics.Metrics
}

func NewAuthHandler(auth ports.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{auth: auth, metrics: m}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, account, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	h.metrics.Logins.Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": map[string]any{
			"id":    account.ID,
			"name":  account.Username,
			"email": account.Email,
			"role":  account.Role,
		},
	})
}

// Logout revokes the presented session. The route sits behind RequireRole, so
// a validated identity is always present in the context.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.auth.Logout(r.Context(), identity.JTI, identity.ExpiresAt); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}
