package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// respondError maps the domain failure taxonomy onto HTTP statuses and the
// response envelope. Unexpected errors are logged server-side and surfaced
// as a generic 500.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &conflictErr):
		writeError(w, http.StatusConflict, conflictErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Player not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, domain.ErrForbidden):
		message := "Insufficient permissions"
		var forbiddenErr *domain.ForbiddenError
		if errors.As(err, &forbiddenErr) {
			message = forbiddenErr.Reason
		}
		writeError(w, http.StatusForbidden, message)
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
