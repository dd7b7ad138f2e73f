package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
)

type AuthMiddleware struct {
	publicKey *rsa.PublicKey
	denylist  ports.SessionDenylist
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, denylist ports.SessionDenylist) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
		denylist:  denylist,
	}
}

// Identity is the validated session placed into the request context.
type Identity struct {
	UserID    string
	Name      string
	Email     string
	Role      domain.Role
	JTI       string
	ExpiresAt time.Time
}

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom returns the session identity set by RequireRole.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireRole validates the Bearer token, rejects revoked sessions and
// enforces role membership. 401 for a missing or invalid token, 403 for a
// valid token with an insufficient role.
func (m *AuthMiddleware) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return m.publicKey, nil
			})
			if err != nil || !token.Valid {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			identity, ok := identityFromClaims(claims)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			// A failed denylist lookup (redis down, breaker open) is logged
			// and treated as not revoked; the token is still signed and
			// unexpired.
			revoked, err := m.denylist.IsRevoked(r.Context(), identity.JTI)
			if err != nil {
				log.Printf("session denylist check failed: %v", err)
			}
			if revoked {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			allowed := false
			for _, role := range roles {
				if identity.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				writeAuthError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFromClaims(claims jwt.MapClaims) (Identity, bool) {
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return Identity{}, false
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Identity{}, false
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return Identity{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return Identity{}, false
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return Identity{
		UserID:    userID,
		Name:      name,
		Email:     email,
		Role:      domain.Role(role),
		JTI:       jti,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, true
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	}); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
