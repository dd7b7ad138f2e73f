package middleware_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/regionalsports/player-registry/registration-service/internal/adapters/cache"
	"github.com/regionalsports/player-registry/registration-service/internal/adapters/middleware"
	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
)

func generateTestKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return privateKey, &privateKey.PublicKey
}

func createTestToken(privateKey *rsa.PrivateKey, role string, jti string, expired bool) string {
	exp := time.Now().Add(time.Hour)
	if expired {
		exp = time.Now().Add(-time.Hour)
	}

	claims := jwt.MapClaims{
		"sub":   "staff-123",
		"name":  "reviewer",
		"email": "reviewer@example.com",
		"role":  role,
		"jti":   jti,
		"exp":   exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, _ := token.SignedString(privateKey)
	return tokenString
}

func newGuardedHandler(publicKey *rsa.PublicKey, denylist *cache.MemoryDenylist, captured *middleware.Identity) http.Handler {
	m := middleware.NewAuthMiddleware(publicKey, denylist)
	return m.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if captured != nil {
				if id, ok := middleware.IdentityFrom(r.Context()); ok {
					*captured = id
				}
			}
			w.WriteHeader(http.StatusOK)
		}))
}

func TestRequireRole_NoAuthHeader(t *testing.T) {
	_, publicKey := generateTestKeys(t)
	handler := newGuardedHandler(publicKey, cache.NewMemoryDenylist(), nil)

	req := httptest.NewRequest("GET", "/admin/players", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_InvalidHeaderFormat(t *testing.T) {
	_, publicKey := generateTestKeys(t)
	handler := newGuardedHandler(publicKey, cache.NewMemoryDenylist(), nil)

	req := httptest.NewRequest("GET", "/admin/players", nil)
	req.Header.Set("Authorization", "InvalidFormat")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_TokenSignedByWrongKey(t *testing.T) {
	otherKey, _ := generateTestKeys(t)
	_, publicKey := generateTestKeys(t)
	handler := newGuardedHandler(publicKey, cache.NewMemoryDenylist(), nil)

	req := httptest.NewRequest("GET", "/admin/players", nil)
	req.Header.Set("Authorization", "Bearer "+createTestToken(otherKey, "admin", "jti-1", false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_ExpiredToken(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	handler := newGuardedHandler(publicKey, cache.NewMemoryDenylist(), nil)

	req := httptest.NewRequest("GET", "/admin/players", nil)
	req.Header.Set("Authorization", "Bearer "+createTestToken(privateKey, "admin", "jti-1", true))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_InsufficientRole(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	handler := newGuardedHandler(publicKey, cache.NewMemoryDenylist(), nil)

	req := httptest.NewRequest("GET", "/admin/players", nil)
	req.Header.Set("Authorization", "Bearer "+createTestToken(privateKey, "viewer", "jti-1", false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_RevokedSession(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	denylist := cache.NewMemoryDenylist()
	if err := denylist.Revoke(context.Background(), "jti-revoked", time.Hour); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	handler := newGuardedHandler(publicKey, denylist, nil)

	req := httptest.NewRequest("GET", "/admin/players", nil)
	req.Header.Set("Authorization", "Bearer "+createTestToken(privateKey, "admin", "jti-revoked", false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked session, got %d", rec.Code)
	}
}

func TestRequireRole_ValidToken(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	var identity middleware.Identity
	handler := newGuardedHandler(publicKey, cache.NewMemoryDenylist(), &identity)

	req := httptest.NewRequest("GET", "/admin/players", nil)
	req.Header.Set("Authorization", "Bearer "+createTestToken(privateKey, "super_admin", "jti-1", false))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if identity.UserID != "staff-123" {
		t.Errorf("UserID = %q, want staff-123", identity.UserID)
	}
	if identity.Role != domain.RoleSuperAdmin {
		t.Errorf("Role = %q, want super_admin", identity.Role)
	}
	if identity.JTI != "jti-1" {
		t.Errorf("JTI = %q, want jti-1", identity.JTI)
	}
}
