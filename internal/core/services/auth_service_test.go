package services_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/regionalsports/player-registry/registration-service/internal/adapters/cache"
	"github.com/regionalsports/player-registry/registration-service/internal/adapters/repository"
	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/services"
)

const testSetupKey = "test-setup-key"

func newAuthService(t *testing.T) (*services.AuthService, *repository.MemoryStaffRepository, *cache.MemoryDenylist, *rsa.PrivateKey) {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	staff := repository.NewMemoryStaffRepository()
	denylist := cache.NewMemoryDenylist()
	return services.NewAuthService(staff, denylist, privateKey, testSetupKey), staff, denylist, privateKey
}

func TestProvisionAccount_FirstIsSuperAdmin(t *testing.T) {
	service, _, _, _ := newAuthService(t)
	ctx := context.Background()

	first, err := service.ProvisionAccount(ctx, testSetupKey, "root", "hunter2!", "root@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Role != domain.RoleSuperAdmin {
		t.Errorf("expected first account to be super_admin, got %q", first.Role)
	}

	second, err := service.ProvisionAccount(ctx, testSetupKey, "reviewer", "hunter2!", "reviewer@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Role != domain.RoleAdmin {
		t.Errorf("expected second account to be admin, got %q", second.Role)
	}
}

func TestProvisionAccount_SetupKeyGate(t *testing.T) {
	service, _, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := service.ProvisionAccount(ctx, "wrong-key", "root", "hunter2!", "root@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for wrong key, got %v", err)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	unconfigured := services.NewAuthService(repository.NewMemoryStaffRepository(), cache.NewMemoryDenylist(), privateKey, "")
	if _, err := unconfigured.ProvisionAccount(ctx, "", "root", "hunter2!", "root@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden when setup is unconfigured, got %v", err)
	}
}

func TestProvisionAccount_Conflicts(t *testing.T) {
	service, _, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := service.ProvisionAccount(ctx, testSetupKey, "root", "hunter2!", "root@example.com"); err != nil {
		t.Fatalf("seed provision failed: %v", err)
	}

	_, err := service.ProvisionAccount(ctx, testSetupKey, "root", "hunter2!", "other@example.com")
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) || conflictErr.Field != "username" {
		t.Fatalf("expected username conflict, got %v", err)
	}

	_, err = service.ProvisionAccount(ctx, testSetupKey, "other", "hunter2!", "root@example.com")
	if !errors.As(err, &conflictErr) || conflictErr.Field != "email" {
		t.Fatalf("expected email conflict, got %v", err)
	}
}

func TestProvisionAccount_MissingFields(t *testing.T) {
	service, _, _, _ := newAuthService(t)

	_, err := service.ProvisionAccount(context.Background(), testSetupKey, "", "", "root@example.com")
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	service, staff, _, privateKey := newAuthService(t)
	ctx := context.Background()

	account, err := service.ProvisionAccount(ctx, testSetupKey, "root", "hunter2!", "root@example.com")
	if err != nil {
		t.Fatalf("seed provision failed: %v", err)
	}

	t.Run("success_issues_signed_token", func(t *testing.T) {
		tokenString, user, err := service.Login(ctx, "root", "hunter2!")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != account.ID {
			t.Errorf("expected account %q, got %q", account.ID, user.ID)
		}

		token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
			return &privateKey.PublicKey, nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("token does not verify: %v", err)
		}
		claims := token.Claims.(jwt.MapClaims)
		if claims["sub"] != account.ID {
			t.Errorf("sub = %v, want %q", claims["sub"], account.ID)
		}
		if claims["role"] != string(domain.RoleSuperAdmin) {
			t.Errorf("role = %v, want super_admin", claims["role"])
		}
		if claims["name"] != "root" || claims["email"] != "root@example.com" {
			t.Errorf("identity claims wrong: name=%v email=%v", claims["name"], claims["email"])
		}
		if jti, _ := claims["jti"].(string); jti == "" {
			t.Error("expected a jti claim")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, _, err := service.Login(ctx, "root", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, _, err := service.Login(ctx, "ghost", "hunter2!")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("hash_never_matches_plaintext", func(t *testing.T) {
		stored, err := staff.FindByUsername(ctx, "root")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.PasswordHash == "hunter2!" {
			t.Error("password stored in plaintext")
		}
	})
}

func TestLogout_RevokesSession(t *testing.T) {
	service, _, denylist, privateKey := newAuthService(t)
	ctx := context.Background()

	if _, err := service.ProvisionAccount(ctx, testSetupKey, "root", "hunter2!", "root@example.com"); err != nil {
		t.Fatalf("seed provision failed: %v", err)
	}
	tokenString, _, err := service.Login(ctx, "root", "hunter2!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return &privateKey.PublicKey, nil
	})
	if err != nil {
		t.Fatalf("token parse failed: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	jti := claims["jti"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("no expiry claim: %v", err)
	}

	if err := service.Logout(ctx, jti, exp.Time); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	revoked, err := denylist.IsRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !revoked {
		t.Error("expected session to be revoked")
	}
}
