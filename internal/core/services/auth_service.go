package services

import (
	"context"
	"crypto/rsa"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
)

const sessionTTL = 24 * time.Hour

type AuthService struct {
	staff      ports.StaffRepository
	denylist   ports.SessionDenylist
	privateKey *rsa.PrivateKey
	setupKey   string
	now        func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	staff ports.StaffRepository,
	denylist ports.SessionDenylist,
	privateKey *rsa.PrivateKey,
	setupKey string,
) *AuthService {
	return &AuthService{
		staff:      staff,
		denylist:   denylist,
		privateKey: privateKey,
		setupKey:   setupKey,
		now:        time.Now,
	}
}

// Login verifies the credentials and issues a signed session token carrying
// the account's id, name, email and role. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.StaffAccount, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.staff.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"name":  account.Username,
		"email": account.Email,
		"role":  string(account.Role),
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", nil, err
	}
	return signed, account, nil
}

// Logout revokes the session until its token would have expired anyway.
// Already-expired tokens need no denylist entry.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, jti, ttl)
}

// ProvisionAccount creates a staff account. It is gated by a shared setup key
// configured out-of-band: a missing or mismatched key is forbidden. The first
// account ever created becomes super_admin, all later ones default to admin.
func (s *AuthService) ProvisionAccount(ctx context.Context, setupKey, username, password, email string) (*domain.StaffAccount, error) {
	if s.setupKey == "" {
		return nil, &domain.ForbiddenError{Reason: "Staff setup is not configured on this server."}
	}
	if subtle.ConstantTimeCompare([]byte(setupKey), []byte(s.setupKey)) != 1 {
		return nil, &domain.ForbiddenError{Reason: "Invalid setup key."}
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"username", username},
		{"password", password},
		{"email", email},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Fields: missing}
	}

	count, err := s.staff.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := domain.RoleAdmin
	if count == 0 {
		role = domain.RoleSuperAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := domain.StaffAccount{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.staff.Create(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}
