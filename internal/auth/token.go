package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// refreshTokenBytes is the entropy of an issued refresh token
const refreshTokenBytes = 64

// AccessClaims represents the access token claims
type AccessClaims struct {
	TenantID             string   `json:"tenant_id" example:"5f0c6a1e-0b7e-4d1c-9c5c-2f1d7c1c2a10"`
	Email                string   `json:"email,omitempty" example:"ana@example.com"`
	Roles                []string `json:"role,omitempty" example:"Administrador"`
	Permissions          []string `json:"permission,omitempty" example:"POS.Sell"`
	jwt.RegisteredClaims `swaggerignore:"true"`
}

// TokenService issues and validates access tokens and mints refresh tokens
type TokenService struct {
	secret    []byte
	issuer    string
	audience  string
	accessTTL time.Duration
	now       func() time.Time
}

// NewTokenService creates a token service from the auth configuration
func NewTokenService(cfg *AuthConfig) *TokenService {
	return &TokenService{
		secret:    []byte(cfg.JWTSecret),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		accessTTL: cfg.AccessTokenLifetime,
		now:       time.Now,
	}
}

// WithClock replaces the time source, for tests
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// AccessTokenLifetime returns the configured access token lifetime
func (s *TokenService) AccessTokenLifetime() time.Duration {
	return s.accessTTL
}

// IssueAccessToken signs an HS256 access token for id and returns it with its expiry
func (s *TokenService) IssueAccessToken(id *identity.Identity) (string, time.Time, error) {
	if id == nil || id.UserID == uuid.Nil || id.TenantID == uuid.Nil {
		return "", time.Time{}, fmt.Errorf("identity with user and tenant is required")
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.accessTTL)
	claims := &AccessClaims{
		TenantID:    id.TenantID.String(),
		Email:       id.Email,
		Roles:       id.Roles,
		Permissions: id.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// IssueRefreshToken returns 64 random bytes, base64 encoded
func (s *TokenService) IssueRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Validate checks signature, issuer, audience and expiry with no clock skew.
// Every failure is reported as ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*identity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return nil, apperrors.ErrInvalidToken
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil || tenantID == uuid.Nil {
		return nil, apperrors.ErrInvalidToken
	}

	roles := claims.Roles
	if roles == nil {
		roles = []string{}
	}
	permissions := claims.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	return &identity.Identity{
		UserID:      userID,
		TenantID:    tenantID,
		Email:       claims.Email,
		Roles:       roles,
		Permissions: permissions,
		TokenID:     claims.ID,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// HashRefreshToken returns the hex SHA-256 digest stored in place of a refresh token
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
