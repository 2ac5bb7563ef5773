package auth

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"staff-backoffice-backend/internal/config"
	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret:            "test-signing-key-with-enough-length",
		Issuer:               "staff-backoffice-backend",
		Audience:             "staff-backoffice-admin",
		AccessTokenLifetime:  15 * time.Minute,
		RefreshTokenLifetime: 7 * 24 * time.Hour,
		BcryptCost:           bcrypt.MinCost,
	}
}

func testIdentity() *identity.Identity {
	return &identity.Identity{
		UserID:      uuid.New(),
		TenantID:    uuid.New(),
		Email:       "ana@example.com",
		Roles:       []string{"Cajero", "Supervisor"},
		Permissions: []string{"POS.Sell", "POS.Refund"},
	}
}

func TestAuthConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, testAuthConfig().ValidateConfig())
	})

	t.Run("missing values", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.ValidateConfig())

		cfg = testAuthConfig()
		cfg.Audience = ""
		assert.Error(t, cfg.ValidateConfig())

		cfg = testAuthConfig()
		cfg.AccessTokenLifetime = 0
		assert.Error(t, cfg.ValidateConfig())
	})

	t.Run("derived from application config", func(t *testing.T) {
		cfg := NewAuthConfig(&config.Config{
			JWTSecret:          "secret",
			JWTIssuer:          "issuer",
			JWTAudience:        "audience",
			AccessTokenMinutes: 30,
			RefreshTokenDays:   2,
			BcryptCost:         11,
		})
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenLifetime)
		assert.Equal(t, 48*time.Hour, cfg.RefreshTokenLifetime)
		assert.Equal(t, 11, cfg.BcryptCost)
	})
}

func TestLoadPolicies(t *testing.T) {
	t.Run("missing file yields nothing", func(t *testing.T) {
		dir := t.TempDir()
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		defer func() { _ = os.Chdir(wd) }()

		policies, err := LoadPolicies("")
		assert.NoError(t, err)
		assert.Empty(t, policies)
	})

	t.Run("reads permission and role requirements", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policies.yaml")
		content := `policies:
  - name: Reports.Read
    permissions: [Reports.Read]
    roles: [Gerente, Supervisor]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		policies, err := LoadPolicies(path)
		require.NoError(t, err)
		require.Len(t, policies, 1)
		assert.Equal(t, "Reports.Read", policies[0].Name)
		require.Len(t, policies[0].Requirements, 2)
		assert.Equal(t, PermissionRequirement{Code: "Reports.Read"}, policies[0].Requirements[0])
		assert.Equal(t, RoleRequirement{AnyOf: []string{"Gerente", "Supervisor"}}, policies[0].Requirements[1])
	})

	t.Run("rejects unnamed policies", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policies.yaml")
		require.NoError(t, os.WriteFile(path, []byte("policies:\n  - permissions: [X]\n"), 0o600))

		_, err := LoadPolicies(path)
		assert.Error(t, err)
	})
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	t.Run("hash then verify", func(t *testing.T) {
		hash, err := hasher.Hash("S3cret!")
		require.NoError(t, err)
		assert.NotEqual(t, "S3cret!", hash)
		assert.True(t, hasher.Verify("S3cret!", hash))
		assert.False(t, hasher.Verify("s3cret!", hash))
	})

	t.Run("salted", func(t *testing.T) {
		first, err := hasher.Hash("S3cret!")
		require.NoError(t, err)
		second, err := hasher.Hash("S3cret!")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("malformed hashes never match", func(t *testing.T) {
		for _, hash := range []string{"", "not-a-hash", "$2a$10$short", "$2a$99$" + string(make([]byte, 53))} {
			assert.NotPanics(t, func() {
				assert.False(t, hasher.Verify("S3cret!", hash))
			})
		}
	})

	t.Run("cost is clamped", func(t *testing.T) {
		assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
		assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).cost)
		assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).cost)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())
	id := testIdentity()

	token, expiresAt, err := tokens.IssueAccessToken(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	got, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, got.UserID)
	assert.Equal(t, id.TenantID, got.TenantID)
	assert.Equal(t, id.Email, got.Email)
	assert.ElementsMatch(t, id.Roles, got.Roles)
	assert.ElementsMatch(t, id.Permissions, got.Permissions)
	assert.NotEmpty(t, got.TokenID)
	assert.Equal(t, expiresAt.Unix(), got.ExpiresAt.Unix())
}

func TestTokenClaimsLayout(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())
	id := testIdentity()

	token, _, err := tokens.IssueAccessToken(id)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, id.UserID.String(), claims["sub"])
	assert.Equal(t, id.TenantID.String(), claims["tenant_id"])
	assert.Equal(t, []interface{}{"Cajero", "Supervisor"}, claims["role"])
	assert.Equal(t, []interface{}{"POS.Sell", "POS.Refund"}, claims["permission"])
	assert.Equal(t, "staff-backoffice-backend", claims["iss"])
	assert.NotEmpty(t, claims["jti"])
}

func TestTokenExpiryHasNoClockSkew(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	tokens := NewTokenService(testAuthConfig()).WithClock(func() time.Time { return now })

	token, expiresAt, err := tokens.IssueAccessToken(testIdentity())
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(15*time.Minute), expiresAt)

	now = expiresAt.Add(-time.Second)
	_, err = tokens.Validate(token)
	assert.NoError(t, err)

	now = expiresAt.Add(time.Second)
	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenRejections(t *testing.T) {
	cfg := testAuthConfig()
	tokens := NewTokenService(cfg)
	valid, _, err := tokens.IssueAccessToken(testIdentity())
	require.NoError(t, err)

	otherSecret := testAuthConfig()
	otherSecret.JWTSecret = "a-different-signing-key"
	foreign, _, err := NewTokenService(otherSecret).IssueAccessToken(testIdentity())
	require.NoError(t, err)

	otherIssuer := testAuthConfig()
	otherIssuer.Issuer = "someone-else"
	wrongIssuer, _, err := NewTokenService(otherIssuer).IssueAccessToken(testIdentity())
	require.NoError(t, err)

	otherAudience := testAuthConfig()
	otherAudience.Audience = "pos-terminal"
	wrongAudience, _, err := NewTokenService(otherAudience).IssueAccessToken(testIdentity())
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":       uuid.NewString(),
		"tenant_id": uuid.NewString(),
		"iss":       cfg.Issuer,
		"aud":       cfg.Audience,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noTenant, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": cfg.Issuer,
		"aud": cfg.Audience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       uuid.NewString(),
		"tenant_id": uuid.NewString(),
		"iss":       cfg.Issuer,
		"aud":       cfg.Audience,
	}).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	sigStart := strings.LastIndex(valid, ".") + 1
	replacement := "A"
	if valid[sigStart] == 'A' {
		replacement = "B"
	}
	tampered := valid[:sigStart] + replacement + valid[sigStart+1:]

	cases := map[string]string{
		"tampered signature": tampered,
		"different secret":   foreign,
		"wrong issuer":       wrongIssuer,
		"wrong audience":     wrongAudience,
		"alg none":           unsigned,
		"missing tenant":     noTenant,
		"missing expiry":     noExpiry,
		"garbage":            "not.a.token",
		"empty":              "",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			id, err := tokens.Validate(token)
			assert.Nil(t, id)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
		})
	}
}

func TestIssueAccessTokenRequiresIdentity(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())

	_, _, err := tokens.IssueAccessToken(nil)
	assert.Error(t, err)

	_, _, err = tokens.IssueAccessToken(&identity.Identity{UserID: uuid.New()})
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	tokens := NewTokenService(testAuthConfig())

	first, err := tokens.IssueRefreshToken()
	require.NoError(t, err)
	second, err := tokens.IssueRefreshToken()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.NotEqual(t, first, second)

	assert.Len(t, HashRefreshToken(first), 64)
	assert.Equal(t, HashRefreshToken(first), HashRefreshToken(first))
	assert.NotEqual(t, HashRefreshToken(first), HashRefreshToken(second))
}

func TestTokenDenylist(t *testing.T) {
	denylist := NewTokenDenylist(time.Minute)

	denylist.Revoke("jti-1", time.Now().Add(time.Minute))
	denylist.Revoke("jti-expired", time.Now().Add(-time.Minute))
	denylist.Revoke("", time.Now().Add(time.Minute))

	assert.True(t, denylist.IsRevoked("jti-1"))
	assert.False(t, denylist.IsRevoked("jti-expired"))
	assert.False(t, denylist.IsRevoked("jti-2"))
	assert.False(t, denylist.IsRevoked(""))
}
