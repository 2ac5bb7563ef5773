package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staff-backoffice-backend/internal/database/models"
	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"
	"staff-backoffice-backend/internal/logger"
	"staff-backoffice-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=service.go -destination=../mocks/auth_mocks.go -package=mocks

// Authenticator is the authentication flow consumed by the HTTP layer
type Authenticator interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req *RefreshTokenRequest) (*LoginResponse, error)
	Logout(ctx context.Context, req *LogoutRequest) error
	Me(ctx context.Context) (*MeResponse, error)
}

// LoginRequest represents the credentials posted to the login endpoint
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"admin@example.com"`
	Password string `json:"password" validate:"required,max=72" example:"S3cret!"`
}

// RefreshTokenRequest represents the request for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutRequest represents the request for logout; the refresh token is optional
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserSummary is the identity part of an authentication response
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenantId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// LoginResponse represents the tokens and identity returned by login and refresh
type LoginResponse struct {
	User         UserSummary `json:"user"`
	AccessToken  string      `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string      `json:"refreshToken"`
	TokenType    string      `json:"tokenType" example:"Bearer"`
	ExpiresAt    time.Time   `json:"expiresAt"`
	ExpiresIn    int64       `json:"expiresIn" example:"3600"`
	Roles        []string    `json:"roles"`
	Permissions  []string    `json:"permissions"`
}

// MeResponse describes the authenticated caller
type MeResponse struct {
	User        UserSummary `json:"user"`
	Roles       []string    `json:"roles"`
	Permissions []string    `json:"permissions"`
	LastLoginAt *time.Time  `json:"lastLoginAt,omitempty"`
}

// Ensure AuthService implements Authenticator
var _ Authenticator = (*AuthService)(nil)

// AuthService provides the login, refresh and logout flow
type AuthService struct {
	users         repository.UserRepositoryInterface
	roles         repository.RoleRepositoryInterface
	refreshTokens repository.RefreshTokenRepositoryInterface
	hasher        *PasswordHasher
	tokens        *TokenService
	denylist      *TokenDenylist
	refreshTTL    time.Duration
	validator     *validator.Validate
	now           func() time.Time
	// dummyHash keeps unknown-email logins as slow as wrong-password logins
	dummyHash string
}

// NewAuthService creates a new authentication service
func NewAuthService(
	cfg *AuthConfig,
	users repository.UserRepositoryInterface,
	roles repository.RoleRepositoryInterface,
	refreshTokens repository.RefreshTokenRepositoryInterface,
	hasher *PasswordHasher,
	tokens *TokenService,
	denylist *TokenDenylist,
	validator *validator.Validate,
) (*AuthService, error) {
	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &AuthService{
		users:         users,
		roles:         roles,
		refreshTokens: refreshTokens,
		hasher:        hasher,
		tokens:        tokens,
		denylist:      denylist,
		refreshTTL:    cfg.RefreshTokenLifetime,
		validator:     validator,
		now:           time.Now,
		dummyHash:     dummyHash,
	}, nil
}

// Login authenticates a user by email and password and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	log := logger.WithContext(ctx).WithField("operation", "login")

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		s.hasher.Verify(req.Password, s.dummyHash)
		log.Info("login rejected: unknown email")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.hasher.Verify(req.Password, s.dummyHash)
		log.WithField("user_id", user.ID).Info("login rejected: inactive user")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		log.WithField("user_id", user.ID).Info("login rejected: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	response, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to record last login: %w", err)
	}

	log.WithField("user_id", user.ID).Info("login succeeded")
	return response, nil
}

// Refresh exchanges a refresh token for a new token pair, rotating the refresh token.
// Presenting an already rotated token revokes every session of its user.
func (s *AuthService) Refresh(ctx context.Context, req *RefreshTokenRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	log := logger.WithContext(ctx).WithField("operation", "refresh")

	stored, err := s.refreshTokens.GetByHash(ctx, HashRefreshToken(req.RefreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	if stored.RevokedAt != nil {
		if stored.ReplacedByID != nil {
			log.WithField("user_id", stored.UserID).Warn("rotated refresh token reused; revoking all sessions")
			if err := s.refreshTokens.RevokeAllForUser(ctx, stored.UserID); err != nil {
				return nil, fmt.Errorf("failed to revoke sessions: %w", err)
			}
		}
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if !stored.Usable(s.now()) {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, stored.TenantID, stored.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.refreshTokens.Revoke(ctx, stored.ID)
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		_ = s.refreshTokens.Revoke(ctx, stored.ID)
		return nil, apperrors.ErrInvalidRefreshToken
	}

	session, err := s.buildSession(ctx, user)
	if err != nil {
		return nil, err
	}

	refreshToken, next, err := s.newRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Rotate(ctx, stored, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost a race with a concurrent refresh of the same token
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	session.RefreshToken = refreshToken

	log.WithField("user_id", user.ID).Info("refresh token rotated")
	return session, nil
}

// Logout revokes the presented refresh token and denies the caller's access token
func (s *AuthService) Logout(ctx context.Context, req *LogoutRequest) error {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return apperrors.ErrMissingIdentity
	}

	if req != nil && req.RefreshToken != "" {
		stored, err := s.refreshTokens.GetByHash(ctx, HashRefreshToken(req.RefreshToken))
		switch {
		case err == nil && stored.UserID == id.UserID:
			if err := s.refreshTokens.Revoke(ctx, stored.ID); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to load refresh token: %w", err)
		}
	}

	s.denylist.Revoke(id.TokenID, id.ExpiresAt)
	logger.WithContext(ctx).Info("logged out")
	return nil
}

// Me returns the authenticated caller with fresh profile data
func (s *AuthService) Me(ctx context.Context) (*MeResponse, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrMissingIdentity
	}

	user, err := s.users.GetByID(ctx, id.TenantID, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &MeResponse{
		User:        toUserSummary(user),
		Roles:       id.Roles,
		Permissions: id.Permissions,
		LastLoginAt: user.LastLoginAt,
	}, nil
}

// issueSession builds the access token and persists a fresh refresh token
func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*LoginResponse, error) {
	session, err := s.buildSession(ctx, user)
	if err != nil {
		return nil, err
	}

	refreshToken, record, err := s.newRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	session.RefreshToken = refreshToken
	return session, nil
}

// buildSession resolves roles and permissions inside the user's own branch and signs an access token
func (s *AuthService) buildSession(ctx context.Context, user *models.User) (*LoginResponse, error) {
	assigned, err := s.users.GetRoles(ctx, user.TenantID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}

	roleNames := make([]string, 0, len(assigned))
	roleIDs := make([]uuid.UUID, 0, len(assigned))
	for _, role := range assigned {
		if !role.IsActive {
			continue
		}
		roleNames = append(roleNames, role.Name)
		roleIDs = append(roleIDs, role.ID)
	}
	if len(roleIDs) == 0 {
		logger.WithContext(ctx).WithField("user_id", user.ID).Info("login rejected: no roles in branch")
		return nil, apperrors.ErrNoRolesInTenant
	}

	codes, err := s.roles.GetActivePermissionCodes(ctx, user.TenantID, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}
	codes = distinct(codes)

	accessToken, expiresAt, err := s.tokens.IssueAccessToken(&identity.Identity{
		UserID:      user.ID,
		TenantID:    user.TenantID,
		Email:       user.Email,
		Roles:       roleNames,
		Permissions: codes,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:        toUserSummary(user),
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		ExpiresIn:   int64(s.tokens.AccessTokenLifetime().Seconds()),
		Roles:       roleNames,
		Permissions: codes,
	}, nil
}

// newRefreshToken mints a refresh token and the record holding its hash
func (s *AuthService) newRefreshToken(user *models.User) (string, *models.RefreshToken, error) {
	token, err := s.tokens.IssueRefreshToken()
	if err != nil {
		return "", nil, err
	}
	record := &models.RefreshToken{
		TenantModel: models.TenantModel{
			ID:        uuid.New(),
			TenantID:  user.TenantID,
			CreatedBy: user.ID,
		},
		UserID:    user.ID,
		TokenHash: HashRefreshToken(token),
		ExpiresAt: s.now().UTC().Add(s.refreshTTL),
	}
	return token, record, nil
}

func toUserSummary(user *models.User) UserSummary {
	return UserSummary{
		ID:        user.ID,
		TenantID:  user.TenantID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
