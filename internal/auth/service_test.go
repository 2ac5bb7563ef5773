package auth_test

import (
	"context"
	"testing"
	"time"

	"staff-backoffice-backend/internal/auth"
	"staff-backoffice-backend/internal/database/models"
	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"
	"staff-backoffice-backend/internal/mocks"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	mockUsers         *mocks.MockUserRepositoryInterface
	mockRoles         *mocks.MockRoleRepositoryInterface
	mockRefreshTokens *mocks.MockRefreshTokenRepositoryInterface
	hasher            *auth.PasswordHasher
	tokens            *auth.TokenService
	denylist          *auth.TokenDenylist
	service           *auth.AuthService
	user              *models.User
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUsers = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockRoles = mocks.NewMockRoleRepositoryInterface(suite.ctrl)
	suite.mockRefreshTokens = mocks.NewMockRefreshTokenRepositoryInterface(suite.ctrl)

	cfg := &auth.AuthConfig{
		JWTSecret:            "test-signing-key-with-enough-length",
		Issuer:               "staff-backoffice-backend",
		Audience:             "staff-backoffice-admin",
		AccessTokenLifetime:  15 * time.Minute,
		RefreshTokenLifetime: 7 * 24 * time.Hour,
		BcryptCost:           bcrypt.MinCost,
	}
	suite.hasher = auth.NewPasswordHasher(cfg.BcryptCost)
	suite.tokens = auth.NewTokenService(cfg)
	suite.denylist = auth.NewTokenDenylist(time.Minute)

	var err error
	suite.service, err = auth.NewAuthService(cfg, suite.mockUsers, suite.mockRoles, suite.mockRefreshTokens,
		suite.hasher, suite.tokens, suite.denylist, validator.New())
	suite.Require().NoError(err)

	hash, err := suite.hasher.Hash("S3cret!")
	suite.Require().NoError(err)
	suite.user = &models.User{
		TenantModel:  models.TenantModel{ID: uuid.New(), TenantID: uuid.New()},
		Email:        "ana@example.com",
		PasswordHash: hash,
		FirstName:    "Ana",
		LastName:     "Pérez",
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthServiceTestSuite) role(name string, active bool) models.Role {
	return models.Role{
		TenantModel: models.TenantModel{ID: uuid.New(), TenantID: suite.user.TenantID},
		Name:        name,
		IsActive:    active,
	}
}

func (suite *AuthServiceTestSuite) login(password string) (*auth.LoginResponse, error) {
	return suite.service.Login(context.Background(), &auth.LoginRequest{Email: suite.user.Email, Password: password})
}

func (suite *AuthServiceTestSuite) TestLoginIssuesTokensWithDistinctPermissions() {
	cajero := suite.role("Cajero", true)
	supervisor := suite.role("Supervisor", true)
	retired := suite.role("Retirado", false)

	suite.mockUsers.EXPECT().GetByEmail(gomock.Any(), suite.user.Email).Return(suite.user, nil)
	suite.mockUsers.EXPECT().GetRoles(gomock.Any(), suite.user.TenantID, suite.user.ID).Return([]models.Role{cajero, supervisor, retired}, nil)
	suite.mockRoles.EXPECT().
		GetActivePermissionCodes(gomock.Any(), suite.user.TenantID, []uuid.UUID{cajero.ID, supervisor.ID}).
		Return([]string{"POS.Sell", "POS.Sell", "POS.Refund"}, nil)
	suite.mockRefreshTokens.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, token *models.RefreshToken) error {
			suite.Equal(suite.user.ID, token.UserID)
			suite.Equal(suite.user.TenantID, token.TenantID)
			suite.Len(token.TokenHash, 64)
			return nil
		})
	suite.mockUsers.EXPECT().UpdateLastLogin(gomock.Any(), suite.user.ID, gomock.Any()).Return(nil)

	response, err := suite.login("S3cret!")

	suite.Require().NoError(err)
	suite.Equal([]string{"Cajero", "Supervisor"}, response.Roles)
	suite.Equal([]string{"POS.Sell", "POS.Refund"}, response.Permissions)
	suite.Equal("Bearer", response.TokenType)
	suite.Equal(int64(900), response.ExpiresIn)
	suite.NotEmpty(response.RefreshToken)

	id, err := suite.tokens.Validate(response.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(suite.user.ID, id.UserID)
	suite.Equal(suite.user.TenantID, id.TenantID)
	suite.Equal([]string{"POS.Sell", "POS.Refund"}, id.Permissions)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	suite.mockUsers.EXPECT().GetByEmail(gomock.Any(), suite.user.Email).Return(suite.user, nil)

	response, err := suite.login("wrong")

	suite.Nil(response)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	suite.mockUsers.EXPECT().GetByEmail(gomock.Any(), suite.user.Email).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.login("S3cret!")

	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginInactiveUser() {
	suite.user.IsActive = false
	suite.mockUsers.EXPECT().GetByEmail(gomock.Any(), suite.user.Email).Return(suite.user, nil)

	_, err := suite.login("S3cret!")

	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginWithoutRolesInBranch() {
	suite.mockUsers.EXPECT().GetByEmail(gomock.Any(), suite.user.Email).Return(suite.user, nil)
	suite.mockUsers.EXPECT().GetRoles(gomock.Any(), suite.user.TenantID, suite.user.ID).Return([]models.Role{}, nil)

	_, err := suite.login("S3cret!")

	suite.ErrorIs(err, apperrors.ErrNoRolesInTenant)
	suite.True(apperrors.IsAuthentication(err))
}

func (suite *AuthServiceTestSuite) TestLoginOnlyInactiveRoles() {
	suite.mockUsers.EXPECT().GetByEmail(gomock.Any(), suite.user.Email).Return(suite.user, nil)
	suite.mockUsers.EXPECT().GetRoles(gomock.Any(), suite.user.TenantID, suite.user.ID).Return([]models.Role{suite.role("Retirado", false)}, nil)

	_, err := suite.login("S3cret!")

	suite.ErrorIs(err, apperrors.ErrNoRolesInTenant)
}

func (suite *AuthServiceTestSuite) TestLoginValidation() {
	_, err := suite.service.Login(context.Background(), &auth.LoginRequest{Email: "not-an-email", Password: "x"})

	suite.True(apperrors.IsValidation(err))
}

func (suite *AuthServiceTestSuite) storedToken(raw string) *models.RefreshToken {
	return &models.RefreshToken{
		TenantModel: models.TenantModel{ID: uuid.New(), TenantID: suite.user.TenantID},
		UserID:      suite.user.ID,
		TokenHash:   auth.HashRefreshToken(raw),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func (suite *AuthServiceTestSuite) TestRefreshRotatesToken() {
	stored := suite.storedToken("old-refresh-token")
	cajero := suite.role("Cajero", true)

	suite.mockRefreshTokens.EXPECT().GetByHash(gomock.Any(), stored.TokenHash).Return(stored, nil)
	suite.mockUsers.EXPECT().GetByID(gomock.Any(), suite.user.TenantID, suite.user.ID).Return(suite.user, nil)
	suite.mockUsers.EXPECT().GetRoles(gomock.Any(), suite.user.TenantID, suite.user.ID).Return([]models.Role{cajero}, nil)
	suite.mockRoles.EXPECT().GetActivePermissionCodes(gomock.Any(), suite.user.TenantID, []uuid.UUID{cajero.ID}).Return([]string{"POS.Sell"}, nil)
	suite.mockRefreshTokens.EXPECT().
		Rotate(gomock.Any(), stored, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.RefreshToken, next *models.RefreshToken) error {
			suite.NotEqual(stored.TokenHash, next.TokenHash)
			return nil
		})

	response, err := suite.service.Refresh(context.Background(), &auth.RefreshTokenRequest{RefreshToken: "old-refresh-token"})

	suite.Require().NoError(err)
	suite.NotEqual("old-refresh-token", response.RefreshToken)
	suite.Equal([]string{"POS.Sell"}, response.Permissions)
}

func (suite *AuthServiceTestSuite) TestRefreshReuseRevokesAllSessions() {
	stored := suite.storedToken("rotated-token")
	revokedAt := time.Now().Add(-time.Minute)
	replacedBy := uuid.New()
	stored.RevokedAt = &revokedAt
	stored.ReplacedByID = &replacedBy

	suite.mockRefreshTokens.EXPECT().GetByHash(gomock.Any(), stored.TokenHash).Return(stored, nil)
	suite.mockRefreshTokens.EXPECT().RevokeAllForUser(gomock.Any(), suite.user.ID).Return(nil)

	_, err := suite.service.Refresh(context.Background(), &auth.RefreshTokenRequest{RefreshToken: "rotated-token"})

	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *AuthServiceTestSuite) TestRefreshExpiredOrUnknown() {
	expired := suite.storedToken("expired-token")
	expired.ExpiresAt = time.Now().Add(-time.Second)

	suite.mockRefreshTokens.EXPECT().GetByHash(gomock.Any(), expired.TokenHash).Return(expired, nil)
	_, err := suite.service.Refresh(context.Background(), &auth.RefreshTokenRequest{RefreshToken: "expired-token"})
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)

	suite.mockRefreshTokens.EXPECT().GetByHash(gomock.Any(), auth.HashRefreshToken("unknown")).Return(nil, gorm.ErrRecordNotFound)
	_, err = suite.service.Refresh(context.Background(), &auth.RefreshTokenRequest{RefreshToken: "unknown"})
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *AuthServiceTestSuite) TestRefreshForDeactivatedUser() {
	stored := suite.storedToken("refresh-token")
	suite.user.IsActive = false

	suite.mockRefreshTokens.EXPECT().GetByHash(gomock.Any(), stored.TokenHash).Return(stored, nil)
	suite.mockUsers.EXPECT().GetByID(gomock.Any(), suite.user.TenantID, suite.user.ID).Return(suite.user, nil)
	suite.mockRefreshTokens.EXPECT().Revoke(gomock.Any(), stored.ID).Return(nil)

	_, err := suite.service.Refresh(context.Background(), &auth.RefreshTokenRequest{RefreshToken: "refresh-token"})

	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *AuthServiceTestSuite) TestLogoutRevokesRefreshAndAccessToken() {
	accessToken, _, err := suite.tokens.IssueAccessToken(&identity.Identity{
		UserID:   suite.user.ID,
		TenantID: suite.user.TenantID,
		Roles:    []string{"Cajero"},
	})
	suite.Require().NoError(err)
	id, err := suite.tokens.Validate(accessToken)
	suite.Require().NoError(err)
	ctx := identity.WithIdentity(context.Background(), id)

	stored := suite.storedToken("refresh-token")
	suite.mockRefreshTokens.EXPECT().GetByHash(gomock.Any(), stored.TokenHash).Return(stored, nil)
	suite.mockRefreshTokens.EXPECT().Revoke(gomock.Any(), stored.ID).Return(nil)

	suite.Require().NoError(suite.service.Logout(ctx, &auth.LogoutRequest{RefreshToken: "refresh-token"}))
	suite.True(suite.denylist.IsRevoked(id.TokenID))
}

func (suite *AuthServiceTestSuite) TestLogoutIgnoresRefreshTokenOfAnotherUser() {
	ctx := identity.WithIdentity(context.Background(), &identity.Identity{
		UserID:    uuid.New(),
		TenantID:  suite.user.TenantID,
		TokenID:   "jti-123",
		ExpiresAt: time.Now().Add(time.Minute),
	})

	stored := suite.storedToken("someone-elses-token")
	suite.mockRefreshTokens.EXPECT().GetByHash(gomock.Any(), stored.TokenHash).Return(stored, nil)

	suite.Require().NoError(suite.service.Logout(ctx, &auth.LogoutRequest{RefreshToken: "someone-elses-token"}))
	suite.True(suite.denylist.IsRevoked("jti-123"))
}

func (suite *AuthServiceTestSuite) TestLogoutRequiresIdentity() {
	err := suite.service.Logout(context.Background(), &auth.LogoutRequest{})

	suite.ErrorIs(err, apperrors.ErrMissingIdentity)
}

func (suite *AuthServiceTestSuite) TestMe() {
	ctx := identity.WithIdentity(context.Background(), &identity.Identity{
		UserID:      suite.user.ID,
		TenantID:    suite.user.TenantID,
		Roles:       []string{"Cajero"},
		Permissions: []string{"POS.Sell"},
	})
	suite.mockUsers.EXPECT().GetByID(gomock.Any(), suite.user.TenantID, suite.user.ID).Return(suite.user, nil)

	response, err := suite.service.Me(ctx)

	suite.Require().NoError(err)
	suite.Equal(suite.user.Email, response.User.Email)
	suite.Equal([]string{"Cajero"}, response.Roles)
	suite.Equal([]string{"POS.Sell"}, response.Permissions)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
