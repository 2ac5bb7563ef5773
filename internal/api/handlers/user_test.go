package handlers_test

import (
	"net/http"
	"testing"

	"staff-backoffice-backend/internal/api/handlers"
	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"
	"staff-backoffice-backend/internal/mocks"
	"staff-backoffice-backend/internal/service"
	"staff-backoffice-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockUserServiceInterface
	handler     *handlers.UserHandler
	httpSuite   *testutils.HTTPTestSuite
}

func (suite *UserHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockUserServiceInterface(suite.ctrl)
	suite.handler = handlers.NewUserHandler(suite.mockService)

	suite.httpSuite = testutils.SetupHTTPTestAs(&identity.Identity{UserID: uuid.New(), TenantID: uuid.New()})
	users := suite.httpSuite.Router.Group("/api/v1/users")
	{
		users.POST("", suite.handler.CreateUser)
		users.GET("", suite.handler.ListUsers)
		users.GET("/:id", suite.handler.GetUser)
		users.PUT("/:id", suite.handler.UpdateUser)
		users.DELETE("/:id", suite.handler.DeleteUser)
		users.PUT("/:id/roles", suite.handler.AssignRoles)
		users.PUT("/:id/password", suite.handler.ChangePassword)
	}
}

func (suite *UserHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *UserHandlerTestSuite) TestCreateUser() {
	roleID := uuid.New()

	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().
			CreateUser(gomock.Any(), &service.CreateUserRequest{
				Email:     "ana@example.com",
				Password:  "S3cretPass",
				FirstName: "Ana",
				LastName:  "Pérez",
				RoleIDs:   []uuid.UUID{roleID},
			}).
			Return(&service.UserResponse{
				ID:       uuid.New(),
				Email:    "ana@example.com",
				FullName: "Ana Pérez",
				IsActive: true,
				Roles:    []service.RoleSummary{{ID: roleID, Name: "Cajero"}},
			}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/users", map[string]interface{}{
			"email":      "ana@example.com",
			"password":   "S3cretPass",
			"first_name": "Ana",
			"last_name":  "Pérez",
			"role_ids":   []string{roleID.String()},
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)
		var response service.UserResponse
		testutils.ParseJSONResponse(t, recorder, &response)
		assert.Equal(t, "Ana Pérez", response.FullName)
		assert.NotContains(t, recorder.Body.String(), "password")
	})

	suite.T().Run("Email taken", func(t *testing.T) {
		suite.mockService.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrUserExists)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/users", map[string]string{"email": "ana@example.com"})
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	suite.T().Run("Role from another branch", func(t *testing.T) {
		suite.mockService.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrRoleNotInBranch)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/users", map[string]string{"email": "ana@example.com"})
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "roles do not exist in this branch")
	})
}

func (suite *UserHandlerTestSuite) TestListUsers() {
	suite.mockService.EXPECT().
		ListUsers(gomock.Any(), service.PageRequest{PageNumber: 3}).
		Return(service.NewPagedResponse([]service.UserResponse{}, service.PageRequest{PageNumber: 3, PageSize: 10}, 21), nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/users?pageNumber=3", nil)

	suite.Equal(http.StatusOK, recorder.Code)
	var body service.PagedResponse[service.UserResponse]
	testutils.ParseJSONResponse(suite.T(), recorder, &body)
	suite.Equal(3, body.PageNumber)
	suite.Equal(int64(21), body.TotalCount)
	suite.Equal(3, body.TotalPages)
}

func (suite *UserHandlerTestSuite) TestAssignRoles() {
	id := uuid.New()
	roleID := uuid.New()

	suite.mockService.EXPECT().
		AssignRoles(gomock.Any(), id, &service.AssignRolesRequest{RoleIDs: []uuid.UUID{roleID}}).
		Return(&service.UserResponse{ID: id, Roles: []service.RoleSummary{{ID: roleID, Name: "Supervisor"}}}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/users/"+id.String()+"/roles", map[string]interface{}{
		"role_ids": []string{roleID.String()},
	})

	suite.Equal(http.StatusOK, recorder.Code)
	suite.Contains(recorder.Body.String(), "Supervisor")
}

func (suite *UserHandlerTestSuite) TestChangePassword() {
	id := uuid.New()

	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().ChangePassword(gomock.Any(), id, gomock.Any()).Return(nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/users/"+id.String()+"/password", map[string]string{
			"current_password": "OldPass123",
			"new_password":     "NewPass123",
		})
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	suite.T().Run("Wrong current password", func(t *testing.T) {
		suite.mockService.EXPECT().ChangePassword(gomock.Any(), id, gomock.Any()).Return(apperrors.ErrIncorrectPassword)

		recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/users/"+id.String()+"/password", map[string]string{
			"current_password": "nope",
			"new_password":     "NewPass123",
		})
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "current password is incorrect")
	})

	suite.T().Run("Administrator account", func(t *testing.T) {
		suite.mockService.EXPECT().ChangePassword(gomock.Any(), id, gomock.Any()).Return(apperrors.ErrAdministratorOnly)

		recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/users/"+id.String()+"/password", map[string]string{
			"new_password": "NewPass123",
		})
		testutils.AssertErrorResponse(t, recorder, http.StatusForbidden, "only administrators can manage administrator accounts")
	})
}

func (suite *UserHandlerTestSuite) TestDeleteUser() {
	suite.T().Run("Self", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().DeleteUser(gomock.Any(), id).Return(apperrors.ErrDeleteSelf)

		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/users/"+id.String(), nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	suite.T().Run("Not found", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().DeleteUser(gomock.Any(), id).Return(apperrors.ErrUserNotFound)

		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/users/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	suite.T().Run("Invalid ID", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/users/42", nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid user ID")
	})
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
