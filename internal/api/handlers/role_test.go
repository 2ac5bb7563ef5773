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

// RoleHandlerTestSuite defines the test suite for RoleHandler and PermissionHandler
type RoleHandlerTestSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	roleService       *mocks.MockRoleServiceInterface
	permissionService *mocks.MockPermissionServiceInterface
	httpSuite         *testutils.HTTPTestSuite
}

func (suite *RoleHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.roleService = mocks.NewMockRoleServiceInterface(suite.ctrl)
	suite.permissionService = mocks.NewMockPermissionServiceInterface(suite.ctrl)

	roleHandler := handlers.NewRoleHandler(suite.roleService)
	permissionHandler := handlers.NewPermissionHandler(suite.permissionService)

	suite.httpSuite = testutils.SetupHTTPTestAs(&identity.Identity{UserID: uuid.New(), TenantID: uuid.New()})
	v1 := suite.httpSuite.Router.Group("/api/v1")
	roles := v1.Group("/roles")
	{
		roles.POST("", roleHandler.CreateRole)
		roles.GET("", roleHandler.ListRoles)
		roles.GET("/:id", roleHandler.GetRole)
		roles.PUT("/:id", roleHandler.UpdateRole)
		roles.DELETE("/:id", roleHandler.DeleteRole)
		roles.PUT("/:id/permissions", roleHandler.SetPermissions)
	}
	permissions := v1.Group("/permissions")
	{
		permissions.POST("", permissionHandler.CreatePermission)
		permissions.GET("", permissionHandler.ListPermissions)
		permissions.GET("/:id", permissionHandler.GetPermission)
		permissions.PUT("/:id", permissionHandler.UpdatePermission)
		permissions.DELETE("/:id", permissionHandler.DeletePermission)
	}
}

func (suite *RoleHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *RoleHandlerTestSuite) TestGetRoleWithPermissions() {
	id := uuid.New()
	suite.roleService.EXPECT().GetRoleByID(gomock.Any(), id).Return(&service.RoleResponse{
		ID:          id,
		Name:        "Cajero",
		IsActive:    true,
		Permissions: []service.PermissionResponse{{ID: uuid.New(), Code: "POS.Sell", Category: "POS"}},
	}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/roles/"+id.String(), nil)

	suite.Equal(http.StatusOK, recorder.Code)
	var response service.RoleResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	suite.Require().Len(response.Permissions, 1)
	suite.Equal("POS.Sell", response.Permissions[0].Code)
}

func (suite *RoleHandlerTestSuite) TestCreateRoleDuplicate() {
	suite.roleService.EXPECT().
		CreateRole(gomock.Any(), &service.CreateRoleRequest{Name: "Cajero"}).
		Return(nil, apperrors.ErrRoleExists)

	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/roles", map[string]string{"name": "Cajero"})

	suite.Equal(http.StatusConflict, recorder.Code)
}

func (suite *RoleHandlerTestSuite) TestSetPermissions() {
	id := uuid.New()
	permissionID := uuid.New()

	suite.T().Run("Success", func(t *testing.T) {
		suite.roleService.EXPECT().
			SetPermissions(gomock.Any(), id, &service.SetPermissionsRequest{PermissionIDs: []uuid.UUID{permissionID}}).
			Return(&service.RoleResponse{ID: id, Permissions: []service.PermissionResponse{{ID: permissionID, Code: "POS.Refund"}}}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/roles/"+id.String()+"/permissions", map[string]interface{}{
			"permission_ids": []string{permissionID.String()},
		})
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "POS.Refund")
	})

	suite.T().Run("Permission from another branch", func(t *testing.T) {
		suite.roleService.EXPECT().
			SetPermissions(gomock.Any(), id, gomock.Any()).
			Return(nil, apperrors.ErrPermissionNotInBranch)

		recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/roles/"+id.String()+"/permissions", map[string]interface{}{
			"permission_ids": []string{uuid.NewString()},
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	suite.T().Run("Malformed permission id", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/roles/"+id.String()+"/permissions", map[string]interface{}{
			"permission_ids": []string{"nope"},
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func (suite *RoleHandlerTestSuite) TestListPermissionsByCategory() {
	suite.permissionService.EXPECT().
		ListPermissions(gomock.Any(), "POS", service.PageRequest{PageSize: 50}).
		Return(service.NewPagedResponse([]service.PermissionResponse{{Code: "POS.Sell", Category: "POS"}}, service.PageRequest{PageNumber: 1, PageSize: 50}, 1), nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/permissions?category=POS&pageSize=50", nil)

	suite.Equal(http.StatusOK, recorder.Code)
	suite.Contains(recorder.Body.String(), `"totalPages":1`)
}

func (suite *RoleHandlerTestSuite) TestDeletePermissionNotFound() {
	id := uuid.New()
	suite.permissionService.EXPECT().DeletePermission(gomock.Any(), id).Return(apperrors.ErrPermissionNotFound)

	recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/permissions/"+id.String(), nil)

	suite.Equal(http.StatusNotFound, recorder.Code)
}

func TestRoleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RoleHandlerTestSuite))
}
