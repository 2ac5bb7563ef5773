package service_test

import (
	"context"
	"testing"

	"staff-backoffice-backend/internal/database/models"
	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/mocks"
	"staff-backoffice-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// RoleServiceTestSuite defines the test suite for RoleService and PermissionService
type RoleServiceTestSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	mockRoles         *mocks.MockRoleRepositoryInterface
	mockPermissions   *mocks.MockPermissionRepositoryInterface
	roleService       *service.RoleService
	permissionService *service.PermissionService
	tenantID          uuid.UUID
	ctx               context.Context
}

func (suite *RoleServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRoles = mocks.NewMockRoleRepositoryInterface(suite.ctrl)
	suite.mockPermissions = mocks.NewMockPermissionRepositoryInterface(suite.ctrl)
	v := validator.New()
	suite.roleService = service.NewRoleService(suite.mockRoles, suite.mockPermissions, v)
	suite.permissionService = service.NewPermissionService(suite.mockPermissions, v)
	suite.tenantID = uuid.New()
	suite.ctx, _ = callerContext(suite.tenantID)
}

func (suite *RoleServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *RoleServiceTestSuite) permission(code string) models.Permission {
	return models.Permission{
		TenantModel: models.TenantModel{ID: uuid.New(), TenantID: suite.tenantID},
		Code:        code,
		Category:    "POS",
		IsActive:    true,
	}
}

func (suite *RoleServiceTestSuite) TestCreateRole() {
	suite.mockRoles.EXPECT().GetByName(gomock.Any(), suite.tenantID, "Cajero").Return(nil, gorm.ErrRecordNotFound)
	suite.mockRoles.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Role) error {
			suite.Equal(suite.tenantID, r.TenantID)
			suite.True(r.IsActive)
			return nil
		})

	response, err := suite.roleService.CreateRole(suite.ctx, &service.CreateRoleRequest{Name: " Cajero "})

	suite.Require().NoError(err)
	suite.Equal("Cajero", response.Name)
}

func (suite *RoleServiceTestSuite) TestCreateRoleDuplicateName() {
	suite.mockRoles.EXPECT().GetByName(gomock.Any(), suite.tenantID, "Cajero").Return(&models.Role{}, nil)

	_, err := suite.roleService.CreateRole(suite.ctx, &service.CreateRoleRequest{Name: "Cajero"})

	suite.ErrorIs(err, apperrors.ErrRoleExists)
}

func (suite *RoleServiceTestSuite) TestSetPermissions() {
	role := &models.Role{TenantModel: models.TenantModel{ID: uuid.New(), TenantID: suite.tenantID}, Name: "Cajero"}
	sell := suite.permission("POS.Sell")
	refund := suite.permission("POS.Refund")
	ids := []uuid.UUID{sell.ID, refund.ID}

	suite.mockRoles.EXPECT().GetByID(gomock.Any(), suite.tenantID, role.ID).Return(role, nil)
	suite.mockPermissions.EXPECT().GetByIDs(gomock.Any(), suite.tenantID, ids).Return([]models.Permission{sell, refund}, nil)
	suite.mockRoles.EXPECT().ReplacePermissions(gomock.Any(), suite.tenantID, role.ID, ids).Return(nil)

	response, err := suite.roleService.SetPermissions(suite.ctx, role.ID, &service.SetPermissionsRequest{
		PermissionIDs: []uuid.UUID{sell.ID, refund.ID, sell.ID},
	})

	suite.Require().NoError(err)
	suite.Require().Len(response.Permissions, 2)
	suite.Equal("POS.Sell", response.Permissions[0].Code)
}

func (suite *RoleServiceTestSuite) TestSetPermissionsFromAnotherBranch() {
	role := &models.Role{TenantModel: models.TenantModel{ID: uuid.New(), TenantID: suite.tenantID}}
	own := suite.permission("POS.Sell")
	foreign := uuid.New()

	suite.mockRoles.EXPECT().GetByID(gomock.Any(), suite.tenantID, role.ID).Return(role, nil)
	suite.mockPermissions.EXPECT().
		GetByIDs(gomock.Any(), suite.tenantID, []uuid.UUID{own.ID, foreign}).
		Return([]models.Permission{own}, nil)

	_, err := suite.roleService.SetPermissions(suite.ctx, role.ID, &service.SetPermissionsRequest{
		PermissionIDs: []uuid.UUID{own.ID, foreign},
	})

	suite.ErrorIs(err, apperrors.ErrPermissionNotInBranch)
}

func (suite *RoleServiceTestSuite) TestSetPermissionsUnknownRole() {
	id := uuid.New()
	suite.mockRoles.EXPECT().GetByID(gomock.Any(), suite.tenantID, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.roleService.SetPermissions(suite.ctx, id, &service.SetPermissionsRequest{PermissionIDs: []uuid.UUID{}})

	suite.ErrorIs(err, apperrors.ErrRoleNotFound)
}

func (suite *RoleServiceTestSuite) TestGetRoleIncludesPermissions() {
	role := &models.Role{TenantModel: models.TenantModel{ID: uuid.New(), TenantID: suite.tenantID}, Name: "Cajero"}
	suite.mockRoles.EXPECT().GetByID(gomock.Any(), suite.tenantID, role.ID).Return(role, nil)
	suite.mockRoles.EXPECT().GetPermissions(gomock.Any(), suite.tenantID, role.ID).Return([]models.Permission{suite.permission("POS.Sell")}, nil)

	response, err := suite.roleService.GetRoleByID(suite.ctx, role.ID)

	suite.Require().NoError(err)
	suite.Len(response.Permissions, 1)
}

func (suite *RoleServiceTestSuite) TestCreatePermissionDuplicateCode() {
	suite.mockPermissions.EXPECT().GetByCode(gomock.Any(), suite.tenantID, "POS.Sell").Return(&models.Permission{}, nil)

	_, err := suite.permissionService.CreatePermission(suite.ctx, &service.CreatePermissionRequest{Code: "POS.Sell", Category: "POS"})

	suite.ErrorIs(err, apperrors.ErrPermissionExists)
}

func (suite *RoleServiceTestSuite) TestCreatePermissionStoreUniqueViolation() {
	suite.mockPermissions.EXPECT().GetByCode(gomock.Any(), suite.tenantID, "POS.Sell").Return(nil, gorm.ErrRecordNotFound)
	suite.mockPermissions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(gorm.ErrDuplicatedKey)

	_, err := suite.permissionService.CreatePermission(suite.ctx, &service.CreatePermissionRequest{Code: "POS.Sell", Category: "POS"})

	suite.ErrorIs(err, apperrors.ErrPermissionExists)
}

func (suite *RoleServiceTestSuite) TestListPermissionsByCategory() {
	suite.mockPermissions.EXPECT().
		GetAll(gomock.Any(), suite.tenantID, "POS", 10, 0).
		Return([]models.Permission{suite.permission("POS.Sell"), suite.permission("POS.Refund")}, int64(2), nil)

	response, err := suite.permissionService.ListPermissions(suite.ctx, " POS ", service.PageRequest{})

	suite.Require().NoError(err)
	suite.Len(response.Items, 2)
	suite.Equal(1, response.TotalPages)
}

func (suite *RoleServiceTestSuite) TestDeleteRoleNotFound() {
	id := uuid.New()
	suite.mockRoles.EXPECT().Delete(gomock.Any(), suite.tenantID, id).Return(gorm.ErrRecordNotFound)

	suite.ErrorIs(suite.roleService.DeleteRole(suite.ctx, id), apperrors.ErrRoleNotFound)
}

func TestRoleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RoleServiceTestSuite))
}
