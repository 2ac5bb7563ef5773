//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"

	"staff-backoffice-backend/internal/database/models"
	"staff-backoffice-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// RoleRepositoryTestSuite tests the RoleRepository and PermissionRepository
type RoleRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite  *testutils.BaseTestSuite
	repo           *RoleRepository
	permissionRepo *PermissionRepository
	factories      *testutils.FactorySet
	tenantID       uuid.UUID
	ctx            context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *RoleRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewRoleRepository(suite.baseTestSuite.DB)
	suite.permissionRepo = NewPermissionRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *RoleRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *RoleRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	branch := suite.factories.Branch.Create()
	suite.Require().NoError(NewBranchRepository(suite.baseTestSuite.DB).Create(suite.ctx, branch))
	suite.tenantID = branch.ID
}

// TearDownTest runs after each test
func (suite *RoleRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *RoleRepositoryTestSuite) createPermission(code string, active bool) *models.Permission {
	permission := suite.factories.Permission.WithCode(suite.tenantID, code)
	permission.IsActive = active
	suite.Require().NoError(suite.permissionRepo.Create(suite.ctx, permission))
	if !active {
		// is_active defaults to true in the store, so flip it explicitly
		suite.Require().NoError(suite.permissionRepo.Update(suite.ctx, permission))
	}
	return permission
}

// TestCreateDuplicateNameSameTenant tests that role names are unique per tenant, case-insensitive
func (suite *RoleRepositoryTestSuite) TestCreateDuplicateNameSameTenant() {
	suite.Require().NoError(suite.repo.Create(suite.ctx, suite.factories.Role.WithName(suite.tenantID, "Gerente")))

	err := suite.repo.Create(suite.ctx, suite.factories.Role.WithName(suite.tenantID, "gerente"))

	suite.True(IsUniqueViolation(err))
}

// TestCreateSameNameOtherTenant tests that another tenant may reuse a role name
func (suite *RoleRepositoryTestSuite) TestCreateSameNameOtherTenant() {
	suite.Require().NoError(suite.repo.Create(suite.ctx, suite.factories.Role.WithName(suite.tenantID, "Gerente")))

	other := suite.factories.Branch.Create()
	suite.Require().NoError(NewBranchRepository(suite.baseTestSuite.DB).Create(suite.ctx, other))

	err := suite.repo.Create(suite.ctx, suite.factories.Role.WithName(other.ID, "Gerente"))

	suite.NoError(err)
}

// TestCreateDuplicatePermissionCode tests that permission codes are unique per tenant
func (suite *RoleRepositoryTestSuite) TestCreateDuplicatePermissionCode() {
	suite.createPermission("POS.Sell", true)

	err := suite.permissionRepo.Create(suite.ctx, suite.factories.Permission.WithCode(suite.tenantID, "POS.Sell"))

	suite.True(IsUniqueViolation(err))
}

// TestReplacePermissions tests that a role's permission set is fully replaced
func (suite *RoleRepositoryTestSuite) TestReplacePermissions() {
	role := suite.factories.Role.Create(suite.tenantID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, role))
	sell := suite.createPermission("POS.Sell", true)
	refund := suite.createPermission("POS.Refund", true)
	report := suite.createPermission("Reports.View", true)

	suite.NoError(suite.repo.ReplacePermissions(suite.ctx, suite.tenantID, role.ID, []uuid.UUID{sell.ID, refund.ID}))
	suite.NoError(suite.repo.ReplacePermissions(suite.ctx, suite.tenantID, role.ID, []uuid.UUID{refund.ID, report.ID}))

	permissions, err := suite.repo.GetPermissions(suite.ctx, suite.tenantID, role.ID)
	suite.NoError(err)
	codes := make([]string, 0, len(permissions))
	for _, p := range permissions {
		codes = append(codes, p.Code)
	}
	suite.ElementsMatch([]string{"POS.Refund", "Reports.View"}, codes)
}

// TestReplacePermissionsUnknownRole tests that nothing is written for a missing role
func (suite *RoleRepositoryTestSuite) TestReplacePermissionsUnknownRole() {
	sell := suite.createPermission("POS.Sell", true)

	err := suite.repo.ReplacePermissions(suite.ctx, suite.tenantID, uuid.New(), []uuid.UUID{sell.ID})

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	var count int64
	suite.baseTestSuite.DB.Model(&models.RolePermission{}).Count(&count)
	suite.Equal(int64(0), count)
}

// TestGetActivePermissionCodes tests distinct active codes across several roles
func (suite *RoleRepositoryTestSuite) TestGetActivePermissionCodes() {
	cashier := suite.factories.Role.WithName(suite.tenantID, "Cajero")
	manager := suite.factories.Role.WithName(suite.tenantID, "Gerente")
	suite.Require().NoError(suite.repo.Create(suite.ctx, cashier))
	suite.Require().NoError(suite.repo.Create(suite.ctx, manager))
	sell := suite.createPermission("POS.Sell", true)
	refund := suite.createPermission("POS.Refund", true)
	legacy := suite.createPermission("POS.Legacy", false)

	suite.Require().NoError(suite.repo.ReplacePermissions(suite.ctx, suite.tenantID, cashier.ID, []uuid.UUID{sell.ID, legacy.ID}))
	suite.Require().NoError(suite.repo.ReplacePermissions(suite.ctx, suite.tenantID, manager.ID, []uuid.UUID{sell.ID, refund.ID}))

	codes, err := suite.repo.GetActivePermissionCodes(suite.ctx, suite.tenantID, []uuid.UUID{cashier.ID, manager.ID})

	suite.NoError(err)
	suite.Equal([]string{"POS.Refund", "POS.Sell"}, codes)
}

// TestDeleteCascadesGrants tests that deleting a role soft-deletes the associations it owns
func (suite *RoleRepositoryTestSuite) TestDeleteCascadesGrants() {
	role := suite.factories.Role.Create(suite.tenantID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, role))
	sell := suite.createPermission("POS.Sell", true)
	suite.Require().NoError(suite.repo.ReplacePermissions(suite.ctx, suite.tenantID, role.ID, []uuid.UUID{sell.ID}))

	suite.NoError(suite.repo.Delete(suite.ctx, suite.tenantID, role.ID))

	_, err := suite.repo.GetByID(suite.ctx, suite.tenantID, role.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	codes, err := suite.repo.GetActivePermissionCodes(suite.ctx, suite.tenantID, []uuid.UUID{role.ID})
	suite.NoError(err)
	suite.Empty(codes)
}

// TestPermissionListByCategory tests the category filter
func (suite *RoleRepositoryTestSuite) TestPermissionListByCategory() {
	suite.createPermission("POS.Sell", true)
	suite.createPermission("POS.Refund", true)
	report := suite.factories.Permission.WithCode(suite.tenantID, "Reports.View")
	report.Category = "Reports"
	suite.Require().NoError(suite.permissionRepo.Create(suite.ctx, report))

	permissions, total, err := suite.permissionRepo.GetAll(suite.ctx, suite.tenantID, "POS", 10, 0)

	suite.NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(permissions, 2)
}

// Run the test suite
func TestRoleRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RoleRepositoryTestSuite))
}
