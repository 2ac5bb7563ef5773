//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"staff-backoffice-backend/internal/database/models"
	"staff-backoffice-backend/internal/identity"
	"staff-backoffice-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	roleRepo      *RoleRepository
	branchRepo    *BranchRepository
	factories     *testutils.FactorySet
	branch        *models.Branch
	ctx           context.Context
	actorID       uuid.UUID
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
	suite.roleRepo = NewRoleRepository(suite.baseTestSuite.DB)
	suite.branchRepo = NewBranchRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.branch = suite.factories.Branch.Create()
	suite.Require().NoError(suite.branchRepo.Create(context.Background(), suite.branch))

	suite.actorID = uuid.New()
	suite.ctx = identity.WithIdentity(context.Background(), &identity.Identity{
		UserID:   suite.actorID,
		TenantID: suite.branch.ID,
	})
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreateRecordsCreator tests that the creator comes from the context identity
func (suite *UserRepositoryTestSuite) TestCreateRecordsCreator() {
	user := suite.factories.User.WithEmail(suite.branch.ID, "  Ana@Example.com ")

	err := suite.repo.Create(suite.ctx, user)

	suite.NoError(err)
	suite.Equal("ana@example.com", user.Email)
	suite.Equal(suite.actorID, user.CreatedBy)
	suite.False(user.IsDeleted)
	suite.NotZero(user.CreatedAt)
}

// TestCreateDuplicateEmail tests that the store rejects a second live user with the same email
func (suite *UserRepositoryTestSuite) TestCreateDuplicateEmail() {
	first := suite.factories.User.WithEmail(suite.branch.ID, "dup@example.com")
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))

	other := suite.factories.Branch.Create()
	suite.Require().NoError(suite.branchRepo.Create(suite.ctx, other))
	second := suite.factories.User.WithEmail(other.ID, "DUP@example.com")

	err := suite.repo.Create(suite.ctx, second)

	suite.Error(err)
	suite.True(IsUniqueViolation(err))
}

// TestEmailReusableAfterSoftDelete tests that the unique index ignores deleted rows
func (suite *UserRepositoryTestSuite) TestEmailReusableAfterSoftDelete() {
	first := suite.factories.User.WithEmail(suite.branch.ID, "reuse@example.com")
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))
	suite.Require().NoError(suite.repo.Delete(suite.ctx, suite.branch.ID, first.ID))

	second := suite.factories.User.WithEmail(suite.branch.ID, "reuse@example.com")
	suite.NoError(suite.repo.Create(suite.ctx, second))
}

// TestSoftDelete tests that a deleted user disappears from default queries but keeps its row
func (suite *UserRepositoryTestSuite) TestSoftDelete() {
	user := suite.factories.User.Create(suite.branch.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, user))

	err := suite.repo.Delete(suite.ctx, suite.branch.ID, user.ID)
	suite.NoError(err)

	_, err = suite.repo.GetByID(suite.ctx, suite.branch.ID, user.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	users, total, err := suite.repo.GetAll(suite.ctx, suite.branch.ID, 10, 0)
	suite.NoError(err)
	suite.Empty(users)
	suite.Equal(int64(0), total)

	deleted, err := suite.repo.GetByIDIncludingDeleted(suite.ctx, suite.branch.ID, user.ID)
	suite.NoError(err)
	suite.True(deleted.IsDeleted)
	suite.True(deleted.DeletedAt.Valid)
	suite.Require().NotNil(deleted.DeletedBy)
	suite.Equal(suite.actorID, *deleted.DeletedBy)

	// A second delete finds nothing live
	err = suite.repo.Delete(suite.ctx, suite.branch.ID, user.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetByIDOtherTenant tests that lookups never cross the tenant boundary
func (suite *UserRepositoryTestSuite) TestGetByIDOtherTenant() {
	user := suite.factories.User.Create(suite.branch.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, user))

	_, err := suite.repo.GetByID(suite.ctx, uuid.New(), user.ID)

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestUpdateStampsAudit tests that updates record the updater
func (suite *UserRepositoryTestSuite) TestUpdateStampsAudit() {
	user := suite.factories.User.Create(suite.branch.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, user))

	user.FirstName = "Beatriz"
	err := suite.repo.Update(suite.ctx, user)
	suite.NoError(err)

	stored, err := suite.repo.GetByID(suite.ctx, suite.branch.ID, user.ID)
	suite.NoError(err)
	suite.Equal("Beatriz", stored.FirstName)
	suite.Require().NotNil(stored.UpdatedAt)
	suite.Require().NotNil(stored.UpdatedBy)
	suite.Equal(suite.actorID, *stored.UpdatedBy)
	suite.Equal(user.PasswordHash, stored.PasswordHash)
}

// TestUpdateLastLogin tests recording the last sign-in
func (suite *UserRepositoryTestSuite) TestUpdateLastLogin() {
	user := suite.factories.User.Create(suite.branch.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, user))

	at := time.Now().UTC().Truncate(time.Second)
	suite.NoError(suite.repo.UpdateLastLogin(suite.ctx, user.ID, at))

	stored, err := suite.repo.GetByID(suite.ctx, suite.branch.ID, user.ID)
	suite.NoError(err)
	suite.Require().NotNil(stored.LastLoginAt)
	suite.WithinDuration(at, *stored.LastLoginAt, time.Second)
}

// TestReplaceRoles tests that role assignments are swapped and scoped to the tenant
func (suite *UserRepositoryTestSuite) TestReplaceRoles() {
	user := suite.factories.User.Create(suite.branch.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, user))
	cashier := suite.factories.Role.WithName(suite.branch.ID, "Cajero")
	manager := suite.factories.Role.WithName(suite.branch.ID, "Gerente")
	suite.Require().NoError(suite.roleRepo.Create(suite.ctx, cashier))
	suite.Require().NoError(suite.roleRepo.Create(suite.ctx, manager))

	suite.NoError(suite.repo.ReplaceRoles(suite.ctx, suite.branch.ID, user.ID, []uuid.UUID{cashier.ID}))
	suite.NoError(suite.repo.ReplaceRoles(suite.ctx, suite.branch.ID, user.ID, []uuid.UUID{cashier.ID, manager.ID}))

	roles, err := suite.repo.GetRoles(suite.ctx, suite.branch.ID, user.ID)
	suite.NoError(err)
	suite.Len(roles, 2)
	suite.Equal("Cajero", roles[0].Name)
	suite.Equal("Gerente", roles[1].Name)

	// Roles are not visible from another tenant
	roles, err = suite.repo.GetRoles(suite.ctx, uuid.New(), user.ID)
	suite.NoError(err)
	suite.Empty(roles)
}

// TestDeleteCascadesRoleAssignments tests that deleting a user soft-deletes its assignments
func (suite *UserRepositoryTestSuite) TestDeleteCascadesRoleAssignments() {
	user := suite.factories.User.Create(suite.branch.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, user))
	role := suite.factories.Role.Create(suite.branch.ID)
	suite.Require().NoError(suite.roleRepo.Create(suite.ctx, role))
	suite.Require().NoError(suite.repo.ReplaceRoles(suite.ctx, suite.branch.ID, user.ID, []uuid.UUID{role.ID}))

	suite.NoError(suite.repo.Delete(suite.ctx, suite.branch.ID, user.ID))

	var live int64
	suite.baseTestSuite.DB.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&live)
	suite.Equal(int64(0), live)

	var all int64
	suite.baseTestSuite.DB.Unscoped().Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&all)
	suite.Equal(int64(1), all)
}

// Run the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
