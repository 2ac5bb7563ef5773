//go:build integration
// +build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"staff-backoffice-backend/internal/database/models"
	"staff-backoffice-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// EmployeeRepositoryTestSuite tests the EmployeeRepository and PositionRepository
type EmployeeRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *EmployeeRepository
	positionRepo  *PositionRepository
	factories     *testutils.FactorySet
	tenantID      uuid.UUID
	position      *models.Position
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *EmployeeRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewEmployeeRepository(suite.baseTestSuite.DB)
	suite.positionRepo = NewPositionRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *EmployeeRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *EmployeeRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	branch := suite.factories.Branch.Create()
	suite.Require().NoError(NewBranchRepository(suite.baseTestSuite.DB).Create(suite.ctx, branch))
	suite.tenantID = branch.ID

	suite.position = suite.factories.Position.Create(suite.tenantID)
	suite.Require().NoError(suite.positionRepo.Create(suite.ctx, suite.position))
}

// TearDownTest runs after each test
func (suite *EmployeeRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreateAndGet tests round-tripping an employee including the decimal rate
func (suite *EmployeeRepositoryTestSuite) TestCreateAndGet() {
	employee := suite.factories.Employee.Create(suite.tenantID, suite.position.ID)
	employee.HourlyRate = decimal.RequireFromString("120.75")

	suite.Require().NoError(suite.repo.Create(suite.ctx, employee))

	stored, err := suite.repo.GetByID(suite.ctx, suite.tenantID, employee.ID)
	suite.NoError(err)
	suite.True(decimal.RequireFromString("120.75").Equal(stored.HourlyRate))
	suite.Require().NotNil(stored.Position)
	suite.Equal(suite.position.Name, stored.Position.Name)
}

// TestDuplicateNationalID tests the per-tenant national id constraint
func (suite *EmployeeRepositoryTestSuite) TestDuplicateNationalID() {
	first := suite.factories.Employee.Create(suite.tenantID, suite.position.ID)
	first.NationalID = "GARL800101"
	suite.Require().NoError(suite.repo.Create(suite.ctx, first))

	second := suite.factories.Employee.Create(suite.tenantID, suite.position.ID)
	second.NationalID = "GARL800101"

	err := suite.repo.Create(suite.ctx, second)

	suite.True(IsUniqueViolation(err))
}

// TestListPagination tests the second page of fifteen employees
func (suite *EmployeeRepositoryTestSuite) TestListPagination() {
	for i := 1; i <= 15; i++ {
		employee := suite.factories.Employee.WithName(suite.tenantID, suite.position.ID, "Nombre", fmt.Sprintf("Apellido%02d", i))
		suite.Require().NoError(suite.repo.Create(suite.ctx, employee))
	}

	employees, total, err := suite.repo.List(suite.ctx, suite.tenantID, EmployeeFilter{ActiveOnly: true}, 10, 10)

	suite.NoError(err)
	suite.Equal(int64(15), total)
	suite.Require().Len(employees, 5)
	suite.Equal("Apellido11", employees[0].LastName)
	suite.Equal("Apellido15", employees[4].LastName)
}

// TestListFilters tests the active and position filters
func (suite *EmployeeRepositoryTestSuite) TestListFilters() {
	cook := suite.factories.Position.WithName(suite.tenantID, "Cocinero")
	suite.Require().NoError(suite.positionRepo.Create(suite.ctx, cook))

	active := suite.factories.Employee.Create(suite.tenantID, suite.position.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, active))
	inactive := suite.factories.Employee.Create(suite.tenantID, cook.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, inactive))
	terminated := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	inactive.IsActive = false
	inactive.TerminationDate = &terminated
	suite.Require().NoError(suite.repo.Update(suite.ctx, inactive))

	employees, total, err := suite.repo.List(suite.ctx, suite.tenantID, EmployeeFilter{ActiveOnly: true}, 10, 0)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(active.ID, employees[0].ID)

	employees, total, err = suite.repo.List(suite.ctx, suite.tenantID, EmployeeFilter{PositionID: &cook.ID}, 10, 0)
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(inactive.ID, employees[0].ID)

	count, err := suite.repo.CountByPosition(suite.ctx, suite.tenantID, cook.ID)
	suite.NoError(err)
	suite.Equal(int64(1), count)
}

// TestDeleteKeepsRow tests the soft delete of an employee
func (suite *EmployeeRepositoryTestSuite) TestDeleteKeepsRow() {
	employee := suite.factories.Employee.Create(suite.tenantID, suite.position.ID)
	suite.Require().NoError(suite.repo.Create(suite.ctx, employee))

	suite.NoError(suite.repo.Delete(suite.ctx, suite.tenantID, employee.ID))

	_, err := suite.repo.GetByID(suite.ctx, suite.tenantID, employee.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	var row models.Employee
	suite.NoError(suite.baseTestSuite.DB.Unscoped().First(&row, "id = ?", employee.ID).Error)
	suite.True(row.IsDeleted)
}

// TestCancelledContext tests that a cancelled context aborts the query
func (suite *EmployeeRepositoryTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	_, _, err := suite.repo.List(ctx, suite.tenantID, EmployeeFilter{}, 10, 0)

	suite.ErrorIs(err, context.Canceled)
}

// Run the test suite
func TestEmployeeRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeRepositoryTestSuite))
}
