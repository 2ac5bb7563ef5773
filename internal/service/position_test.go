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

// PositionServiceTestSuite defines the test suite for PositionService
type PositionServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockPositions *mocks.MockPositionRepositoryInterface
	mockEmployees *mocks.MockEmployeeRepositoryInterface
	service       *service.PositionService
	tenantID      uuid.UUID
	ctx           context.Context
}

func (suite *PositionServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockPositions = mocks.NewMockPositionRepositoryInterface(suite.ctrl)
	suite.mockEmployees = mocks.NewMockEmployeeRepositoryInterface(suite.ctrl)
	suite.service = service.NewPositionService(suite.mockPositions, suite.mockEmployees, validator.New())
	suite.tenantID = uuid.New()
	suite.ctx, _ = callerContext(suite.tenantID)
}

func (suite *PositionServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *PositionServiceTestSuite) position(name string) *models.Position {
	return &models.Position{
		TenantModel: models.TenantModel{ID: uuid.New(), TenantID: suite.tenantID},
		Name:        name,
	}
}

func (suite *PositionServiceTestSuite) TestCreatePosition() {
	suite.mockPositions.EXPECT().GetByName(gomock.Any(), suite.tenantID, "Mesero").Return(nil, gorm.ErrRecordNotFound)
	suite.mockPositions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.Position) error {
			suite.Equal(suite.tenantID, p.TenantID)
			return nil
		})

	response, err := suite.service.CreatePosition(suite.ctx, &service.CreatePositionRequest{Name: "  Mesero "})

	suite.Require().NoError(err)
	suite.Equal("Mesero", response.Name)
}

func (suite *PositionServiceTestSuite) TestCreatePositionDuplicateName() {
	suite.mockPositions.EXPECT().GetByName(gomock.Any(), suite.tenantID, "Mesero").Return(suite.position("Mesero"), nil)

	_, err := suite.service.CreatePosition(suite.ctx, &service.CreatePositionRequest{Name: "Mesero"})

	suite.ErrorIs(err, apperrors.ErrPositionExists)
}

func (suite *PositionServiceTestSuite) TestCreatePositionWithoutCaller() {
	_, err := suite.service.CreatePosition(context.Background(), &service.CreatePositionRequest{Name: "Mesero"})

	suite.ErrorIs(err, apperrors.ErrMissingIdentity)
}

func (suite *PositionServiceTestSuite) TestUpdatePositionRenameToTakenName() {
	position := suite.position("Mesero")
	suite.mockPositions.EXPECT().GetByID(gomock.Any(), suite.tenantID, position.ID).Return(position, nil)
	suite.mockPositions.EXPECT().GetByName(gomock.Any(), suite.tenantID, "Cocinero").Return(suite.position("Cocinero"), nil)

	name := "Cocinero"
	_, err := suite.service.UpdatePosition(suite.ctx, position.ID, &service.UpdatePositionRequest{Name: &name})

	suite.ErrorIs(err, apperrors.ErrPositionExists)
}

func (suite *PositionServiceTestSuite) TestUpdatePositionDescription() {
	position := suite.position("Mesero")
	suite.mockPositions.EXPECT().GetByID(gomock.Any(), suite.tenantID, position.ID).Return(position, nil)
	suite.mockPositions.EXPECT().Update(gomock.Any(), position).Return(nil)

	description := "Atiende mesas"
	response, err := suite.service.UpdatePosition(suite.ctx, position.ID, &service.UpdatePositionRequest{Description: &description})

	suite.Require().NoError(err)
	suite.Equal("Atiende mesas", response.Description)
}

func (suite *PositionServiceTestSuite) TestListPositions() {
	positions := []models.Position{*suite.position("Mesero"), *suite.position("Cocinero")}
	suite.mockPositions.EXPECT().GetAll(gomock.Any(), suite.tenantID, 10, 10).Return(positions, int64(12), nil)

	response, err := suite.service.ListPositions(suite.ctx, service.PageRequest{PageNumber: 2})

	suite.Require().NoError(err)
	suite.Len(response.Items, 2)
	suite.Equal(2, response.TotalPages)
}

func (suite *PositionServiceTestSuite) TestDeletePositionInUse() {
	position := suite.position("Mesero")
	suite.mockPositions.EXPECT().GetByID(gomock.Any(), suite.tenantID, position.ID).Return(position, nil)
	suite.mockEmployees.EXPECT().CountByPosition(gomock.Any(), suite.tenantID, position.ID).Return(int64(3), nil)

	err := suite.service.DeletePosition(suite.ctx, position.ID)

	suite.ErrorIs(err, apperrors.ErrPositionInUse)
}

func (suite *PositionServiceTestSuite) TestDeletePosition() {
	position := suite.position("Mesero")
	suite.mockPositions.EXPECT().GetByID(gomock.Any(), suite.tenantID, position.ID).Return(position, nil)
	suite.mockEmployees.EXPECT().CountByPosition(gomock.Any(), suite.tenantID, position.ID).Return(int64(0), nil)
	suite.mockPositions.EXPECT().Delete(gomock.Any(), suite.tenantID, position.ID).Return(nil)

	suite.NoError(suite.service.DeletePosition(suite.ctx, position.ID))
}

func (suite *PositionServiceTestSuite) TestGetPositionFromAnotherBranch() {
	id := uuid.New()
	suite.mockPositions.EXPECT().GetByID(gomock.Any(), suite.tenantID, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.GetPositionByID(suite.ctx, id)

	suite.ErrorIs(err, apperrors.ErrPositionNotFound)
}

func TestPositionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PositionServiceTestSuite))
}
