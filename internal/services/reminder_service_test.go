package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// Mock repositories
type MockWhatsAppRepository struct {
	mock.Mock
}

func (m *MockWhatsAppRepository) Upsert(ctx context.Context, conn *models.WhatsAppConnection) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockWhatsAppRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.WhatsAppConnection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WhatsAppConnection), args.Error(1)
}

func (m *MockWhatsAppRepository) SetConnected(ctx context.Context, userID uuid.UUID, connected bool) error {
	args := m.Called(ctx, userID, connected)
	return args.Error(0)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, template *models.MessageTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.MessageTemplate, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageTemplate), args.Error(1)
}

func (m *MockTemplateRepository) GetDefault(ctx context.Context, userID uuid.UUID) (*models.MessageTemplate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Update(ctx context.Context, template *models.MessageTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTemplateRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.MessageTemplate, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.MessageTemplate), args.Error(1)
}

func (m *MockTemplateRepository) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Message, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Message, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByCharge(ctx context.Context, userID, chargeID uuid.UUID) ([]*models.Message, error) {
	args := m.Called(ctx, userID, chargeID)
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MockMessageRepository) ExistsForChargeSince(ctx context.Context, chargeID uuid.UUID, since time.Time) (bool, error) {
	args := m.Called(ctx, chargeID, since)
	return args.Bool(0), args.Error(1)
}

// ReminderServiceTestSuite defines the test suite
type ReminderServiceTestSuite struct {
	suite.Suite
	mockWhatsAppRepo *MockWhatsAppRepository
	mockTemplateRepo *MockTemplateRepository
	mockMessageRepo  *MockMessageRepository
	service          ReminderService
	userID           uuid.UUID
	input            DispatchInput
}

func (suite *ReminderServiceTestSuite) SetupTest() {
	suite.mockWhatsAppRepo = &MockWhatsAppRepository{}
	suite.mockTemplateRepo = &MockTemplateRepository{}
	suite.mockMessageRepo = &MockMessageRepository{}
	suite.service = NewReminderService(suite.mockWhatsAppRepo, suite.mockTemplateRepo, suite.mockMessageRepo)
	suite.userID = uuid.New()
	suite.input = DispatchInput{
		ChargeID:    uuid.New(),
		ClientPhone: "+5511999887766",
		ClientName:  "Maria",
		ProductName: "Mensalidade",
		Amount:      150.0,
		DueDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		UserID:      suite.userID,
	}
}

func (suite *ReminderServiceTestSuite) TearDownTest() {
	suite.mockWhatsAppRepo.AssertExpectations(suite.T())
	suite.mockTemplateRepo.AssertExpectations(suite.T())
	suite.mockMessageRepo.AssertExpectations(suite.T())
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}

func (suite *ReminderServiceTestSuite) TestDispatch_NeverPaired() {
	suite.mockWhatsAppRepo.On("GetByUserID", mock.Anything, suite.userID).
		Return((*models.WhatsAppConnection)(nil), pgx.ErrNoRows).Once()

	id, err := suite.service.Dispatch(context.Background(), suite.input)

	assert.ErrorIs(suite.T(), err, ErrWhatsAppNotConnected)
	assert.Equal(suite.T(), uuid.Nil, id)
	suite.mockMessageRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *ReminderServiceTestSuite) TestDispatch_ConnectionLookupFails() {
	suite.mockWhatsAppRepo.On("GetByUserID", mock.Anything, suite.userID).
		Return((*models.WhatsAppConnection)(nil), errors.New("connection refused")).Once()

	id, err := suite.service.Dispatch(context.Background(), suite.input)

	assert.Error(suite.T(), err)
	assert.NotErrorIs(suite.T(), err, ErrWhatsAppNotConnected)
	assert.Contains(suite.T(), err.Error(), "connection refused")
	assert.Equal(suite.T(), uuid.Nil, id)
	suite.mockMessageRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *ReminderServiceTestSuite) TestDispatch_ConnectionRowButDisconnected() {
	conn := &models.WhatsAppConnection{UserID: suite.userID, IsConnected: false}
	suite.mockWhatsAppRepo.On("GetByUserID", mock.Anything, suite.userID).Return(conn, nil).Once()

	_, err := suite.service.Dispatch(context.Background(), suite.input)

	assert.ErrorIs(suite.T(), err, ErrWhatsAppNotConnected)
	suite.mockMessageRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *ReminderServiceTestSuite) TestDispatch_DefaultTemplateFallback() {
	conn := &models.WhatsAppConnection{UserID: suite.userID, IsConnected: true}
	suite.mockWhatsAppRepo.On("GetByUserID", mock.Anything, suite.userID).Return(conn, nil).Once()
	suite.mockTemplateRepo.On("GetDefault", mock.Anything, suite.userID).
		Return((*models.MessageTemplate)(nil), errors.New("no rows")).Once()

	var recorded *models.Message
	suite.mockMessageRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.Message)
		}).Return(nil).Once()

	id, err := suite.service.Dispatch(context.Background(), suite.input)

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, id)
	assert.Equal(suite.T(), models.MessageStatusSent, recorded.Status)
	assert.Equal(suite.T(), "+5511999887766", recorded.PhoneNumber)
	assert.Contains(suite.T(), recorded.Content, "Maria")
	assert.Contains(suite.T(), recorded.Content, "Mensalidade")
	assert.Contains(suite.T(), recorded.Content, "R$ 150.00")
	assert.Contains(suite.T(), recorded.Content, "10/09/2026")
	assert.False(suite.T(), recorded.SentAt.IsZero())
	assert.NotNil(suite.T(), recorded.DeliveredAt)
}

func (suite *ReminderServiceTestSuite) TestDispatch_UserTemplate() {
	conn := &models.WhatsAppConnection{UserID: suite.userID, IsConnected: true}
	template := &models.MessageTemplate{
		UserID:  suite.userID,
		Content: "Oi {{client}}, {{product}} vence {{due_date}} ({{amount}})",
	}
	suite.mockWhatsAppRepo.On("GetByUserID", mock.Anything, suite.userID).Return(conn, nil).Once()
	suite.mockTemplateRepo.On("GetDefault", mock.Anything, suite.userID).Return(template, nil).Once()

	var recorded *models.Message
	suite.mockMessageRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.Message)
		}).Return(nil).Once()

	_, err := suite.service.Dispatch(context.Background(), suite.input)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Oi Maria, Mensalidade vence 10/09/2026 (R$ 150.00)", recorded.Content)
}

func (suite *ReminderServiceTestSuite) TestDispatch_CreateFails() {
	conn := &models.WhatsAppConnection{UserID: suite.userID, IsConnected: true}
	suite.mockWhatsAppRepo.On("GetByUserID", mock.Anything, suite.userID).Return(conn, nil).Once()
	suite.mockTemplateRepo.On("GetDefault", mock.Anything, suite.userID).
		Return((*models.MessageTemplate)(nil), errors.New("no rows")).Once()
	suite.mockMessageRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Message")).
		Return(errors.New("insert failed")).Once()

	id, err := suite.service.Dispatch(context.Background(), suite.input)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), uuid.Nil, id)
}

func TestRenderTemplate(t *testing.T) {
	dueDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	got := RenderTemplate("{{client}} deve {{amount}} por {{product}} até {{due_date}}", "Ana", "Aula", 1234.0, dueDate)
	assert.Equal(t, "Ana deve R$ 1234.00 por Aula até 05/03/2026", got)
}
