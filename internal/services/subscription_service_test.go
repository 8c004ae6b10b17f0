package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, activatedAt *time.Time) error {
	args := m.Called(ctx, id, status, activatedAt)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) List(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Payment, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) AttachProof(ctx context.Context, id uuid.UUID, proofObject string) error {
	args := m.Called(ctx, id, proofObject)
	return args.Error(0)
}

func (m *MockPaymentRepository) Review(ctx context.Context, id, reviewedBy uuid.UUID, status string) error {
	args := m.Called(ctx, id, reviewedBy, status)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetSubscriptionStatus(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCacheService) SetSubscriptionStatus(ctx context.Context, userID uuid.UUID, status string, ttl time.Duration) error {
	args := m.Called(ctx, userID, status, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteSubscriptionStatus(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// SubscriptionServiceTestSuite defines the test suite
type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockSubscriptionRepo *MockSubscriptionRepository
	mockPaymentRepo      *MockPaymentRepository
	mockCacheSvc         *MockCacheService
	service              SubscriptionService
	userID               uuid.UUID
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockSubscriptionRepo = &MockSubscriptionRepository{}
	suite.mockPaymentRepo = &MockPaymentRepository{}
	suite.mockCacheSvc = &MockCacheService{}
	suite.service = NewSubscriptionService(suite.mockSubscriptionRepo, suite.mockPaymentRepo, suite.mockCacheSvc)
	suite.userID = uuid.New()
}

func (suite *SubscriptionServiceTestSuite) TearDownTest() {
	suite.mockSubscriptionRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockCacheSvc.AssertExpectations(suite.T())
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}

func (suite *SubscriptionServiceTestSuite) TestSelectPlan_InvalidPlan() {
	_, err := suite.service.SelectPlan(context.Background(), suite.userID, "enterprise")

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "invalid plan")
}

func (suite *SubscriptionServiceTestSuite) TestSelectPlan_AlreadyActive() {
	existing := &models.Subscription{UserID: suite.userID, Status: models.SubscriptionStatusActive}
	suite.mockSubscriptionRepo.On("GetByUserID", mock.Anything, suite.userID).Return(existing, nil).Once()

	_, err := suite.service.SelectPlan(context.Background(), suite.userID, "starter")

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "already active")
}

func (suite *SubscriptionServiceTestSuite) TestSelectPlan_CreatesPendingSubscriptionAndPayment() {
	suite.mockSubscriptionRepo.On("GetByUserID", mock.Anything, suite.userID).
		Return((*models.Subscription)(nil), errors.New("no rows")).Once()

	var createdSub *models.Subscription
	suite.mockSubscriptionRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Subscription")).
		Run(func(args mock.Arguments) {
			createdSub = args.Get(1).(*models.Subscription)
		}).Return(nil).Once()

	var createdPayment *models.Payment
	suite.mockPaymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).
		Run(func(args mock.Arguments) {
			createdPayment = args.Get(1).(*models.Payment)
		}).Return(nil).Once()

	suite.mockCacheSvc.On("DeleteSubscriptionStatus", mock.Anything, suite.userID).Return(nil).Once()

	subscription, err := suite.service.SelectPlan(context.Background(), suite.userID, "pro")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.SubscriptionStatusPending, subscription.Status)
	assert.Equal(suite.T(), "pro", subscription.PlanID)
	assert.Equal(suite.T(), 59.90, subscription.Amount)
	assert.Equal(suite.T(), createdSub.ID, createdPayment.SubscriptionID)
	assert.Equal(suite.T(), models.PaymentStatusSubmitted, createdPayment.Status)
}

func (suite *SubscriptionServiceTestSuite) TestGetStatus_CacheHit() {
	suite.mockCacheSvc.On("GetSubscriptionStatus", mock.Anything, suite.userID).
		Return(models.SubscriptionStatusActive, true, nil).Once()

	status, err := suite.service.GetStatus(context.Background(), suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.SubscriptionStatusActive, status)
	suite.mockSubscriptionRepo.AssertNotCalled(suite.T(), "GetByUserID")
}

func (suite *SubscriptionServiceTestSuite) TestGetStatus_CacheMissNoSubscription() {
	suite.mockCacheSvc.On("GetSubscriptionStatus", mock.Anything, suite.userID).
		Return("", false, nil).Once()
	suite.mockSubscriptionRepo.On("GetByUserID", mock.Anything, suite.userID).
		Return((*models.Subscription)(nil), errors.New("no rows")).Once()
	suite.mockCacheSvc.On("SetSubscriptionStatus", mock.Anything, suite.userID, "", mock.Anything).
		Return(nil).Once()

	status, err := suite.service.GetStatus(context.Background(), suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "", status)
}

func (suite *SubscriptionServiceTestSuite) TestSubmitProof_AttachesToLatestPayment() {
	payment := &models.Payment{
		ID:     uuid.New(),
		UserID: suite.userID,
		Status: models.PaymentStatusSubmitted,
	}
	suite.mockPaymentRepo.On("GetLatestByUser", mock.Anything, suite.userID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("AttachProof", mock.Anything, payment.ID, "proofs/abc.png").Return(nil).Once()

	updated, err := suite.service.SubmitProof(context.Background(), suite.userID, "proofs/abc.png")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "proofs/abc.png", *updated.ProofObject)
}

func (suite *SubscriptionServiceTestSuite) TestSubmitProof_AlreadyReviewed() {
	payment := &models.Payment{
		ID:     uuid.New(),
		UserID: suite.userID,
		Status: models.PaymentStatusApproved,
	}
	suite.mockPaymentRepo.On("GetLatestByUser", mock.Anything, suite.userID).Return(payment, nil).Once()

	_, err := suite.service.SubmitProof(context.Background(), suite.userID, "proofs/abc.png")

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "already reviewed")
}

func (suite *SubscriptionServiceTestSuite) TestApprovePayment_ActivatesSubscription() {
	paymentID := uuid.New()
	reviewerID := uuid.New()
	subscriptionID := uuid.New()
	payment := &models.Payment{
		ID:             paymentID,
		UserID:         suite.userID,
		SubscriptionID: subscriptionID,
		Status:         models.PaymentStatusSubmitted,
	}

	suite.mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("Review", mock.Anything, paymentID, reviewerID, models.PaymentStatusApproved).Return(nil).Once()
	suite.mockSubscriptionRepo.On("UpdateStatus", mock.Anything, subscriptionID, models.SubscriptionStatusActive, mock.AnythingOfType("*time.Time")).Return(nil).Once()
	suite.mockCacheSvc.On("DeleteSubscriptionStatus", mock.Anything, suite.userID).Return(nil).Once()

	err := suite.service.ApprovePayment(context.Background(), paymentID, reviewerID)

	assert.NoError(suite.T(), err)
}

func (suite *SubscriptionServiceTestSuite) TestRejectPayment_RejectsSubscription() {
	paymentID := uuid.New()
	reviewerID := uuid.New()
	subscriptionID := uuid.New()
	payment := &models.Payment{
		ID:             paymentID,
		UserID:         suite.userID,
		SubscriptionID: subscriptionID,
		Status:         models.PaymentStatusSubmitted,
	}

	suite.mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("Review", mock.Anything, paymentID, reviewerID, models.PaymentStatusRejected).Return(nil).Once()
	suite.mockSubscriptionRepo.On("UpdateStatus", mock.Anything, subscriptionID, models.SubscriptionStatusRejected, (*time.Time)(nil)).Return(nil).Once()
	suite.mockCacheSvc.On("DeleteSubscriptionStatus", mock.Anything, suite.userID).Return(nil).Once()

	err := suite.service.RejectPayment(context.Background(), paymentID, reviewerID)

	assert.NoError(suite.T(), err)
}

func (suite *SubscriptionServiceTestSuite) TestApprovePayment_AlreadyReviewed() {
	paymentID := uuid.New()
	payment := &models.Payment{
		ID:     paymentID,
		Status: models.PaymentStatusApproved,
	}
	suite.mockPaymentRepo.On("GetByID", mock.Anything, paymentID).Return(payment, nil).Once()

	err := suite.service.ApprovePayment(context.Background(), paymentID, uuid.New())

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "already reviewed")
}

func (suite *SubscriptionServiceTestSuite) TestGetAvailablePlans_ReturnsCopy() {
	plans := suite.service.GetAvailablePlans()

	assert.Len(suite.T(), plans, 2)
	assert.Equal(suite.T(), 29.90, plans["starter"].Amount)

	delete(plans, "starter")
	assert.Len(suite.T(), suite.service.GetAvailablePlans(), 2)
}
