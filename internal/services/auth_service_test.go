package services

import (
	"context"
	"testing"
	"time"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

// AuthServiceTestSuite defines the test suite
type AuthServiceTestSuite struct {
	suite.Suite
	mockTokenRepo *MockRefreshTokenRepository
	mockUserRepo  *MockUserRepository
	service       AuthService
	userID        uuid.UUID
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockTokenRepo = &MockRefreshTokenRepository{}
	suite.mockUserRepo = &MockUserRepository{}
	suite.service = NewAuthService(suite.mockTokenRepo, suite.mockUserRepo, "test-secret", 3600, 7*24*3600)
	suite.userID = uuid.New()
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.mockTokenRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestGenerateAndValidateToken() {
	suite.mockTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil).Once()

	tokens, err := suite.service.GenerateTokens(context.Background(), suite.userID, true)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Bearer", tokens.TokenType)
	assert.Equal(suite.T(), 3600, tokens.ExpiresIn)
	assert.NotEmpty(suite.T(), tokens.RefreshToken)

	claims, err := suite.service.ValidateToken(tokens.AccessToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID.String(), claims.UserID)
	assert.True(suite.T(), claims.IsAdmin)
	assert.Equal(suite.T(), "cobrafacil-auth", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestValidateToken_WrongSecret() {
	other := NewAuthService(suite.mockTokenRepo, suite.mockUserRepo, "other-secret", 3600, 7*24*3600)
	suite.mockTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil).Once()

	tokens, err := other.GenerateTokens(context.Background(), suite.userID, false)
	assert.NoError(suite.T(), err)

	_, err = suite.service.ValidateToken(tokens.AccessToken)
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_RotatesToken() {
	suite.mockTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil).Once()
	tokens, err := suite.service.GenerateTokens(context.Background(), suite.userID, false)
	assert.NoError(suite.T(), err)

	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    suite.userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	user := &models.User{ID: suite.userID, IsAdmin: false}

	suite.mockTokenRepo.On("GetByHash", mock.Anything, mock.AnythingOfType("string")).Return(record, nil).Once()
	suite.mockUserRepo.On("GetByID", mock.Anything, suite.userID).Return(user, nil).Once()
	suite.mockTokenRepo.On("Revoke", mock.Anything, record.ID).Return(nil).Once()
	suite.mockTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil).Once()

	rotated, err := suite.service.RefreshTokens(context.Background(), tokens.RefreshToken)

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), tokens.RefreshToken, rotated.RefreshToken)
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_Expired() {
	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    suite.userID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	suite.mockTokenRepo.On("GetByHash", mock.Anything, mock.AnythingOfType("string")).Return(record, nil).Once()

	_, err := suite.service.RefreshTokens(context.Background(), "some-token")

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "expired")
}

func (suite *AuthServiceTestSuite) TestRefreshTokens_Revoked() {
	revokedAt := time.Now().Add(-time.Minute)
	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    suite.userID,
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}
	suite.mockTokenRepo.On("GetByHash", mock.Anything, mock.AnythingOfType("string")).Return(record, nil).Once()

	_, err := suite.service.RefreshTokens(context.Background(), "some-token")

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "revoked")
}

func (suite *AuthServiceTestSuite) TestCleanupExpiredTokens() {
	suite.mockTokenRepo.On("DeleteExpired", mock.Anything).Return(int64(4), nil).Once()

	deleted, err := suite.service.CleanupExpiredTokens(context.Background())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), deleted)
}
