package repositories

import (
	"context"
	"testing"
	"time"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type MessageRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    MessageRepository
	userID  uuid.UUID
	context context.Context
}

func (suite *MessageRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewMessageRepo(mock)
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *MessageRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestMessageRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MessageRepoTestSuite))
}

func (suite *MessageRepoTestSuite) TestCreate_Success() {
	now := time.Now()
	message := &models.Message{
		ID:          uuid.New(),
		UserID:      suite.userID,
		ChargeID:    uuid.New(),
		PhoneNumber: "+5511999887766",
		Content:     "Olá Maria!",
		Status:      models.MessageStatusSent,
		SentAt:      now,
		DeliveredAt: &now,
	}

	suite.mock.ExpectExec(`INSERT INTO messages`).
		WithArgs(message.ID, message.UserID, message.ChargeID, message.PhoneNumber, message.Content, message.Status, message.SentAt, message.DeliveredAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, message)
	assert.NoError(suite.T(), err)
}

func (suite *MessageRepoTestSuite) TestExistsForChargeSince_Found() {
	chargeID := uuid.New()
	since := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM messages WHERE charge_id = \$1 AND sent_at >= \$2\)`).
		WithArgs(chargeID, since).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := suite.repo.ExistsForChargeSince(suite.context, chargeID, since)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

func (suite *MessageRepoTestSuite) TestExistsForChargeSince_NotFound() {
	chargeID := uuid.New()
	since := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM messages WHERE charge_id = \$1 AND sent_at >= \$2\)`).
		WithArgs(chargeID, since).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := suite.repo.ExistsForChargeSince(suite.context, chargeID, since)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)
}
