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

type ChargeRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ChargeRepository
	userID  uuid.UUID
	context context.Context
}

func (suite *ChargeRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewChargeRepo(mock)
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *ChargeRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestChargeRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ChargeRepoTestSuite))
}

func (suite *ChargeRepoTestSuite) TestCreate_Success() {
	charge := &models.Charge{
		ID:        uuid.New(),
		UserID:    suite.userID,
		ClientID:  uuid.New(),
		ProductID: uuid.New(),
		Amount:    150.0,
		DueDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:    models.ChargeStatusPending,
	}

	suite.mock.ExpectExec(`INSERT INTO charges`).
		WithArgs(charge.ID, charge.UserID, charge.ClientID, charge.ProductID, charge.Amount, charge.DueDate, charge.Status, charge.PaidAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, charge)
	assert.NoError(suite.T(), err)
}

func (suite *ChargeRepoTestSuite) TestGetByID_ScopedToUser() {
	chargeID := uuid.New()
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "user_id", "client_id", "product_id", "amount", "due_date", "status", "paid_at", "created_at", "updated_at"}).
		AddRow(chargeID, suite.userID, uuid.New(), uuid.New(), 99.90, now.AddDate(0, 0, 5), models.ChargeStatusPending, (*time.Time)(nil), now, now)

	suite.mock.ExpectQuery(`SELECT id, user_id, client_id, product_id, amount, due_date, status, paid_at, created_at, updated_at\s+FROM charges\s+WHERE user_id = \$1 AND id = \$2`).
		WithArgs(suite.userID, chargeID).
		WillReturnRows(rows)

	charge, err := suite.repo.GetByID(suite.context, suite.userID, chargeID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), chargeID, charge.ID)
	assert.Equal(suite.T(), models.ChargeStatusPending, charge.Status)
	assert.Nil(suite.T(), charge.PaidAt)
}

func (suite *ChargeRepoTestSuite) TestUpdateStatus_SetsPaidAt() {
	chargeID := uuid.New()
	paidAt := time.Now()

	suite.mock.ExpectExec(`UPDATE charges\s+SET status = \$1, paid_at = \$2, updated_at = NOW\(\)\s+WHERE user_id = \$3 AND id = \$4`).
		WithArgs(models.ChargeStatusPaid, &paidAt, suite.userID, chargeID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateStatus(suite.context, suite.userID, chargeID, models.ChargeStatusPaid, &paidAt)
	assert.NoError(suite.T(), err)
}

func (suite *ChargeRepoTestSuite) TestListUpcoming_JoinsClientAndProduct() {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 4, 23, 59, 59, 0, time.UTC)
	chargeID := uuid.New()

	rows := pgxmock.NewRows([]string{"id", "user_id", "name", "phone", "name", "amount", "due_date"}).
		AddRow(chargeID, suite.userID, "Maria", "+5511999887766", "Mensalidade", 120.0, start.AddDate(0, 0, 2))

	suite.mock.ExpectQuery(`WHERE c\.status = 'pending' AND c\.due_date BETWEEN \$1 AND \$2`).
		WithArgs(start, end).
		WillReturnRows(rows)

	upcoming, err := suite.repo.ListUpcoming(suite.context, start, end)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), upcoming, 1)
	assert.Equal(suite.T(), chargeID, upcoming[0].ChargeID)
	assert.Equal(suite.T(), "Maria", upcoming[0].ClientName)
	assert.Equal(suite.T(), "+5511999887766", upcoming[0].ClientPhone)
	assert.Equal(suite.T(), "Mensalidade", upcoming[0].ProductName)
}

func (suite *ChargeRepoTestSuite) TestListUpcoming_Empty() {
	start := time.Now()
	end := start.AddDate(0, 0, 3)

	suite.mock.ExpectQuery(`WHERE c\.status = 'pending' AND c\.due_date BETWEEN \$1 AND \$2`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "phone", "name", "amount", "due_date"}))

	upcoming, err := suite.repo.ListUpcoming(suite.context, start, end)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), upcoming)
}
