package whatsapp

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func startPairingServer(t *testing.T, repo *MockWhatsAppRepository, connectDelay time.Duration) (*websocket.Conn, func()) {
	t.Helper()

	e := echo.New()
	handler := NewPairingHandler(repo, connectDelay)
	e.GET("/v1/whatsapp/pair", handler.Handle)

	server := httptest.NewServer(e)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/whatsapp/pair"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}

	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func readMessage(t *testing.T, conn *websocket.Conn, timeout time.Duration) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(timeout)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestPairing_InitSendsQRThenConnected(t *testing.T) {
	repo := &MockWhatsAppRepository{}
	userID := uuid.New()

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(conn *models.WhatsAppConnection) bool {
		return conn.UserID == userID && conn.PhoneNumber == "+5511999887766" && !conn.IsConnected
	})).Return(nil).Once()
	repo.On("SetConnected", mock.Anything, userID, true).Return(nil).Once()

	conn, teardown := startPairingServer(t, repo, 50*time.Millisecond)
	defer teardown()

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type:        "init",
		UserID:      userID.String(),
		PhoneNumber: "+5511999887766",
	}))

	qr := readMessage(t, conn, time.Second)
	assert.Equal(t, "qr", qr.Type)
	assert.True(t, strings.HasPrefix(qr.QR, "data:image/svg+xml;base64,"))

	connected := readMessage(t, conn, time.Second)
	assert.Equal(t, "connected", connected.Type)
	assert.Equal(t, "+5511999887766", connected.PhoneNumber)

	repo.AssertExpectations(t)
}

func TestPairing_InitRejectsInvalidUserID(t *testing.T) {
	repo := &MockWhatsAppRepository{}

	conn, teardown := startPairingServer(t, repo, 50*time.Millisecond)
	defer teardown()

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type:        "init",
		UserID:      "not-a-uuid",
		PhoneNumber: "+5511999887766",
	}))

	msg := readMessage(t, conn, time.Second)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "invalid user_id", msg.Message)
	repo.AssertNotCalled(t, "Upsert")
}

func TestPairing_InitRequiresPhoneNumber(t *testing.T) {
	repo := &MockWhatsAppRepository{}

	conn, teardown := startPairingServer(t, repo, 50*time.Millisecond)
	defer teardown()

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type:   "init",
		UserID: uuid.NewString(),
	}))

	msg := readMessage(t, conn, time.Second)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "phone_number is required", msg.Message)
}

func TestPairing_DisconnectAfterPairing(t *testing.T) {
	repo := &MockWhatsAppRepository{}
	userID := uuid.New()

	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("SetConnected", mock.Anything, userID, true).Return(nil).Once()
	repo.On("SetConnected", mock.Anything, userID, false).Return(nil).Once()

	conn, teardown := startPairingServer(t, repo, 20*time.Millisecond)
	defer teardown()

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type:        "init",
		UserID:      userID.String(),
		PhoneNumber: "+5511999887766",
	}))

	assert.Equal(t, "qr", readMessage(t, conn, time.Second).Type)
	assert.Equal(t, "connected", readMessage(t, conn, time.Second).Type)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "disconnect"}))
	msg := readMessage(t, conn, time.Second)
	assert.Equal(t, "disconnected", msg.Type)

	repo.AssertExpectations(t)
}

func TestPairing_UnknownMessageType(t *testing.T) {
	repo := &MockWhatsAppRepository{}

	conn, teardown := startPairingServer(t, repo, 50*time.Millisecond)
	defer teardown()

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "ping"}))

	msg := readMessage(t, conn, time.Second)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "unknown message type", msg.Message)
}

func TestPairing_CloseCancelsPendingConnect(t *testing.T) {
	repo := &MockWhatsAppRepository{}
	userID := uuid.New()

	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()

	conn, teardown := startPairingServer(t, repo, 500*time.Millisecond)

	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type:        "init",
		UserID:      userID.String(),
		PhoneNumber: "+5511999887766",
	}))
	assert.Equal(t, "qr", readMessage(t, conn, time.Second).Type)

	teardown()
	time.Sleep(600 * time.Millisecond)

	repo.AssertNotCalled(t, "SetConnected")
}
