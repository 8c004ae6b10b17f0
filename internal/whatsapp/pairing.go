package whatsapp

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"cobrafacil/internal/models"
	"cobrafacil/internal/repositories"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// DefaultConnectDelay is how long the mock handshake waits before reporting
// the connection as established.
const DefaultConnectDelay = 5 * time.Second

// ClientMessage is what the dashboard sends over the pairing socket.
type ClientMessage struct {
	Type        string `json:"type"`
	UserID      string `json:"user_id,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// ServerMessage is what the pairing socket pushes back.
type ServerMessage struct {
	Type        string `json:"type"`
	QR          string `json:"qr,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Message     string `json:"message,omitempty"`
}

// PairingHandler simulates the WhatsApp pairing handshake over a WebSocket.
// There is no real pairing protocol behind it: the QR payload is fabricated
// and the connection is marked established after a fixed delay.
type PairingHandler struct {
	whatsappRepo repositories.WhatsAppRepository
	upgrader     websocket.Upgrader
	connectDelay time.Duration
}

func NewPairingHandler(whatsappRepo repositories.WhatsAppRepository, connectDelay time.Duration) *PairingHandler {
	if connectDelay <= 0 {
		connectDelay = DefaultConnectDelay
	}
	return &PairingHandler{
		whatsappRepo: whatsappRepo,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // dashboard origin enforcement happens at the proxy
			},
		},
		connectDelay: connectDelay,
	}
}

// pairingSession is the per-socket state. One timer per socket, cancelled when
// the socket closes.
type pairingSession struct {
	conn        *websocket.Conn
	writeMu     sync.Mutex
	userID      uuid.UUID
	phoneNumber string
	done        chan struct{}
}

func (s *pairingSession) send(msg ServerMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(msg)
}

// Handle upgrades the request and runs the pairing message loop.
func (h *PairingHandler) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("Pairing websocket upgrade failed: %v", err)
		return err
	}
	defer conn.Close()

	session := &pairingSession{
		conn: conn,
		done: make(chan struct{}),
	}
	defer close(session.done)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Pairing socket read error: %v", err)
			}
			return nil
		}

		switch msg.Type {
		case "init":
			h.handleInit(c.Request().Context(), session, msg)
		case "disconnect":
			h.handleDisconnect(c.Request().Context(), session)
		default:
			_ = session.send(ServerMessage{Type: "error", Message: "unknown message type"})
		}
	}
}

func (h *PairingHandler) handleInit(ctx context.Context, session *pairingSession, msg ClientMessage) {
	userID, err := uuid.Parse(msg.UserID)
	if err != nil {
		_ = session.send(ServerMessage{Type: "error", Message: "invalid user_id"})
		return
	}
	if msg.PhoneNumber == "" {
		_ = session.send(ServerMessage{Type: "error", Message: "phone_number is required"})
		return
	}

	session.userID = userID
	session.phoneNumber = msg.PhoneNumber

	err = h.whatsappRepo.Upsert(ctx, &models.WhatsAppConnection{
		ID:          uuid.New(),
		UserID:      userID,
		PhoneNumber: msg.PhoneNumber,
		IsConnected: false,
	})
	if err != nil {
		log.Printf("Pairing upsert failed for user %s: %v", userID.String(), err)
		_ = session.send(ServerMessage{Type: "error", Message: "failed to register connection"})
		return
	}

	if err := session.send(ServerMessage{Type: "qr", QR: GenerateMockQR()}); err != nil {
		return
	}

	// The mock handshake: after a fixed delay the connection is reported
	// as established, unconditionally.
	go func() {
		select {
		case <-time.After(h.connectDelay):
		case <-session.done:
			return
		}

		if err := h.whatsappRepo.SetConnected(context.Background(), userID, true); err != nil {
			log.Printf("Pairing connect update failed for user %s: %v", userID.String(), err)
			_ = session.send(ServerMessage{Type: "error", Message: "failed to complete pairing"})
			return
		}

		_ = session.send(ServerMessage{
			Type:        "connected",
			PhoneNumber: session.phoneNumber,
			Message:     "WhatsApp connected",
		})
	}()
}

func (h *PairingHandler) handleDisconnect(ctx context.Context, session *pairingSession) {
	if session.userID == uuid.Nil {
		_ = session.send(ServerMessage{Type: "error", Message: "not initialized"})
		return
	}

	if err := h.whatsappRepo.SetConnected(ctx, session.userID, false); err != nil {
		log.Printf("Pairing disconnect failed for user %s: %v", session.userID.String(), err)
		_ = session.send(ServerMessage{Type: "error", Message: "failed to disconnect"})
		return
	}

	_ = session.send(ServerMessage{Type: "disconnected", Message: "WhatsApp disconnected"})
}
