package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/infrastructure/ws"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// Smoke test against a live server. Run with:
//
//	CHAT_ADDR=localhost:8080 CHAT_JWT_SECRET=... go test ./e2e/...
func TestSmoke_Send_And_Echo(t *testing.T) {
	req := require.New(t)
	cfg, err := LoadConfig()
	req.NoError(err)
	if cfg.Addr == "" {
		t.Skip("CHAT_ADDR not set, skipping e2e")
	}
	color.Enable = cfg.Colours

	gate := auth.NewGate(auth.Config{Secret: []byte(cfg.JWTSecret), TokenDuration: time.Hour})
	token, err := gate.GenerateToken("e2e-user", "e2e")
	req.NoError(err)

	url := fmt.Sprintf("ws://%s/ws", cfg.Addr)
	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	req.NoError(err)
	defer conn.Close()
	color.Green.Println("Connected")

	room := "e2e-" + uuid.NewString()
	raw, _ := json.Marshal(room)
	req.NoError(conn.WriteJSON(ws.Envelope{Event: ws.EventJoinChat, Payload: raw}))

	payload, _ := json.Marshal(ws.SendMessagePayload{ChatID: room, Content: "e2e ping"})
	req.NoError(conn.WriteJSON(ws.Envelope{Event: ws.EventSendMessage, Payload: payload}))
	color.Green.Println("Message sent, waiting for echo")

	req.NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	var envelope ws.Envelope
	req.NoError(conn.ReadJSON(&envelope))
	req.Equal("newMessage", envelope.Event)

	var message domain.Message
	req.NoError(json.Unmarshal(envelope.Payload, &message))
	req.Equal("e2e ping", message.Content)
	req.Equal("e2e", message.SenderUsername)
	color.Green.Println("Echo received")
}
