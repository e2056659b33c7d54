package ws

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// UpgradeRequired gates the relay endpoint to WebSocket upgrade requests.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler accepts a WebSocket connection, registers it with the hub and
// runs the read loop until the peer disconnects.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.New().String(),
			Send: make(chan []byte, 256),
		}

		hub.Register(client)

		done := make(chan struct{})
		go writePump(client, conn, done)

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var env Envelope
			if err := json.Unmarshal(message, &env); err != nil {
				continue // Ignore malformed messages.
			}

			switch env.Event {
			case EventJoinRoom:
				hub.JoinRoom(client, env.RoomID, env.UserID)
			case EventOffer, EventAnswer, EventICECandidate:
				hub.Relay(client, env.RoomID, env.Event, env.Payload)
			}
		}

		hub.Unregister(client)
		<-done
	})
}

// writePump drains the client's Send channel onto the connection. It
// exits when the hub closes the channel on unregister.
func writePump(client *Client, conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	defer conn.Close()

	for message := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}
