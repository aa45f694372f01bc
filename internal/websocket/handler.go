package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs registers the connection and blocks until the peer goes away.
// initial, when non-nil, is queued before any hub traffic.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID, initial []byte) {
	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, 256)}
	if initial != nil {
		client.Send <- initial
	}
	hub.register <- client

	go client.writePump()
	client.readPump()
}
