package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

// pingPeriod must stay well under the presence TTL so a quiet but live
// connection keeps reading as online.
const pingPeriod = 2 * time.Minute

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan Payload
}

func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()

	for {
		var msg Payload
		if err := c.Conn.ReadJSON(&msg); err != nil {
			break
		}
		// Sender identity comes from the authenticated connection,
		// never from the payload.
		msg.SenderID = c.UserID
		hub.Forward(msg)
	}
}

func (c *Client) WritePump(hub *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.Conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			hub.Refresh(c)
		}
	}
}
