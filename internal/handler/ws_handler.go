package handler

import (
	"net/http"

	"campusnet/internal/middleware"
	"campusnet/internal/ws"
	"campusnet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub       *ws.Hub
	jwtSecret string
}

func NewWSHandler(hub *ws.Hub, jwtSecret string) *WSHandler {
	return &WSHandler{hub: hub, jwtSecret: jwtSecret}
}

// Connect upgrades to a websocket. Browsers cannot set headers on the
// upgrade request, so the token rides in the query string.
func (h *WSHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	userID, err := middleware.ParseUserID(token, h.jwtSecret)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan ws.Payload, 16),
	}

	h.hub.Register(client)
	go client.WritePump(h.hub)
	go client.ReadPump(h.hub)
}
