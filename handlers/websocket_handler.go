package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/karimdoss-design/campustad/standings"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origins are filtered by the CORS layer; the live feed is public
		// read-only data.
		return true
	},
}

type WebSocketHandler struct {
	hub    *standings.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *standings.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeLive upgrades the connection and subscribes it to the shared live
// room. Clients receive change events and reload the affected views.
func (h *WebSocketHandler) ServeLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := standings.NewClient(h.hub, conn, standings.LiveRoom)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
