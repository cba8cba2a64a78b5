package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"quizrace/internal/game"
	"quizrace/internal/wshub"
)

// handleWS upgrades the connection, assigns it an id, and pumps messages
// between the socket and the coordinator until the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	opts := &websocket.AcceptOptions{}
	if len(s.Cfg.AllowedOrigins) > 0 {
		opts.OriginPatterns = s.Cfg.AllowedOrigins
	} else {
		opts.InsecureSkipVerify = true
	}

	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	// Question payloads can be large.
	conn.SetReadLimit(256 * 1024)

	connID := uuid.New().String()
	client := &wshub.Client{
		ID:   connID,
		Conn: conn,
		Send: make(chan []byte, 32),
	}
	s.Hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)

	log.Printf("[WS] %s connected\n", connID)
	s.Hub.SendTo(connID, game.ServerMessage{Type: game.EventConnected, ConnectionID: connID})

	defer func() {
		s.Hub.Unregister(connID)
		s.Coordinator.Disconnect(connID)
		log.Printf("[WS] %s disconnected\n", connID)
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var msg game.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] %s sent invalid JSON: %v\n", connID, err)
			continue
		}
		if err := s.Coordinator.Dispatch(connID, msg); err != nil {
			log.Printf("[WS] %s %s: %v\n", connID, msg.Type, err)
		}
	}
}
