package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/skip2/go-qrcode"

	"quizrace/internal/config"
	"quizrace/internal/db"
	"quizrace/internal/game"
	"quizrace/internal/rooms"
	"quizrace/internal/wshub"
)

type Server struct {
	Cfg         config.Config
	Rooms       *rooms.Store
	Hub         *wshub.Hub
	Coordinator *game.Coordinator
	DB          *db.DB
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Encode error: %v\n", err)
	}
}

func (s *Server) handleRoomInfo(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	snap, ok := s.Coordinator.RoomInfo(code)
	if !ok {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	writeJSON(w, snap)
}

// handleRoomQR renders a PNG QR code pointing a phone at the join URL.
func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if s.Rooms.Get(code) == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	url := scheme + "://" + r.Host + "/join?code=" + code

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// handleRoomEvents streams a room's broadcasts over SSE so spectators can
// follow along without holding a WebSocket.
func (s *Server) handleRoomEvents(w http.ResponseWriter, r *http.Request) {
	room := s.Rooms.Get(r.PathValue("code"))
	if room == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	msgChan := room.Broadcaster.Subscribe()
	defer room.Broadcaster.Unsubscribe(msgChan)

	// Unblock the client right away so it knows the stream is live.
	fmt.Fprint(w, ": ok\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-msgChan:
			if !open {
				// Room deleted, stream over.
				return
			}
			fmt.Fprintf(w, "event: %s\n", ev.Name)
			for _, line := range strings.Split(ev.Data, "\n") {
				fmt.Fprintf(w, "data: %s\n", line)
			}
			fmt.Fprint(w, "\n")
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"%s","error":"%s"}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":"%s","rooms":%d}`, status, s.Rooms.Len())
}
