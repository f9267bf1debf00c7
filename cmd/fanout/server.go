package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the dashboard's domain is fixed
		return true
	},
}

// Server handles WebSocket connections and stats requests
type Server struct {
	hub *Hub
}

// NewServer creates a new Server instance
func NewServer(hub *Hub) *Server {
	return &Server{
		hub: hub,
	}
}

// HandleWebSocket handles WebSocket upgrade and registration
// URL: /ws?creator_id=6c5e3f0a-...
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	creatorID := r.URL.Query().Get("creator_id")
	if creatorID == "" {
		http.Error(w, "creator_id query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := NewClient(s.hub, conn, creatorID)
	s.hub.register <- client

	log.Printf("New WebSocket connection: creator_id=%s, remote=%s", creatorID, r.RemoteAddr)

	go client.writePump()
	go client.readPump()
}

// HandleStats reports hub connection counts
// GET /api/stats
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"connections": s.hub.GetConnectionCount(),
		"creators":    s.hub.GetCreatorCount(),
	})
}
