package main

import (
	"log"
	"sync"
)

// Hub maintains active WebSocket connections and broadcasts asset events
type Hub struct {
	// Map: creatorID → []*Client
	connections map[string][]*Client
	mutex       sync.RWMutex

	// Channel for registering clients
	register chan *Client

	// Channel for unregistering clients
	unregister chan *Client

	// Channel for broadcasting events
	broadcast chan *Message
}

// Message represents an asset event to be broadcast
type Message struct {
	CreatorID string
	Data      []byte
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string][]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *Message, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	log.Println("Hub started")

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToCreator(message)
		}
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.connections[client.creatorID] = append(h.connections[client.creatorID], client)
	log.Printf("Client registered: creator_id=%s, total_for_creator=%d",
		client.creatorID, len(h.connections[client.creatorID]))
}

// unregisterClient removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	clients := h.connections[client.creatorID]
	for i, c := range clients {
		if c == client {
			// Remove client from slice
			h.connections[client.creatorID] = append(clients[:i], clients[i+1:]...)
			close(client.send)

			// If no more clients for this creator, remove the map entry
			if len(h.connections[client.creatorID]) == 0 {
				delete(h.connections, client.creatorID)
			}

			log.Printf("Client unregistered: creator_id=%s, remaining_for_creator=%d",
				client.creatorID, len(h.connections[client.creatorID]))
			break
		}
	}
}

// broadcastToCreator sends an event to all connections watching a creator
func (h *Hub) broadcastToCreator(message *Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	clients := h.connections[message.CreatorID]
	if len(clients) == 0 {
		// No clients watching this creator, skip
		return
	}

	log.Printf("Broadcasting to creator_id=%s, client_count=%d",
		message.CreatorID, len(clients))

	for _, client := range clients {
		select {
		case client.send <- message.Data:
			// Message sent successfully
		default:
			// Client's send buffer is full, close the connection
			log.Printf("Client send buffer full, closing connection: creator_id=%s", client.creatorID)
			close(client.send)
		}
	}
}

// GetConnectionCount returns the total number of active connections
func (h *Hub) GetConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	count := 0
	for _, clients := range h.connections {
		count += len(clients)
	}
	return count
}

// GetCreatorCount returns the number of distinct creators being watched
func (h *Hub) GetCreatorCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}
