package ws_room

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	usecase_session "github.com/planningpoko/core/internal/usecase/session"
)

// Hub is the transport side of the session engine: it keeps track of
// connected clients and of which clients observe which room, and fans
// events out. Subscription sets are keyed by canonical room id only —
// the engine resolves ids and codes before calling in.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[uuid.UUID]map[string]*Client

	register   chan *Client
	unregister chan *Client
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:     logger,
		clients:    make(map[string]*Client),
		rooms:      make(map[uuid.UUID]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.id] = client
	h.logger.Info("client registered", slog.String("session", client.id))
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.id]; !ok {
		return
	}
	delete(h.clients, client.id)
	for roomID, subscribers := range h.rooms {
		delete(subscribers, client.id)
		if len(subscribers) == 0 {
			delete(h.rooms, roomID)
		}
	}
	close(client.send)

	h.logger.Info("client unregistered", slog.String("session", client.id))
}

// Subscribe implements usecase_session.Broadcaster.
func (h *Hub) Subscribe(sessionID string, roomID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[sessionID]
	if !ok {
		return
	}
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][sessionID] = client

	h.logger.Info("client subscribed",
		slog.String("session", sessionID),
		slog.String("room", roomID.String()))
}

func (h *Hub) Unsubscribe(sessionID string, roomID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(subscribers, sessionID)
	if len(subscribers) == 0 {
		delete(h.rooms, roomID)
	}
}

// Broadcast delivers the event to every subscriber of the room. A
// client whose send buffer is full misses the event; the next snapshot
// makes up for it.
func (h *Hub) Broadcast(roomID uuid.UUID, event usecase_session.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[roomID] {
		if !client.trySend(event) {
			h.logger.Warn("dropping event for slow client",
				slog.String("session", client.id),
				slog.String("event", event.Type))
		}
	}
}

// Subscribers reports the subscriber count of one room.
func (h *Hub) Subscribers(roomID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[roomID])
}
