package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/unboxus/unbox-server/internal/models"
)

type MessageType string

const (
	TypePing     MessageType = "ping"
	TypePong     MessageType = "pong"
	TypeSnapshot MessageType = "answers_snapshot"
	TypeError    MessageType = "error"
)

// Message is the wire envelope. Snapshot deliveries carry the room's full
// answer list, never a diff; receivers treat each one as a state refresh.
type Message struct {
	Type      MessageType     `json:"type"`
	RoomID    *uuid.UUID      `json:"room_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Client struct {
	ID     uuid.UUID
	RoomID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

// SnapshotSource reads a room's current answers; the postgres adapter
// satisfies it.
type SnapshotSource interface {
	GetAnswers(ctx context.Context, roomID uuid.UUID) ([]models.Answer, error)
}

// Hub fans answer snapshots out to every session watching a room. Writers
// call NotifyRoom after a change; independently, a reconciliation ticker
// re-reads and re-broadcasts watched rooms so a lost notification only delays
// convergence instead of breaking it.
type Hub struct {
	source SnapshotSource

	clients map[uuid.UUID]*Client
	rooms   map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	refresh    chan uuid.UUID

	// Called with every snapshot delivered, push or tick.
	onSnapshot func(roomID uuid.UUID, answers []models.Answer)

	refreshInterval time.Duration

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(source SnapshotSource, refreshInterval time.Duration) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		source:          source,
		clients:         make(map[uuid.UUID]*Client),
		rooms:           make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		refresh:         make(chan uuid.UUID, 64),
		refreshInterval: refreshInterval,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// OnSnapshot installs the reconciliation callback. Set before Run.
func (h *Hub) OnSnapshot(fn func(roomID uuid.UUID, answers []models.Answer)) {
	h.onSnapshot = fn
}

func (h *Hub) Run() {
	ticker := time.NewTicker(h.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case roomID := <-h.refresh:
			h.broadcastSnapshot(roomID)

		case <-ticker.C:
			for _, roomID := range h.watchedRooms() {
				h.broadcastSnapshot(roomID)
			}
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyRoom queues a snapshot broadcast for a room whose answers changed.
func (h *Hub) NotifyRoom(roomID uuid.UUID) {
	select {
	case h.refresh <- roomID:
	default:
		// Queue full; the reconciliation tick will cover it.
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	if _, ok := h.rooms[client.RoomID]; !ok {
		h.rooms[client.RoomID] = make(map[uuid.UUID]*Client)
	}
	h.rooms[client.RoomID][client.ID] = client
	h.mu.Unlock()

	log.Printf("ws client %s subscribed to room %s", client.ID, client.RoomID)

	// New subscribers get the current state immediately.
	h.sendSnapshotTo(client)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	if room, ok := h.rooms[client.RoomID]; ok {
		delete(room, client.ID)
		if len(room) == 0 {
			delete(h.rooms, client.RoomID)
		}
	}
	close(client.Send)

	log.Printf("ws client %s left room %s", client.ID, client.RoomID)
}

func (h *Hub) watchedRooms() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rooms := make([]uuid.UUID, 0, len(h.rooms))
	for roomID := range h.rooms {
		rooms = append(rooms, roomID)
	}
	return rooms
}

func (h *Hub) snapshotMessage(roomID uuid.UUID) ([]byte, []models.Answer, error) {
	ctx, cancel := context.WithTimeout(h.ctx, 5*time.Second)
	defer cancel()

	answers, err := h.source.GetAnswers(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	data, err := json.Marshal(answers)
	if err != nil {
		return nil, nil, err
	}
	msg := Message{
		Type:      TypeSnapshot,
		RoomID:    &roomID,
		Data:      data,
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, err
	}
	return payload, answers, nil
}

func (h *Hub) broadcastSnapshot(roomID uuid.UUID) {
	payload, answers, err := h.snapshotMessage(roomID)
	if err != nil {
		log.Printf("snapshot for room %s failed: %v", roomID, err)
		return
	}

	if h.onSnapshot != nil {
		h.onSnapshot(roomID, answers)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[roomID] {
		select {
		case client.Send <- payload:
		default:
			log.Printf("ws client %s send queue full", client.ID)
		}
	}
}

func (h *Hub) sendSnapshotTo(client *Client) {
	payload, answers, err := h.snapshotMessage(client.RoomID)
	if err != nil {
		log.Printf("initial snapshot for room %s failed: %v", client.RoomID, err)
		return
	}

	if h.onSnapshot != nil {
		h.onSnapshot(client.RoomID, answers)
	}

	select {
	case client.Send <- payload:
	default:
		log.Printf("ws client %s send queue full", client.ID)
	}
}

// RoomSubscriberCount reports how many sessions are watching a room.
func (h *Hub) RoomSubscriberCount(roomID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
