package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Message is the envelope used in both directions on the socket.
type Message struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// Hub tracks live connections and the broadcast group each one belongs to.
// It implements room.Transport; every send is a non-blocking enqueue.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]struct{}
	log     *logrus.Entry
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]struct{}),
		log:     logrus.WithField("component", "hub"),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.log.WithField("conn_id", c.id).Debug("client registered")
}

// Unregister forgets the connection, drops it from every group and closes its send queue.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	delete(h.clients, connID)
	for code, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
	c.closeSend()
	h.log.WithField("conn_id", connID).Debug("client unregistered")
}

func (h *Hub) Send(connID string, action string, data interface{}) {
	payload, ok := h.encode(action, data)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[connID]; ok {
		h.enqueue(c, payload)
	}
}

func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	payload, ok := h.encode(action, data)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id := range h.rooms[roomCode] {
		if c, ok := h.clients[id]; ok {
			h.enqueue(c, payload)
		}
	}
}

func (h *Hub) JoinGroup(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[string]struct{})
	}
	h.rooms[roomCode][connID] = struct{}{}
}

func (h *Hub) LeaveGroup(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[roomCode]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomCode)
		}
	}
}

// GroupSize reports how many connections currently receive broadcasts for roomCode.
func (h *Hub) GroupSize(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

// Close hangs up every connection. Their read loops then run the usual disconnect path.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.closeConn()
	}
	h.log.WithField("clients", len(h.clients)).Info("hub closed")
}

func (h *Hub) encode(action string, data interface{}) ([]byte, bool) {
	b, err := json.Marshal(Message{Action: action, Data: data})
	if err != nil {
		h.log.WithError(err).WithField("action", action).Error("failed to encode message")
		return nil, false
	}
	return b, true
}

// enqueue must be called with h.mu held so the queue cannot be closed underneath it.
func (h *Hub) enqueue(c *Client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.log.WithField("conn_id", c.id).Warn("send queue full, dropping message")
	}
}
