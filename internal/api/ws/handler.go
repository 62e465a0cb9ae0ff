package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"nim-relay/internal/game"
	"nim-relay/internal/room"
)

// Client actions.
const (
	ActionHostGame   = "hostGame"
	ActionJoinGame   = "joinGame"
	ActionPlayerMove = "playerMove"
	ActionPlayAgain  = "playAgain"
	ActionLeaveGame  = "leaveGame"
)

type inbound struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type roomRef struct {
	RoomID string `json:"roomId"`
}

type moveRequest struct {
	RoomID string    `json:"roomId"`
	Move   game.Move `json:"move"`
}

type Options struct {
	// AllowedOrigin is matched against the Origin header; "*" or "" accepts any origin.
	AllowedOrigin string
	SendBuffer    int
}

// Handler upgrades HTTP requests to sockets and turns client frames into RoomManager calls.
type Handler struct {
	hub      *Hub
	rooms    RoomManager
	upgrader websocket.Upgrader
	buffer   int

	active sync.WaitGroup
}

func NewHandler(hub *Hub, rooms RoomManager, opts Options) *Handler {
	allowed := opts.AllowedOrigin
	return &Handler{
		hub:    hub,
		rooms:  rooms,
		buffer: opts.SendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowed == "" || allowed == "*" || origin == "" || origin == allowed
			},
		},
	}
}

func (h *Handler) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("failed to upgrade connection")
		return
	}

	h.active.Add(1)
	defer h.active.Done()

	client := NewClient(uuid.NewString(), conn, h.buffer)
	logCtx := logrus.WithField("conn_id", client.ID())
	logCtx.Info("new connection")

	h.hub.Register(client)
	h.hub.Send(client.ID(), room.EventConnected, room.ConnectedPayload{ConnectionID: client.ID()})
	go client.WritePump()

	client.ReadPump(func(raw []byte) {
		h.Dispatch(client.ID(), raw)
	})

	h.rooms.Leave(client.ID())
	h.hub.Unregister(client.ID())
	logCtx.Info("connection closed")
}

// Drain blocks until every socket handler has run its disconnect path, or ctx ends.
// The server's Shutdown does not wait for upgraded connections, so call this after Hub.Close.
func (h *Handler) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.active.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch runs one client frame. Failures go back to that connection only, as an error event.
func (h *Handler) Dispatch(connID string, raw []byte) {
	logCtx := logrus.WithField("conn_id", connID)

	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		logCtx.WithError(err).Warn("dropping undecodable frame")
		return
	}
	logCtx = logCtx.WithField("action", msg.Action)

	var err error
	switch msg.Action {
	case ActionHostGame:
		_, err = h.rooms.Host(connID)
	case ActionJoinGame:
		_, err = h.rooms.Join(decodeRoomID(msg.Data), connID)
	case ActionPlayerMove:
		var req moveRequest
		if decodeErr := json.Unmarshal(msg.Data, &req); decodeErr != nil {
			err = room.ErrInvalidMove
			break
		}
		err = h.rooms.Move(normalizeCode(req.RoomID), connID, req.Move)
	case ActionPlayAgain:
		err = h.rooms.PlayAgain(decodeRoomID(msg.Data), connID)
	case ActionLeaveGame:
		h.rooms.Leave(connID)
	default:
		logCtx.Warn("unknown action")
		return
	}

	if err != nil {
		logCtx.WithError(err).Debug("action rejected")
		h.hub.Send(connID, room.EventError, room.ErrorPayload{Message: room.Message(err)})
	}
}

// decodeRoomID accepts either a bare JSON string or an object carrying roomId.
func decodeRoomID(data json.RawMessage) string {
	var code string
	if err := json.Unmarshal(data, &code); err == nil {
		return normalizeCode(code)
	}
	var ref roomRef
	if err := json.Unmarshal(data, &ref); err == nil {
		return normalizeCode(ref.RoomID)
	}
	return ""
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
