package room

import (
	"sync"

	"github.com/sirupsen/logrus"

	"nim-relay/internal/game"
)

// Manager runs the per-room session state machine. Every operation holds mu for its
// whole duration, so events are applied one at a time in arrival order.
type Manager struct {
	mu        sync.Mutex
	registry  *Registry
	transport Transport
	log       *logrus.Entry
}

func NewManager(reg *Registry, t Transport) *Manager {
	return &Manager{
		registry:  reg,
		transport: t,
		log:       logrus.WithField("component", "room_manager"),
	}
}

// Host opens a new room for connID. A connection already seated elsewhere leaves that room
// once the new one exists; if no room can be created it keeps its old seat.
func (m *Manager) Host(connID string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, seated := m.registry.RoomOf(connID)

	r, err := m.registry.Create(connID)
	if err != nil {
		m.log.WithError(err).WithField("conn_id", connID).Error("failed to create room")
		return nil, err
	}
	if seated {
		m.leaveRoomLocked(connID, prev)
	}
	m.transport.JoinGroup(connID, r.Code)
	m.transport.Send(connID, EventGameHosted, GameHostedPayload{RoomID: r.Code, Board: r.Board.Clone()})

	m.log.WithFields(logrus.Fields{"room_code": r.Code, "conn_id": connID}).Info("room created")
	return r, nil
}

// Join seats connID as the opponent if that slot is free, otherwise as a spectator.
func (m *Manager) Join(code, connID string) (Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.registry.Get(code)
	if err != nil {
		return Seat{}, err
	}
	if current, ok := m.registry.RoomOf(connID); ok {
		if current == code {
			return Seat{}, ErrAlreadyInRoom
		}
		m.leaveLocked(connID)
	}

	logCtx := m.log.WithFields(logrus.Fields{"room_code": code, "conn_id": connID})
	m.registry.Bind(connID, code)
	m.transport.JoinGroup(connID, code)

	if !r.HasOpponent() {
		r.Opponent = connID
		m.transport.Send(connID, EventJoinedGame, JoinedGamePayload{
			RoomID: code, Board: r.Board.Clone(), Role: RoleOpponent.Number(),
		})
		m.transport.Broadcast(code, EventPlayerJoined, PlayerJoinedPayload{Role: RoleOpponent.Number()})
		logCtx.Info("opponent joined")
		return Seat{Role: RoleOpponent}, nil
	}

	r.Spectators = append(r.Spectators, connID)
	m.transport.Send(connID, EventJoinedGame, JoinedGamePayload{
		RoomID: code, Board: r.Board.Clone(), Role: RoleSpectator.Number(),
	})
	m.transport.Broadcast(code, EventSpectatorJoined, SpectatorCountPayload{Count: len(r.Spectators)})
	logCtx.WithField("spectators", len(r.Spectators)).Info("spectator joined")
	return Seat{Role: RoleSpectator, Spectators: len(r.Spectators)}, nil
}

// Move applies mv for connID if it is that connection's turn and the move is legal.
func (m *Manager) Move(code, connID string, mv game.Move) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.registry.Get(code)
	if err != nil {
		return err
	}
	if connID == "" || r.PlayerFor(r.Board.PlayerTurn) != connID {
		return ErrNotYourTurn
	}
	mover := r.Board.PlayerTurn
	if err := game.ApplyMove(&r.Board, mv); err != nil {
		return err
	}

	logCtx := m.log.WithFields(logrus.Fields{
		"room_code": code,
		"conn_id":   connID,
		"row":       mv.RowIndex,
		"count":     mv.Count,
	})
	if game.IsOver(r.Board) {
		winner := game.Winner(r.Board)
		m.transport.Broadcast(code, EventGameOver, GameOverPayload{Winner: int(winner)})
		logCtx.WithField("winner", winner).Info("game over")
		return nil
	}
	m.transport.Broadcast(code, EventUpdateBoard, BoardPayload{Board: r.Board.Clone()})
	logCtx.WithField("player", mover).Debug("move applied")
	return nil
}

// PlayAgain deals a fresh board. Only the host or the opponent may ask for it.
func (m *Manager) PlayAgain(code, connID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.registry.Get(code)
	if err != nil {
		return err
	}
	role, ok := r.RoleOf(connID)
	if !ok || role == RoleSpectator {
		return ErrNotAuthorized
	}
	r.Board = m.registry.RandomBoard()
	m.transport.Broadcast(code, EventGameRestarted, BoardPayload{Board: r.Board.Clone()})
	m.log.WithFields(logrus.Fields{"room_code": code, "conn_id": connID}).Info("game restarted")
	return nil
}

// Leave handles both a voluntary leave and a dropped connection. Unknown connections are ignored.
func (m *Manager) Leave(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaveLocked(connID)
}

// ListRooms is the read-only projection behind the public game listing.
func (m *Manager) ListRooms() []Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.List()
}

// Close discards every room; called once the transport has stopped delivering events.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry.Close()
}

func (m *Manager) leaveLocked(connID string) {
	if code, ok := m.registry.RoomOf(connID); ok {
		m.leaveRoomLocked(connID, code)
	}
}

// leaveRoomLocked takes connID out of the room code. The connection's index entry is only
// dropped while it still points at code, so a freshly hosted room stays bound.
func (m *Manager) leaveRoomLocked(connID, code string) {
	r, err := m.registry.Get(code)
	if err != nil {
		m.registry.unbindFrom(connID, code)
		return
	}
	role, ok := r.RoleOf(connID)
	if !ok {
		m.registry.unbindFrom(connID, code)
		return
	}

	logCtx := m.log.WithFields(logrus.Fields{"room_code": code, "conn_id": connID, "role": role.String()})
	switch role {
	case RoleHost:
		m.transport.Broadcast(code, EventHostLeft, nil)
		m.dissolve(r)
		logCtx.Info("host left, room deleted")
	case RoleOpponent:
		m.transport.Broadcast(code, EventOpponentLeft, nil)
		m.dissolve(r)
		logCtx.Info("opponent left, room deleted")
	default:
		r.removeSpectator(connID)
		m.registry.unbindFrom(connID, code)
		m.transport.LeaveGroup(connID, code)
		m.transport.Broadcast(code, EventSpectatorLeft, SpectatorCountPayload{Count: len(r.Spectators)})
		logCtx.WithField("spectators", len(r.Spectators)).Info("spectator left")
		if r.Empty() {
			m.registry.Delete(code)
			logCtx.Info("room empty, deleted")
		}
	}
}

// dissolve drops every member from the broadcast group and discards the room record whole.
func (m *Manager) dissolve(r *Room) {
	for _, id := range r.Members() {
		m.transport.LeaveGroup(id, r.Code)
	}
	m.registry.Delete(r.Code)
}
