package ws

import (
	"nim-relay/internal/game"
	"nim-relay/internal/room"
)

// RoomManager is the session logic the socket handler dispatches client actions to.
type RoomManager interface {
	Host(connID string) (*room.Room, error)
	Join(roomCode, connID string) (room.Seat, error)
	Move(roomCode, connID string, mv game.Move) error
	PlayAgain(roomCode, connID string) error
	Leave(connID string)
}
