package room

import (
	"errors"

	"nim-relay/internal/game"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrInvalidMove        = game.ErrInvalidMove
	ErrNotAuthorized      = errors.New("not authorized to restart")
	ErrAlreadyInRoom      = errors.New("already in this room")
	ErrCodeSpaceExhausted = errors.New("could not allocate a free room code")
)

// Message turns a session error into the text sent to the client.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, ErrNotYourTurn):
		return "Not your turn or you are a spectator"
	case errors.Is(err, ErrInvalidMove):
		return "Invalid move"
	case errors.Is(err, ErrNotAuthorized):
		return "Spectators cannot restart the game."
	case errors.Is(err, ErrAlreadyInRoom):
		return "Already in this room"
	default:
		return "Something went wrong"
	}
}
