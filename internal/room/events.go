package room

import (
	"time"

	"nim-relay/internal/game"
)

// Payloads carried in the data field of outbound events.

type ConnectedPayload struct {
	ConnectionID string `json:"connectionId"`
}

type GameHostedPayload struct {
	RoomID string     `json:"roomId"`
	Board  game.Board `json:"board"`
}

type JoinedGamePayload struct {
	RoomID string     `json:"roomId"`
	Board  game.Board `json:"board"`
	Role   int        `json:"role"`
}

type PlayerJoinedPayload struct {
	Role int `json:"role"`
}

// SpectatorCountPayload is sent with spectatorJoined and spectatorLeft.
type SpectatorCountPayload struct {
	Count int `json:"count"`
}

type BoardPayload struct {
	Board game.Board `json:"board"`
}

type GameOverPayload struct {
	Winner int `json:"winner"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Summary is one row of the public game listing.
type Summary struct {
	RoomID    string    `json:"roomId"`
	Players   int       `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
}
