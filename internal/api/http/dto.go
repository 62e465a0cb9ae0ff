package http

import (
	"time"

	"nim-relay/internal/room"
)

// GameSummary is one entry of GET /games.
type GameSummary struct {
	RoomID    string    `json:"roomId"`
	Players   int       `json:"players"`
	CreatedAt time.Time `json:"createdAt"`
}

func newGameSummary(s room.Summary) GameSummary {
	return GameSummary{RoomID: s.RoomID, Players: s.Players, CreatedAt: s.CreatedAt}
}

type PingResponse struct {
	Message string `json:"message"`
}
