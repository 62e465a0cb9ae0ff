package room

import (
	"time"

	"nim-relay/internal/game"
)

// Role is the part a connection plays in a room.
type Role int

const (
	RoleSpectator Role = iota
	RoleHost
	RoleOpponent
)

// Number is the role code clients see: 1 host, 2 opponent, 0 spectator.
func (r Role) Number() int {
	switch r {
	case RoleHost:
		return 1
	case RoleOpponent:
		return 2
	default:
		return 0
	}
}

func (r Role) String() string {
	switch r {
	case RoleHost:
		return "host"
	case RoleOpponent:
		return "opponent"
	default:
		return "spectator"
	}
}

// Seat is the outcome of joining a room. Spectators also learn how many
// spectators the room has, themselves included.
type Seat struct {
	Role       Role
	Spectators int
}

type Room struct {
	Code       string     `json:"roomId"`
	Board      game.Board `json:"board"`
	Host       string     `json:"host"`
	Opponent   string     `json:"opponent,omitempty"`
	Spectators []string   `json:"spectators"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (r *Room) HasOpponent() bool {
	return r.Opponent != ""
}

// PlayerFor maps a board seat to the connection sitting in it, or "" if nobody does.
func (r *Room) PlayerFor(p game.Player) string {
	if p == game.PlayerOne {
		return r.Host
	}
	return r.Opponent
}

// RoleOf checks host, then opponent, then spectators.
func (r *Room) RoleOf(connID string) (Role, bool) {
	switch {
	case connID == "":
		return RoleSpectator, false
	case r.Host == connID:
		return RoleHost, true
	case r.Opponent == connID:
		return RoleOpponent, true
	}
	for _, id := range r.Spectators {
		if id == connID {
			return RoleSpectator, true
		}
	}
	return RoleSpectator, false
}

// Members lists every connection in the room: host, opponent, then spectators in join order.
func (r *Room) Members() []string {
	out := make([]string, 0, 2+len(r.Spectators))
	if r.Host != "" {
		out = append(out, r.Host)
	}
	if r.Opponent != "" {
		out = append(out, r.Opponent)
	}
	return append(out, r.Spectators...)
}

// PlayerCount is 2 once an opponent has joined, else 1. Spectators are not counted.
func (r *Room) PlayerCount() int {
	if r.HasOpponent() {
		return 2
	}
	return 1
}

func (r *Room) Empty() bool {
	return r.Host == "" && r.Opponent == "" && len(r.Spectators) == 0
}

func (r *Room) removeSpectator(connID string) {
	kept := r.Spectators[:0]
	for _, id := range r.Spectators {
		if id != connID {
			kept = append(kept, id)
		}
	}
	r.Spectators = kept
}
