package game

import (
	"errors"
	"math/rand"
)

const (
	MinRows     = 3
	MaxRows     = 5
	MaxRowValue = 6
)

var ErrInvalidMove = errors.New("invalid move")

// Player is the seat number a board uses to track turns: 1 for the host, 2 for the opponent.
type Player int

const (
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// Other returns the seat that moves after p.
func (p Player) Other() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

type Board struct {
	Rows       []int  `json:"rows"`
	PlayerTurn Player `json:"playerTurn"`
}

type Move struct {
	RowIndex int `json:"rowIndex"`
	Count    int `json:"count"`
}

// NewRandomBoard deals 3 to 5 rows of 1 to 6 pieces each and picks who moves first.
func NewRandomBoard(r *rand.Rand) Board {
	rows := make([]int, MinRows+r.Intn(MaxRows-MinRows+1))
	for i := range rows {
		rows[i] = r.Intn(MaxRowValue) + 1
	}
	turn := PlayerOne
	if r.Intn(2) == 1 {
		turn = PlayerTwo
	}
	return Board{Rows: rows, PlayerTurn: turn}
}

// Clone returns a copy that shares no memory with b.
func (b Board) Clone() Board {
	return Board{Rows: append([]int(nil), b.Rows...), PlayerTurn: b.PlayerTurn}
}

func (b Board) Total() int {
	sum := 0
	for _, v := range b.Rows {
		sum += v
	}
	return sum
}
