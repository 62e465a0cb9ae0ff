package room

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"nim-relay/internal/game"
)

type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(code string)
	Rooms() []*Room
}

const (
	letters         = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	DefaultCodeLen  = 5
	maxCodeAttempts = 64
)

// Registry owns the live rooms and the index from connection to the room it belongs to.
// A connection is a member of at most one room; Delete drops the index entries of every member.
type Registry struct {
	store   Store
	codeLen int
	now     func() time.Time

	mu      sync.Mutex
	rng     *rand.Rand
	members map[string]string
}

type Option func(*Registry)

// WithRand replaces the time-seeded source used for room codes and boards.
func WithRand(r *rand.Rand) Option {
	return func(reg *Registry) { reg.rng = r }
}

func WithCodeLength(n int) Option {
	return func(reg *Registry) {
		if n > 0 {
			reg.codeLen = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(reg *Registry) { reg.now = now }
}

func NewRegistry(s Store, opts ...Option) *Registry {
	reg := &Registry{
		store:   s,
		codeLen: DefaultCodeLen,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		members: make(map[string]string),
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// Create opens a room with hostID as host, no opponent, no spectators and a fresh board.
func (reg *Registry) Create(hostID string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code, err := reg.freeCodeLocked()
	if err != nil {
		return nil, err
	}
	r := &Room{
		Code:       code,
		Board:      game.NewRandomBoard(reg.rng),
		Host:       hostID,
		Spectators: []string{},
		CreatedAt:  reg.now(),
	}
	reg.store.SaveRoom(r)
	reg.members[hostID] = code
	return r, nil
}

func (reg *Registry) Get(code string) (*Room, error) {
	r, ok := reg.store.GetRoom(code)
	if !ok {
		return nil, fmt.Errorf("room %q: %w", code, ErrRoomNotFound)
	}
	return r, nil
}

// Delete removes the room and forgets its members. Deleting an absent room is a no-op.
func (reg *Registry) Delete(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if r, ok := reg.store.GetRoom(code); ok {
		for _, id := range r.Members() {
			if reg.members[id] == code {
				delete(reg.members, id)
			}
		}
	}
	reg.store.DeleteRoom(code)
}

// List returns every live room, oldest first.
func (reg *Registry) List() []Summary {
	rooms := reg.store.Rooms()
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].Code < rooms[j].Code
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, Summary{RoomID: r.Code, Players: r.PlayerCount(), CreatedAt: r.CreatedAt})
	}
	return out
}

func (reg *Registry) RoomOf(connID string) (string, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	code, ok := reg.members[connID]
	return code, ok
}

func (reg *Registry) Bind(connID, code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.members[connID] = code
}

func (reg *Registry) unbindFrom(connID, code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.members[connID] == code {
		delete(reg.members, connID)
	}
}

// RandomBoard deals a board from the registry's source; used for restarts.
func (reg *Registry) RandomBoard() game.Board {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return game.NewRandomBoard(reg.rng)
}

// Close drops every room. The registry is empty but usable afterwards.
func (reg *Registry) Close() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, r := range reg.store.Rooms() {
		reg.store.DeleteRoom(r.Code)
	}
	reg.members = make(map[string]string)
}

func (reg *Registry) freeCodeLocked() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := randCode(reg.rng, reg.codeLen)
		if _, taken := reg.store.GetRoom(code); !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func randCode(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}
