package room_test

import (
	"sort"
	"sync"
)

type delivery struct {
	Action string
	Data   interface{}
}

// fakeTransport records what every connection would have received.
type fakeTransport struct {
	mu     sync.Mutex
	groups map[string]map[string]bool
	inbox  map[string][]delivery
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		groups: map[string]map[string]bool{},
		inbox:  map[string][]delivery{},
	}
}

func (f *fakeTransport) Send(connID, action string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbox[connID] = append(f.inbox[connID], delivery{Action: action, Data: data})
}

func (f *fakeTransport) Broadcast(roomCode, action string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id := range f.groups[roomCode] {
		f.inbox[id] = append(f.inbox[id], delivery{Action: action, Data: data})
	}
}

func (f *fakeTransport) JoinGroup(connID, roomCode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.groups[roomCode] == nil {
		f.groups[roomCode] = map[string]bool{}
	}
	f.groups[roomCode][connID] = true
}

func (f *fakeTransport) LeaveGroup(connID, roomCode string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.groups[roomCode], connID)
	if len(f.groups[roomCode]) == 0 {
		delete(f.groups, roomCode)
	}
}

func (f *fakeTransport) count(connID, action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, d := range f.inbox[connID] {
		if d.Action == action {
			n++
		}
	}
	return n
}

func (f *fakeTransport) last(connID string) delivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	box := f.inbox[connID]
	if len(box) == 0 {
		return delivery{}
	}
	return box[len(box)-1]
}

func (f *fakeTransport) received(connID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inbox[connID])
}

func (f *fakeTransport) members(roomCode string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.groups[roomCode]))
	for id := range f.groups[roomCode] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
