// Package realtime keeps the process-scoped room membership table. It is
// plain bookkeeping: it carries no game authority, every payload it fans out
// is a snapshot already confirmed elsewhere.
package realtime

import "sync"

// Conn is the slice of a client connection the registry needs. The websocket
// transport implements it; tests substitute a recorder.
type Conn interface {
	ID() string
	WriteJSON(v any) error
}

type Registry struct {
	mutex sync.RWMutex
	rooms map[string]map[string]Conn
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[string]Conn),
	}
}

// Join subscribes a connection to a room. Re-joining is a no-op.
func (that *Registry) Join(room string, conn Conn) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	members, ok := that.rooms[room]
	if !ok {
		members = make(map[string]Conn)
		that.rooms[room] = members
	}

	members[conn.ID()] = conn
}

// Leave removes a connection from every room it joined.
func (that *Registry) Leave(conn Conn) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	for room, members := range that.rooms {
		delete(members, conn.ID())
		if len(members) == 0 {
			delete(that.rooms, room)
		}
	}
}

// Members returns the current connections of a room.
func (that *Registry) Members(room string) []Conn {
	that.mutex.RLock()
	defer that.mutex.RUnlock()

	members := make([]Conn, 0, len(that.rooms[room]))
	for _, conn := range that.rooms[room] {
		members = append(members, conn)
	}

	return members
}

// Broadcast sends a payload to every room member except the sender. Delivery
// is fire-and-forget: a dead peer only misses a snapshot it will re-fetch.
func (that *Registry) Broadcast(room string, sender Conn, v any) {
	for _, conn := range that.Members(room) {
		if sender != nil && conn.ID() == sender.ID() {
			continue
		}

		_ = conn.WriteJSON(v)
	}
}
