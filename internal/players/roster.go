package players

import (
	"sync"

	"quizrace/internal/utility"
)

// Roster is the ordered player list of one room. Order is join order and is
// preserved across removals; the first remaining entry is the promotion
// candidate when the host leaves.
type Roster struct {
	mu   sync.Mutex
	list []*Player
}

func NewRoster() *Roster {
	return &Roster{}
}

func (r *Roster) Add(id string, name string, isHost bool) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	player := &Player{ID: id, Name: name, Color: utility.RandomColorHex(), IsHost: isHost}
	r.list = append(r.list, player)
	return player
}

func (r *Roster) Get(id string) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.list {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// HasName reports whether any entry already uses name. The match is exact and
// case-sensitive.
func (r *Roster) HasName(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.list {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given id, keeping the order of the rest,
// and returns it. Returns nil if the id is not present.
func (r *Roster) Remove(id string) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.list {
		if p.ID == id {
			r.list = append(r.list[:i], r.list[i+1:]...)
			return p
		}
	}
	return nil
}

// List returns a copy of the roster slice in join order.
func (r *Roster) List() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*Player, len(r.list))
	copy(list, r.list)
	return list
}

func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.list)
}

// First returns the earliest-joined player still present, or nil.
func (r *Roster) First() *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.list) == 0 {
		return nil
	}
	return r.list[0]
}

// SetHost clears every host flag and sets it on the entry with the given id,
// returning the new host. Returns nil if the id is not present; no flags are
// guaranteed in that case, so callers should only pass ids they just read
// from the roster.
func (r *Roster) SetHost(id string) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	var host *Player
	for _, p := range r.list {
		p.IsHost = p.ID == id
		if p.IsHost {
			host = p
		}
	}
	return host
}
