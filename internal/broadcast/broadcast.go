package broadcast

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is one named server-sent event with a JSON payload.
type Event struct {
	Name string
	Data string
}

// Broadcaster fans a room's events out to its spectator streams. Each
// subscriber owns a buffered channel; slow subscribers miss events rather
// than stall the room.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[chan Event]bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan Event]bool),
	}
}

func (b *Broadcaster) Subscribe() chan Event {
	ch := make(chan Event, 10)
	b.mu.Lock()
	b.clients[ch] = true
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Broadcast marshals v and delivers it to every subscriber.
func (b *Broadcaster) Broadcast(name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Broadcast] Marshal error: %v\n", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- Event{Name: name, Data: string(data)}:
		default:
			// skip clients with full data channels
		}
	}
}

// Close ends every subscription. Called when a room is deleted so spectator
// streams terminate instead of hanging on a dead room.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		delete(b.clients, ch)
		close(ch)
	}
}
