package rooms

import (
	"fmt"
	"sync"
	"time"

	"quizrace/internal/broadcast"
	"quizrace/internal/players"
)

// Store is the process-wide room registry, keyed by code.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
	}
}

// Create allocates a lobby room with the creator as sole roster entry and
// host. Codes carry no uniqueness guarantee of their own, so generation is
// retried against the live set.
func (s *Store) Create(hostID string, hostName string, gameMode string, questions []Question) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Try up to 10 times to generate a unique code
	for range 10 {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := s.rooms[code]; exists {
			continue
		}

		room := &Room{
			Code:        code,
			GameMode:    gameMode,
			Questions:   questions,
			Roster:      players.NewRoster(),
			Broadcaster: broadcast.NewBroadcaster(),
			CreatedAt:   time.Now(),
			hostID:      hostID,
			state:       StateLobby,
		}
		room.Roster.Add(hostID, hostName, true)
		s.rooms[code] = room
		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room code after 10 attempts")
}

func (s *Store) Get(code string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[code]
}

func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

func (s *Store) List() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		list = append(list, r)
	}
	return list
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
