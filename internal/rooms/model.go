package rooms

import (
	"encoding/json"
	"sync"
	"time"

	"quizrace/internal/broadcast"
	"quizrace/internal/players"
)

// State is the lifecycle phase of a room. Transitions only move forward:
// lobby → playing → finished.
type State string

const (
	StateLobby    = State("lobby")
	StatePlaying  = State("playing")
	StateFinished = State("finished")
)

// Question records are opaque to the server: supplied by the room creator,
// stored verbatim, echoed back at game start.
type Question = json.RawMessage

// Room is one game session. Code, GameMode, Questions, Roster, Broadcaster
// and CreatedAt are fixed at creation; the mutable state machine lives behind
// the mutex and is accessed through the methods in room.go.
type Room struct {
	Code        string
	GameMode    string
	Questions   []Question
	Roster      *players.Roster
	Broadcaster *broadcast.Broadcaster
	CreatedAt   time.Time

	mu        sync.Mutex
	hostID    string
	state     State
	progress  []*players.Progress
	startedAt time.Time
}

// Snapshot is the full client-visible view of a room.
type Snapshot struct {
	Code      string             `json:"code"`
	HostID    string             `json:"hostConnectionId"`
	Players   []players.Player   `json:"players"`
	Questions []Question         `json:"questions"`
	State     State              `json:"state"`
	Progress  []players.Progress `json:"progress"`
	GameMode  string             `json:"gameMode"`
}
