package game

import (
	"quizrace/internal/players"
	"quizrace/internal/rooms"
)

// Inbound intent names.
const (
	IntentCreateRoom     = "createRoom"
	IntentJoinRoom       = "joinRoom"
	IntentStartGame      = "startGame"
	IntentPlayerFinished = "playerFinished"
	IntentLeaveRoom      = "leaveRoom"
	IntentKickPlayer     = "kickPlayer"
)

// Outbound event names.
const (
	EventConnected    = "connected"
	EventRoomCreated  = "room-created"
	EventJoinSuccess  = "join-success"
	EventPlayerList   = "update-player-list"
	EventGameStarted  = "game-started"
	EventProgress     = "update-progress"
	EventGameFinished = "game-finished"
	EventHostChanged  = "host-changed"
	EventKicked       = "kicked"
	EventError        = "error"
)

// ClientMessage is the JSON envelope received from clients. Which fields are
// read depends on Type.
type ClientMessage struct {
	Type        string           `json:"type"`
	DisplayName string           `json:"displayName,omitempty"`
	Code        string           `json:"code,omitempty"`
	GameMode    string           `json:"gameMode,omitempty"`
	Questions   []rooms.Question `json:"questions,omitempty"`
	FinishTime  *int64           `json:"finishTime,omitempty"`
	PlayerID    string           `json:"playerId,omitempty"`
}

// ServerMessage is the JSON envelope sent to clients. Only the fields that
// belong to the given Type are populated.
type ServerMessage struct {
	Type         string             `json:"type"`
	ConnectionID string             `json:"connectionId,omitempty"`
	Room         *rooms.Snapshot    `json:"room,omitempty"`
	Players      []players.Player   `json:"players,omitempty"`
	Progress     []players.Progress `json:"progress,omitempty"`
	Leaderboard  []players.Progress `json:"leaderboard,omitempty"`
	Questions    []rooms.Question   `json:"questions,omitempty"`
	GameMode     string             `json:"gameMode,omitempty"`
	NewHostID    string             `json:"newHostId,omitempty"`
	Reason       string             `json:"reason,omitempty"`
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: EventError, Reason: err.Error()}
}
