package events

import "time"

// Result is one leaderboard row of a finished game.
type Result struct {
	Name     string
	Color    string
	FinishMs int64
	Rank     int
}

// FinishedGame is published when a room's game completes. It carries
// everything the history writer needs after the room itself is gone.
type FinishedGame struct {
	Code          string
	GameMode      string
	QuestionCount int
	StartedAt     time.Time
	FinishedAt    time.Time
	Results       []Result
}

type Bus struct {
	FinishedGames chan FinishedGame
}

func NewBus() *Bus {
	return &Bus{
		FinishedGames: make(chan FinishedGame, 10),
	}
}
