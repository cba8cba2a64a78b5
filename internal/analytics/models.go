package analytics

import "time"

type MatchStats struct {
	PlayerName  string
	PlayerColor string
	MatchID     string
	FinishMs    int64
	Rank        int
	FieldSize   int
	// MarginMs is the winner's lead over second place, or for everyone
	// else the gap behind the player one rank ahead.
	MarginMs int64
}

type NameStats struct {
	PlayerName  string
	GamesPlayed int
	Wins        int
	BestMs      int64
	AvgMs       float64
	WinStreak   int
	Badges      []Badge
}

type LeaderboardEntry struct {
	PlayerName string
	Value      int
	Rank       int
}

type MatchRecap struct {
	MatchID       string
	RoomCode      string
	GameMode      string
	QuestionCount int
	StartedAt     *time.Time
	EndedAt       *time.Time
	Results       []MatchStats
}
