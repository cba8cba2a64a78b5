package db

import (
	"fmt"
	"time"
)

type MatchRecord struct {
	ID            string
	RoomCode      string
	GameMode      string
	QuestionCount int
	StartedAt     *time.Time
	EndedAt       *time.Time
	CreatedAt     time.Time
}

type MatchResult struct {
	PlayerName  string
	PlayerColor string
	FinishMs    int64
	Rank        int
}

// RecordMatch writes a finished game and its results in one transaction,
// returning the new match id.
func (d *DB) RecordMatch(roomCode, gameMode string, questionCount int, startedAt, endedAt time.Time, results []MatchResult) (string, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var matchID string
	err = tx.QueryRow(`
		INSERT INTO matches (room_code, game_mode, question_count, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, roomCode, gameMode, questionCount, startedAt, endedAt).Scan(&matchID)
	if err != nil {
		return "", fmt.Errorf("creating match: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO match_results (match_id, player_name, player_color, finish_ms, rank)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (match_id, player_name) DO UPDATE SET finish_ms = $4, rank = $5
	`)
	if err != nil {
		return "", fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		if _, err := stmt.Exec(matchID, res.PlayerName, res.PlayerColor, res.FinishMs, res.Rank); err != nil {
			return "", fmt.Errorf("recording result for %s: %w", res.PlayerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing match: %w", err)
	}
	return matchID, nil
}

func (d *DB) GetMatch(matchID string) (*MatchRecord, error) {
	var m MatchRecord
	err := d.conn.QueryRow(`
		SELECT id, room_code, game_mode, question_count, started_at, ended_at, created_at
		FROM matches WHERE id = $1
	`, matchID).Scan(&m.ID, &m.RoomCode, &m.GameMode, &m.QuestionCount, &m.StartedAt, &m.EndedAt, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting match: %w", err)
	}
	return &m, nil
}
