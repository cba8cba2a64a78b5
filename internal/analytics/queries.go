package analytics

import (
	"fmt"

	"quizrace/internal/db"
)

type Queries struct {
	DB *db.DB
}

func NewQueries(database *db.DB) *Queries {
	return &Queries{DB: database}
}

func (q *Queries) GetMatchRecap(matchID string) (*MatchRecap, error) {
	recap := &MatchRecap{MatchID: matchID}

	err := q.DB.QueryRow(`
		SELECT room_code, game_mode, question_count, started_at, ended_at
		FROM matches WHERE id = $1
	`, matchID).Scan(&recap.RoomCode, &recap.GameMode, &recap.QuestionCount, &recap.StartedAt, &recap.EndedAt)
	if err != nil {
		return nil, fmt.Errorf("getting match: %w", err)
	}

	rows, err := q.DB.Query(`
		SELECT player_name, player_color, finish_ms, rank
		FROM match_results WHERE match_id = $1 ORDER BY rank
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("getting match results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		stats := MatchStats{MatchID: matchID}
		if err := rows.Scan(&stats.PlayerName, &stats.PlayerColor, &stats.FinishMs, &stats.Rank); err != nil {
			return nil, err
		}
		recap.Results = append(recap.Results, stats)
	}

	// Fill in field size and finishing margins from the ordered results.
	for i := range recap.Results {
		recap.Results[i].FieldSize = len(recap.Results)
		if i == 0 && len(recap.Results) > 1 {
			recap.Results[i].MarginMs = recap.Results[1].FinishMs - recap.Results[0].FinishMs
		} else if i > 0 {
			recap.Results[i].MarginMs = recap.Results[i].FinishMs - recap.Results[i-1].FinishMs
		}
	}

	return recap, nil
}

func (q *Queries) GetMatchStats(matchID, playerName string) (*MatchStats, error) {
	recap, err := q.GetMatchRecap(matchID)
	if err != nil {
		return nil, err
	}
	for i := range recap.Results {
		if recap.Results[i].PlayerName == playerName {
			return &recap.Results[i], nil
		}
	}
	return nil, fmt.Errorf("no result for %s in match %s", playerName, matchID)
}

func (q *Queries) GetNameStats(playerName string) (*NameStats, error) {
	stats := &NameStats{PlayerName: playerName}

	err := q.DB.QueryRow(`
		SELECT
			COUNT(*) as games_played,
			COUNT(*) FILTER (WHERE rank = 1) as wins,
			COALESCE(MIN(finish_ms), 0) as best_ms,
			COALESCE(AVG(finish_ms), 0) as avg_ms
		FROM match_results
		WHERE player_name = $1
	`, playerName).Scan(&stats.GamesPlayed, &stats.Wins, &stats.BestMs, &stats.AvgMs)
	if err != nil {
		return nil, fmt.Errorf("getting name stats: %w", err)
	}
	if stats.GamesPlayed == 0 {
		return nil, fmt.Errorf("no recorded matches for %s", playerName)
	}

	// Win streak: most recent consecutive wins
	rows, err := q.DB.Query(`
		SELECT mr.rank
		FROM match_results mr
		JOIN matches m ON m.id = mr.match_id
		WHERE mr.player_name = $1 AND m.ended_at IS NOT NULL
		ORDER BY m.ended_at DESC
	`, playerName)
	if err != nil {
		return nil, fmt.Errorf("getting win streak: %w", err)
	}
	defer rows.Close()

	streak := 0
	for rows.Next() {
		var rank int
		if err := rows.Scan(&rank); err != nil {
			return nil, err
		}
		if rank == 1 {
			streak++
		} else {
			break
		}
	}
	stats.WinStreak = streak

	stats.Badges = EvaluateLifetimeBadges(*stats)

	return stats, nil
}

func (q *Queries) GetLeaderboard(category string, limit int) ([]LeaderboardEntry, error) {
	var query string
	switch category {
	case "wins":
		query = `
			SELECT player_name, COUNT(*) FILTER (WHERE rank = 1) as value
			FROM match_results
			GROUP BY player_name
			ORDER BY value DESC
			LIMIT $1`
	case "fastest":
		query = `
			SELECT player_name, COALESCE(MIN(finish_ms), 0) as value
			FROM match_results
			GROUP BY player_name
			ORDER BY value ASC
			LIMIT $1`
	case "games":
		query = `
			SELECT player_name, COUNT(*) as value
			FROM match_results
			GROUP BY player_name
			ORDER BY value DESC
			LIMIT $1`
	default:
		return nil, fmt.Errorf("unknown leaderboard category: %s", category)
	}

	rows, err := q.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("getting leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerName, &e.Value); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, nil
}
