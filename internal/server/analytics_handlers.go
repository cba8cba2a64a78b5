package server

import (
	"log"
	"net/http"
	"strconv"

	"quizrace/internal/analytics"
)

func (s *Server) handleNameStats(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Analytics requires a database connection", http.StatusServiceUnavailable)
		return
	}

	q := analytics.NewQueries(s.DB)
	stats, err := q.GetNameStats(r.PathValue("name"))
	if err != nil {
		log.Printf("[Analytics] name stats error: %v\n", err)
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}
	writeJSON(w, stats)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Analytics requires a database connection", http.StatusServiceUnavailable)
		return
	}

	category := r.URL.Query().Get("cat")
	if category == "" {
		category = "wins"
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	q := analytics.NewQueries(s.DB)
	entries, err := q.GetLeaderboard(category, limit)
	if err != nil {
		log.Printf("[Analytics] leaderboard error: %v\n", err)
		http.Error(w, "Error loading leaderboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleMatchRecap(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Analytics requires a database connection", http.StatusServiceUnavailable)
		return
	}

	q := analytics.NewQueries(s.DB)
	recap, err := q.GetMatchRecap(r.PathValue("id"))
	if err != nil {
		log.Printf("[Analytics] match recap error: %v\n", err)
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}
	writeJSON(w, recap)
}
