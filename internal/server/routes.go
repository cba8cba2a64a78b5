package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"quizrace/internal/analytics"
	"quizrace/internal/config"
	"quizrace/internal/db"
	"quizrace/internal/events"
	"quizrace/internal/game"
	"quizrace/internal/rooms"
	"quizrace/internal/wshub"
)

func Run() error {
	cfg := config.Load()

	store := rooms.NewStore()
	hub := wshub.NewHub()
	bus := events.NewBus()
	coordinator := game.NewCoordinator(store, hub, bus, time.Duration(cfg.RoomTTLMinutes)*time.Minute)

	srv := &Server{
		Cfg:         cfg,
		Rooms:       store,
		Hub:         hub,
		Coordinator: coordinator,
	}

	// Optional database connection
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			srv.DB = database
			go resultsWriter(database, bus)
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleWS)
	mux.HandleFunc("GET /api/rooms/{code}", srv.handleRoomInfo)
	mux.HandleFunc("GET /api/rooms/{code}/qr", srv.handleRoomQR)
	mux.HandleFunc("GET /api/rooms/{code}/events", srv.handleRoomEvents)
	mux.HandleFunc("GET /api/stats/player/{name}", srv.handleNameStats)
	mux.HandleFunc("GET /api/stats/leaderboard", srv.handleLeaderboard)
	mux.HandleFunc("GET /api/matches/{id}", srv.handleMatchRecap)
	mux.HandleFunc("/health", srv.handleHealth)

	addr := "0.0.0.0:" + cfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", cfg.Port)
	return http.ListenAndServe(addr, mux)
}

// resultsWriter drains finished games off the bus and persists them.
func resultsWriter(database *db.DB, bus *events.Bus) {
	for ev := range bus.FinishedGames {
		results := make([]db.MatchResult, 0, len(ev.Results))
		for _, res := range ev.Results {
			results = append(results, db.MatchResult{
				PlayerName:  res.Name,
				PlayerColor: res.Color,
				FinishMs:    res.FinishMs,
				Rank:        res.Rank,
			})
		}

		matchID, err := database.RecordMatch(ev.Code, ev.GameMode, ev.QuestionCount, ev.StartedAt, ev.FinishedAt, results)
		if err != nil {
			log.Printf("[DB] RecordMatch error: %v\n", err)
			continue
		}
		awardBadges(database, matchID)
	}
}

func awardBadges(database *db.DB, matchID string) {
	q := analytics.NewQueries(database)
	recap, err := q.GetMatchRecap(matchID)
	if err != nil {
		log.Printf("[Analytics] recap for badges: %v\n", err)
		return
	}

	for _, stats := range recap.Results {
		for _, badge := range analytics.EvaluateMatchBadges(stats) {
			if err := database.AwardBadge(stats.PlayerName, string(badge.ID), &matchID); err != nil {
				log.Printf("[Analytics] awarding %s to %s: %v\n", badge.ID, stats.PlayerName, err)
			}
		}

		nameStats, err := q.GetNameStats(stats.PlayerName)
		if err != nil {
			continue
		}
		for _, badge := range nameStats.Badges {
			if err := database.AwardBadge(stats.PlayerName, string(badge.ID), nil); err != nil {
				log.Printf("[Analytics] awarding %s to %s: %v\n", badge.ID, stats.PlayerName, err)
			}
		}
	}
}
