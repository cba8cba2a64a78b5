package analytics

type BadgeID string

const (
	BadgeQuickdraw   BadgeID = "quickdraw"
	BadgePhotoFinish BadgeID = "photo_finish"
	BadgeFullHouse   BadgeID = "full_house"
	BadgeUnstoppable BadgeID = "unstoppable"
	BadgeVeteran     BadgeID = "veteran"
	BadgeChampion    BadgeID = "champion"
)

type Badge struct {
	ID          BadgeID
	Name        string
	Description string
	Icon        string
}

var AllBadges = map[BadgeID]Badge{
	BadgeQuickdraw:   {ID: BadgeQuickdraw, Name: "Quickdraw", Description: "Finished a quiz in under 30 seconds", Icon: "⚡"},
	BadgePhotoFinish: {ID: BadgePhotoFinish, Name: "Photo Finish", Description: "Won by less than half a second", Icon: "📸"},
	BadgeFullHouse:   {ID: BadgeFullHouse, Name: "Full House", Description: "Won a room of 5+ players", Icon: "🏆"},
	BadgeUnstoppable: {ID: BadgeUnstoppable, Name: "Unstoppable", Description: "3-game win streak", Icon: "🔥"},
	BadgeVeteran:     {ID: BadgeVeteran, Name: "Veteran", Description: "Played 10+ games", Icon: "🏅"},
	BadgeChampion:    {ID: BadgeChampion, Name: "Champion", Description: "Won 10+ games", Icon: "👑"},
}

// EvaluateMatchBadges checks which badges a player earned in a single match.
func EvaluateMatchBadges(stats MatchStats) []Badge {
	var earned []Badge

	// Quickdraw: full quiz in under 30 seconds
	if stats.FinishMs > 0 && stats.FinishMs < 30000 {
		earned = append(earned, AllBadges[BadgeQuickdraw])
	}

	// Photo Finish: won with under 500ms to spare
	if stats.Rank == 1 && stats.FieldSize >= 2 && stats.MarginMs < 500 {
		earned = append(earned, AllBadges[BadgePhotoFinish])
	}

	// Full House: won a crowded room
	if stats.Rank == 1 && stats.FieldSize >= 5 {
		earned = append(earned, AllBadges[BadgeFullHouse])
	}

	return earned
}

// EvaluateLifetimeBadges checks which badges a player earned across their career.
func EvaluateLifetimeBadges(stats NameStats) []Badge {
	var earned []Badge

	// Unstoppable: 3-game win streak
	if stats.WinStreak >= 3 {
		earned = append(earned, AllBadges[BadgeUnstoppable])
	}

	// Veteran: 10+ games
	if stats.GamesPlayed >= 10 {
		earned = append(earned, AllBadges[BadgeVeteran])
	}

	// Champion: 10+ wins
	if stats.Wins >= 10 {
		earned = append(earned, AllBadges[BadgeChampion])
	}

	return earned
}
