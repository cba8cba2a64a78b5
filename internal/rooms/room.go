package rooms

import (
	"sort"
	"time"

	"quizrace/internal/players"
)

func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// HostID returns the connection id currently holding host authority.
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// BeginPlaying moves a lobby room into playing and seeds one unset progress
// entry per roster member, preserving roster order. Returns false if the room
// already left the lobby.
func (r *Room) BeginPlaying() bool {
	roster := r.Roster.List()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateLobby {
		return false
	}
	r.state = StatePlaying
	r.startedAt = time.Now()
	r.progress = make([]*players.Progress, 0, len(roster))
	for _, p := range roster {
		r.progress = append(r.progress, &players.Progress{ID: p.ID, Name: p.Name})
	}
	return true
}

// StartedAt returns when the game was started, or the zero time while the
// room is still in the lobby.
func (r *Room) StartedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startedAt
}

// RecordFinish sets the caller's finish time. A repeat report overwrites the
// earlier value; the last write wins. Returns false if the caller has no
// progress entry.
func (r *Room) RecordFinish(connID string, finishMs int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.progress {
		if p.ID == connID {
			ms := finishMs
			p.FinishMs = &ms
			return true
		}
	}
	return false
}

// FinishIfComplete moves playing → finished once every progress entry has a
// finish time. It returns true only on the transition itself, so the caller
// can publish the final ranking exactly once.
func (r *Room) FinishIfComplete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePlaying || len(r.progress) == 0 {
		return false
	}
	for _, p := range r.progress {
		if p.FinishMs == nil {
			return false
		}
	}
	r.state = StateFinished
	return true
}

// DropUnfinished removes connID's progress entry if it has no finish time
// yet. Entries that already finished stay behind for the final ranking even
// after the player leaves.
func (r *Room) DropUnfinished(connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.progress {
		if p.ID == connID && p.FinishMs == nil {
			r.progress = append(r.progress[:i], r.progress[i+1:]...)
			return true
		}
	}
	return false
}

// RemovePlayer takes connID out of the roster. If the departing player held
// host authority and others remain, the earliest joiner is promoted and
// returned as newHost.
func (r *Room) RemovePlayer(connID string) (removed *players.Player, newHost *players.Player) {
	removed = r.Roster.Remove(connID)
	if removed == nil {
		return nil, nil
	}
	if removed.IsHost {
		if first := r.Roster.First(); first != nil {
			newHost = r.Roster.SetHost(first.ID)
			r.mu.Lock()
			r.hostID = newHost.ID
			r.mu.Unlock()
		}
	}
	return removed, newHost
}

// Progress returns a copy of the progress list in roster order.
func (r *Room) Progress() []players.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]players.Progress, 0, len(r.progress))
	for _, p := range r.progress {
		list = append(list, *p)
	}
	return list
}

// Leaderboard returns the progress entries sorted ascending by finish time.
// The sort is stable, so ties keep roster order. Unset entries sort last.
func (r *Room) Leaderboard() []players.Progress {
	board := r.Progress()
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].FinishMs == nil {
			return false
		}
		if board[j].FinishMs == nil {
			return true
		}
		return *board[i].FinishMs < *board[j].FinishMs
	})
	return board
}

// Snapshot captures the full client-visible room state.
func (r *Room) Snapshot() Snapshot {
	roster := r.Roster.List()
	playerList := make([]players.Player, 0, len(roster))
	for _, p := range roster {
		playerList = append(playerList, *p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	progress := make([]players.Progress, 0, len(r.progress))
	for _, p := range r.progress {
		progress = append(progress, *p)
	}
	return Snapshot{
		Code:      r.Code,
		HostID:    r.hostID,
		Players:   playerList,
		Questions: r.Questions,
		State:     r.state,
		Progress:  progress,
		GameMode:  r.GameMode,
	}
}
