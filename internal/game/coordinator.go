package game

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"quizrace/internal/events"
	"quizrace/internal/players"
	"quizrace/internal/rooms"
)

// The four reasons an intent can be rejected. Each is surfaced to the
// originating connection as an error event carrying the message text.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrNameTaken          = errors.New("name already taken")
	ErrNotHost            = errors.New("only the host can do that")
)

// Notifier is the transport capability the coordinator emits through. The
// WebSocket hub implements it.
type Notifier interface {
	SendTo(connID string, v any)
	SendToGroup(code string, v any)
	Join(code string, connID string)
	Leave(code string, connID string)
	DropGroup(code string)
}

// Coordinator applies client intents to the room registry. One mutex
// serializes every mutation, so each broadcast reflects a committed state and
// cross-room sequences (a join racing an empty-room delete) cannot
// interleave. Room counts and event rates are small enough that the single
// critical section costs nothing measurable.
type Coordinator struct {
	mu     sync.Mutex
	store  *rooms.Store
	notify Notifier
	bus    *events.Bus
	ttl    time.Duration
}

func NewCoordinator(store *rooms.Store, notify Notifier, bus *events.Bus, ttl time.Duration) *Coordinator {
	c := &Coordinator{
		store:  store,
		notify: notify,
		bus:    bus,
		ttl:    ttl,
	}
	go c.sweepStale()
	return c
}

// Dispatch routes one decoded client message to its handler.
func (c *Coordinator) Dispatch(connID string, msg ClientMessage) error {
	switch msg.Type {
	case IntentCreateRoom:
		return c.CreateRoom(connID, msg.DisplayName, msg.Questions, msg.GameMode)
	case IntentJoinRoom:
		return c.JoinRoom(connID, msg.DisplayName, msg.Code)
	case IntentStartGame:
		return c.StartGame(connID, msg.Code)
	case IntentPlayerFinished:
		var ms int64
		if msg.FinishTime != nil {
			ms = *msg.FinishTime
		}
		return c.PlayerFinished(connID, msg.Code, ms)
	case IntentLeaveRoom:
		return c.LeaveRoom(connID, msg.Code)
	case IntentKickPlayer:
		return c.KickPlayer(connID, msg.Code, msg.PlayerID)
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

// CreateRoom builds a lobby room with the caller as sole member and host,
// joins the caller to the room's group, and sends back the full snapshot.
func (c *Coordinator) CreateRoom(connID string, displayName string, questions []rooms.Question, gameMode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.store.Create(connID, displayName, gameMode, questions)
	if err != nil {
		c.notify.SendTo(connID, errorMessage(err))
		return err
	}
	c.notify.Join(room.Code, connID)
	log.Printf("[Coordinator] %s created room %s\n", displayName, room.Code)

	snap := room.Snapshot()
	c.notify.SendTo(connID, ServerMessage{Type: EventRoomCreated, Room: &snap})
	return nil
}

// JoinRoom validates the code and name, appends the caller to the roster and
// group, confirms to the caller, and tells the room about its new member.
func (c *Coordinator) JoinRoom(connID string, displayName string, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.Get(code)
	if room == nil {
		c.notify.SendTo(connID, errorMessage(ErrRoomNotFound))
		return ErrRoomNotFound
	}
	if room.State() != rooms.StateLobby {
		c.notify.SendTo(connID, errorMessage(ErrGameAlreadyStarted))
		return ErrGameAlreadyStarted
	}
	if room.Roster.HasName(displayName) {
		c.notify.SendTo(connID, errorMessage(ErrNameTaken))
		return ErrNameTaken
	}

	room.Roster.Add(connID, displayName, false)
	c.notify.Join(code, connID)
	log.Printf("[Coordinator] %s joined room %s\n", displayName, code)

	snap := room.Snapshot()
	c.notify.SendTo(connID, ServerMessage{Type: EventJoinSuccess, Room: &snap})
	c.broadcast(room, ServerMessage{Type: EventPlayerList, Players: snap.Players})
	return nil
}

// StartGame moves a lobby room into playing. Only the current host may start;
// the progress list is seeded in roster order before anyone can finish.
func (c *Coordinator) StartGame(connID string, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.Get(code)
	if room == nil {
		c.notify.SendTo(connID, errorMessage(ErrRoomNotFound))
		return ErrRoomNotFound
	}
	if room.HostID() != connID {
		c.notify.SendTo(connID, errorMessage(ErrNotHost))
		return ErrNotHost
	}
	if !room.BeginPlaying() {
		c.notify.SendTo(connID, errorMessage(ErrGameAlreadyStarted))
		return ErrGameAlreadyStarted
	}
	log.Printf("[Coordinator] Room %s started with %d players\n", code, room.Roster.Len())

	c.broadcast(room, ServerMessage{Type: EventGameStarted, Questions: room.Questions, GameMode: room.GameMode})
	return nil
}

// PlayerFinished records a completion report. Unknown rooms are ignored;
// finish reports are fire-and-forget. A repeat report overwrites the earlier
// time; the last write wins.
func (c *Coordinator) PlayerFinished(connID string, code string, finishMs int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.Get(code)
	if room == nil {
		return nil
	}

	room.RecordFinish(connID, finishMs)
	c.broadcast(room, ServerMessage{Type: EventProgress, Progress: room.Progress()})
	c.finishIfComplete(room)
	return nil
}

// LeaveRoom is the client-initiated form of a departure, scoped to one room.
func (c *Coordinator) LeaveRoom(connID string, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.Get(code)
	if room == nil {
		c.notify.SendTo(connID, errorMessage(ErrRoomNotFound))
		return ErrRoomNotFound
	}
	c.removeFromRoom(room, connID)
	return nil
}

// KickPlayer lets the host remove a roster member. Unknown targets are a
// no-op. The target hears it was kicked before the departure broadcasts go
// out to the rest of the room.
func (c *Coordinator) KickPlayer(connID string, code string, targetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.Get(code)
	if room == nil {
		c.notify.SendTo(connID, errorMessage(ErrRoomNotFound))
		return ErrRoomNotFound
	}
	if room.HostID() != connID {
		c.notify.SendTo(connID, errorMessage(ErrNotHost))
		return ErrNotHost
	}
	if room.Roster.Get(targetID) == nil {
		return nil
	}

	c.notify.SendTo(targetID, ServerMessage{Type: EventKicked, Reason: "removed by the host"})
	log.Printf("[Coordinator] Room %s host kicked %s\n", code, targetID)
	c.removeFromRoom(room, targetID)
	return nil
}

// Disconnect handles a transport-level connection loss. Every room is
// scanned, though a connection belongs to at most one room.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, room := range c.store.List() {
		c.removeFromRoom(room, connID)
	}
}

// RoomInfo returns the snapshot for code, for the HTTP surface.
func (c *Coordinator) RoomInfo(code string) (rooms.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.store.Get(code)
	if room == nil {
		return rooms.Snapshot{}, false
	}
	return room.Snapshot(), true
}

// removeFromRoom applies one player's departure: roster removal, empty-room
// deletion, host promotion, progress cleanup, and the matching broadcasts.
// Callers hold c.mu.
func (c *Coordinator) removeFromRoom(room *rooms.Room, connID string) {
	removed, newHost := room.RemovePlayer(connID)
	if removed == nil {
		return
	}
	c.notify.Leave(room.Code, connID)
	log.Printf("[Coordinator] %s left room %s\n", removed.Name, room.Code)

	if room.Roster.Len() == 0 {
		c.dropRoom(room)
		return
	}

	roster := room.Snapshot().Players
	c.broadcast(room, ServerMessage{Type: EventPlayerList, Players: roster})
	if newHost != nil {
		log.Printf("[Coordinator] Room %s host left, promoted %s\n", room.Code, newHost.Name)
		c.broadcast(room, ServerMessage{Type: EventHostChanged, NewHostID: newHost.ID, Players: roster})
	}

	// A departing player who never finished no longer gates completion.
	if room.DropUnfinished(connID) {
		c.broadcast(room, ServerMessage{Type: EventProgress, Progress: room.Progress()})
		c.finishIfComplete(room)
	}
}

// finishIfComplete runs the playing → finished transition once the last
// progress entry is set, publishing the final ranking exactly once.
// Callers hold c.mu.
func (c *Coordinator) finishIfComplete(room *rooms.Room) {
	if !room.FinishIfComplete() {
		return
	}
	board := room.Leaderboard()
	log.Printf("[Coordinator] Room %s finished\n", room.Code)
	c.broadcast(room, ServerMessage{Type: EventGameFinished, Leaderboard: board})
	c.publishResults(room, board)
}

// publishResults hands the final standings to the history bus. The send never
// blocks; without a consumer (no database configured) the event is dropped.
func (c *Coordinator) publishResults(room *rooms.Room, board []players.Progress) {
	ev := events.FinishedGame{
		Code:          room.Code,
		GameMode:      room.GameMode,
		QuestionCount: len(room.Questions),
		StartedAt:     room.StartedAt(),
		FinishedAt:    time.Now(),
	}
	for i, p := range board {
		var ms int64
		if p.FinishMs != nil {
			ms = *p.FinishMs
		}
		var color string
		if member := room.Roster.Get(p.ID); member != nil {
			color = member.Color
		}
		ev.Results = append(ev.Results, events.Result{
			Name:     p.Name,
			Color:    color,
			FinishMs: ms,
			Rank:     i + 1,
		})
	}

	select {
	case c.bus.FinishedGames <- ev:
	default:
		log.Println("[Coordinator] Results bus full, dropping game record")
	}
}

// broadcast delivers msg to the room's multicast group and mirrors it to the
// room's spectator streams. Callers hold c.mu; every send underneath is
// non-blocking, so holding the lock is safe.
func (c *Coordinator) broadcast(room *rooms.Room, msg ServerMessage) {
	c.notify.SendToGroup(room.Code, msg)
	room.Broadcaster.Broadcast(msg.Type, msg)
}

// dropRoom deletes an emptied room. No broadcast goes out; there is nobody
// left to hear it.
func (c *Coordinator) dropRoom(room *rooms.Room) {
	c.store.Delete(room.Code)
	c.notify.DropGroup(room.Code)
	room.Broadcaster.Close()
	log.Printf("[Coordinator] Room %s deleted\n", room.Code)
}

func (c *Coordinator) sweepStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for _, room := range c.store.List() {
			if now.Sub(room.CreatedAt) > c.ttl {
				log.Printf("[Coordinator] Room %s stale, sweeping\n", room.Code)
				c.dropRoom(room)
			}
		}
		c.mu.Unlock()
	}
}
