package players

// Player is one roster entry. ID is the ephemeral connection id assigned by
// the transport layer; it is the only identity a player carries.
type Player struct {
	ID     string `json:"connectionId"`
	Name   string `json:"displayName"`
	Color  string `json:"color"`
	IsHost bool   `json:"isHost"`
}

// Progress tracks one player's completion of the question set. FinishMs stays
// nil until the player reports finishing and marshals as null, so clients can
// tell "not finished" apart from "finished at 0ms".
type Progress struct {
	ID       string `json:"connectionId"`
	Name     string `json:"displayName"`
	FinishMs *int64 `json:"finishTime"`
}
