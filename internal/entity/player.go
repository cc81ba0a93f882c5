package entity

// PlayerInfo is the local player's session identity and room membership.
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	RoomID string `json:"room_id"`
}

// Reset clears room membership but preserves the session identity.
func (that *PlayerInfo) Reset() {
	that.Name = ""
	that.Symbol = ""
	that.RoomID = ""
}

func (that *PlayerInfo) InRoom() bool {
	return that.RoomID != ""
}

// PlayerEntry is one entry of the authority's players map. The embedded
// ID may be absent in older payloads; the map key is the source of truth.
type PlayerEntry struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Score is a per-player session tally.
type Score struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

func (that Score) TotalMatches() int {
	return that.Wins + that.Losses + that.Draws
}

// WinRate returns the win percentage rounded to the nearest integer.
func (that Score) WinRate() int {
	total := that.TotalMatches()
	if total == 0 {
		return 0
	}
	return int(float64(that.Wins)/float64(total)*100 + 0.5)
}

// SessionLeader names the player currently ahead on wins, if any.
type SessionLeader struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
}
