package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// GameState is the authoritative room snapshot. It is always replaced
// wholesale, never diffed: every major transition ships a full snapshot
// so a missed incremental update heals itself on the next one.
type GameState struct {
	GridSize      int                    `json:"grid_size"`
	Board         []string               `json:"board"`
	CurrentTurn   string                 `json:"current_turn"`
	GameOver      bool                   `json:"game_over"`
	Winner        string                 `json:"winner,omitempty"`
	WinningLine   []int                  `json:"winning_line,omitempty"`
	IsDraw        bool                   `json:"is_draw"`
	Players       map[string]PlayerEntry `json:"players"`
	SessionScores map[string]Score       `json:"session_scores"`
	MatchCount    int                    `json:"match_count"`
	SessionLeader *SessionLeader         `json:"session_leader,omitempty"`
}

// Opponent derives the single non-local player entry. Derived on demand,
// never cached: the players map changes shape (0 -> 1 -> 2 entries)
// independently of any single event. Comparison is by map key, because
// the embedded ID field may be absent.
func (that *GameState) Opponent(localID string) (PlayerEntry, bool) {
	if that == nil || len(that.Players) != 2 {
		return PlayerEntry{}, false
	}

	for id, player := range that.Players {
		if id == localID {
			continue
		}

		player.ID = id
		return player, true
	}

	return PlayerEntry{}, false
}

// LocalPlayer looks up the local player's entry by map key.
func (that *GameState) LocalPlayer(localID string) (PlayerEntry, bool) {
	if that == nil {
		return PlayerEntry{}, false
	}

	player, ok := that.Players[localID]
	if !ok {
		return PlayerEntry{}, false
	}

	player.ID = localID
	return player, true
}

// CellEmpty reports whether position is inside the board and unoccupied.
func (that *GameState) CellEmpty(position int) bool {
	if that == nil || position < 0 || position >= len(that.Board) {
		return false
	}
	return that.Board[position] == EmptyCell
}

// ScoreOf returns the session score of a player, zero-valued if unknown.
func (that *GameState) ScoreOf(playerID string) Score {
	if that == nil {
		return Score{}
	}
	return that.SessionScores[playerID]
}
