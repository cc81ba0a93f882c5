package event

import "github.com/rocketscienceinc/tictactoe-client/internal/entity"

// Event is the typed inbound sum: every server-pushed message decodes
// into exactly one of the structs below, and the dispatcher switches
// over them exhaustively.
type Event interface{ isEvent() }

// Connected carries the authority-assigned session identity.
type Connected struct {
	ClientID string `json:"client_id"`
}

// TransportOpen is raised by the transport itself when the socket opens.
// The connection id it carries is provisional and may be superseded by
// a Connected event.
type TransportOpen struct {
	ConnectionID string
}

// TransportError is raised by the transport on a failed connect attempt.
type TransportError struct {
	Err error
}

// TransportClosed is raised by the transport when the socket closes.
type TransportClosed struct {
	Reason string
}

type RoomCreated struct {
	RoomID     string            `json:"room_id"`
	PlayerID   string            `json:"player_id"`
	PlayerName string            `json:"player_name"`
	Symbol     string            `json:"symbol"`
	GameState  *entity.GameState `json:"game_state"`
}

type RoomJoined struct {
	RoomID     string            `json:"room_id"`
	PlayerID   string            `json:"player_id"`
	PlayerName string            `json:"player_name"`
	Symbol     string            `json:"symbol"`
	GameState  *entity.GameState `json:"game_state"`
}

type PlayerJoined struct {
	PlayerName string            `json:"player_name"`
	Symbol     string            `json:"symbol"`
	GameReady  bool              `json:"game_ready"`
	GameState  *entity.GameState `json:"game_state,omitempty"`
}

// GameStart's payload is the snapshot itself, not a wrapper object.
type GameStart struct {
	GameState *entity.GameState
}

type MoveMade struct {
	Position    int               `json:"position"`
	Symbol      string            `json:"symbol"`
	PlayerName  string            `json:"player_name"`
	Board       []string          `json:"board"`
	CurrentTurn string            `json:"current_turn"`
	GameState   *entity.GameState `json:"game_state,omitempty"`
}

type ChatMessage struct {
	Message entity.ChatMessage
}

type PlayerTyping struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type PlayerStoppedTyping struct {
	PlayerID string `json:"player_id"`
}

type MessageReaction struct {
	MessageID  string `json:"message_id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Emoji      string `json:"emoji"`
}

type PlayerStatusUpdate struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
	LastSeen string `json:"last_seen"`
}

type GameOver struct {
	Winner      string   `json:"winner"`
	WinnerName  string   `json:"winner_name"`
	WinningLine []int    `json:"winning_line,omitempty"`
	IsDraw      bool     `json:"is_draw"`
	FinalBoard  []string `json:"final_board"`
}

// SymbolChange records one player's mark swap on restart.
type SymbolChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type GameRestarted struct {
	GameState     *entity.GameState       `json:"game_state"`
	SymbolChanges map[string]SymbolChange `json:"symbol_changes,omitempty"`
}

type SessionTerminated struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

type LeftRoom struct {
	RoomID string `json:"room_id"`
}

type RoomsList struct {
	Rooms []entity.RoomSummary `json:"rooms"`
}

type ServerError struct {
	Message string `json:"message"`
}

func (Connected) isEvent()           {}
func (TransportOpen) isEvent()       {}
func (TransportError) isEvent()      {}
func (TransportClosed) isEvent()     {}
func (RoomCreated) isEvent()         {}
func (RoomJoined) isEvent()          {}
func (PlayerJoined) isEvent()        {}
func (GameStart) isEvent()           {}
func (MoveMade) isEvent()            {}
func (ChatMessage) isEvent()         {}
func (PlayerTyping) isEvent()        {}
func (PlayerStoppedTyping) isEvent() {}
func (MessageReaction) isEvent()     {}
func (PlayerStatusUpdate) isEvent()  {}
func (GameOver) isEvent()            {}
func (GameRestarted) isEvent()       {}
func (SessionTerminated) isEvent()   {}
func (LeftRoom) isEvent()            {}
func (RoomsList) isEvent()           {}
func (ServerError) isEvent()         {}
