package event

import "github.com/rocketscienceinc/tictactoe-client/internal/entity"

// Outbound action names the client emits to the authority.
const (
	ActionCreateRoom  = "create_room"
	ActionJoinRoom    = "join_room"
	ActionLeaveRoom   = "leave_room"
	ActionMakeMove    = "make_move"
	ActionRestartGame = "restart_game"
	ActionGetRooms    = "get_rooms"
	ActionTyping      = "typing"
	ActionStopTyping  = "stop_typing"
	ActionAddReaction = "add_reaction"
)

type CreateRoomPayload struct {
	PlayerName string `json:"player_name"`
	GridSize   int    `json:"grid_size"`
}

type JoinRoomPayload struct {
	PlayerName string `json:"player_name"`
	RoomID     string `json:"room_id"`
}

type RoomPayload struct {
	RoomID string `json:"room_id"`
}

type MakeMovePayload struct {
	RoomID   string `json:"room_id"`
	Position int    `json:"position"`
}

type ReactionPayload struct {
	RoomID    string `json:"room_id"`
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

type ChatMessagePayload struct {
	RoomID  string           `json:"room_id"`
	Message string           `json:"message"`
	Type    string           `json:"type"`
	ReplyTo *entity.ReplyRef `json:"reply_to,omitempty"`
}
