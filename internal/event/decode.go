package event

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Envelope is the wire format: an action name and a raw payload decoded
// per action.
type Envelope struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// Inbound action names as emitted by the authority.
const (
	ActionConnected           = "connected"
	ActionRoomCreated         = "room_created"
	ActionRoomJoined          = "room_joined"
	ActionPlayerJoined        = "player_joined"
	ActionGameStart           = "game_start"
	ActionMoveMade            = "move_made"
	ActionChatMessage         = "chat_message"
	ActionPlayerTyping        = "player_typing"
	ActionPlayerStoppedTyping = "player_stopped_typing"
	ActionMessageReaction     = "message_reaction"
	ActionPlayerStatusUpdate  = "player_status_update"
	ActionGameOver            = "game_over"
	ActionGameRestarted       = "game_restarted"
	ActionSessionTerminated   = "session_terminated"
	ActionLeftRoom            = "left_room"
	ActionRoomsList           = "rooms_list"
	ActionError               = "error"
)

// Decode maps an envelope to its typed event. Unknown actions return
// ErrUnknownAction so the caller can log and skip them explicitly.
func Decode(env *Envelope) (Event, error) {
	switch env.Action {
	case ActionConnected:
		return decodeAs[Connected](env)
	case ActionRoomCreated:
		return decodeAs[RoomCreated](env)
	case ActionRoomJoined:
		return decodeAs[RoomJoined](env)
	case ActionPlayerJoined:
		return decodeAs[PlayerJoined](env)
	case ActionGameStart:
		var state entity.GameState
		if err := json.Unmarshal(env.Payload, &state); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s payload: %w", env.Action, err)
		}
		return GameStart{GameState: &state}, nil
	case ActionMoveMade:
		return decodeAs[MoveMade](env)
	case ActionChatMessage:
		var msg entity.ChatMessage
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s payload: %w", env.Action, err)
		}
		return ChatMessage{Message: msg}, nil
	case ActionPlayerTyping:
		return decodeAs[PlayerTyping](env)
	case ActionPlayerStoppedTyping:
		return decodeAs[PlayerStoppedTyping](env)
	case ActionMessageReaction:
		return decodeAs[MessageReaction](env)
	case ActionPlayerStatusUpdate:
		return decodeAs[PlayerStatusUpdate](env)
	case ActionGameOver:
		return decodeAs[GameOver](env)
	case ActionGameRestarted:
		return decodeAs[GameRestarted](env)
	case ActionSessionTerminated:
		return decodeAs[SessionTerminated](env)
	case ActionLeftRoom:
		return decodeAs[LeftRoom](env)
	case ActionRoomsList:
		return decodeAs[RoomsList](env)
	case ActionError:
		return decodeAs[ServerError](env)
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownAction, env.Action)
	}
}

func decodeAs[T Event](env *Envelope) (Event, error) {
	var ev T
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s payload: %w", env.Action, err)
		}
	}
	return ev, nil
}
