package event

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, action, payload string) Event {
	t.Helper()

	env := &Envelope{Action: action, Payload: json.RawMessage(payload)}

	ev, err := Decode(env)
	require.NoError(t, err)

	return ev
}

func TestDecode_Connected(t *testing.T) {
	ev := decodeEnvelope(t, ActionConnected, `{"client_id":"p1"}`)

	connected, ok := ev.(Connected)
	require.True(t, ok)
	assert.Equal(t, "p1", connected.ClientID)
}

func TestDecode_RoomCreated(t *testing.T) {
	payload := `{
		"room_id": "AB12",
		"player_id": "p1",
		"player_name": "Ava",
		"symbol": "X",
		"game_state": {"grid_size": 3, "board": ["","","","","","","","",""], "current_turn": "X"}
	}`

	ev := decodeEnvelope(t, ActionRoomCreated, payload)

	created, ok := ev.(RoomCreated)
	require.True(t, ok)
	assert.Equal(t, "AB12", created.RoomID)
	assert.Equal(t, "Ava", created.PlayerName)
	assert.Equal(t, entity.PlayerX, created.Symbol)
	require.NotNil(t, created.GameState)
	assert.Equal(t, 3, created.GameState.GridSize)
	assert.Len(t, created.GameState.Board, 9)
}

func TestDecode_GameStart(t *testing.T) {
	// game_start's payload is the snapshot itself, not a wrapper
	payload := `{"grid_size": 4, "board": ["","","","","","","","","","","","","","","",""], "current_turn": "X"}`

	ev := decodeEnvelope(t, ActionGameStart, payload)

	start, ok := ev.(GameStart)
	require.True(t, ok)
	require.NotNil(t, start.GameState)
	assert.Equal(t, 4, start.GameState.GridSize)
	assert.Len(t, start.GameState.Board, 16)
}

func TestDecode_MoveMade(t *testing.T) {
	payload := `{"position": 4, "symbol": "O", "player_name": "Noah", "current_turn": "X"}`

	ev := decodeEnvelope(t, ActionMoveMade, payload)

	move, ok := ev.(MoveMade)
	require.True(t, ok)
	assert.Equal(t, 4, move.Position)
	assert.Equal(t, entity.PlayerO, move.Symbol)
	assert.Nil(t, move.GameState)
}

func TestDecode_ChatMessage(t *testing.T) {
	payload := `{
		"message_id": "m1",
		"player_id": "p2",
		"player_name": "Noah",
		"message": "hello",
		"type": "text",
		"reply_to": {"id": "m0", "author": "Ava", "message": "hi"}
	}`

	ev := decodeEnvelope(t, ActionChatMessage, payload)

	msg, ok := ev.(ChatMessage)
	require.True(t, ok)
	assert.Equal(t, "m1", msg.Message.MessageID)
	assert.Equal(t, "hello", msg.Message.Message)
	require.NotNil(t, msg.Message.ReplyTo)
	assert.Equal(t, "Ava", msg.Message.ReplyTo.Author)
}

func TestDecode_GameRestarted(t *testing.T) {
	payload := `{
		"game_state": {"grid_size": 3, "board": ["","","","","","","","",""], "current_turn": "X", "match_count": 1},
		"symbol_changes": {"p1": {"old": "X", "new": "O"}}
	}`

	ev := decodeEnvelope(t, ActionGameRestarted, payload)

	restarted, ok := ev.(GameRestarted)
	require.True(t, ok)
	require.NotNil(t, restarted.GameState)
	assert.Equal(t, 1, restarted.GameState.MatchCount)
	assert.Equal(t, SymbolChange{Old: "X", New: "O"}, restarted.SymbolChanges["p1"])
}

func TestDecode_UnknownAction(t *testing.T) {
	env := &Envelope{Action: "no_such_action", Payload: json.RawMessage(`{}`)}

	_, err := Decode(env)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnknownAction)
}

func TestDecode_EmptyPayload(t *testing.T) {
	env := &Envelope{Action: ActionLeftRoom}

	ev, err := Decode(env)

	require.NoError(t, err)
	_, ok := ev.(LeftRoom)
	assert.True(t, ok)
}
