package view

import (
	"strconv"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Screen is the single active screen of the UI. Exactly one is active at
// a time; the previous screen is fully deactivated before the next one
// activates.
type Screen string

const (
	ScreenMenu        Screen = "menu"
	ScreenCreateRoom  Screen = "create_room"
	ScreenJoinRoom    Screen = "join_room"
	ScreenBrowseRooms Screen = "browse_rooms"
	ScreenWaiting     Screen = "waiting"
	ScreenGame        Screen = "game"
)

// Capability names an optional view feature. The view reports what it
// supports at startup and the core degrades gated features instead of
// failing against a fixed element list.
type Capability string

const (
	CapabilityChat      Capability = "chat"
	CapabilityEmoji     Capability = "emoji"
	CapabilityReactions Capability = "reactions"
)

type Capabilities map[Capability]bool

func (that Capabilities) Has(c Capability) bool {
	return that[c]
}

// Outcome is everything the game-over modal renders.
type Outcome struct {
	Title        string
	Message      string
	Won          bool
	IsDraw       bool
	Score        entity.Score
	WinRate      int
	ShowStats    bool
	OpponentName string
}

// Sink is the pure render target the core pushes into. It may read state
// handed to it but never mutates it; all methods are fire-and-forget.
type Sink interface {
	Capabilities() Capabilities

	ShowLoading()
	HideLoading()
	ShowScreen(screen Screen)

	// Notifications: show, then a visual exit transition, then removal.
	ShowNotification(id, message, kind string)
	DismissNotification(id string)
	RemoveNotification(id string)

	ShowWaitingRoom(roomID string, gridSize int)
	RenderBoard(state *entity.GameState)
	UpdateCell(position int, symbol string)
	HighlightWinningLine(line []int)
	ResetBoard()
	UpdateTurn(yourTurn bool, currentTurn string)
	// UpdateOpponent receives nil while no opponent is known and renders
	// a waiting placeholder.
	UpdateOpponent(opponent *entity.PlayerEntry)
	UpdateScoreboard(state *entity.GameState, localID string)
	ShowGameOverModal(outcome Outcome)
	HideGameOverModal()
	UpdateRoomsList(rooms []entity.RoomSummary)

	AppendChatMessage(message entity.ChatMessage, own bool)
	ClearChat()
	ShowTypingIndicator(playerName string)
	HideTypingIndicator()
	UpdateUnreadBadge(count int)
	ShowChatToast(sender, snippet string)
	SetChatOpen(open bool)
	ShowReaction(messageID, emoji string)
	UpdateOpponentStatus(online bool, lastSeen string)
}

// BadgeText clamps the unread counter the way the badge renders it.
func BadgeText(count int) string {
	if count > 99 {
		return "99+"
	}
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}

// NopSink discards everything. It backs tests and capability-degraded
// deployments.
type NopSink struct {
	Caps Capabilities
}

func (that *NopSink) Capabilities() Capabilities { return that.Caps }

func (that *NopSink) ShowLoading()                                      {}
func (that *NopSink) HideLoading()                                      {}
func (that *NopSink) ShowScreen(Screen)                                 {}
func (that *NopSink) ShowNotification(string, string, string)           {}
func (that *NopSink) DismissNotification(string)                        {}
func (that *NopSink) RemoveNotification(string)                         {}
func (that *NopSink) ShowWaitingRoom(string, int)                       {}
func (that *NopSink) RenderBoard(*entity.GameState)                     {}
func (that *NopSink) UpdateCell(int, string)                            {}
func (that *NopSink) HighlightWinningLine([]int)                        {}
func (that *NopSink) ResetBoard()                                       {}
func (that *NopSink) UpdateTurn(bool, string)                           {}
func (that *NopSink) UpdateOpponent(*entity.PlayerEntry)                {}
func (that *NopSink) UpdateScoreboard(*entity.GameState, string)        {}
func (that *NopSink) ShowGameOverModal(Outcome)                         {}
func (that *NopSink) HideGameOverModal()                                {}
func (that *NopSink) UpdateRoomsList([]entity.RoomSummary)              {}
func (that *NopSink) AppendChatMessage(entity.ChatMessage, bool)        {}
func (that *NopSink) ClearChat()                                        {}
func (that *NopSink) ShowTypingIndicator(string)                        {}
func (that *NopSink) HideTypingIndicator()                              {}
func (that *NopSink) UpdateUnreadBadge(int)                             {}
func (that *NopSink) ShowChatToast(string, string)                      {}
func (that *NopSink) SetChatOpen(bool)                                  {}
func (that *NopSink) ShowReaction(string, string)                       {}
func (that *NopSink) UpdateOpponentStatus(bool, string)                 {}
