package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/audio"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/event"
	"github.com/rocketscienceinc/tictactoe-client/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
)

const (
	maxMessageLength = 500
	replySnippetLen  = 50
	recentEmojiCap   = 32
)

// Emitter sends an outbound action to the authority.
type Emitter interface {
	Emit(action string, payload any) error
}

// Room exposes the current room scope; chat is scoped to it and an empty
// id means there is nothing to talk in.
type Room interface {
	RoomID() string
}

// Store persists the per-user chat preferences.
type Store interface {
	SaveRecentEmojis(ctx context.Context, emojis []string) error
	SaveChatSettings(ctx context.Context, settings entity.ChatSettings) error
}

// Timing holds the typing debounce. A burst of input emits typing once;
// stop_typing follows after the input has been idle this long.
type Timing struct {
	TypingIdle time.Duration
}

var DefaultTiming = Timing{TypingIdle: 1500 * time.Millisecond}

// quickActions maps the one-tap shortcut names to their message text.
var quickActions = map[string]string{
	"gg":       "Good game! 🎮",
	"gl":       "Good luck! 🍀",
	"nice":     "Nice move! 👏",
	"thinking": "Let me think... 🤔",
}

// Session owns the chat overlay: message history, the open/unread state,
// the reply draft, typing signalling and the recent-emoji ring. All of
// it is room-scoped and dies with the room.
type Session struct {
	logger  *slog.Logger
	emitter Emitter
	view    view.Sink
	audio   *audio.Gate
	sched   *scheduler.Scheduler
	store   Store
	timing  Timing
	caps    view.Capabilities

	player *entity.PlayerInfo
	room   Room

	history []entity.ChatMessage
	open    bool
	unread  int
	draft   string
	replyTo *entity.ReplyRef

	typingActive bool
	typingStop   *scheduler.Task
	typists      map[string]string

	recentEmojis []string
	settings     entity.ChatSettings
}

func NewSession(
	logger *slog.Logger,
	emitter Emitter,
	sink view.Sink,
	gate *audio.Gate,
	sched *scheduler.Scheduler,
	store Store,
	player *entity.PlayerInfo,
	room Room,
	settings entity.ChatSettings,
	recentEmojis []string,
	timing Timing,
) *Session {
	return &Session{
		logger:       logger.With("component", "chat"),
		emitter:      emitter,
		view:         sink,
		audio:        gate,
		sched:        sched,
		store:        store,
		timing:       timing,
		caps:         sink.Capabilities(),
		player:       player,
		room:         room,
		typists:      make(map[string]string),
		recentEmojis: recentEmojis,
		settings:     settings,
	}
}

func (that *Session) Open() {
	that.open = true
	that.unread = 0
	that.view.UpdateUnreadBadge(0)
	that.view.SetChatOpen(true)
}

func (that *Session) Close() {
	that.open = false
	that.view.SetChatOpen(false)
	that.stopTyping(true)
}

func (that *Session) Toggle() {
	if that.open {
		that.Close()
		return
	}
	that.Open()
}

func (that *Session) IsOpen() bool {
	return that.open
}

func (that *Session) Unread() int {
	return that.unread
}

func (that *Session) History() []entity.ChatMessage {
	return that.history
}

// PostIncoming appends a server-delivered message. While the panel is
// closed, a foreign non-system message bumps the unread badge, raises a
// toast and plays the chat sound if the preference allows it.
func (that *Session) PostIncoming(msg entity.ChatMessage) {
	own := msg.PlayerID != "" && msg.PlayerID == that.player.ID

	that.history = append(that.history, msg)
	that.view.AppendChatMessage(msg, own)

	// a delivered message ends its author's typing burst
	if _, ok := that.typists[msg.PlayerID]; ok {
		delete(that.typists, msg.PlayerID)
		that.refreshTypingIndicator()
	}

	if that.open || own || msg.IsSystem() {
		return
	}

	that.unread++
	that.view.UpdateUnreadBadge(that.unread)
	that.view.ShowChatToast(msg.PlayerName, snippet(msg.Message, replySnippetLen))

	if that.settings.SoundEnabled {
		that.audio.Play(audio.ClipNotification)
	}
}

// SystemMessage appends a locally generated system entry. It never
// counts as unread and never toasts.
func (that *Session) SystemMessage(text string) {
	msg := entity.ChatMessage{
		MessageID: uuid.NewString(),
		Message:   text,
		Timestamp: float64(time.Now().UnixMilli()) / 1000,
		Type:      entity.MessageTypeSystem,
	}

	that.history = append(that.history, msg)
	that.view.AppendChatMessage(msg, false)
}

// Send emits the current draft (or the given text) as a chat message.
// Empty input and missing room scope are silent no-ops; overlong input
// is truncated to the server's limit.
func (that *Session) Send(text string) {
	if !that.caps.Has(view.CapabilityChat) {
		return
	}

	text = strings.TrimSpace(text)
	if text == "" {
		that.logger.Debug("send rejected", "error", apperror.ErrEmptyMessage)
		return
	}

	roomID := that.room.RoomID()
	if roomID == "" {
		that.logger.Debug("send rejected", "error", apperror.ErrNotInRoom)
		return
	}

	if runes := []rune(text); len(runes) > maxMessageLength {
		text = string(runes[:maxMessageLength])
	}

	payload := event.ChatMessagePayload{
		RoomID:  roomID,
		Message: text,
		Type:    entity.MessageTypeText,
		ReplyTo: that.replyTo,
	}

	if err := that.emitter.Emit(event.ActionChatMessage, payload); err != nil {
		that.logger.Error("failed to emit chat_message", "error", err)
	}

	that.draft = ""
	that.replyTo = nil
	that.stopTyping(true)
}

// SendQuickAction emits one of the one-tap shortcuts. Unknown names are
// ignored.
func (that *Session) SendQuickAction(name string) {
	if !that.caps.Has(view.CapabilityChat) {
		return
	}

	text, ok := quickActions[name]
	roomID := that.room.RoomID()
	if !ok || roomID == "" {
		return
	}

	payload := event.ChatMessagePayload{
		RoomID:  roomID,
		Message: text,
		Type:    entity.MessageTypeQuickAction,
	}

	if err := that.emitter.Emit(event.ActionChatMessage, payload); err != nil {
		that.logger.Error("failed to emit quick action", "error", err)
	}
}

// InputChanged tracks the draft and drives the typing signal: the first
// keystroke of a burst emits typing, and stop_typing follows only after
// the input has been idle for the debounce window. Every further change
// re-arms the window instead of emitting again.
func (that *Session) InputChanged(text string) {
	that.draft = text

	if !that.caps.Has(view.CapabilityChat) || that.room.RoomID() == "" {
		return
	}

	if text == "" {
		that.stopTyping(true)
		return
	}

	if !that.typingActive {
		that.typingActive = true
		if err := that.emitter.Emit(event.ActionTyping, event.RoomPayload{RoomID: that.room.RoomID()}); err != nil {
			that.logger.Error("failed to emit typing", "error", err)
		}
	}

	that.typingStop.Cancel()
	that.typingStop = that.sched.After(that.timing.TypingIdle, func() {
		that.stopTyping(true)
	})
}

func (that *Session) Draft() string {
	return that.draft
}

// stopTyping ends the local typing burst. emit controls whether the
// authority is told; a room teardown skips the emit since the scope is
// already gone.
func (that *Session) stopTyping(emit bool) {
	that.typingStop.Cancel()
	that.typingStop = nil

	if !that.typingActive {
		return
	}
	that.typingActive = false

	if !emit {
		return
	}

	if err := that.emitter.Emit(event.ActionStopTyping, event.RoomPayload{RoomID: that.room.RoomID()}); err != nil {
		that.logger.Error("failed to emit stop_typing", "error", err)
	}
}

// StartReply sets the reply target from a history entry, quoting at most
// the snippet length.
func (that *Session) StartReply(messageID string) {
	for i := range that.history {
		msg := &that.history[i]
		if msg.MessageID != messageID {
			continue
		}

		that.replyTo = &entity.ReplyRef{
			ID:      msg.MessageID,
			Author:  msg.PlayerName,
			Message: snippet(msg.Message, replySnippetLen),
		}
		return
	}

	that.logger.Debug("reply target not found", "messageID", messageID)
}

func (that *Session) CancelReply() {
	that.replyTo = nil
}

func (that *Session) ReplyTarget() *entity.ReplyRef {
	return that.replyTo
}

// UseEmoji appends an emoji to the draft and records it in the recent
// ring: most recent first, duplicates moved to the front, capped.
func (that *Session) UseEmoji(emoji string) {
	if !that.caps.Has(view.CapabilityEmoji) {
		return
	}

	recent := make([]string, 0, len(that.recentEmojis)+1)
	recent = append(recent, emoji)
	for _, e := range that.recentEmojis {
		if e == emoji {
			continue
		}
		recent = append(recent, e)
	}
	if len(recent) > recentEmojiCap {
		recent = recent[:recentEmojiCap]
	}
	that.recentEmojis = recent

	if err := that.store.SaveRecentEmojis(context.Background(), recent); err != nil {
		that.logger.Error("failed to persist recent emojis", "error", err)
	}

	that.InputChanged(that.draft + emoji)
}

func (that *Session) RecentEmojis() []string {
	return that.recentEmojis
}

// SendReaction emits a reaction to a message. Gated on the reactions
// capability and room scope.
func (that *Session) SendReaction(messageID, emoji string) {
	if !that.caps.Has(view.CapabilityReactions) {
		return
	}

	roomID := that.room.RoomID()
	if roomID == "" {
		return
	}

	payload := event.ReactionPayload{RoomID: roomID, MessageID: messageID, Emoji: emoji}
	if err := that.emitter.Emit(event.ActionAddReaction, payload); err != nil {
		that.logger.Error("failed to emit add_reaction", "error", err)
	}
}

// HandleTyping shows the typing indicator for a foreign player.
func (that *Session) HandleTyping(ev event.PlayerTyping) {
	if ev.PlayerID == that.player.ID {
		return
	}

	that.typists[ev.PlayerID] = ev.PlayerName
	that.refreshTypingIndicator()
}

func (that *Session) HandleStoppedTyping(ev event.PlayerStoppedTyping) {
	delete(that.typists, ev.PlayerID)
	that.refreshTypingIndicator()
}

func (that *Session) refreshTypingIndicator() {
	for _, name := range that.typists {
		that.view.ShowTypingIndicator(name)
		return
	}
	that.view.HideTypingIndicator()
}

// HandleReaction renders a foreign reaction. Render-only: there is no
// local reaction ledger, the authority's history is the record.
func (that *Session) HandleReaction(ev event.MessageReaction) {
	if !that.caps.Has(view.CapabilityReactions) {
		return
	}
	that.view.ShowReaction(ev.MessageID, ev.Emoji)
}

// HandleStatusUpdate forwards a foreign presence change to the view.
func (that *Session) HandleStatusUpdate(ev event.PlayerStatusUpdate) {
	if ev.PlayerID == that.player.ID {
		return
	}
	that.view.UpdateOpponentStatus(ev.Status == "online", ev.LastSeen)
}

func (that *Session) Settings() entity.ChatSettings {
	return that.settings
}

// UpdateSettings replaces and persists the chat preferences.
func (that *Session) UpdateSettings(settings entity.ChatSettings) {
	that.settings = settings

	if err := that.store.SaveChatSettings(context.Background(), settings); err != nil {
		that.logger.Error("failed to persist chat settings", "error", err)
	}
}

// ClearHistory wipes the transcript on user request. Scope and unread
// state survive; this is not a room teardown.
func (that *Session) ClearHistory() {
	that.history = nil
	that.view.ClearChat()
}

// Reset tears the room-scoped state down when the room is left. The
// typing burst ends without an emit since the scope is already gone;
// preferences and the emoji ring survive.
func (that *Session) Reset() {
	that.history = nil
	that.unread = 0
	that.draft = ""
	that.replyTo = nil
	that.typists = make(map[string]string)

	that.stopTyping(false)

	that.view.ClearChat()
	that.view.UpdateUnreadBadge(0)
	that.view.HideTypingIndicator()
}

func snippet(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
