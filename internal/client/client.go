package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/chat"
	"github.com/rocketscienceinc/tictactoe-client/internal/connection"
	"github.com/rocketscienceinc/tictactoe-client/internal/event"
	"github.com/rocketscienceinc/tictactoe-client/internal/match"
)

const inboxSize = 64

// Client is the dispatch loop. Every inbound event and every fired timer
// callback funnels through one goroutine, so handlers run to completion
// and the state machines never need locks.
type Client struct {
	logger *slog.Logger
	inbox  chan func()

	connection *connection.Lifecycle
	match      *match.Session
	chat       *chat.Session
}

func New(logger *slog.Logger, conn *connection.Lifecycle, matchSession *match.Session, chatSession *chat.Session) *Client {
	return &Client{
		logger:     logger.With("component", "client"),
		inbox:      make(chan func(), inboxSize),
		connection: conn,
		match:      matchSession,
		chat:       chatSession,
	}
}

// Run drains the inbox until the context is cancelled. It is the only
// goroutine that touches the state machines.
func (that *Client) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-that.inbox:
			fn()
		}
	}
}

// Post schedules fn onto the dispatch loop. The scheduler uses this as
// its runner so timer callbacks interleave with handlers instead of
// preempting them.
func (that *Client) Post(fn func()) {
	that.inbox <- fn
}

// Dispatch routes one inbound event through the loop.
func (that *Client) Dispatch(ev event.Event) {
	that.Post(func() { that.route(ev) })
}

func (that *Client) route(ev event.Event) {
	switch ev := ev.(type) {
	case event.TransportOpen:
		that.connection.HandleOpen(ev.ConnectionID)
	case event.Connected:
		that.connection.HandleIdentity(ev.ClientID)
	case event.TransportError:
		that.connection.HandleError(ev.Err)
	case event.TransportClosed:
		that.connection.HandleClose(ev.Reason)

	case event.RoomCreated:
		that.match.HandleRoomCreated(ev)
	case event.RoomJoined:
		that.match.HandleRoomJoined(ev)
	case event.PlayerJoined:
		that.match.HandlePlayerJoined(ev)
	case event.GameStart:
		that.match.HandleGameStart(ev.GameState)
	case event.MoveMade:
		that.match.HandleMoveMade(ev)
	case event.GameOver:
		that.match.HandleGameOver(ev)
	case event.GameRestarted:
		that.match.HandleGameRestarted(ev)
	case event.SessionTerminated:
		that.match.HandleSessionTerminated(ev)
	case event.LeftRoom:
		that.match.HandleLeftRoom(ev)
	case event.RoomsList:
		that.match.HandleRoomsList(ev)
	case event.ServerError:
		that.match.HandleServerError(ev.Message)

	case event.ChatMessage:
		that.chat.PostIncoming(ev.Message)
	case event.PlayerTyping:
		that.chat.HandleTyping(ev)
	case event.PlayerStoppedTyping:
		that.chat.HandleStoppedTyping(ev)
	case event.MessageReaction:
		that.chat.HandleReaction(ev)
	case event.PlayerStatusUpdate:
		that.chat.HandleStatusUpdate(ev)

	default:
		that.logger.Warn("unhandled event", "type", fmt.Sprintf("%T", ev))
	}
}
