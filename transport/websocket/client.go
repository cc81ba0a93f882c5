package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-client/internal/event"
)

// ErrNotConnected is returned by Emit while no socket is established.
var ErrNotConnected = errors.New("not connected")

// Dispatcher receives every decoded inbound event plus the transport's
// own lifecycle events.
type Dispatcher interface {
	Dispatch(ev event.Event)
}

// outboundMessage is the wire envelope for client-emitted actions.
type outboundMessage struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

// Client is the websocket transport. It owns the socket, decodes the
// inbound stream into typed events and serializes outbound writes.
type Client struct {
	logger     *slog.Logger
	url        string
	dispatcher Dispatcher

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewClient(logger *slog.Logger, url string, dispatcher Dispatcher) *Client {
	return &Client{
		logger:     logger.With("component", "websocket"),
		url:        url,
		dispatcher: dispatcher,
	}
}

// Connect dials the server, raises TransportOpen or TransportError, and
// starts the read loop. The connection id it reports is provisional; the
// authority's connected event supersedes it.
func (that *Client) Connect(ctx context.Context) error {
	log := that.logger.With("method", "Connect")

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, that.url, nil)
	if err != nil {
		that.dispatcher.Dispatch(event.TransportError{Err: err})
		return fmt.Errorf("failed to dial %s: %w", that.url, err)
	}

	that.mu.Lock()
	that.conn = conn
	that.mu.Unlock()

	that.dispatcher.Dispatch(event.TransportOpen{ConnectionID: conn.LocalAddr().String()})
	log.Info("connected", "url", that.url)

	go that.readLoop(conn)

	return nil
}

// readLoop decodes frames until the socket dies, then raises
// TransportClosed. Undecodable frames are logged and skipped; one bad
// message must not kill the stream.
func (that *Client) readLoop(conn *websocket.Conn) {
	log := that.logger.With("method", "readLoop")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			that.mu.Lock()
			if that.conn == conn {
				that.conn = nil
			}
			that.mu.Unlock()

			that.dispatcher.Dispatch(event.TransportClosed{Reason: err.Error()})
			return
		}

		var env event.Envelope
		if err = json.Unmarshal(data, &env); err != nil {
			log.Warn("failed to unmarshal frame", "error", err)
			continue
		}

		ev, err := event.Decode(&env)
		if err != nil {
			log.Warn("failed to decode event", "action", env.Action, "error", err)
			continue
		}

		that.dispatcher.Dispatch(ev)
	}
}

// Emit writes one action to the socket. Writes are serialized; gorilla
// permits only one concurrent writer.
func (that *Client) Emit(action string, payload any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.conn == nil {
		return fmt.Errorf("failed to emit %s: %w", action, ErrNotConnected)
	}

	msg := outboundMessage{Action: action, Payload: payload}
	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to emit %s: %w", action, err)
	}

	return nil
}

func (that *Client) Close() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.conn == nil {
		return nil
	}

	err := that.conn.Close()
	that.conn = nil

	return err
}
