package connection

import (
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/notify"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
)

type Status string

const (
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
	StatusError        Status = "error"
)

// Lifecycle owns the connection state machine and the local identity.
// It writes only PlayerInfo.ID; the match session owns every other
// field. Connection failures are reported, never fatal: the UI stays
// interactive after any of them, and established room state is left
// untouched so a resumed transport can pick it back up.
type Lifecycle struct {
	logger   *slog.Logger
	notifier *notify.Queue
	view     view.Sink
	player   *entity.PlayerInfo

	status Status
	// authoritative is set once the authority has assigned the id;
	// transport-level connection ids never overwrite it afterwards.
	authoritative bool

	// Reconnect, when set, is invoked after a close to kick the
	// transport. Resumption semantics stay with the transport.
	Reconnect func()
}

func New(logger *slog.Logger, notifier *notify.Queue, sink view.Sink, player *entity.PlayerInfo) *Lifecycle {
	return &Lifecycle{
		logger:   logger.With("component", "connection"),
		notifier: notifier,
		view:     sink,
		player:   player,
		status:   StatusConnecting,
	}
}

func (that *Lifecycle) Status() Status {
	return that.status
}

func (that *Lifecycle) PlayerID() string {
	return that.player.ID
}

// HandleOpen processes the transport-level open: reveal the menu and
// record the connection id as a provisional identity.
func (that *Lifecycle) HandleOpen(connectionID string) {
	log := that.logger.With("method", "HandleOpen")

	that.status = StatusConnected
	that.resolveIdentity(connectionID, false)

	that.view.HideLoading()
	that.view.ShowScreen(view.ScreenMenu)
	that.notifier.Push("Connected to server!", notify.KindSuccess, false)

	log.Info("connected", "connectionID", connectionID)
}

// HandleIdentity processes the authority's identity assignment.
func (that *Lifecycle) HandleIdentity(clientID string) {
	that.resolveIdentity(clientID, true)
	that.logger.Info("identity assigned", "playerID", clientID)
}

// HandleError processes a failed connect attempt.
func (that *Lifecycle) HandleError(err error) {
	log := that.logger.With("method", "HandleError")

	that.status = StatusError
	that.view.HideLoading()
	that.notifier.Push("Failed to connect to server. Please check if the server is running.", notify.KindError, true)

	log.Error("connection failed", "error", err)
}

// HandleClose processes a transport close. Room and game state are left
// pending either a resume or an explicit session termination.
func (that *Lifecycle) HandleClose(reason string) {
	log := that.logger.With("method", "HandleClose")

	that.status = StatusDisconnected
	that.notifier.Push("Connection lost: "+reason, notify.KindError, true)

	log.Warn("disconnected", "reason", reason)

	if that.Reconnect != nil {
		that.Reconnect()
	}
}

// resolveIdentity is the single identity write site. An authoritative id
// always wins; a provisional (transport) id applies only while no id is
// known at all, so a reconnect cannot clobber an assigned identity.
func (that *Lifecycle) resolveIdentity(id string, authoritative bool) {
	if id == "" {
		return
	}

	if authoritative {
		that.player.ID = id
		that.authoritative = true
		return
	}

	if that.player.ID == "" {
		that.player.ID = id
	}
}
