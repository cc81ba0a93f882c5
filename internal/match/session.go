package match

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/audio"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/event"
	"github.com/rocketscienceinc/tictactoe-client/internal/notify"
	"github.com/rocketscienceinc/tictactoe-client/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
)

// Emitter sends an outbound action to the authority.
type Emitter interface {
	Emit(action string, payload any) error
}

// Chat is the slice of the chat session the match needs: end-of-match
// system messages and a reset when the room is left.
type Chat interface {
	SystemMessage(text string)
	Reset()
}

// Timing holds the pacing delays of the game-over sequence and the
// session-termination grace period. Ordering (scoreboard before modal)
// is the only correctness requirement; the values exist for pacing
// against the move-highlight animation.
type Timing struct {
	ScoreboardDelay  time.Duration
	ModalDelay       time.Duration
	TerminationGrace time.Duration
}

var DefaultTiming = Timing{
	ScoreboardDelay:  500 * time.Millisecond,
	ModalDelay:       time.Second,
	TerminationGrace: 2 * time.Second,
}

// Session owns room membership, the game snapshot, the screen state
// machine and the scoreboard. It applies optimistic guards before
// emitting a move; the authority's snapshots always override whatever
// it assumed locally.
type Session struct {
	logger   *slog.Logger
	emitter  Emitter
	view     view.Sink
	audio    *audio.Gate
	notifier *notify.Queue
	chat     Chat
	sched    *scheduler.Scheduler
	timing   Timing

	player  *entity.PlayerInfo
	game    *entity.GameState
	screen  view.Screen
	rooms   []entity.RoomSummary
	loading bool

	// pending holds the staggered timers of the current room; leaving
	// cancels them so a stale game-over modal can never surface.
	pending scheduler.TaskSet
}

func NewSession(
	logger *slog.Logger,
	emitter Emitter,
	sink view.Sink,
	gate *audio.Gate,
	notifier *notify.Queue,
	chat Chat,
	sched *scheduler.Scheduler,
	player *entity.PlayerInfo,
	timing Timing,
) *Session {
	return &Session{
		logger:   logger.With("component", "match"),
		emitter:  emitter,
		view:     sink,
		audio:    gate,
		notifier: notifier,
		chat:     chat,
		sched:    sched,
		timing:   timing,
		player:   player,
		screen:   view.ScreenMenu,
	}
}

func (that *Session) Screen() view.Screen {
	return that.screen
}

func (that *Session) Game() *entity.GameState {
	return that.game
}

func (that *Session) Loading() bool {
	return that.loading
}

// RoomID exposes the current room scope for the chat session.
func (that *Session) RoomID() string {
	return that.player.RoomID
}

func (that *Session) showScreen(screen view.Screen) {
	that.screen = screen
	that.view.ShowScreen(screen)
}

// OpenCreateRoom, OpenJoinRoom and OpenBrowseRooms are the menu
// branches; browsing refreshes the list right away.
func (that *Session) OpenCreateRoom() { that.showScreen(view.ScreenCreateRoom) }
func (that *Session) OpenJoinRoom()   { that.showScreen(view.ScreenJoinRoom) }

func (that *Session) OpenBrowseRooms() {
	that.showScreen(view.ScreenBrowseRooms)
	that.RefreshRooms()
}

// CreateRoom requests a new room. An empty name is rejected locally
// without any network call.
func (that *Session) CreateRoom(playerName string, gridSize int) {
	log := that.logger.With("method", "CreateRoom")

	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		log.Debug("create rejected", "error", apperror.ErrNameRequired)
		that.notifier.Push("Please enter your name", notify.KindError, true)
		return
	}

	that.loading = true
	that.view.ShowLoading()

	payload := event.CreateRoomPayload{PlayerName: playerName, GridSize: gridSize}
	if err := that.emitter.Emit(event.ActionCreateRoom, payload); err != nil {
		log.Error("failed to emit create_room", "error", err)
	}
}

// JoinRoom requests to join an existing room by code.
func (that *Session) JoinRoom(playerName, roomCode string) {
	log := that.logger.With("method", "JoinRoom")

	playerName = strings.TrimSpace(playerName)
	roomCode = strings.ToUpper(strings.TrimSpace(roomCode))

	if playerName == "" || roomCode == "" {
		log.Debug("join rejected", "error", apperror.ErrRoomRequired)
		that.notifier.Push("Please fill in all fields", notify.KindError, true)
		return
	}

	that.loading = true
	that.view.ShowLoading()

	payload := event.JoinRoomPayload{PlayerName: playerName, RoomID: roomCode}
	if err := that.emitter.Emit(event.ActionJoinRoom, payload); err != nil {
		log.Error("failed to emit join_room", "error", err)
	}
}

// RefreshRooms requests a fresh room list snapshot.
func (that *Session) RefreshRooms() {
	if err := that.emitter.Emit(event.ActionGetRooms, nil); err != nil {
		that.logger.Error("failed to emit get_rooms", "error", err)
	}
}

// MakeMove applies the optimistic legality guard and emits the move.
// Rejections never reach the network; the authority remains the source
// of truth and a later snapshot overrides any local assumption.
func (that *Session) MakeMove(position int) {
	log := that.logger.With("method", "MakeMove")

	if err := that.validateMove(position); err != nil {
		log.Debug("move rejected locally", "position", position, "error", err)
		that.notifier.Push(err.Error(), notify.KindInfo, false)
		return
	}

	payload := event.MakeMovePayload{RoomID: that.player.RoomID, Position: position}
	if err := that.emitter.Emit(event.ActionMakeMove, payload); err != nil {
		log.Error("failed to emit make_move", "error", err)
	}
}

func (that *Session) validateMove(position int) error {
	switch {
	case that.game == nil:
		return apperror.ErrNoActiveGame
	case that.game.GameOver:
		return apperror.ErrGameFinished
	case that.game.CurrentTurn != that.player.Symbol:
		return apperror.ErrNotYourTurn
	case position < 0 || position >= len(that.game.Board):
		return apperror.ErrInvalidCell
	case !that.game.CellEmpty(position):
		return apperror.ErrCellOccupied
	default:
		return nil
	}
}

// RestartGame asks the authority for a rematch.
func (that *Session) RestartGame() {
	if !that.player.InRoom() {
		that.logger.Debug("restart rejected", "error", apperror.ErrNotInRoom)
		return
	}

	payload := event.RoomPayload{RoomID: that.player.RoomID}
	if err := that.emitter.Emit(event.ActionRestartGame, payload); err != nil {
		that.logger.Error("failed to emit restart_game", "error", err)
	}
}

// LeaveGame and CancelWaiting both fold into BackToMenu, which emits the
// leave while the room id is still known.
func (that *Session) LeaveGame()     { that.BackToMenu() }
func (that *Session) CancelWaiting() { that.BackToMenu() }

// BackToMenu leaves the room if one is held, then resets everything but
// the session identity. In-flight staggered timers tied to the previous
// match are cancelled.
func (that *Session) BackToMenu() {
	log := that.logger.With("method", "BackToMenu")

	if that.player.InRoom() {
		payload := event.RoomPayload{RoomID: that.player.RoomID}
		if err := that.emitter.Emit(event.ActionLeaveRoom, payload); err != nil {
			log.Error("failed to emit leave_room", "error", err)
		}
	}

	that.pending.CancelAll()

	that.game = nil
	that.player.Reset()
	that.chat.Reset()

	that.view.HideGameOverModal()
	that.showScreen(view.ScreenMenu)
}

// HandleRoomCreated adopts the new room and waits for an opponent.
func (that *Session) HandleRoomCreated(ev event.RoomCreated) {
	log := that.logger.With("method", "HandleRoomCreated", "roomID", ev.RoomID)

	that.loading = false
	that.view.HideLoading()

	that.player.Name = ev.PlayerName
	that.player.Symbol = ev.Symbol
	that.player.RoomID = ev.RoomID
	that.game = ev.GameState

	that.view.ShowWaitingRoom(ev.RoomID, that.gridSize())
	that.showScreen(view.ScreenWaiting)
	that.notifier.Push(fmt.Sprintf("Room %s created!", ev.RoomID), notify.KindSuccess, true)

	log.Info("room created")
}

// HandleRoomJoined adopts membership but keeps the current screen: the
// room may still be waiting for its second player, and game_start drives
// the actual transition.
func (that *Session) HandleRoomJoined(ev event.RoomJoined) {
	log := that.logger.With("method", "HandleRoomJoined", "roomID", ev.RoomID)

	that.loading = false
	that.view.HideLoading()

	that.player.Name = ev.PlayerName
	that.player.Symbol = ev.Symbol
	that.player.RoomID = ev.RoomID
	that.game = ev.GameState

	that.notifier.Push(fmt.Sprintf("Joined room %s!", ev.RoomID), notify.KindSuccess, true)
	that.refreshOpponent()

	log.Info("room joined")
}

// HandlePlayerJoined merges the accompanying snapshot if one is present;
// without one the board and turn stay untouched.
func (that *Session) HandlePlayerJoined(ev event.PlayerJoined) {
	that.notifier.Push(fmt.Sprintf("%s joined the game!", ev.PlayerName), notify.KindInfo, true)

	if ev.GameState != nil {
		that.game = ev.GameState
	}

	that.refreshOpponent()
}

// HandleGameStart replaces the snapshot wholesale and enters the game.
func (that *Session) HandleGameStart(state *entity.GameState) {
	log := that.logger.With("method", "HandleGameStart")

	that.game = state
	that.showScreen(view.ScreenGame)

	that.view.RenderBoard(state)
	that.view.UpdateTurn(state.CurrentTurn == that.player.Symbol, state.CurrentTurn)
	that.view.UpdateScoreboard(state, that.player.ID)
	that.refreshOpponent()

	that.chat.SystemMessage("🎮 Game started! May the best player win!")
	that.notifier.Push("Game started!", notify.KindSuccess, true)

	log.Info("game started", "gridSize", state.GridSize)
}

// HandleMoveMade applies the snapshot when one is attached, and always
// applies the single-cell update from the event fields. The view update
// must not assume the snapshot path ran.
func (that *Session) HandleMoveMade(ev event.MoveMade) {
	if ev.GameState != nil {
		that.game = ev.GameState
	} else if that.game != nil {
		// keep the optimistic guard honest until the next snapshot
		if ev.Position >= 0 && ev.Position < len(that.game.Board) {
			that.game.Board[ev.Position] = ev.Symbol
		}
		that.game.CurrentTurn = ev.CurrentTurn
	}

	if ev.Symbol == entity.PlayerX {
		that.audio.Play(audio.ClipClickX)
	} else {
		that.audio.Play(audio.ClipClickO)
	}

	that.view.UpdateCell(ev.Position, ev.Symbol)
	that.view.UpdateTurn(ev.CurrentTurn == that.player.Symbol, ev.CurrentTurn)
	that.notifier.Push(fmt.Sprintf("%s played %s", ev.PlayerName, ev.Symbol), notify.KindInfo, false)
}

// HandleGameOver plays the outcome sound, posts the system message,
// highlights the winning line, then refreshes the scoreboard and shows
// the modal after staggered delays. Both timers belong to the room and
// die with it.
func (that *Session) HandleGameOver(ev event.GameOver) {
	log := that.logger.With("method", "HandleGameOver")

	switch {
	case ev.IsDraw:
		that.chat.SystemMessage("🤝 It's a draw! Well played both!")
	case ev.Winner == that.player.Symbol:
		that.audio.Play(audio.ClipWin)
		that.chat.SystemMessage("🏆 Congratulations! You won this round!")
	default:
		that.audio.Play(audio.ClipLoss)
		that.chat.SystemMessage("💪 Good effort! Better luck next time!")
	}

	if that.game != nil {
		that.game.GameOver = true
	}

	if len(ev.WinningLine) > 0 {
		that.view.HighlightWinningLine(ev.WinningLine)
	}

	outcome := that.buildOutcome(ev)

	that.pending.Add(that.sched.After(that.timing.ScoreboardDelay, func() {
		that.view.UpdateScoreboard(that.game, that.player.ID)
	}))

	that.pending.Add(that.sched.After(that.timing.ModalDelay, func() {
		that.view.ShowGameOverModal(outcome)
	}))

	log.Info("game over", "winner", ev.Winner, "draw", ev.IsDraw)
}

func (that *Session) buildOutcome(ev event.GameOver) view.Outcome {
	opponentName := "your opponent"
	if opponent, ok := that.game.Opponent(that.player.ID); ok {
		opponentName = opponent.Name
	}

	outcome := view.Outcome{
		IsDraw:       ev.IsDraw,
		Won:          !ev.IsDraw && ev.Winner == that.player.Symbol,
		OpponentName: opponentName,
	}

	switch {
	case outcome.IsDraw:
		outcome.Title = "It's a Draw!"
		outcome.Message = "Great game! Want to play again?"
	case outcome.Won:
		outcome.Title = "You Won!"
		outcome.Message = fmt.Sprintf("Congratulations! You beat %s!", opponentName)
	default:
		outcome.Title = "You Lost!"
		outcome.Message = fmt.Sprintf("%s won this round. Ready for revenge?", opponentName)
	}

	if that.game != nil && that.game.MatchCount > 0 && len(that.game.SessionScores) > 0 {
		outcome.Score = that.game.ScoreOf(that.player.ID)
		outcome.WinRate = outcome.Score.WinRate()
		outcome.ShowStats = true
	}

	return outcome
}

// HandleGameRestarted replaces the snapshot, applies a symbol swap for
// the local id if the event carries one, and clears the outcome modal.
func (that *Session) HandleGameRestarted(ev event.GameRestarted) {
	log := that.logger.With("method", "HandleGameRestarted")

	// a restart invalidates any still-pending game-over pacing
	that.pending.CancelAll()

	that.game = ev.GameState

	if change, ok := ev.SymbolChanges[that.player.ID]; ok && change.Old != change.New {
		that.player.Symbol = change.New
		that.notifier.PushSymbolSwap(change.Old, change.New, that.matchCount())
	}

	that.view.ResetBoard()
	if that.game != nil {
		that.view.UpdateTurn(that.game.CurrentTurn == that.player.Symbol, that.game.CurrentTurn)
		that.view.UpdateScoreboard(that.game, that.player.ID)
	}
	that.refreshOpponent()
	that.view.HideGameOverModal()

	that.notifier.Push(fmt.Sprintf("Match %d started!", that.matchCount()+1), notify.KindInfo, true)

	log.Info("game restarted", "matchCount", that.matchCount())
}

// HandleSessionTerminated is the one time-driven transition: the server
// evicted the session, so after a short grace period the client is
// forced back to the menu.
func (that *Session) HandleSessionTerminated(ev event.SessionTerminated) {
	log := that.logger.With("method", "HandleSessionTerminated")

	that.notifier.Push(ev.Message, notify.KindWarning, true)

	that.pending.CancelAll()
	that.game = nil
	that.player.RoomID = ""

	that.pending.Add(that.sched.After(that.timing.TerminationGrace, that.BackToMenu))

	log.Warn("session terminated", "reason", ev.Reason)
}

func (that *Session) HandleLeftRoom(ev event.LeftRoom) {
	that.logger.Info("left room", "roomID", ev.RoomID)
}

// HandleRoomsList replaces the browse list wholesale. Staleness is
// acceptable; partial merges are not.
func (that *Session) HandleRoomsList(ev event.RoomsList) {
	that.rooms = ev.Rooms
	that.view.UpdateRoomsList(ev.Rooms)
}

// HandleServerError surfaces an authority-reported error and clears any
// loading indicator.
func (that *Session) HandleServerError(message string) {
	that.loading = false
	that.view.HideLoading()
	that.notifier.Push(message, notify.KindError, true)
}

// refreshOpponent re-derives the opponent from the players map. Safe
// with 0 or 1 known players: the view gets nil and renders a waiting
// placeholder.
func (that *Session) refreshOpponent() {
	if opponent, ok := that.game.Opponent(that.player.ID); ok {
		that.view.UpdateOpponent(&opponent)
		return
	}
	that.view.UpdateOpponent(nil)
}

func (that *Session) gridSize() int {
	if that.game == nil {
		return 0
	}
	return that.game.GridSize
}

func (that *Session) matchCount() int {
	if that.game == nil {
		return 0
	}
	return that.game.MatchCount
}
