package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Terminal is a line-oriented sink for the reference client binary. It
// renders every update as a short line instead of repainting; the board
// is the only multi-line element.
type Terminal struct {
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (that *Terminal) Capabilities() Capabilities {
	return Capabilities{
		CapabilityChat:  true,
		CapabilityEmoji: true,
		// reactions need an interactive message list the terminal lacks
		CapabilityReactions: false,
	}
}

func (that *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(that.out, format+"\n", args...)
}

func (that *Terminal) ShowLoading() { that.printf("... loading") }
func (that *Terminal) HideLoading() {}

func (that *Terminal) ShowScreen(screen Screen) {
	that.printf("== %s ==", screen)
}

func (that *Terminal) ShowNotification(_, message, kind string) {
	that.printf("[%s] %s", kind, message)
}

func (that *Terminal) DismissNotification(string) {}
func (that *Terminal) RemoveNotification(string)  {}

func (that *Terminal) ShowWaitingRoom(roomID string, gridSize int) {
	that.printf("room %s (%dx%d) - waiting for an opponent", roomID, gridSize, gridSize)
}

func (that *Terminal) RenderBoard(state *entity.GameState) {
	if state == nil {
		return
	}

	for row := 0; row < state.GridSize; row++ {
		cells := make([]string, 0, state.GridSize)
		for col := 0; col < state.GridSize; col++ {
			cell := state.Board[row*state.GridSize+col]
			if cell == entity.EmptyCell {
				cell = "."
			}
			cells = append(cells, cell)
		}
		that.printf("  %s", strings.Join(cells, " "))
	}
}

func (that *Terminal) UpdateCell(position int, symbol string) {
	that.printf("cell %d -> %s", position, symbol)
}

func (that *Terminal) HighlightWinningLine(line []int) {
	that.printf("winning line: %v", line)
}

func (that *Terminal) ResetBoard() { that.printf("board cleared") }

func (that *Terminal) UpdateTurn(yourTurn bool, currentTurn string) {
	if yourTurn {
		that.printf("your turn (%s)", currentTurn)
		return
	}
	that.printf("opponent's turn (%s)", currentTurn)
}

func (that *Terminal) UpdateOpponent(opponent *entity.PlayerEntry) {
	if opponent == nil {
		that.printf("opponent: waiting...")
		return
	}
	that.printf("opponent: %s (%s)", opponent.Name, opponent.Symbol)
}

func (that *Terminal) UpdateScoreboard(state *entity.GameState, localID string) {
	if state == nil || state.MatchCount == 0 {
		return
	}

	local := state.ScoreOf(localID)
	that.printf("match %d | you %dW %dL %dD", state.MatchCount+1, local.Wins, local.Losses, local.Draws)

	if opponent, ok := state.Opponent(localID); ok {
		score := state.ScoreOf(opponent.ID)
		that.printf("%s %dW %dL %dD", opponent.Name, score.Wins, score.Losses, score.Draws)
	}

	if leader := state.SessionLeader; leader != nil {
		that.printf("%s is leading", leader.PlayerName)
	}
}

func (that *Terminal) ShowGameOverModal(outcome Outcome) {
	that.printf("*** %s %s", outcome.Title, outcome.Message)
	if outcome.ShowStats {
		that.printf("session: %dW %dL %dD (%d%% win rate)",
			outcome.Score.Wins, outcome.Score.Losses, outcome.Score.Draws, outcome.WinRate)
	}
}

func (that *Terminal) HideGameOverModal() {}

func (that *Terminal) UpdateRoomsList(rooms []entity.RoomSummary) {
	if len(rooms) == 0 {
		that.printf("no rooms available")
		return
	}

	now := time.Now()
	for _, room := range rooms {
		that.printf("room %s | host %s | %dx%d | %s",
			room.RoomID, room.HostName, room.GridSize, room.GridSize, room.Age(now))
	}
}

func (that *Terminal) AppendChatMessage(message entity.ChatMessage, own bool) {
	if message.IsSystem() {
		that.printf("-- %s", message.Message)
		return
	}

	name := message.PlayerName
	if own {
		name = "you"
	}

	if message.ReplyTo != nil {
		that.printf("<%s> (re %s: %s) %s", name, message.ReplyTo.Author, snippet(message.ReplyTo.Message), message.Message)
		return
	}

	that.printf("<%s> %s", name, message.Message)
}

func (that *Terminal) ClearChat() { that.printf("chat history cleared") }

func (that *Terminal) ShowTypingIndicator(playerName string) {
	that.printf("%s is typing...", playerName)
}

func (that *Terminal) HideTypingIndicator() {}

func (that *Terminal) UpdateUnreadBadge(count int) {
	if count > 0 {
		that.printf("unread messages: %s", BadgeText(count))
	}
}

func (that *Terminal) ShowChatToast(sender, text string) {
	that.printf("new message from %s: %s", sender, snippet(text))
}

func (that *Terminal) SetChatOpen(bool) {}

func (that *Terminal) ShowReaction(messageID, emoji string) {
	that.printf("reaction %s on message %s", emoji, messageID)
}

func (that *Terminal) UpdateOpponentStatus(online bool, lastSeen string) {
	if online {
		that.printf("opponent is online")
		return
	}
	that.printf("opponent last seen %s", lastSeen)
}

// snippet truncates quoted text the way the reply preview does.
func snippet(text string) string {
	const max = 50
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
