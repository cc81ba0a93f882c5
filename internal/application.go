package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/audio"
	"github.com/rocketscienceinc/tictactoe-client/internal/chat"
	"github.com/rocketscienceinc/tictactoe-client/internal/client"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/connection"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/event"
	"github.com/rocketscienceinc/tictactoe-client/internal/match"
	"github.com/rocketscienceinc/tictactoe-client/internal/notify"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-client/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
	"github.com/rocketscienceinc/tictactoe-client/transport/rest"
	"github.com/rocketscienceinc/tictactoe-client/transport/websocket"
)

var ErrUnknownBackend = errors.New("unknown prefs backend")

const reconnectDelay = 2 * time.Second

// prefsStorage is the backend surface the app needs: the flat key/value
// store plus teardown.
type prefsStorage interface {
	repository.KVStorage
	io.Closer
}

// dispatcherProxy and roomProxy break the construction cycle between
// the transport, the dispatch loop and the two sessions. Their targets
// are set before anything runs.
type dispatcherProxy struct {
	client *client.Client
}

func (that *dispatcherProxy) Dispatch(ev event.Event) {
	that.client.Dispatch(ev)
}

type roomProxy struct {
	match *match.Session
}

func (that *roomProxy) RoomID() string {
	return that.match.RoomID()
}

// RunApp - wires the whole client together and runs it.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	kv, err := openPrefsStorage(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open prefs storage: %w", err)
	}

	defer func() {
		if err = kv.Close(); err != nil {
			log.Error("could not close prefs storage", "error", err)
		}
	}()

	prefsRepo := repository.NewPrefsRepository(kv)

	soundEnabled, err := prefsRepo.SoundEnabled(ctx)
	if err != nil {
		log.Warn("could not load sound preference", "error", err)
	}

	chatSettings, err := prefsRepo.ChatSettings(ctx)
	if err != nil {
		log.Warn("could not load chat settings", "error", err)
	}

	recentEmojis, err := prefsRepo.RecentEmojis(ctx)
	if err != nil {
		log.Warn("could not load recent emojis", "error", err)
	}

	theme, err := prefsRepo.Theme(ctx)
	if err != nil {
		log.Warn("could not load theme", "error", err)
	}
	log.Debug("preferences loaded", "theme", theme, "soundEnabled", soundEnabled)

	sink := view.NewTerminal(os.Stdout)
	gate := audio.New(logger, prefsRepo, soundEnabled, audio.TerminalClips(os.Stdout))
	player := &entity.PlayerInfo{Name: conf.PlayerName}

	dispatcher := &dispatcherProxy{}
	sched := scheduler.New(func(fn func()) {
		dispatcher.client.Post(fn)
	})

	notifier := notify.New(logger, sink, gate, sched, notify.DefaultTiming)
	lifecycle := connection.New(logger, notifier, sink, player)

	transport := websocket.NewClient(logger, conf.ServerURL, dispatcher)
	defer func() {
		if err = transport.Close(); err != nil {
			log.Error("could not close transport", "error", err)
		}
	}()

	scope := &roomProxy{}
	chatSession := chat.NewSession(logger, transport, sink, gate, sched, prefsRepo, player, scope, chatSettings, recentEmojis, chat.DefaultTiming)
	matchSession := match.NewSession(logger, transport, sink, gate, notifier, chatSession, sched, player, match.DefaultTiming)
	scope.match = matchSession

	loop := client.New(logger, lifecycle, matchSession, chatSession)
	dispatcher.client = loop

	lifecycle.Reconnect = func() {
		sched.After(reconnectDelay, func() {
			go func() {
				if connErr := transport.Connect(ctx); connErr != nil {
					log.Error("reconnect failed", "error", connErr)
				}
			}()
		})
	}

	// run the dispatch loop
	loopErrCh := make(chan error, 1)
	go func() {
		loopErrCh <- loop.Run(ctx)
	}()

	sink.ShowLoading()

	health := rest.NewHealthClient(logger, conf.HealthURL)
	if err = health.Check(ctx); err != nil {
		log.Warn("health check failed, connecting anyway", "error", err)
	}

	if err = transport.Connect(ctx); err != nil {
		// the lifecycle handler has already surfaced it
		log.Error("initial connect failed", "error", err)
	}

	go readCommands(ctx, log, loop, gate, matchSession, chatSession, prefsRepo, conf.PlayerName, cancel)

	select {
	case err = <-loopErrCh:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("dispatch loop error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func openPrefsStorage(ctx context.Context, conf *config.Config) (prefsStorage, error) {
	switch conf.Prefs.Backend {
	case "sqlite":
		st, err := storage.NewSQLiteStorage(conf.Prefs.SQLitePath)
		if err != nil {
			return nil, err
		}

		if err = st.Init(ctx); err != nil {
			return nil, err
		}

		return st, nil
	case "redis":
		return storage.NewRedisStorage(ctx, conf.Prefs.Redis.GetRedisAddr())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, conf.Prefs.Backend)
	}
}

// readCommands is the terminal input loop. Every command is posted onto
// the dispatch loop; the first line of input doubles as the unlock
// gesture for audio.
func readCommands(
	ctx context.Context,
	log *slog.Logger,
	loop *client.Client,
	gate *audio.Gate,
	matchSession *match.Session,
	chatSession *chat.Session,
	prefsRepo repository.PrefsRepository,
	defaultName string,
	quit func(),
) {
	scanner := bufio.NewScanner(os.Stdin)
	unlockRequested := false

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// the first qualifying input is the unlock gesture; after that
		// the input loop stops forwarding to the gate
		if !unlockRequested {
			unlockRequested = true
			loop.Post(func() { gate.RequestUnlock() })
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "create":
			// bare "create" just opens the form
			if len(args) == 0 {
				loop.Post(matchSession.OpenCreateRoom)
				continue
			}
			name, gridSize := args[0], 3
			if len(args) > 1 {
				if n, err := strconv.Atoi(args[1]); err == nil {
					gridSize = n
				}
			}
			loop.Post(func() { matchSession.CreateRoom(name, gridSize) })
		case "join":
			if len(args) == 0 {
				loop.Post(matchSession.OpenJoinRoom)
				continue
			}
			name, code := defaultName, ""
			if len(args) == 1 {
				code = args[0]
			} else {
				name, code = args[0], args[1]
			}
			loop.Post(func() { matchSession.JoinRoom(name, code) })
		case "rooms":
			loop.Post(matchSession.OpenBrowseRooms)
		case "move":
			if len(args) > 0 {
				if pos, err := strconv.Atoi(args[0]); err == nil {
					loop.Post(func() { matchSession.MakeMove(pos) })
				}
			}
		case "restart":
			loop.Post(matchSession.RestartGame)
		case "leave":
			loop.Post(matchSession.LeaveGame)
		case "cancel":
			loop.Post(matchSession.CancelWaiting)
		case "refresh":
			loop.Post(matchSession.RefreshRooms)
		case "menu":
			loop.Post(matchSession.BackToMenu)
		case "chat":
			text := strings.Join(args, " ")
			loop.Post(func() { chatSession.Send(text) })
		case "reply":
			if len(args) > 1 {
				id, text := args[0], strings.Join(args[1:], " ")
				loop.Post(func() {
					chatSession.StartReply(id)
					chatSession.Send(text)
				})
			}
		case "emoji":
			if len(args) > 0 {
				emoji := args[0]
				loop.Post(func() { chatSession.UseEmoji(emoji) })
			}
		case "gg", "gl", "nice", "thinking":
			loop.Post(func() { chatSession.SendQuickAction(cmd) })
		case "open":
			loop.Post(chatSession.Open)
		case "close":
			loop.Post(chatSession.Close)
		case "clear":
			loop.Post(chatSession.ClearHistory)
		case "sound":
			loop.Post(func() {
				enabled := gate.Toggle()
				log.Info("sound toggled", "enabled", enabled)
			})
		case "theme":
			if len(args) > 0 {
				name := args[0]
				loop.Post(func() {
					if err := prefsRepo.SaveTheme(context.Background(), name); err != nil {
						log.Error("could not save theme", "error", err)
					}
				})
			}
		case "quit", "exit":
			quit()
			return
		default:
			log.Info("unknown command", "command", cmd)
		}
	}
}
