package app

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/diegok/solopong/internal/audio"
	"github.com/diegok/solopong/internal/config"
	"github.com/diegok/solopong/internal/game"
	"github.com/diegok/solopong/internal/protocol"
	"github.com/diegok/solopong/internal/replay"
	"github.com/diegok/solopong/internal/telemetry"
	"github.com/diegok/solopong/internal/theme"
	"github.com/diegok/solopong/internal/ui"
)

type view int

const (
	viewMenu view = iota
	viewGame
	viewInstructions
	viewDifficulty
	viewThemes
)

// Main menu entries, in display order
const (
	itemStart = iota
	itemHowTo
	itemDifficulty
	itemMode
	itemTheme
	itemQuit
	menuLen
)

// App is the main application controller that manages the game lifecycle.
type App struct {
	cfg      *config.Config
	log      *log.Logger
	logFile  io.Closer
	screen   *ui.Screen
	renderer *ui.Renderer
	audio    *audio.Player
	recorder *replay.Recorder
	points   *telemetry.PointLog

	match   *game.Match
	seed    int64
	matchID string // new for every game started

	// State
	view   view
	cursor int // main menu
	pick   int // difficulty and theme pickers
	p1, p2 ui.HeldKey

	quit     chan struct{}
	quitOnce sync.Once
	sigChan  chan os.Signal
}

// NewApp creates a new App instance with the given configuration. The match
// starts in demo mode behind the main menu.
func NewApp(cfg *config.Config) *App {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		cfg:   cfg,
		log:   log.New(io.Discard, "", 0),
		audio: &audio.Player{},
		seed:  seed,
		match: game.NewMatch(game.FieldWidth, game.FieldHeight, cfg.PointsToWin, rand.New(rand.NewSource(seed))),
		quit:  make(chan struct{}),
	}

	if err := a.match.SetDifficulty(cfg.Level); err != nil {
		a.log.Printf("difficulty: %v", err)
	}
	a.match.SetMultiplayer(cfg.Multiplayer)
	a.match.SetTheme(cfg.Theme)
	a.match.SetDemoMode(true)

	return a
}

// Run is the main entry point for the application.
// It opens the outputs, initializes the screen and runs the game loop.
func (a *App) Run() error {
	if err := a.openOutputs(); err != nil {
		a.cleanup()
		return err
	}

	// Game works without sound
	player, err := audio.New(a.cfg.Mute)
	if err != nil {
		a.log.Printf("audio disabled: %v", err)
	}
	a.audio = player

	if err := a.openRecorder(); err != nil {
		a.cleanup()
		return err
	}

	screen, err := ui.InitScreen()
	if err != nil {
		a.cleanup()
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	a.attach(screen)
	a.handleSignals()

	a.log.Printf("session started: seed=%d difficulty=%s multiplayer=%t points=%d",
		a.seed, a.match.Difficulty, a.match.Multiplayer, a.match.WinningScore)

	runErr := a.mainLoop(game.TickInterval, a.handleKey, a.frame)

	a.cleanup()

	return runErr
}

// openOutputs opens the debug log and the points CSV
func (a *App) openOutputs() error {
	if a.cfg.LogPath != "" {
		f, err := os.OpenFile(a.cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		a.log = log.New(f, "solopong ", log.LstdFlags|log.Lmicroseconds)
	}

	points, err := telemetry.Open(a.cfg.StatsPath)
	if err != nil {
		return err
	}
	a.points = points

	return nil
}

func (a *App) openRecorder() error {
	if a.cfg.RecordPath == "" {
		return nil
	}

	rec, err := replay.Create(a.cfg.RecordPath, protocol.RecordingHeader{
		StartedAt:   time.Now(),
		Difficulty:  a.match.Difficulty.String(),
		Multiplayer: a.match.Multiplayer,
		Seed:        a.seed,
		TickMillis:  int(game.TickInterval / time.Millisecond),
	})
	if err != nil {
		return err
	}
	a.recorder = rec
	a.log.Printf("recording %s to %s", rec.Header.MatchID, a.cfg.RecordPath)
	return nil
}

// attach connects the app to a screen and a renderer for the current theme
func (a *App) attach(screen *ui.Screen) {
	a.screen = screen

	t, err := theme.Lookup(a.match.Theme)
	if err != nil {
		a.log.Printf("theme: %v", err)
		t = theme.MustLookup(theme.Default)
	}
	a.renderer = ui.NewRenderer(screen, t)
}

func (a *App) handleSignals() {
	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if _, ok := <-a.sigChan; ok {
			a.stop()
		}
	}()
}

func (a *App) stop() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// mainLoop is the main event loop: keys go to onKey, and every tick runs
// onTick. It returns when onKey asks to quit or the app is stopped.
func (a *App) mainLoop(interval time.Duration, onKey func(tcell.Key, rune) bool, onTick func()) error {
	// Create event channel for screen events
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if onKey(ev.Key(), ev.Rune()) {
					a.stop()
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}

		case <-ticker.C:
			onTick()
		}
	}
}

// frame advances the match one tick and redraws
func (a *App) frame() {
	a.step()
	a.render()
}

// step feeds held keys to the paddles, ticks the match and dispatches events
func (a *App) step() {
	if a.view == viewGame {
		a.match.SetPlayerPaddleVelocity(a.p1.Tick() * game.PaddleSpeed)
		a.match.SetOpponentPaddleVelocity(a.p2.Tick() * game.PaddleSpeed)
	}

	events := a.match.Tick()
	a.audio.Handle(events)
	for _, ev := range events {
		a.handleMatchEvent(ev)
	}

	if a.view == viewGame && a.recorder != nil {
		a.recorder.Record(a.match.Snapshot())
	}
}

func (a *App) handleMatchEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventScore:
		s := a.match.Snapshot()
		if err := a.points.Write(telemetry.NewPointRecord(a.matchID, s, ev.Rally)); err != nil {
			a.log.Printf("stats: %v", err)
		}
		a.log.Printf("point to %s: %d-%d after %d paddle hits", ev.Side, s.PlayerScore, s.AIScore, ev.Rally)
	case game.EventGameOver:
		a.log.Printf("match %s over: %s wins %d-%d", a.matchID, a.match.Winner, a.match.PlayerScore, a.match.AIScore)
	}
}

// handleKey processes a key press. Returns true if the application should quit.
func (a *App) handleKey(key tcell.Key, r rune) bool {
	action := ui.KeyToAction(key, r)

	// Quit and mute always work
	switch action {
	case ui.ActionQuit:
		return true
	case ui.ActionMute:
		a.log.Printf("muted: %t", a.audio.ToggleMute())
		return false
	}

	switch a.view {
	case viewMenu:
		return a.handleMenuKey(action)
	case viewGame:
		a.handleGameKey(key, r, action)
	case viewInstructions:
		if action == ui.ActionBack || action == ui.ActionConfirm {
			a.view = viewMenu
		}
	case viewDifficulty:
		a.handlePickerKey(action, len(game.Difficulties()), func(i int) {
			a.setDifficulty(game.Difficulties()[i])
		})
	case viewThemes:
		a.handlePickerKey(action, len(theme.Names()), func(i int) {
			a.setTheme(theme.Names()[i])
		})
	}
	return false
}

func (a *App) handleMenuKey(action ui.Action) bool {
	switch action {
	case ui.ActionUp:
		a.cursor = (a.cursor + menuLen - 1) % menuLen
	case ui.ActionDown:
		a.cursor = (a.cursor + 1) % menuLen
	case ui.ActionConfirm, ui.ActionSpace:
		return a.selectMenuItem()
	}
	return false
}

func (a *App) selectMenuItem() bool {
	switch a.cursor {
	case itemStart:
		a.startGame()
	case itemHowTo:
		a.view = viewInstructions
	case itemDifficulty:
		a.view = viewDifficulty
		a.pick = int(a.match.Difficulty)
	case itemMode:
		a.match.SetMultiplayer(!a.match.Multiplayer)
		a.cfg.Multiplayer = a.match.Multiplayer
	case itemTheme:
		a.view = viewThemes
		a.pick = indexOf(theme.Names(), a.match.Theme)
	case itemQuit:
		return true
	}
	return false
}

func (a *App) handleGameKey(key tcell.Key, r rune, action ui.Action) {
	if side, dir := ui.KeyToPaddle(key, r); side != protocol.SideNone {
		// Arrows drive player one unless a second player is at the keyboard
		if side == protocol.SideRight && a.match.Multiplayer {
			a.p2.Press(dir)
		} else {
			a.p1.Press(dir)
		}
		return
	}

	switch action {
	case ui.ActionSpace:
		if a.match.Over {
			a.startGame()
			return
		}
		if a.match.PauseToggle() {
			a.log.Printf("paused: %t", a.match.Paused)
		}
	case ui.ActionBack:
		a.toMenu()
	}
}

func (a *App) handlePickerKey(action ui.Action, n int, choose func(int)) {
	switch action {
	case ui.ActionUp:
		a.pick = (a.pick + n - 1) % n
	case ui.ActionDown:
		a.pick = (a.pick + 1) % n
	case ui.ActionConfirm, ui.ActionSpace:
		choose(a.pick)
		a.view = viewMenu
	case ui.ActionBack:
		a.view = viewMenu
	}
}

// startGame begins a fresh match with the current settings
func (a *App) startGame() {
	a.matchID = uuid.NewString()
	a.p1.Release()
	a.p2.Release()

	a.match.SetDemoMode(false)
	a.match.StartGame()
	a.view = viewGame

	a.log.Printf("match %s started: difficulty=%s multiplayer=%t", a.matchID, a.match.Difficulty, a.match.Multiplayer)
}

// toMenu abandons the match and returns to the demo behind the menu
func (a *App) toMenu() {
	a.p1.Release()
	a.p2.Release()
	a.match.SetPlayerPaddleVelocity(0)
	a.match.SetOpponentPaddleVelocity(0)
	a.match.SetDemoMode(true)
	a.view = viewMenu
}

func (a *App) setDifficulty(d game.Difficulty) {
	if err := a.match.SetDifficulty(d); err != nil {
		a.log.Printf("difficulty: %v", err)
		return
	}
	a.cfg.Difficulty = d.String()
	a.cfg.Level = d
}

func (a *App) setTheme(name string) {
	t, err := theme.Lookup(name)
	if err != nil {
		a.log.Printf("theme: %v", err)
		return
	}
	a.match.SetTheme(t.Name)
	a.cfg.Theme = t.Name
	if a.renderer != nil {
		a.renderer.SetTheme(t)
	}
}

// render calls the appropriate renderer method based on the current view.
func (a *App) render() {
	switch a.view {
	case viewMenu:
		a.renderer.RenderMenu(ui.MenuView{
			Backdrop: a.match.Snapshot(),
			Items:    a.menuItems(),
			Cursor:   a.cursor,
		})
	case viewGame:
		a.renderer.RenderGame(a.match.Snapshot())
	case viewInstructions:
		a.renderer.RenderInstructions(a.match.Multiplayer, a.match.WinningScore)
	case viewDifficulty:
		a.renderer.RenderPicker("DIFFICULTY", a.difficultyOptions(), a.pick)
	case viewThemes:
		a.renderer.RenderPicker("THEME", a.themeOptions(), a.pick)
	}
}

func (a *App) menuItems() []string {
	mode := "One Player"
	if a.match.Multiplayer {
		mode = "Two Players"
	}

	items := make([]string, menuLen)
	items[itemStart] = "Start Game"
	items[itemHowTo] = "How To Play"
	items[itemDifficulty] = "Difficulty: " + ui.Title(a.match.Difficulty.String())
	items[itemMode] = mode
	items[itemTheme] = "Theme: " + ui.Title(a.match.Theme)
	items[itemQuit] = "Quit"
	return items
}

func (a *App) difficultyOptions() []ui.Option {
	var opts []ui.Option
	for _, d := range game.Difficulties() {
		p := d.Profile()
		opts = append(opts, ui.Option{
			Label: ui.Title(d.String()),
			Description: fmt.Sprintf("AI reaction %.0f%%, prediction %.0f%%\nBall speed x%.1f",
				p.ReactionSpeed*100, p.PredictFactor*100, p.BallSpeedMultiplier),
			Current: d == a.match.Difficulty,
		})
	}
	return opts
}

func (a *App) themeOptions() []ui.Option {
	var opts []ui.Option
	for _, name := range theme.Names() {
		t := theme.MustLookup(name)
		opts = append(opts, ui.Option{
			Label:       ui.Title(name),
			Description: fmt.Sprintf("Paddles %s, ball %s", t.Paddle.Hex(), t.Ball.Hex()),
			Current:     name == a.match.Theme,
			Theme:       &t,
		})
	}
	return opts
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	if a.audio != nil {
		a.audio.Close()
	}

	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.log.Printf("recording: %v", err)
		}
		if n := a.recorder.Dropped(); n > 0 {
			a.log.Printf("recording dropped %d snapshots", n)
		}
	}

	if err := a.points.Close(); err != nil {
		a.log.Printf("stats: %v", err)
	}

	// Finalize screen
	if a.screen != nil {
		a.screen.Fini()
	}

	// Stop signal handling
	if a.sigChan != nil {
		signal.Stop(a.sigChan)
		close(a.sigChan)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}
