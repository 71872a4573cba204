// Package match3 is the terminal front end of the match-3 engine: cursor and
// selection handling, turn playback and rendering behind registry.Game.
package match3

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sweet-memories/internal/config"
	"github.com/vovakirdan/sweet-memories/internal/core"
	"github.com/vovakirdan/sweet-memories/internal/games/match3/engine"
	"github.com/vovakirdan/sweet-memories/internal/registry"
)

// Mode selects the move budget rule.
type Mode string

const (
	ModeClassic Mode = "match3"
	ModeZen     Mode = "match3_zen"
)

const (
	hintTicks    = 60
	messageTicks = 45
)

var (
	defaultsMu    sync.RWMutex
	defaultConfig = config.DefaultMatch3Config()
	defaultLogger *log.Logger
)

// SetConfig sets the configuration used by games created through the registry.
func SetConfig(cfg config.Match3Config) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultConfig = cfg
}

// SetLogger sets the logger handed to engines created through the registry.
func SetLogger(l *log.Logger) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultLogger = l
}

func defaults() (config.Match3Config, *log.Logger) {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaultConfig, defaultLogger
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		cfg, logger := defaults()
		return New(ModeClassic, cfg, logger)
	})
	registry.Register(string(ModeZen), func() registry.Game {
		cfg, logger := defaults()
		return New(ModeZen, cfg, logger)
	})
}

// Game implements registry.Game for one match-3 session.
type Game struct {
	mode     Mode
	cfg      config.Match3Config
	logger   *log.Logger
	captions map[engine.TagID]string

	eng     *engine.Engine
	display *engine.Board // what the player sees while a turn plays back
	player  player
	events  []engine.Event
	failed  error

	tick    uint64
	screenW int
	screenH int

	cursor    engine.Pos
	selected  engine.Pos
	hasSel    bool
	hint      [2]engine.Pos
	hintLeft  int
	message   string
	msgLeft   int
	revealed  []engine.TagUncoveredEvent // in the order the player saw them
	lastChain int
	maxChain  int

	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

// New creates a game for the given mode. Zen ignores the move budget.
func New(mode Mode, cfg config.Match3Config, logger *log.Logger) *Game {
	if mode == ModeZen {
		config.ApplyMatch3Preset(&cfg, config.DifficultyZen)
	}
	cfg.Clamp()
	return &Game{
		mode:   mode,
		cfg:    cfg,
		logger: logger,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Sweet Memories (Zen)"
	}
	return "Sweet Memories"
}

// engineConfig converts the loaded configuration for the engine.
func (g *Game) engineConfig() engine.Config {
	memories := g.cfg.Pick()
	tags := make([]engine.TagID, len(memories))
	for i, m := range memories {
		tags[i] = engine.TagID(m.ID)
	}
	return engine.Config{
		Size:                g.cfg.Board.Size,
		Kinds:               g.cfg.Board.Kinds,
		Moves:               g.cfg.Moves,
		BiasChance:          g.cfg.Refill.BiasChance,
		BiasRadius:          g.cfg.Refill.BiasRadius,
		MaxCascadePasses:    g.cfg.Engine.MaxCascadePasses,
		MaxGenerateAttempts: g.cfg.Engine.MaxGenerateAttempts,
		MaxShuffleAttempts:  g.cfg.Engine.MaxShuffleAttempts,
		Tags:                tags,
	}
}

// Reset starts a new board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.eng = nil
	g.display = nil
	g.player = player{}
	g.events = nil
	g.failed = nil
	g.hasSel = false
	g.hintLeft = 0
	g.message = ""
	g.msgLeft = 0
	g.revealed = nil
	g.lastChain = 0
	g.maxChain = 0
	g.gameOver = false
	g.won = false
	g.paused = false

	g.captions = make(map[engine.TagID]string)
	for _, m := range g.cfg.Pick() {
		g.captions[engine.TagID(m.ID)] = m.Caption
	}

	opts := []engine.Option{engine.WithEventHandler(g.record)}
	if g.logger != nil {
		opts = append(opts, engine.WithLogger(g.logger))
	}
	eng, err := engine.New(g.engineConfig(), rand.New(rand.NewSource(cfg.Seed)), opts...)
	if err != nil {
		g.fail(err)
		return
	}
	g.eng = eng
	g.display = eng.Board()
	g.cursor = engine.P(eng.Size()/2, eng.Size()/2)

	g.checkScreenSize()
}

// record is the engine event handler. Events are only collected here;
// playback starts once PlayerSwap has returned.
func (g *Game) record(ev engine.Event) {
	g.events = append(g.events, ev)
}

func (g *Game) fail(err error) {
	g.failed = err
	g.gameOver = true
	if g.logger != nil {
		g.logger.Error("match3 session failed", "game", g.ID(), "err", err)
	}
}

// checkScreenSize checks if the screen fits the board and side panel.
func (g *Game) checkScreenSize() {
	w, h := layoutSize(g.cfg.Board.Size)
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Resize adapts the layout to a new terminal size without touching the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.eng == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.hintLeft > 0 {
		g.hintLeft--
	}
	if g.msgLeft > 0 {
		g.msgLeft--
	}

	// Input is ignored while a turn plays back.
	if g.player.busy() {
		g.advancePlayback()
		return core.StepResult{State: g.State()}
	}

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	last := g.eng.Size() - 1
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, last)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, last)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, last)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, last)
	}

	switch {
	case in.Has(core.ActionSelect):
		g.selectAtCursor()
	case in.Has(core.ActionCancel):
		g.hasSel = false
	case in.Has(core.ActionHint):
		g.showHint()
	}
}

// selectAtCursor picks the tile under the cursor, or swaps it with the picked
// one when they are neighbors.
func (g *Game) selectAtCursor() {
	switch {
	case !g.hasSel:
		g.selected = g.cursor
		g.hasSel = true
	case g.selected == g.cursor:
		g.hasSel = false
	case g.selected.Adjacent(g.cursor):
		from := g.selected
		g.hasSel = false
		g.swap(from, g.cursor)
	default:
		g.selected = g.cursor
	}
}

func (g *Game) showHint() {
	p1, p2, ok := g.eng.RequestHint()
	if !ok {
		g.say("No moves, shuffling")
		return
	}
	g.hint = [2]engine.Pos{p1, p2}
	g.hintLeft = hintTicks
}

func (g *Game) say(msg string) {
	g.message = msg
	g.msgLeft = messageTicks
}

// swap hands a move to the engine and queues its playback.
func (g *Game) swap(p1, p2 engine.Pos) {
	g.events = g.events[:0]
	g.hintLeft = 0

	report, err := g.eng.PlayerSwap(p1, p2)
	var swapErr *engine.InvalidSwapError
	switch {
	case errors.As(err, &swapErr):
		g.say("Tiles must be neighbors")
		return
	case errors.Is(err, engine.ErrNoMovesLeft):
		g.gameOver = true
		return
	case err != nil:
		g.fail(err)
		return
	}

	if report.Accepted {
		g.lastChain = report.CascadeCount
		g.maxChain = max(g.maxChain, report.CascadeCount)
		if report.Combo != engine.ComboNone {
			g.say("Combo: " + report.Combo.String())
		} else if report.CascadeCount > 1 {
			g.say("Cascade!")
		}
	}
	if g.logger != nil {
		g.logger.Debug("swap", "from", p1, "to", p2, "accepted", report.Accepted,
			"cleared", report.ClearedCount(), "tags", len(report.Tags))
	}

	g.player.load(buildSteps(g.events))
	g.events = g.events[:0]
}

// advancePlayback plays one tick of the queued turn and settles the session
// once the queue is drained.
func (g *Game) advancePlayback() {
	for _, ev := range g.player.advance(g.display) {
		if tag, ok := ev.(engine.TagUncoveredEvent); ok {
			g.revealed = append(g.revealed, tag)
		}
	}
	if g.player.busy() {
		return
	}

	// The display is rebuilt from events; reshuffles are only visible here.
	g.display = g.eng.Board()
	g.checkEnd()
}

func (g *Game) checkEnd() {
	if g.eng.TagsTotal() > 0 && g.eng.TagsRemaining() == 0 {
		g.won = true
		g.gameOver = true
		return
	}
	if g.eng.MovesLeft() == 0 {
		g.gameOver = true
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.eng != nil {
		score = len(g.eng.Uncovered())
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver && !g.player.busy(),
		Won:      g.won,
		Paused:   g.paused || g.tooSmall,
	}
}

// Summary returns the record of the session for the scoreboard.
func (g *Game) Summary() core.SessionSummary {
	if g.eng == nil {
		return core.SessionSummary{}
	}
	uncovered := g.eng.Uncovered()
	found := make([]string, len(uncovered))
	for i, u := range uncovered {
		found[i] = string(u.Tag)
	}
	return core.SessionSummary{
		MemoriesFound: len(uncovered),
		MemoriesTotal: g.eng.TagsTotal(),
		MovesUsed:     g.eng.MovesUsed(),
		MaxCascade:    g.maxChain,
		Won:           g.won,
		Found:         found,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space/Enter: Pick/Swap | H: Hint | P: Pause | R: Restart | Q: Quit"
}
