package engine

import (
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Engine limits and refill defaults.
const (
	DefaultMaxCascadePasses   = 100
	DefaultMaxShuffleAttempts = 10000
	DefaultBiasChance         = 0.4
	DefaultBiasRadius         = 2
)

// State is the turn state of an Engine.
type State int

const (
	StateIdle State = iota
	StateSwapPending
	StateResolving
	StateSettledLegal
	StateSettledNoMoves
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSwapPending:
		return "swap-pending"
	case StateResolving:
		return "resolving"
	case StateSettledLegal:
		return "settled-legal"
	case StateSettledNoMoves:
		return "settled-no-moves"
	default:
		return "unknown"
	}
}

// acceptsSwap reports whether a new swap may start from s.
func (s State) acceptsSwap() bool {
	return s == StateIdle || s == StateSettledLegal
}

// Config holds the already clamped session parameters.
type Config struct {
	Size  int
	Kinds int
	Moves int // 0 means unlimited

	BiasChance float64
	BiasRadius int

	MaxCascadePasses    int
	MaxGenerateAttempts int
	MaxShuffleAttempts  int

	Tags []TagID
}

// DefaultConfig returns an 8x8 board with five kinds and no move budget.
func DefaultConfig() Config {
	return Config{
		Size:                8,
		Kinds:               DefaultKinds,
		BiasChance:          DefaultBiasChance,
		BiasRadius:          DefaultBiasRadius,
		MaxCascadePasses:    DefaultMaxCascadePasses,
		MaxGenerateAttempts: DefaultGenerateAttempts,
		MaxShuffleAttempts:  DefaultMaxShuffleAttempts,
	}
}

// withLimits fills unset iteration limits.
func (c Config) withLimits() Config {
	if c.MaxCascadePasses <= 0 {
		c.MaxCascadePasses = DefaultMaxCascadePasses
	}
	if c.MaxGenerateAttempts <= 0 {
		c.MaxGenerateAttempts = DefaultGenerateAttempts
	}
	if c.MaxShuffleAttempts <= 0 {
		c.MaxShuffleAttempts = DefaultMaxShuffleAttempts
	}
	return c
}

// Validate checks the values the engine cannot work without.
func (c Config) Validate() error {
	if c.Size < MinBoardSize || c.Size > MaxBoardSize {
		return &ConfigurationError{Field: "board size", Value: c.Size, Reason: "must be between 6 and 10"}
	}
	if c.Kinds < MinKinds || c.Kinds > MaxKinds {
		return &ConfigurationError{Field: "kind count", Value: c.Kinds, Reason: fmt.Sprintf("must be between %d and %d", MinKinds, MaxKinds)}
	}
	if c.Moves < 0 {
		return &ConfigurationError{Field: "move budget", Value: c.Moves, Reason: "must not be negative"}
	}
	return nil
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for cascade tracing and invariant reports.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEventHandler registers a handler that receives every turn event.
func WithEventHandler(h EventHandler) Option {
	return func(e *Engine) {
		e.handler = h
	}
}

// Engine owns one board and resolves turns on it.
// An Engine belongs to a single session; PlayerSwap rejects re-entrant calls.
type Engine struct {
	cfg     Config
	board   *Board
	rng     *rand.Rand
	logger  *log.Logger
	handler EventHandler

	state     State
	movesUsed int
	tagsTotal int
	uncovered []TagUncoveredEvent

	busy   atomic.Bool
	broken error
}

// New creates an engine with a freshly generated board.
// The board starts without matches and with at least one legal move.
func New(cfg Config, rng *rand.Rand, opts ...Option) (*Engine, error) {
	cfg = cfg.withLimits()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	board, err := NewBoard(cfg.Size)
	if err != nil {
		return nil, err
	}
	board.Generate(rng, cfg.Kinds, cfg.MaxGenerateAttempts)

	e := newEngine(cfg, board, rng, opts)
	e.tagsTotal = board.PlaceTags(rng, cfg.Tags)

	if _, err := e.settle(); err != nil {
		return nil, err
	}
	e.state = StateIdle
	e.logger.Debug("engine ready", "size", cfg.Size, "kinds", cfg.Kinds, "tags", e.tagsTotal)
	return e, nil
}

// NewWithBoard creates an engine around an existing board, for replays and tests.
// The board is used as is: it is neither settled nor tagged.
func NewWithBoard(cfg Config, board *Board, rng *rand.Rand, opts ...Option) (*Engine, error) {
	cfg.Size = board.Size()
	cfg = cfg.withLimits()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := newEngine(cfg, board, rng, opts)
	e.tagsTotal = len(board.TaggedPositions())
	return e, nil
}

func newEngine(cfg Config, board *Board, rng *rand.Rand, opts []Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		board:  board,
		rng:    rng,
		logger: log.New(io.Discard),
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PlayerSwap applies one player move and resolves it to settlement.
//
// A swap that matches nothing is reverted and reported with Accepted false;
// it consumes no move. Invalid requests return *InvalidSwapError without
// touching the board. Any *InvariantViolation leaves the engine unusable.
func (e *Engine) PlayerSwap(p1, p2 Pos) (TurnReport, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return TurnReport{State: e.state}, ErrBusy
	}
	defer e.busy.Store(false)

	if e.broken != nil {
		return TurnReport{State: e.state}, e.broken
	}
	if !e.state.acceptsSwap() {
		return TurnReport{State: e.state}, ErrBusy
	}
	if !e.board.InBounds(p1) || !e.board.InBounds(p2) {
		return TurnReport{State: e.state}, &InvalidSwapError{P1: p1, P2: p2, Reason: "out of bounds"}
	}
	if !p1.Adjacent(p2) {
		return TurnReport{State: e.state}, &InvalidSwapError{P1: p1, P2: p2, Reason: "not adjacent"}
	}
	if e.cfg.Moves > 0 && e.movesUsed >= e.cfg.Moves {
		return TurnReport{State: e.state}, ErrNoMovesLeft
	}

	prev := e.state
	e.state = StateSwapPending
	combo, isCombo := DetectCombination(e.board, p1, p2)

	if !isCombo && !WouldMatch(e.board, p1, p2) {
		e.board.Swap(p1, p2)
		e.emit(SwapEvent{P1: p1, P2: p2})
		e.board.Swap(p1, p2)
		e.emit(SwapEvent{P1: p1, P2: p2, Reverted: true})
		e.state = prev
		return TurnReport{Legal: prev == StateSettledLegal || e.IsMoveLegal(), State: e.state}, nil
	}

	e.board.Swap(p1, p2)
	e.emit(SwapEvent{P1: p1, P2: p2})
	e.movesUsed++

	report := TurnReport{Accepted: true, MovesDelta: 1}
	var first *Combination
	if isCombo {
		report.Combo = combo.Type
		first = &combo
	}

	e.state = StateResolving
	if err := e.resolve(&report, first); err != nil {
		return e.fail(report, err)
	}

	shuffles, err := e.settle()
	report.Shuffles = shuffles
	if err != nil {
		return e.fail(report, err)
	}

	report.CascadeCount = len(report.Passes)
	report.Legal = true
	report.State = e.state
	e.logger.Debug("turn settled",
		"passes", report.CascadeCount,
		"cleared", report.ClearedCount(),
		"tags", len(report.Tags),
		"shuffles", shuffles)
	return report, nil
}

func (e *Engine) fail(report TurnReport, err error) (TurnReport, error) {
	e.broken = err
	e.logger.Error("turn aborted", "err", err, "board", "\n"+e.board.String())
	report.CascadeCount = len(report.Passes)
	report.State = e.state
	return report, err
}

// settle reshuffles the board until it has a legal move and no match.
// It returns the number of shuffles performed.
func (e *Engine) settle() (int, error) {
	if _, _, ok := FindPossibleMatch(e.board); ok {
		e.state = StateSettledLegal
		return 0, nil
	}
	e.state = StateSettledNoMoves
	for attempt := 1; attempt <= e.cfg.MaxShuffleAttempts; attempt++ {
		e.board.Shuffle(e.rng)
		if !FindAllMatches(e.board).Empty() {
			continue
		}
		if _, _, ok := FindPossibleMatch(e.board); ok {
			e.emit(ShuffleEvent{Attempts: attempt})
			e.state = StateSettledLegal
			return attempt, nil
		}
	}
	return e.cfg.MaxShuffleAttempts, &InvariantViolation{
		Code:    CodeShuffleBound,
		Message: fmt.Sprintf("no legal board after %d shuffles", e.cfg.MaxShuffleAttempts),
	}
}

func (e *Engine) emit(ev Event) {
	if e.handler != nil {
		e.handler(ev)
	}
}

// RequestHint returns a legal swap, if any.
func (e *Engine) RequestHint() (Pos, Pos, bool) {
	return FindPossibleMatch(e.board)
}

// IsMoveLegal reports whether any adjacent swap would match.
func (e *Engine) IsMoveLegal() bool {
	_, _, ok := FindPossibleMatch(e.board)
	return ok
}

// Board returns a copy of the current board. Every call allocates; the
// engine's own board is never handed out.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Size returns the board dimension.
func (e *Engine) Size() int {
	return e.board.Size()
}

// State returns the current turn state.
func (e *Engine) State() State {
	return e.state
}

// MovesUsed returns the number of swaps that changed the board.
func (e *Engine) MovesUsed() int {
	return e.movesUsed
}

// MovesLeft returns the remaining budget, or -1 when moves are unlimited.
func (e *Engine) MovesLeft() int {
	if e.cfg.Moves == 0 {
		return -1
	}
	return max(e.cfg.Moves-e.movesUsed, 0)
}

// TagsTotal returns how many tags were placed on the board.
func (e *Engine) TagsTotal() int {
	return e.tagsTotal
}

// TagsRemaining returns how many tagged tiles are still on the board.
func (e *Engine) TagsRemaining() int {
	return len(e.board.TaggedPositions())
}

// Uncovered returns every tag cleared so far, in clearance order.
func (e *Engine) Uncovered() []TagUncoveredEvent {
	out := make([]TagUncoveredEvent, len(e.uncovered))
	copy(out, e.uncovered)
	return out
}
