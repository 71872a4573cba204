package match3

import "github.com/vovakirdan/sweet-memories/internal/games/match3/engine"

// Phase durations in ticks (~30 ticks per second).
const (
	swapDuration    = 4
	revertDuration  = 6
	clearDuration   = 8
	fallDuration    = 4
	spawnDuration   = 5
	shuffleDuration = 24
)

// Phase is the kind of playback step shown on the board.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseSwap
	PhaseRevert
	PhaseClear
	PhaseFall
	PhaseSpawn
	PhaseShuffle
)

// step is one timed piece of a turn's playback. Entry events are applied to
// the displayed board when the step starts, exit events when it ends.
type step struct {
	phase    Phase
	duration int
	marks    []engine.Pos
	entry    []engine.Event
	exit     []engine.Event
}

// player plays back a queue of steps one tick at a time.
type player struct {
	steps   []step
	ticks   int
	entered bool
}

func (p *player) load(steps []step) {
	p.steps = steps
	p.ticks = 0
	p.entered = false
}

func (p *player) busy() bool {
	return len(p.steps) > 0
}

// current returns the step being shown, if any.
func (p *player) current() (step, bool) {
	if len(p.steps) == 0 {
		return step{}, false
	}
	return p.steps[0], true
}

// advance moves playback one tick forward, mutating the displayed board.
// It returns the events that took effect during this tick.
func (p *player) advance(display *engine.Board) []engine.Event {
	var applied []engine.Event
	for len(p.steps) > 0 {
		cur := p.steps[0]
		if !p.entered {
			applyEvents(display, cur.entry)
			applied = append(applied, cur.entry...)
			p.entered = true
		}
		if p.ticks < cur.duration {
			p.ticks++
			return applied
		}
		applyEvents(display, cur.exit)
		applied = append(applied, cur.exit...)
		p.steps = p.steps[1:]
		p.ticks = 0
		p.entered = false
	}
	return applied
}

// progress returns how far the current step is, from 0 to 1.
func (p *player) progress() float64 {
	cur, ok := p.current()
	if !ok || cur.duration == 0 {
		return 1
	}
	return float64(p.ticks) / float64(cur.duration)
}

// applyEvents replays engine events on a board copy.
func applyEvents(b *engine.Board, events []engine.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case engine.SwapEvent:
			b.Swap(e.P1, e.P2)
		case engine.ClearEvent:
			_ = b.Set(e.Pos, engine.Cell{})
		case engine.SpecialCreatedEvent:
			_ = b.Set(e.Pos, engine.SpecialTile(e.Kind, e.Special))
		case engine.FallEvent:
			from := engine.P(e.FromRow, e.Col)
			_ = b.Set(engine.P(e.ToRow, e.Col), b.Get(from))
			_ = b.Set(from, engine.Cell{})
		case engine.SpawnEvent:
			_ = b.Set(e.Pos, engine.Tile(e.Kind))
		}
	}
}

// buildSteps groups the events of one turn into playback steps.
func buildSteps(events []engine.Event) []step {
	var (
		steps []step
		cur   *step
	)
	open := func(phase Phase, duration int) *step {
		if cur != nil && cur.phase == phase {
			return cur
		}
		steps = append(steps, step{phase: phase, duration: duration})
		cur = &steps[len(steps)-1]
		return cur
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case engine.SwapEvent:
			cur = nil
			if e.Reverted {
				s := open(PhaseRevert, revertDuration)
				s.marks = append(s.marks, e.P1, e.P2)
				s.exit = append(s.exit, e)
				continue
			}
			s := open(PhaseSwap, swapDuration)
			s.marks = append(s.marks, e.P1, e.P2)
			s.entry = append(s.entry, e)
		case engine.ClearEvent:
			s := open(PhaseClear, clearDuration)
			s.marks = append(s.marks, e.Pos)
			s.exit = append(s.exit, e)
		case engine.TagUncoveredEvent, engine.SpecialCreatedEvent:
			s := open(PhaseClear, clearDuration)
			s.exit = append(s.exit, e)
		case engine.FallEvent:
			s := open(PhaseFall, fallDuration)
			s.exit = append(s.exit, e)
		case engine.SpawnEvent:
			s := open(PhaseSpawn, spawnDuration)
			s.marks = append(s.marks, e.Pos)
			s.entry = append(s.entry, e)
		case engine.ShuffleEvent:
			open(PhaseShuffle, shuffleDuration)
		}
	}

	return steps
}
