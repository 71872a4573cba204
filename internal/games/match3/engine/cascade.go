package engine

import "fmt"

// clearEntry is one position scheduled for clearing in a pass.
type clearEntry struct {
	pos    Pos
	cause  ClearCause
	effect Effect
}

// clearList is the ordered, deduplicated clear set of one pass.
// blasted holds every position reached by a special activation, including
// positions that were already scheduled by the match itself.
type clearList struct {
	set       *posSet
	entries   []clearEntry
	blasted   *posSet
	activated *posSet
}

func newClearList(n int) *clearList {
	return &clearList{
		set:       newPosSet(n),
		blasted:   newPosSet(n),
		activated: newPosSet(n),
	}
}

func (l *clearList) add(p Pos, cause ClearCause, effect Effect) {
	if l.set.add(p) {
		l.entries = append(l.entries, clearEntry{pos: p, cause: cause, effect: effect})
	}
}

// detonate activates every special in queue and every further special its
// blast reaches. Each special goes off at most once per pass.
func (l *clearList) detonate(b *Board, queue []Pos) {
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if l.activated.has(p) || !b.Get(p).IsSpecial() {
			continue
		}
		l.activated.add(p)
		for _, bl := range ActivationPositions(b, p) {
			l.blasted.add(bl.Pos)
			l.add(bl.Pos, CauseSpecial, bl.Effect)
			if b.Get(bl.Pos).IsSpecial() && !l.activated.has(bl.Pos) {
				queue = append(queue, bl.Pos)
			}
		}
	}
}

// resolve runs the cascade loop. Pass 0 is the combination pass when combo
// is set; every other pass starts from a full scan.
func (e *Engine) resolve(report *TurnReport, combo *Combination) error {
	for idx := 0; ; idx++ {
		if idx >= e.cfg.MaxCascadePasses {
			return &InvariantViolation{
				Code:    CodeCascadeBound,
				Message: fmt.Sprintf("cascade still matching after %d passes", idx),
			}
		}

		var (
			clears *clearList
			spawns []SpawnRequest
		)
		if idx == 0 && combo != nil {
			clears = e.comboClears(*combo)
		} else {
			ms := FindAllMatches(e.board)
			if ms.Empty() {
				return nil
			}
			clears, spawns = e.matchClears(ms)
		}

		pass, err := e.applyPass(idx, idx == 0 && combo != nil, clears, spawns)
		report.Passes = append(report.Passes, pass)
		report.Tags = append(report.Tags, pass.Tags...)
		if err != nil {
			return err
		}
		e.logger.Debug("cascade pass",
			"pass", idx,
			"combo", pass.Combo,
			"cleared", len(pass.Clears),
			"specials", len(pass.Specials),
			"spawned", len(pass.Spawns))
	}
}

// comboClears builds the clear set of a combination swap. The two swapped
// specials are consumed by the combination and do not fire again.
func (e *Engine) comboClears(combo Combination) *clearList {
	l := newClearList(e.board.Size())
	l.activated.add(combo.Pos1)
	l.activated.add(combo.Pos2)

	blasts := ClearPositionsFor(e.board, combo)
	queue := make([]Pos, 0, len(blasts))
	for _, bl := range blasts {
		l.add(bl.Pos, CauseCombo, bl.Effect)
		queue = append(queue, bl.Pos)
	}
	l.detonate(e.board, queue)
	return l
}

// matchClears builds the clear set of an ordinary pass: matched positions in
// row-major order, then the blasts of any specials caught in the match.
// Spawns landing on a blasted or activated position are dropped.
func (e *Engine) matchClears(ms MatchSet) (*clearList, []SpawnRequest) {
	l := newClearList(e.board.Size())
	var queue []Pos
	for _, p := range ms.Positions {
		l.add(p, CauseMatch, EffectPop)
		if e.board.Get(p).IsSpecial() {
			queue = append(queue, p)
		}
	}
	l.detonate(e.board, queue)

	spawns := make([]SpawnRequest, 0, len(ms.Spawns))
	for _, s := range ms.Spawns {
		if l.blasted.has(s.Pos) || l.activated.has(s.Pos) {
			continue
		}
		spawns = append(spawns, s)
	}
	return l, spawns
}

// applyPass clears, places specials, compacts and refills.
func (e *Engine) applyPass(idx int, combo bool, clears *clearList, spawns []SpawnRequest) (Pass, error) {
	pass := Pass{Index: idx, Combo: combo}

	for _, en := range clears.entries {
		c := e.board.Get(en.pos)
		ev := ClearEvent{Pass: idx, Pos: en.pos, Cell: c, Cause: en.cause, Effect: en.effect}
		pass.Clears = append(pass.Clears, ev)
		e.emit(ev)
		if c.IsTagged() {
			tag := TagUncoveredEvent{Pass: idx, Tag: c.Tag, Pos: en.pos}
			pass.Tags = append(pass.Tags, tag)
			e.uncovered = append(e.uncovered, tag)
			e.emit(tag)
		}
		e.board.clear(en.pos)
	}

	for _, s := range spawns {
		e.board.cells[e.board.index(s.Pos)] = SpecialTile(s.Kind, s.Special)
		ev := SpecialCreatedEvent{Pass: idx, Pos: s.Pos, Special: s.Special, Kind: s.Kind}
		pass.Specials = append(pass.Specials, ev)
		e.emit(ev)
	}

	for _, col := range e.board.Compact() {
		for _, f := range col {
			ev := FallEvent{Pass: idx, Col: f.Col, FromRow: f.FromRow, ToRow: f.ToRow}
			pass.Falls = append(pass.Falls, ev)
			e.emit(ev)
		}
	}

	for _, s := range e.board.FillEmpties(e.randomKind, e.biasedKind) {
		ev := SpawnEvent{Pass: idx, Pos: s.Pos, Kind: s.Kind, Delay: s.Delay}
		pass.Spawns = append(pass.Spawns, ev)
		e.emit(ev)
	}

	if n := e.board.EmptyCount(); n > 0 {
		return pass, &InvariantViolation{
			Code:    CodeEmptyCell,
			Message: fmt.Sprintf("%d empty cells after refill in pass %d", n, idx),
		}
	}
	return pass, nil
}

func (e *Engine) randomKind() Kind {
	return Kind(e.rng.Intn(e.cfg.Kinds) + 1)
}

// biasedKind copies the kind of the nearest tagged tile with probability
// BiasChance. Rings are searched by ascending radius, row-major within a ring.
func (e *Engine) biasedKind(p Pos) (Kind, bool) {
	if e.cfg.BiasChance <= 0 || e.cfg.BiasRadius <= 0 {
		return NoKind, false
	}
	if e.rng.Float64() >= e.cfg.BiasChance {
		return NoKind, false
	}
	for r := 1; r <= e.cfg.BiasRadius; r++ {
		for row := p.Row - r; row <= p.Row+r; row++ {
			for col := p.Col - r; col <= p.Col+r; col++ {
				q := Pos{row, col}
				if p.chebyshev(q) != r {
					continue
				}
				if c := e.board.Get(q); c.IsTagged() {
					return c.Kind, true
				}
			}
		}
	}
	return NoKind, false
}
