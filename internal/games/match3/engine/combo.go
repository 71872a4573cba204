package engine

// CombinationType classifies a swap of two special tiles.
type CombinationType uint8

const (
	ComboNone CombinationType = iota
	ComboStripedStriped
	ComboStripedWrapped
	ComboWrappedWrapped
)

// String returns the combination name.
func (t CombinationType) String() string {
	switch t {
	case ComboStripedStriped:
		return "striped-striped"
	case ComboStripedWrapped:
		return "striped-wrapped"
	case ComboWrappedWrapped:
		return "wrapped-wrapped"
	default:
		return "none"
	}
}

// Combination describes two adjacent special tiles swapped together.
type Combination struct {
	Pos1, Pos2   Pos
	Kind1, Kind2 Special
	Type         CombinationType
}

// Effect is the visual treatment of a blasted position.
// It has no influence on engine logic.
type Effect uint8

const (
	EffectPop Effect = iota // ordinary match
	EffectLine
	EffectArea
	EffectCross
	EffectBigCross
	EffectExplosion
)

// Blast is one position cleared by a special activation or combination.
type Blast struct {
	Pos    Pos
	Effect Effect
}

// DetectCombination returns the combination formed by two special tiles.
// A special next to a plain tile is not a combination.
func DetectCombination(b *Board, p1, p2 Pos) (Combination, bool) {
	c1, c2 := b.Get(p1), b.Get(p2)
	if !c1.IsSpecial() || !c2.IsSpecial() {
		return Combination{}, false
	}

	combo := Combination{Pos1: p1, Pos2: p2, Kind1: c1.Special, Kind2: c2.Special}
	switch {
	case c1.Special.IsLine() && c2.Special.IsLine():
		combo.Type = ComboStripedStriped
	case c1.Special == SpecialAreaClear && c2.Special == SpecialAreaClear:
		combo.Type = ComboWrappedWrapped
	default:
		combo.Type = ComboStripedWrapped
	}
	return combo, true
}

// blastSet collects unique blast positions in discovery order.
type blastSet struct {
	set    *posSet
	blasts []Blast
}

func newBlastSet(n int) *blastSet {
	return &blastSet{set: newPosSet(n)}
}

func (s *blastSet) add(p Pos, e Effect) {
	if s.set.add(p) {
		s.blasts = append(s.blasts, Blast{Pos: p, Effect: e})
	}
}

func (s *blastSet) row(b *Board, row int, e Effect) {
	if row < 0 || row >= b.size {
		return
	}
	for col := range b.size {
		s.add(Pos{row, col}, e)
	}
}

func (s *blastSet) column(b *Board, col int, e Effect) {
	if col < 0 || col >= b.size {
		return
	}
	for row := range b.size {
		s.add(Pos{row, col}, e)
	}
}

func (s *blastSet) square(b *Board, center Pos, radius int, e Effect) {
	for row := center.Row - radius; row <= center.Row+radius; row++ {
		for col := center.Col - radius; col <= center.Col+radius; col++ {
			if p := (Pos{row, col}); b.InBounds(p) {
				s.add(p, e)
			}
		}
	}
}

// ClearPositionsFor returns every position a combination clears.
func ClearPositionsFor(b *Board, combo Combination) []Blast {
	s := newBlastSet(b.size)
	switch combo.Type {
	case ComboStripedStriped:
		for _, p := range [2]Pos{combo.Pos1, combo.Pos2} {
			s.row(b, p.Row, EffectCross)
			s.column(b, p.Col, EffectCross)
		}
	case ComboStripedWrapped:
		for d := -1; d <= 1; d++ {
			s.row(b, combo.Pos1.Row+d, EffectBigCross)
			s.column(b, combo.Pos1.Col+d, EffectBigCross)
		}
	case ComboWrappedWrapped:
		s.square(b, combo.Pos1, 2, EffectExplosion)
	}
	return s.blasts
}

// ActivationPositions returns the positions cleared when the special at p
// goes off on its own. Plain and empty cells clear nothing.
func ActivationPositions(b *Board, p Pos) []Blast {
	s := newBlastSet(b.size)
	switch b.Get(p).Special {
	case SpecialRowClear:
		s.row(b, p.Row, EffectLine)
	case SpecialColumnClear:
		s.column(b, p.Col, EffectLine)
	case SpecialAreaClear:
		s.square(b, p, 1, EffectArea)
	}
	return s.blasts
}
