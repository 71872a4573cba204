package engine

import "testing"

func TestDetectCombination(t *testing.T) {
	row := SpecialTile(KindStar, SpecialRowClear)
	col := SpecialTile(KindMoon, SpecialColumnClear)
	area := SpecialTile(KindGem, SpecialAreaClear)
	area2 := SpecialTile(KindLeaf, SpecialAreaClear)

	tests := []struct {
		name   string
		c1, c2 Cell
		want   CombinationType
		ok     bool
	}{
		{"striped-striped", row, col, ComboStripedStriped, true},
		{"striped-wrapped", row, area, ComboStripedWrapped, true},
		{"wrapped-striped", area, col, ComboStripedWrapped, true},
		{"wrapped-wrapped", area, area2, ComboWrappedWrapped, true},
		{"special and plain", row, Tile(KindHeart), ComboNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fillerBoard(t, 6)
			plant(t, b, tt.c1, P(2, 2))
			plant(t, b, tt.c2, P(2, 3))

			forward, ok1 := DetectCombination(b, P(2, 2), P(2, 3))
			backward, ok2 := DetectCombination(b, P(2, 3), P(2, 2))

			if ok1 != tt.ok || ok2 != tt.ok {
				t.Fatalf("ok = %v/%v, want %v", ok1, ok2, tt.ok)
			}
			if forward.Type != tt.want || backward.Type != tt.want {
				t.Errorf("type = %v/%v, want %v", forward.Type, backward.Type, tt.want)
			}
		})
	}
}

func TestClearPositionsFor(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		combo  Combination
		want   int
		effect Effect
	}{
		{
			name:   "wrapped-wrapped interior",
			size:   6,
			combo:  Combination{Pos1: P(2, 2), Pos2: P(2, 3), Type: ComboWrappedWrapped},
			want:   25,
			effect: EffectExplosion,
		},
		{
			name:   "wrapped-wrapped corner",
			size:   8,
			combo:  Combination{Pos1: P(0, 0), Pos2: P(0, 1), Type: ComboWrappedWrapped},
			want:   9,
			effect: EffectExplosion,
		},
		{
			name:   "striped-striped same row",
			size:   8,
			combo:  Combination{Pos1: P(3, 3), Pos2: P(3, 4), Type: ComboStripedStriped},
			want:   8 + 7 + 7,
			effect: EffectCross,
		},
		{
			name:   "striped-wrapped interior",
			size:   8,
			combo:  Combination{Pos1: P(4, 4), Pos2: P(4, 5), Type: ComboStripedWrapped},
			want:   3*8 + 3*8 - 9,
			effect: EffectBigCross,
		},
		{
			name:   "striped-wrapped on edge",
			size:   6,
			combo:  Combination{Pos1: P(0, 0), Pos2: P(0, 1), Type: ComboStripedWrapped},
			want:   2*6 + 2*6 - 4,
			effect: EffectBigCross,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fillerBoard(t, tt.size)
			blasts := ClearPositionsFor(b, tt.combo)

			if len(blasts) != tt.want {
				t.Errorf("cleared %d positions, want %d", len(blasts), tt.want)
			}
			seen := map[Pos]bool{}
			for _, bl := range blasts {
				if seen[bl.Pos] {
					t.Errorf("duplicate position %v", bl.Pos)
				}
				seen[bl.Pos] = true
				if !b.InBounds(bl.Pos) {
					t.Errorf("position %v out of bounds", bl.Pos)
				}
				if bl.Effect != tt.effect {
					t.Errorf("effect at %v = %v, want %v", bl.Pos, bl.Effect, tt.effect)
				}
			}
		})
	}
}

func TestActivationPositions(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		pos  Pos
		want int
	}{
		{"row clear", SpecialTile(KindStar, SpecialRowClear), P(3, 4), 8},
		{"column clear", SpecialTile(KindStar, SpecialColumnClear), P(0, 7), 8},
		{"area interior", SpecialTile(KindStar, SpecialAreaClear), P(4, 4), 9},
		{"area corner", SpecialTile(KindStar, SpecialAreaClear), P(0, 0), 4},
		{"area edge", SpecialTile(KindStar, SpecialAreaClear), P(7, 3), 6},
		{"plain tile", Tile(KindStar), P(2, 2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fillerBoard(t, 8)
			plant(t, b, tt.cell, tt.pos)

			if got := len(ActivationPositions(b, tt.pos)); got != tt.want {
				t.Errorf("ActivationPositions(%v) = %d positions, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestActivationRowIsWholeRow(t *testing.T) {
	b := fillerBoard(t, 6)
	plant(t, b, SpecialTile(KindStar, SpecialRowClear), P(2, 4))

	for _, bl := range ActivationPositions(b, P(2, 4)) {
		if bl.Pos.Row != 2 {
			t.Errorf("row clear reached %v", bl.Pos)
		}
		if bl.Effect != EffectLine {
			t.Errorf("effect = %v, want EffectLine", bl.Effect)
		}
	}
}
