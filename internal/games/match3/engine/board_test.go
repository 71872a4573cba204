package engine

import (
	"errors"
	"math/rand"
	"testing"
)

// fillerBoard returns a board without matches and without legal moves.
// It only uses kinds 2..5, so hearts can be planted freely.
func fillerBoard(t *testing.T, size int) *Board {
	t.Helper()
	b, err := NewBoard(size)
	if err != nil {
		t.Fatalf("NewBoard(%d): %v", size, err)
	}
	for row := range size {
		for col := range size {
			b.cells[b.index(P(row, col))] = Tile(Kind((row+2*col)%4 + 2))
		}
	}
	return b
}

func plant(t *testing.T, b *Board, c Cell, ps ...Pos) {
	t.Helper()
	for _, p := range ps {
		if err := b.Set(p, c); err != nil {
			t.Fatalf("Set(%v): %v", p, err)
		}
	}
}

func TestNewBoardSize(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{5, true},
		{6, false},
		{8, false},
		{10, false},
		{11, true},
	}

	for _, tt := range tests {
		b, err := NewBoard(tt.size)
		if tt.wantErr {
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("NewBoard(%d) error = %v, want ConfigurationError", tt.size, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NewBoard(%d) unexpected error: %v", tt.size, err)
		}
		if b.Size() != tt.size {
			t.Errorf("Size() = %d, want %d", b.Size(), tt.size)
		}
		if b.EmptyCount() != tt.size*tt.size {
			t.Errorf("new board should be empty, got %d empty cells", b.EmptyCount())
		}
	}
}

func TestBoardGetSetBounds(t *testing.T) {
	b, _ := NewBoard(6)

	if got := b.Get(P(-1, 0)); !got.IsEmpty() {
		t.Errorf("Get out of bounds = %+v, want empty", got)
	}
	if err := b.Set(P(6, 0), Tile(KindStar)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Set out of bounds error = %v, want ErrOutOfBounds", err)
	}
	if err := b.Set(P(2, 3), SpecialTile(KindStar, SpecialRowClear)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := b.Get(P(2, 3)); got.Kind != KindStar || got.Special != SpecialRowClear {
		t.Errorf("Get(2,3) = %+v", got)
	}
}

func TestNeighbors4(t *testing.T) {
	b, _ := NewBoard(6)

	tests := []struct {
		name string
		pos  Pos
		want []Pos
	}{
		{"corner", P(0, 0), []Pos{P(1, 0), P(0, 1)}},
		{"edge", P(0, 3), []Pos{P(1, 3), P(0, 2), P(0, 4)}},
		{"interior", P(3, 3), []Pos{P(2, 3), P(4, 3), P(3, 2), P(3, 4)}},
		{"bottom right", P(5, 5), []Pos{P(4, 5), P(5, 4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Neighbors4(tt.pos)
			if len(got) != len(tt.want) {
				t.Fatalf("Neighbors4(%v) = %v, want %v", tt.pos, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Neighbors4(%v)[%d] = %v, want %v", tt.pos, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSwapKeepsTags(t *testing.T) {
	b := fillerBoard(t, 6)
	plant(t, b, Cell{Kind: KindHeart, Tag: "first"}, P(1, 1))

	b.Swap(P(1, 1), P(1, 2))

	if b.Get(P(1, 2)).Tag != "first" {
		t.Errorf("tag did not move with the tile: %+v", b.Get(P(1, 2)))
	}
	if b.Get(P(1, 1)).IsTagged() {
		t.Error("tag left behind after swap")
	}
}

func TestCompact(t *testing.T) {
	b := fillerBoard(t, 6)
	top := b.Get(P(0, 2))
	mid := b.Get(P(2, 2))
	b.clear(P(3, 2))
	b.clear(P(1, 2))
	b.clear(P(5, 2))

	moves := b.Compact()

	if len(moves) != 6 {
		t.Fatalf("Compact returned %d columns, want 6", len(moves))
	}
	for col, m := range moves {
		if col != 2 && len(m) != 0 {
			t.Errorf("column %d moved %v, want nothing", col, m)
		}
	}

	want := []Fall{
		{Col: 2, FromRow: 4, ToRow: 5},
		{Col: 2, FromRow: 2, ToRow: 4},
		{Col: 2, FromRow: 0, ToRow: 3},
	}
	if len(moves[2]) != len(want) {
		t.Fatalf("column 2 moves = %v, want %v", moves[2], want)
	}
	for i := range want {
		if moves[2][i] != want[i] {
			t.Errorf("move %d = %+v, want %+v", i, moves[2][i], want[i])
		}
	}

	if b.Get(P(3, 2)) != top || b.Get(P(4, 2)) != mid {
		t.Error("relative order not preserved")
	}
	for row := range 3 {
		if !b.Get(P(row, 2)).IsEmpty() {
			t.Errorf("row %d of column 2 should be empty after compaction", row)
		}
	}
}

func TestFillEmpties(t *testing.T) {
	b := fillerBoard(t, 6)
	b.clear(P(0, 1))
	b.clear(P(1, 1))
	b.clear(P(0, 4))

	biased := P(1, 1)
	spawns := b.FillEmpties(
		func() Kind { return KindMoon },
		func(p Pos) (Kind, bool) {
			if p == biased {
				return KindSun, true
			}
			return NoKind, false
		},
	)

	want := []Spawn{
		{Pos: P(0, 1), Kind: KindMoon, Delay: 0},
		{Pos: P(1, 1), Kind: KindSun, Delay: 1},
		{Pos: P(0, 4), Kind: KindMoon, Delay: 0},
	}
	if len(spawns) != len(want) {
		t.Fatalf("spawns = %v, want %v", spawns, want)
	}
	for i := range want {
		if spawns[i] != want[i] {
			t.Errorf("spawn %d = %+v, want %+v", i, spawns[i], want[i])
		}
	}
	if b.EmptyCount() != 0 {
		t.Errorf("EmptyCount() = %d after fill", b.EmptyCount())
	}
}

func TestGenerateHasNoMatches(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		for _, size := range []int{6, 8, 10} {
			b, _ := NewBoard(size)
			b.Generate(rand.New(rand.NewSource(seed)), DefaultKinds, DefaultGenerateAttempts)

			if b.EmptyCount() != 0 {
				t.Fatalf("seed %d size %d: %d empty cells", seed, size, b.EmptyCount())
			}
			if ms := FindAllMatches(b); !ms.Empty() {
				t.Errorf("seed %d size %d: generated board has matches %v\n%s", seed, size, ms.Positions, b)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := NewBoard(8)
	b, _ := NewBoard(8)
	a.Generate(rand.New(rand.NewSource(7)), DefaultKinds, DefaultGenerateAttempts)
	b.Generate(rand.New(rand.NewSource(7)), DefaultKinds, DefaultGenerateAttempts)

	if !a.Equal(b) {
		t.Error("same seed produced different boards")
	}
}

func TestShuffleKeepsContents(t *testing.T) {
	b := fillerBoard(t, 6)
	plant(t, b, Cell{Kind: KindHeart, Tag: "m"}, P(0, 0))
	before := map[Cell]int{}
	for _, c := range b.cells {
		before[c]++
	}

	b.Shuffle(rand.New(rand.NewSource(3)))

	after := map[Cell]int{}
	for _, c := range b.cells {
		after[c]++
	}
	if len(before) != len(after) {
		t.Fatalf("shuffle changed the multiset of cells")
	}
	for c, n := range before {
		if after[c] != n {
			t.Errorf("cell %+v count %d, want %d", c, after[c], n)
		}
	}
}

func TestPlaceTags(t *testing.T) {
	b := fillerBoard(t, 6)
	ids := []TagID{"a", "b", "c"}

	placed := b.PlaceTags(rand.New(rand.NewSource(1)), ids)

	if placed != 3 {
		t.Errorf("PlaceTags placed %d, want 3", placed)
	}
	if got := len(b.TaggedPositions()); got != 3 {
		t.Errorf("TaggedPositions() has %d entries, want 3", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := fillerBoard(t, 6)
	c := b.Clone()
	plant(t, c, Tile(KindHeart), P(0, 0))

	if b.Equal(c) {
		t.Error("clone shares storage with the original")
	}
}
