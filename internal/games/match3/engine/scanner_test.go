package engine

import "testing"

func TestFindAllMatchesRuns(t *testing.T) {
	tests := []struct {
		name       string
		hearts     []Pos
		wantCount  int
		wantSpawns []SpawnRequest
	}{
		{
			name:      "run of three",
			hearts:    []Pos{P(0, 0), P(0, 1), P(0, 2)},
			wantCount: 3,
		},
		{
			name:      "horizontal run of four",
			hearts:    []Pos{P(0, 0), P(0, 1), P(0, 2), P(0, 3)},
			wantCount: 4,
			wantSpawns: []SpawnRequest{
				{Pos: P(0, 2), Special: SpecialRowClear, Kind: KindHeart},
			},
		},
		{
			name:      "vertical run of four",
			hearts:    []Pos{P(2, 5), P(3, 5), P(4, 5), P(5, 5)},
			wantCount: 4,
			wantSpawns: []SpawnRequest{
				{Pos: P(4, 5), Special: SpecialColumnClear, Kind: KindHeart},
			},
		},
		{
			name:      "run of five",
			hearts:    []Pos{P(3, 1), P(3, 2), P(3, 3), P(3, 4), P(3, 5)},
			wantCount: 5,
			wantSpawns: []SpawnRequest{
				{Pos: P(3, 3), Special: SpecialAreaClear, Kind: KindHeart},
			},
		},
		{
			name:      "L shape",
			hearts:    []Pos{P(0, 0), P(0, 1), P(0, 2), P(1, 0), P(2, 0)},
			wantCount: 5,
			wantSpawns: []SpawnRequest{
				{Pos: P(0, 0), Special: SpecialAreaClear, Kind: KindHeart},
			},
		},
		{
			name:      "T shape",
			hearts:    []Pos{P(2, 1), P(2, 2), P(2, 3), P(3, 2), P(4, 2)},
			wantCount: 5,
			wantSpawns: []SpawnRequest{
				{Pos: P(2, 2), Special: SpecialAreaClear, Kind: KindHeart},
			},
		},
		{
			name:      "run of four crossing a run of three",
			hearts:    []Pos{P(1, 0), P(1, 1), P(1, 2), P(1, 3), P(0, 3), P(2, 3)},
			wantCount: 6,
			wantSpawns: []SpawnRequest{
				{Pos: P(1, 2), Special: SpecialRowClear, Kind: KindHeart},
				{Pos: P(1, 3), Special: SpecialAreaClear, Kind: KindHeart},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fillerBoard(t, 8)
			plant(t, b, Tile(KindHeart), tt.hearts...)

			ms := FindAllMatches(b)

			if len(ms.Positions) != tt.wantCount {
				t.Errorf("matched %d positions %v, want %d", len(ms.Positions), ms.Positions, tt.wantCount)
			}
			if len(ms.Spawns) != len(tt.wantSpawns) {
				t.Fatalf("spawns = %+v, want %+v", ms.Spawns, tt.wantSpawns)
			}
			for i, want := range tt.wantSpawns {
				if ms.Spawns[i] != want {
					t.Errorf("spawn %d = %+v, want %+v", i, ms.Spawns[i], want)
				}
			}
		})
	}
}

func TestFindAllMatchesRowMajor(t *testing.T) {
	b := fillerBoard(t, 8)
	plant(t, b, Tile(KindHeart), P(4, 6), P(5, 6), P(6, 6), P(1, 0), P(1, 1), P(1, 2))

	ms := FindAllMatches(b)

	want := []Pos{P(1, 0), P(1, 1), P(1, 2), P(4, 6), P(5, 6), P(6, 6)}
	if len(ms.Positions) != len(want) {
		t.Fatalf("positions = %v, want %v", ms.Positions, want)
	}
	for i := range want {
		if ms.Positions[i] != want[i] {
			t.Errorf("position %d = %v, want %v", i, ms.Positions[i], want[i])
		}
	}
}

func TestFindAllMatchesIgnoresEmpty(t *testing.T) {
	b, _ := NewBoard(6)

	if ms := FindAllMatches(b); !ms.Empty() {
		t.Errorf("empty board matched %v", ms.Positions)
	}
}

func TestHasMatchAt(t *testing.T) {
	b := fillerBoard(t, 8)
	plant(t, b, Tile(KindHeart), P(3, 3), P(4, 3), P(5, 3), P(0, 0), P(0, 1))

	tests := []struct {
		pos  Pos
		want bool
	}{
		{P(3, 3), true},
		{P(5, 3), true},
		{P(0, 0), false},
		{P(6, 6), false},
	}

	for _, tt := range tests {
		if got := HasMatchAt(b, tt.pos); got != tt.want {
			t.Errorf("HasMatchAt(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestWouldMatchLeavesBoardUntouched(t *testing.T) {
	b := fillerBoard(t, 8)
	plant(t, b, Tile(KindHeart), P(0, 0), P(0, 1), P(1, 2))
	before := b.Clone()

	for row := range 8 {
		for col := range 8 {
			p := P(row, col)
			for _, q := range b.Neighbors4(p) {
				WouldMatch(b, p, q)
				if !b.Equal(before) {
					t.Fatalf("WouldMatch(%v, %v) mutated the board", p, q)
				}
			}
		}
	}
}

func TestWouldMatch(t *testing.T) {
	b := fillerBoard(t, 8)
	plant(t, b, Tile(KindHeart), P(0, 0), P(0, 1), P(1, 2))
	plant(t, b, SpecialTile(KindStar, SpecialRowClear), P(5, 5))
	plant(t, b, SpecialTile(KindMoon, SpecialAreaClear), P(5, 6))

	tests := []struct {
		name   string
		p1, p2 Pos
		want   bool
	}{
		{"completes row", P(0, 2), P(1, 2), true},
		{"order does not matter", P(1, 2), P(0, 2), true},
		{"no match", P(3, 3), P(3, 4), false},
		{"two specials", P(5, 5), P(5, 6), true},
		{"out of bounds", P(0, 0), P(-1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WouldMatch(b, tt.p1, tt.p2); got != tt.want {
				t.Errorf("WouldMatch(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestFindPossibleMatch(t *testing.T) {
	b := fillerBoard(t, 6)

	if _, _, ok := FindPossibleMatch(b); ok {
		t.Fatal("filler board should have no legal move")
	}

	plant(t, b, Tile(KindHeart), P(0, 0), P(0, 1), P(1, 2))
	p1, p2, ok := FindPossibleMatch(b)
	if !ok {
		t.Fatal("expected a legal move")
	}
	if p1 != P(0, 2) || p2 != P(1, 2) {
		t.Errorf("FindPossibleMatch = %v %v, want (0,2) (1,2)", p1, p2)
	}
}
