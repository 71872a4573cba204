package engine

import (
	"math/rand"
	"strings"
)

// Board size limits.
const (
	MinBoardSize = 6
	MaxBoardSize = 10
)

// DefaultGenerateAttempts is how many candidate kinds Generate tries per cell.
const DefaultGenerateAttempts = 50

// Board is a square grid of cells stored in row-major order: index = row*size + col.
// A Board is owned by exactly one Engine; it is not safe for concurrent use.
type Board struct {
	size  int
	cells []Cell
}

// Fall describes one tile dropping within a column during compaction.
type Fall struct {
	Col     int
	FromRow int
	ToRow   int
}

// Spawn describes a new tile placed into an empty cell during refill.
// Delay is the index of the spawn within its column's batch.
type Spawn struct {
	Pos   Pos
	Kind  Kind
	Delay int
}

// NewBoard allocates a size x size board of empty cells.
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, &ConfigurationError{
			Field:  "board size",
			Value:  size,
			Reason: "must be between 6 and 10",
		}
	}
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) index(p Pos) int {
	return p.Row*b.size + p.Col
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

// Get returns the cell at p. Out-of-bounds positions read as empty.
func (b *Board) Get(p Pos) Cell {
	if !b.InBounds(p) {
		return Cell{}
	}
	return b.cells[b.index(p)]
}

// Set writes a cell at p.
func (b *Board) Set(p Pos, c Cell) error {
	if !b.InBounds(p) {
		return ErrOutOfBounds
	}
	b.cells[b.index(p)] = c
	return nil
}

// clear empties the cell at p.
func (b *Board) clear(p Pos) {
	b.cells[b.index(p)] = Cell{}
}

// Neighbors4 returns the in-bounds orthogonal neighbors of p
// in the order up, down, left, right.
func (b *Board) Neighbors4(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	for _, n := range [4]Pos{
		{p.Row - 1, p.Col},
		{p.Row + 1, p.Col},
		{p.Row, p.Col - 1},
		{p.Row, p.Col + 1},
	} {
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Swap exchanges the full contents of two cells.
// Adjacency is not checked; out-of-bounds positions are ignored.
func (b *Board) Swap(p1, p2 Pos) {
	if !b.InBounds(p1) || !b.InBounds(p2) {
		return
	}
	i, j := b.index(p1), b.index(p2)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// Compact lets tiles fall toward the bottom row in every column,
// preserving their relative order. It returns the moves per column.
func (b *Board) Compact() [][]Fall {
	moves := make([][]Fall, b.size)
	for col := range b.size {
		moves[col] = []Fall{}
		write := b.size - 1
		for row := b.size - 1; row >= 0; row-- {
			p := Pos{row, col}
			c := b.Get(p)
			if c.IsEmpty() {
				continue
			}
			if row != write {
				b.cells[b.index(Pos{write, col})] = c
				b.clear(p)
				moves[col] = append(moves[col], Fall{Col: col, FromRow: row, ToRow: write})
			}
			write--
		}
	}
	return moves
}

// FillEmpties places a new plain tile in every empty cell, scanning column by
// column from the top. bias may be nil; when it returns ok the returned kind
// replaces the random draw.
func (b *Board) FillEmpties(randomKind func() Kind, bias func(Pos) (Kind, bool)) []Spawn {
	var spawns []Spawn
	for col := range b.size {
		delay := 0
		for row := range b.size {
			p := Pos{row, col}
			if !b.Get(p).IsEmpty() {
				continue
			}
			k := randomKind()
			if bias != nil {
				if bk, ok := bias(p); ok {
					k = bk
				}
			}
			b.cells[b.index(p)] = Tile(k)
			spawns = append(spawns, Spawn{Pos: p, Kind: k, Delay: delay})
			delay++
		}
	}
	return spawns
}

// Generate fills the whole board with plain tiles so that no run of three
// exists. Each cell tries up to maxAttempts kinds, looking only at the two
// already placed neighbors to the left and above; the last candidate is
// accepted even if it collides.
func (b *Board) Generate(rng *rand.Rand, kinds, maxAttempts int) {
	if maxAttempts < 1 {
		maxAttempts = DefaultGenerateAttempts
	}
	for row := range b.size {
		for col := range b.size {
			p := Pos{row, col}
			var k Kind
			for attempt := 0; attempt < maxAttempts; attempt++ {
				k = Kind(rng.Intn(kinds) + 1)
				if !b.completesBackwardRun(p, k) {
					break
				}
			}
			b.cells[b.index(p)] = Tile(k)
		}
	}
}

// completesBackwardRun reports whether placing k at p would finish a run of
// three with the two cells to its left or the two cells above it.
func (b *Board) completesBackwardRun(p Pos, k Kind) bool {
	if p.Col >= 2 &&
		b.Get(Pos{p.Row, p.Col - 1}).Kind == k &&
		b.Get(Pos{p.Row, p.Col - 2}).Kind == k {
		return true
	}
	if p.Row >= 2 &&
		b.Get(Pos{p.Row - 1, p.Col}).Kind == k &&
		b.Get(Pos{p.Row - 2, p.Col}).Kind == k {
		return true
	}
	return false
}

// Shuffle permutes all cell contents in place (Fisher-Yates).
func (b *Board) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(b.cells), func(i, j int) {
		b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
	})
}

// PlaceTags attaches the given memory tags to distinct random cells.
// Tags beyond the number of cells are dropped.
func (b *Board) PlaceTags(rng *rand.Rand, ids []TagID) int {
	perm := rng.Perm(len(b.cells))
	placed := 0
	for i, id := range ids {
		if i >= len(perm) {
			break
		}
		b.cells[perm[i]].Tag = id
		placed++
	}
	return placed
}

// TaggedPositions returns the positions of tagged tiles in row-major order.
func (b *Board) TaggedPositions() []Pos {
	var out []Pos
	for i, c := range b.cells {
		if c.IsTagged() {
			out = append(out, Pos{Row: i / b.size, Col: i % b.size})
		}
	}
	return out
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	count := 0
	for _, c := range b.cells {
		if c.IsEmpty() {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports whether two boards have identical size and contents.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i, c := range b.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// String dumps the board one row per line: kind digit, special marker, tag marker.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range b.size {
			c := b.Get(Pos{row, col})
			if c.IsEmpty() {
				sb.WriteString(" . ")
				continue
			}
			sb.WriteByte('0' + byte(c.Kind))
			switch c.Special {
			case SpecialRowClear:
				sb.WriteByte('-')
			case SpecialColumnClear:
				sb.WriteByte('|')
			case SpecialAreaClear:
				sb.WriteByte('*')
			default:
				sb.WriteByte(' ')
			}
			if c.IsTagged() {
				sb.WriteByte('@')
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
