package engine

import "fmt"

// Pos is a (row, col) board position. Row 0 is the top row.
type Pos struct {
	Row int
	Col int
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Adjacent reports whether two positions are orthogonal neighbors.
func (p Pos) Adjacent(o Pos) bool {
	dr := p.Row - o.Row
	dc := p.Col - o.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// chebyshev returns the king-move distance between two positions.
func (p Pos) chebyshev(o Pos) int {
	dr := p.Row - o.Row
	dc := p.Col - o.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return max(dr, dc)
}

// posSet is a set of positions keyed by row*n+col.
type posSet struct {
	n     int
	seen  []bool
	count int
}

func newPosSet(n int) *posSet {
	return &posSet{
		n:    n,
		seen: make([]bool, n*n),
	}
}

// add inserts p and reports whether it was new.
func (s *posSet) add(p Pos) bool {
	k := p.Row*s.n + p.Col
	if s.seen[k] {
		return false
	}
	s.seen[k] = true
	s.count++
	return true
}

func (s *posSet) has(p Pos) bool {
	return s.seen[p.Row*s.n+p.Col]
}

// rowMajor returns the members sorted by row, then column.
func (s *posSet) rowMajor() []Pos {
	out := make([]Pos, 0, s.count)
	for k, ok := range s.seen {
		if ok {
			out = append(out, Pos{Row: k / s.n, Col: k % s.n})
		}
	}
	return out
}
