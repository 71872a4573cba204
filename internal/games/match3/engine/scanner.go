package engine

// SpawnRequest asks for a special tile to be created after a clear.
type SpawnRequest struct {
	Pos     Pos
	Special Special
	Kind    Kind
}

// MatchSet is the result of a full board scan.
// Positions are unique and in row-major order.
type MatchSet struct {
	Positions []Pos
	Spawns    []SpawnRequest
}

// Empty reports whether the scan found no match.
func (m MatchSet) Empty() bool {
	return len(m.Positions) == 0
}

// spawnList keeps spawn requests unique per position.
type spawnList struct {
	reqs  []SpawnRequest
	index map[Pos]int
}

// add records a request. An area-clear at an already requested position
// replaces the earlier request; anything else keeps the first one.
func (l *spawnList) add(r SpawnRequest) {
	if l.index == nil {
		l.index = make(map[Pos]int)
	}
	if i, ok := l.index[r.Pos]; ok {
		if r.Special == SpecialAreaClear {
			l.reqs[i] = r
		}
		return
	}
	l.index[r.Pos] = len(l.reqs)
	l.reqs = append(l.reqs, r)
}

// FindAllMatches scans every row and column for runs of three or more equal
// kinds and derives the specials those runs create.
func FindAllMatches(b *Board) MatchSet {
	n := b.size
	matched := newPosSet(n)
	var spawns spawnList

	// Rows.
	for row := range n {
		col := 0
		for col < n {
			k := b.Get(Pos{row, col}).Kind
			end := col + 1
			if k != NoKind {
				for end < n && b.Get(Pos{row, end}).Kind == k {
					end++
				}
				if length := end - col; length >= 3 {
					for c := col; c < end; c++ {
						matched.add(Pos{row, c})
					}
					if s, ok := runSpecial(length, SpecialRowClear); ok {
						spawns.add(SpawnRequest{Pos: Pos{row, col + length/2}, Special: s, Kind: k})
					}
				}
			}
			col = end
		}
	}

	// Columns.
	for col := range n {
		row := 0
		for row < n {
			k := b.Get(Pos{row, col}).Kind
			end := row + 1
			if k != NoKind {
				for end < n && b.Get(Pos{end, col}).Kind == k {
					end++
				}
				if length := end - row; length >= 3 {
					for r := row; r < end; r++ {
						matched.add(Pos{r, col})
					}
					if s, ok := runSpecial(length, SpecialColumnClear); ok {
						spawns.add(SpawnRequest{Pos: Pos{row + length/2, col}, Special: s, Kind: k})
					}
				}
			}
			row = end
		}
	}

	positions := matched.rowMajor()

	// L and T shapes: a matched cell anchoring runs in both directions.
	for _, p := range positions {
		if runLength(b, p, 0, 1) >= 3 && runLength(b, p, 1, 0) >= 3 {
			spawns.add(SpawnRequest{Pos: p, Special: SpecialAreaClear, Kind: b.Get(p).Kind})
		}
	}

	return MatchSet{Positions: positions, Spawns: spawns.reqs}
}

// runSpecial maps a run length to the special it creates.
func runSpecial(length int, line Special) (Special, bool) {
	switch {
	case length >= 5:
		return SpecialAreaClear, true
	case length == 4:
		return line, true
	default:
		return SpecialNone, false
	}
}

// runLength counts contiguous cells of p's kind through p along (dr, dc).
func runLength(b *Board, p Pos, dr, dc int) int {
	k := b.Get(p).Kind
	if k == NoKind {
		return 0
	}
	count := 1
	for q := (Pos{p.Row + dr, p.Col + dc}); b.InBounds(q) && b.Get(q).Kind == k; q = (Pos{q.Row + dr, q.Col + dc}) {
		count++
	}
	for q := (Pos{p.Row - dr, p.Col - dc}); b.InBounds(q) && b.Get(q).Kind == k; q = (Pos{q.Row - dr, q.Col - dc}) {
		count++
	}
	return count
}

// HasMatchAt reports whether p sits in a horizontal or vertical run of three.
func HasMatchAt(b *Board, p Pos) bool {
	return runLength(b, p, 0, 1) >= 3 || runLength(b, p, 1, 0) >= 3
}

// WouldMatch reports whether swapping p1 and p2 is a legal move.
// Two specials always combine. Otherwise the swap is tried and reverted;
// the board is left exactly as it was.
func WouldMatch(b *Board, p1, p2 Pos) bool {
	if !b.InBounds(p1) || !b.InBounds(p2) {
		return false
	}
	if b.Get(p1).IsSpecial() && b.Get(p2).IsSpecial() {
		return true
	}
	b.Swap(p1, p2)
	ok := HasMatchAt(b, p1) || HasMatchAt(b, p2)
	b.Swap(p1, p2)
	return ok
}

// FindPossibleMatch returns the first swap, scanning row-major and trying the
// right neighbor before the lower one, that would produce a match.
func FindPossibleMatch(b *Board) (Pos, Pos, bool) {
	for row := range b.size {
		for col := range b.size {
			p := Pos{row, col}
			for _, q := range [2]Pos{{row, col + 1}, {row + 1, col}} {
				if b.InBounds(q) && WouldMatch(b, p, q) {
					return p, q, true
				}
			}
		}
	}
	return Pos{}, Pos{}, false
}
