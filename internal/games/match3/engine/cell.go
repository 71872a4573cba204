// Package engine implements the match-3 board engine: the grid, match and
// cascade detection, special tile combinations and turn resolution.
// It is UI-agnostic and deterministic for a given RNG seed.
package engine

// Kind is the base (non-special) type of a tile.
// NoKind marks an empty cell; real kinds start at 1.
type Kind uint8

const (
	NoKind Kind = iota
	KindHeart
	KindStar
	KindDrop
	KindLeaf
	KindGem
	KindMoon
	KindNote
	KindSun
)

// Kind count limits. With fewer than three kinds random refills keep
// forming runs and a cascade never settles.
const (
	MinKinds = 3
	MaxKinds = 8
)

// DefaultKinds is the kind count used when a config does not set one.
const DefaultKinds = 5

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case NoKind:
		return "empty"
	case KindHeart:
		return "heart"
	case KindStar:
		return "star"
	case KindDrop:
		return "drop"
	case KindLeaf:
		return "leaf"
	case KindGem:
		return "gem"
	case KindMoon:
		return "moon"
	case KindNote:
		return "note"
	case KindSun:
		return "sun"
	default:
		return "unknown"
	}
}

// Special is the clear behavior carried by a tile beyond matching.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialRowClear
	SpecialColumnClear
	SpecialAreaClear
)

// String returns the special name.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialRowClear:
		return "row-clear"
	case SpecialColumnClear:
		return "column-clear"
	case SpecialAreaClear:
		return "area-clear"
	default:
		return "unknown"
	}
}

// IsLine reports whether the special clears a full row or column.
func (s Special) IsLine() bool {
	return s == SpecialRowClear || s == SpecialColumnClear
}

// TagID references an externally owned memory payload.
// The empty string means the tile is not tagged.
type TagID string

// Cell is the content of one board position.
type Cell struct {
	Kind    Kind
	Special Special
	Tag     TagID
}

// Tile returns a plain tile of the given kind.
func Tile(k Kind) Cell {
	return Cell{Kind: k}
}

// SpecialTile returns a special tile with the given base kind.
func SpecialTile(k Kind, s Special) Cell {
	return Cell{Kind: k, Special: s}
}

// IsEmpty reports whether no tile is present.
func (c Cell) IsEmpty() bool {
	return c.Kind == NoKind
}

// IsSpecial reports whether the tile carries a special behavior.
func (c Cell) IsSpecial() bool {
	return !c.IsEmpty() && c.Special != SpecialNone
}

// IsTagged reports whether the tile carries a memory tag.
func (c Cell) IsTagged() bool {
	return c.Tag != ""
}
