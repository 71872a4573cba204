package engine

// Event is emitted synchronously by the engine while a turn resolves.
// Presentation code decides how (or whether) to animate each one.
type Event interface {
	turnEvent()
}

// EventHandler receives engine events. It must not call back into the engine.
type EventHandler func(Event)

// ClearCause tells why a position was cleared.
type ClearCause uint8

const (
	CauseMatch ClearCause = iota
	CauseSpecial
	CauseCombo
)

// String returns the cause name.
func (c ClearCause) String() string {
	switch c {
	case CauseMatch:
		return "ordinary-match"
	case CauseSpecial:
		return "special-activation"
	case CauseCombo:
		return "combo"
	default:
		return "unknown"
	}
}

// SwapEvent is sent when two tiles exchange places.
// Reverted is set for the swap back after a move that matched nothing.
type SwapEvent struct {
	P1, P2   Pos
	Reverted bool
}

func (SwapEvent) turnEvent() {}

// ClearEvent is sent for every emptied position.
type ClearEvent struct {
	Pass   int
	Pos    Pos
	Cell   Cell
	Cause  ClearCause
	Effect Effect
}

func (ClearEvent) turnEvent() {}

// FallEvent is sent for every tile moved by compaction.
type FallEvent struct {
	Pass    int
	Col     int
	FromRow int
	ToRow   int
}

func (FallEvent) turnEvent() {}

// SpawnEvent is sent for every tile added by refill.
// Delay is the index within the column's spawn batch.
type SpawnEvent struct {
	Pass  int
	Pos   Pos
	Kind  Kind
	Delay int
}

func (SpawnEvent) turnEvent() {}

// SpecialCreatedEvent is sent when a match leaves a special tile behind.
type SpecialCreatedEvent struct {
	Pass    int
	Pos     Pos
	Special Special
	Kind    Kind
}

func (SpecialCreatedEvent) turnEvent() {}

// TagUncoveredEvent is sent when a tagged tile is cleared.
type TagUncoveredEvent struct {
	Pass int
	Tag  TagID
	Pos  Pos
}

func (TagUncoveredEvent) turnEvent() {}

// ShuffleEvent is sent after the board was reshuffled because no move was left.
type ShuffleEvent struct {
	Attempts int
}

func (ShuffleEvent) turnEvent() {}
