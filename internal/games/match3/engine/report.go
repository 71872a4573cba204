package engine

// Pass collects what happened during one clear-compact-refill round.
type Pass struct {
	Index    int
	Combo    bool
	Clears   []ClearEvent
	Falls    []FallEvent
	Spawns   []SpawnEvent
	Specials []SpecialCreatedEvent
	Tags     []TagUncoveredEvent
}

// TurnReport is the outcome of one PlayerSwap.
type TurnReport struct {
	Accepted     bool            // false when the swap matched nothing and was reverted
	Combo        CombinationType // ComboNone unless two specials were swapped
	MovesDelta   int             // 1 for a swap that changed the board, else 0
	Passes       []Pass
	Tags         []TagUncoveredEvent // in clearance order across all passes
	CascadeCount int
	Shuffles     int
	Legal        bool
	State        State
}

// ClearedCount returns the number of cleared positions over all passes.
func (r TurnReport) ClearedCount() int {
	total := 0
	for _, p := range r.Passes {
		total += len(p.Clears)
	}
	return total
}

// SpecialsCreated returns every special created during the turn.
func (r TurnReport) SpecialsCreated() []SpecialCreatedEvent {
	var out []SpecialCreatedEvent
	for _, p := range r.Passes {
		out = append(out, p.Specials...)
	}
	return out
}
