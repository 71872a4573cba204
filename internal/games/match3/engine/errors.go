package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned by Board.Set for positions outside the grid.
	ErrOutOfBounds = errors.New("engine: position out of bounds")

	// ErrBusy is returned when a swap arrives while a turn is still resolving.
	ErrBusy = errors.New("engine: turn already in progress")

	// ErrNoMovesLeft is returned when the move budget is exhausted.
	ErrNoMovesLeft = errors.New("engine: no moves left")
)

// ConfigurationError reports an invalid board size or kind count.
type ConfigurationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("engine: invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// InvalidSwapError reports a rejected swap request. The board is untouched.
type InvalidSwapError struct {
	P1, P2 Pos
	Reason string
}

func (e *InvalidSwapError) Error() string {
	return fmt.Sprintf("engine: invalid swap %v<->%v: %s", e.P1, e.P2, e.Reason)
}

// Invariant violation codes.
const (
	CodeCascadeBound = "CASCADE_BOUND"
	CodeEmptyCell    = "EMPTY_AFTER_REFILL"
	CodeShuffleBound = "SHUFFLE_BOUND"
)

// InvariantViolation signals a logic defect inside the engine.
// It is never the result of player input.
type InvariantViolation struct {
	Code    string
	Message string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("engine: invariant violated [%s] %s", e.Code, e.Message)
}
