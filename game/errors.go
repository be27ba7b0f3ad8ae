package game

import (
	"errors"
	"fmt"
)

var (
	ErrNilState           = errors.New("state is nil")
	ErrTooFewPlayers      = errors.New("minimum of 2 players required")
	ErrTooManyPlayers     = errors.New("maximum of 10 players allowed")
	ErrPileExhausted      = errors.New("draw pile exhausted while dealing")
	ErrWildDrawFourReveal = errors.New("could not reveal an opening card other than wild draw four")
	ErrNotRunning         = errors.New("game is not running")
	ErrCardNotInHand      = errors.New("card is not in the active player's hand")
	ErrInvalidDrawCount   = errors.New("draw count must be positive")
	ErrUndeclarableColor  = errors.New("color cannot be declared")
	ErrUnknownAction      = errors.New("unknown action")
	ErrNotLegal           = errors.New("action is not legal this turn")
)

// InitializationError is returned when Setup cannot produce a starting state
type InitializationError struct {
	Reason error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("could not set up game: %s", e.Reason)
}

func (e *InitializationError) Unwrap() error {
	return e.Reason
}

// IllegalActionError is returned when an action cannot be applied.
// The state it was applied to is left unchanged.
type IllegalActionError struct {
	Action Action
	Reason error
}

func (e *IllegalActionError) Error() string {
	if e.Action == nil {
		return fmt.Sprintf("illegal action: %s", e.Reason)
	}
	return fmt.Sprintf("illegal action %s: %s", e.Action, e.Reason)
}

func (e *IllegalActionError) Unwrap() error {
	return e.Reason
}

// ExhaustedPileWarning describes a draw that could not be fully satisfied.
// It is not an error: the cards that were available have been drawn.
type ExhaustedPileWarning struct {
	Wanted int
	Got    int
}

func (w ExhaustedPileWarning) String() string {
	return fmt.Sprintf("wanted %d cards, drew %d", w.Wanted, w.Got)
}
