package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minaorangina/uno/deck"
)

// Phase represents the lifecycle stage of a game
type Phase string

const (
	// PhaseSetup is a game that has not been dealt yet
	PhaseSetup Phase = "setup"
	// PhaseRunning is a game in progress
	PhaseRunning Phase = "running"
	// PhaseFinished is a game somebody has won. The state no longer changes.
	PhaseFinished Phase = "finished"
)

// PlayerState holds the cards of one participant
type PlayerState struct {
	Name string
	Hand deck.Deck
}

// TableState is everything needed to continue a game.
// It is owned by a single game session; Clone before sharing it.
type TableState struct {
	Phase       Phase
	Players     []PlayerState
	ActiveIdx   int
	Direction   int
	Color       deck.Color
	CntToDraw   int
	HasDrawn    bool
	Winner      *int
	DrawPile    deck.Deck
	DiscardPile deck.Deck
}

var (
	ErrInvalidDirection  = errors.New("direction must be 1 or -1")
	ErrActiveOutOfRange  = errors.New("active player out of range")
	ErrWinnerOutOfRange  = errors.New("winner out of range")
	ErrMissingDiscard    = errors.New("running game has no discard pile")
	ErrNegativeDrawCount = errors.New("cards to draw cannot be negative")
	ErrFinishedNoWinner  = errors.New("finished game has no winner")
	ErrUnknownPhase      = errors.New("unknown phase")
)

// Clone returns a deep copy of the state
func (s *TableState) Clone() *TableState {
	c := *s
	c.Players = make([]PlayerState, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = PlayerState{Name: p.Name, Hand: p.Hand.Clone()}
	}
	c.DrawPile = s.DrawPile.Clone()
	c.DiscardPile = s.DiscardPile.Clone()
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return &c
}

// TopCard returns the card defining what may be played
func (s *TableState) TopCard() (deck.Card, bool) {
	c, err := s.DiscardPile.Top()
	return c, err == nil
}

// ActivePlayer returns the participant whose turn it is
func (s *TableState) ActivePlayer() *PlayerState {
	if s.ActiveIdx < 0 || s.ActiveIdx >= len(s.Players) {
		return nil
	}
	return &s.Players[s.ActiveIdx]
}

// CardCount counts every card on the table. A game dealt from a full deck always has deck.Size.
func (s *TableState) CardCount() int {
	n := len(s.DrawPile) + len(s.DiscardPile)
	for _, p := range s.Players {
		n += len(p.Hand)
	}
	return n
}

// Validate checks the structural invariants of a state received from outside the engine
func (s *TableState) Validate() error {
	switch s.Phase {
	case PhaseSetup, PhaseRunning, PhaseFinished:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPhase, s.Phase)
	}
	if len(s.Players) < MinPlayers {
		return fmt.Errorf("%w: have %d", ErrTooFewPlayers, len(s.Players))
	}
	if s.Direction != 1 && s.Direction != -1 {
		return ErrInvalidDirection
	}
	if s.ActiveIdx < 0 || s.ActiveIdx >= len(s.Players) {
		return ErrActiveOutOfRange
	}
	if s.CntToDraw < 0 {
		return ErrNegativeDrawCount
	}
	if s.Phase != PhaseSetup && len(s.DiscardPile) == 0 {
		return ErrMissingDiscard
	}
	if s.Winner != nil && (*s.Winner < 0 || *s.Winner >= len(s.Players)) {
		return ErrWinnerOutOfRange
	}
	if s.Phase == PhaseFinished && s.Winner == nil {
		return ErrFinishedNoWinner
	}
	return nil
}

// step returns the index n places away in the current direction
func (s *TableState) step(n int) int {
	return floorMod(s.ActiveIdx+n*s.Direction, len(s.Players))
}

// endTurn hands the turn n places on and resets the per-turn flags
func (s *TableState) endTurn(n int) {
	s.ActiveIdx = s.step(n)
	s.HasDrawn = false
}

func (s *TableState) finish() {
	winner := s.ActiveIdx
	s.Winner = &winner
	s.Phase = PhaseFinished
}

func (s *TableState) String() string {
	var sb strings.Builder

	sb.WriteString("  - Last Card: ")
	if top, ok := s.TopCard(); ok {
		sb.WriteString(top.String())
	} else {
		sb.WriteString("None")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  - Color: %s\n", s.Color)
	fmt.Fprintf(&sb, "  - Cnt To Draw: %d\n", s.CntToDraw)
	fmt.Fprintf(&sb, "  - Has Drawn: %t\n", s.HasDrawn)
	fmt.Fprintf(&sb, "  - Direction: %d\n", s.Direction)
	fmt.Fprintf(&sb, "  - Phase: %s\n", s.Phase)
	fmt.Fprintf(&sb, "  - Draw Pile: %d\n", len(s.DrawPile))

	for i, p := range s.Players {
		marker := "  "
		if i == s.ActiveIdx {
			marker = "> "
		}
		cards := make([]string, 0, len(p.Hand))
		for _, c := range p.Hand {
			cards = append(cards, c.String())
		}
		fmt.Fprintf(&sb, "    %s%s (%d): %s\n", marker, p.Name, len(p.Hand), strings.Join(cards, ", "))
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
