package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/minaorangina/uno/deck"
	"k8s.io/klog/v2"
)

const (
	MinPlayers = 2
	MaxPlayers = 10
	// HandSize is the number of cards dealt to each player
	HandSize = 7

	maxRevealAttempts = 64
)

// Uno holds the rules of the game and its source of randomness.
// It keeps no game state: every operation takes and returns a TableState.
type Uno struct {
	rng      *rand.Rand
	handSize int
}

type UnoOpts struct {
	// Rand is used for every shuffle. Defaults to a time-seeded source.
	Rand     *rand.Rand
	HandSize int
}

// New constructs the rules engine
func New(opts UnoOpts) *Uno {
	u := &Uno{
		rng:      opts.Rand,
		handSize: opts.HandSize,
	}
	if u.rng == nil {
		u.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if u.handSize <= 0 {
		u.handSize = HandSize
	}
	return u
}

// NewSeeded constructs the rules engine with a fixed shuffle order
func NewSeeded(seed int64) *Uno {
	return New(UnoOpts{Rand: rand.New(rand.NewSource(seed))})
}

// Setup shuffles a fresh deck, deals to each named player and reveals the first card
func (u *Uno) Setup(names ...string) (*TableState, error) {
	if len(names) < MinPlayers {
		return nil, &InitializationError{Reason: ErrTooFewPlayers}
	}
	if len(names) > MaxPlayers {
		return nil, &InitializationError{Reason: ErrTooManyPlayers}
	}

	state := &TableState{
		Phase:     PhaseSetup,
		Players:   make([]PlayerState, len(names)),
		Direction: 1,
	}
	for i, name := range names {
		if name == "" {
			name = fmt.Sprintf("Player%d", i)
		}
		state.Players[i] = PlayerState{Name: name, Hand: deck.Deck{}}
	}

	return u.SetupState(state)
}

// SetupState finishes setting up a prepared state.
// An empty draw pile is filled with a shuffled deck, players with no cards are dealt a hand,
// and the opening card is revealed unless the discard pile already has one.
// States that are not in the setup phase are returned unchanged.
func (u *Uno) SetupState(prepared *TableState) (*TableState, error) {
	if prepared == nil {
		return nil, ErrNilState
	}
	if prepared.Phase != PhaseSetup {
		return prepared, nil
	}
	if len(prepared.Players) < MinPlayers {
		return nil, &InitializationError{Reason: ErrTooFewPlayers}
	}
	if len(prepared.Players) > MaxPlayers {
		return nil, &InitializationError{Reason: ErrTooManyPlayers}
	}

	state := prepared.Clone()
	if state.Direction == 0 {
		state.Direction = 1
	}

	if state.CardCount() == 0 {
		state.DrawPile = deck.New()
		state.DrawPile.Shuffle(u.rng)
	}

	if err := u.deal(state); err != nil {
		return nil, err
	}

	if len(state.DiscardPile) == 0 {
		if err := u.reveal(state); err != nil {
			return nil, err
		}
	}

	top, _ := state.TopCard()
	state.Color = top.Color
	switch top.Symbol {
	case deck.Reverse:
		state.Direction *= -1
	case deck.Skip:
		state.ActiveIdx = state.step(1)
	case deck.DrawTwo:
		state.CntToDraw += 2
	}

	state.Phase = PhaseRunning
	klog.Infof("game set up: %d players, opening card %s", len(state.Players), top)

	return state, nil
}

// deal gives each player a hand, round-robin, unless somebody already holds cards
func (u *Uno) deal(state *TableState) error {
	for _, p := range state.Players {
		if len(p.Hand) > 0 {
			return nil
		}
	}

	for round := 0; round < u.handSize; round++ {
		for i := range state.Players {
			card, err := state.DrawPile.Pop()
			if err != nil {
				return &InitializationError{Reason: ErrPileExhausted}
			}
			state.Players[i].Hand.Push(card)
		}
	}
	return nil
}

// reveal turns over the first discard, never a wild draw four
func (u *Uno) reveal(state *TableState) error {
	for attempt := 0; attempt < maxRevealAttempts; attempt++ {
		card, err := state.DrawPile.Pop()
		if err != nil {
			return &InitializationError{Reason: ErrPileExhausted}
		}
		if card.Symbol != deck.WildDrawFour {
			state.DiscardPile.Push(card)
			return nil
		}

		klog.V(2).Infof("revealed %s, reshuffling", card)
		state.DrawPile.Push(card)
		state.DrawPile.Shuffle(u.rng)
	}
	return &InitializationError{Reason: ErrWildDrawFourReveal}
}
