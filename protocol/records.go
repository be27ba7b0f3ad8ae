package protocol

import (
	"errors"
	"fmt"

	"github.com/minaorangina/uno/deck"
	"github.com/minaorangina/uno/game"
)

var (
	ErrMalformedAction = errors.New("action must name a card or a positive draw")
	ErrMalformedState  = errors.New("malformed state")
)

// PlayerRecord is the plain form of a player's hand
type PlayerRecord struct {
	Name     string      `json:"name"`
	ListCard []deck.Card `json:"list_card"`
}

// StateRecord is the plain form of a game, as stored and sent over the wire
type StateRecord struct {
	ListCardDraw    []deck.Card    `json:"list_card_draw"`
	ListCardDiscard []deck.Card    `json:"list_card_discard"`
	ListPlayer      []PlayerRecord `json:"list_player"`
	Phase           game.Phase     `json:"phase"`
	CntPlayer       int            `json:"cnt_player"`
	IdxPlayerActive int            `json:"idx_player_active"`
	Direction       int            `json:"direction"`
	Color           deck.Color     `json:"color,omitempty"`
	CntToDraw       int            `json:"cnt_to_draw"`
	HasDrawn        bool           `json:"has_drawn"`
	IdxPlayerWinner *int           `json:"idx_player_winner"`
}

// ActionRecord is the plain form of an action.
// A play names its card; a draw has no card and a positive draw count.
type ActionRecord struct {
	Card  *deck.Card `json:"card"`
	Color deck.Color `json:"color,omitempty"`
	Draw  *int       `json:"draw"`
	Uno   bool       `json:"uno"`
}

// EncodeState converts a game into its plain record
func EncodeState(s *game.TableState) StateRecord {
	r := StateRecord{
		ListCardDraw:    cards(s.DrawPile),
		ListCardDiscard: cards(s.DiscardPile),
		ListPlayer:      make([]PlayerRecord, len(s.Players)),
		Phase:           s.Phase,
		CntPlayer:       len(s.Players),
		IdxPlayerActive: s.ActiveIdx,
		Direction:       s.Direction,
		Color:           s.Color,
		CntToDraw:       s.CntToDraw,
		HasDrawn:        s.HasDrawn,
	}
	for i, p := range s.Players {
		r.ListPlayer[i] = PlayerRecord{Name: p.Name, ListCard: cards(p.Hand)}
	}
	if s.Winner != nil {
		w := *s.Winner
		r.IdxPlayerWinner = &w
	}
	return r
}

// DecodeState converts a record back into a game, rejecting records that break the game's invariants.
// A setup record may list fewer players than cnt_player; the missing players are added with no cards.
func DecodeState(r StateRecord) (*game.TableState, error) {
	if r.CntPlayer != 0 && len(r.ListPlayer) > r.CntPlayer {
		return nil, fmt.Errorf("%w: %d players listed, cnt_player is %d", ErrMalformedState, len(r.ListPlayer), r.CntPlayer)
	}
	if len(r.ListPlayer) < r.CntPlayer && r.Phase != game.PhaseSetup {
		return nil, fmt.Errorf("%w: %d players listed, cnt_player is %d", ErrMalformedState, len(r.ListPlayer), r.CntPlayer)
	}

	s := &game.TableState{
		Phase:       r.Phase,
		ActiveIdx:   r.IdxPlayerActive,
		Direction:   r.Direction,
		Color:       r.Color,
		CntToDraw:   r.CntToDraw,
		HasDrawn:    r.HasDrawn,
		DrawPile:    deck.Deck(cards(r.ListCardDraw)),
		DiscardPile: deck.Deck(cards(r.ListCardDiscard)),
	}
	if s.Direction == 0 && s.Phase == game.PhaseSetup {
		s.Direction = 1
	}
	for _, p := range r.ListPlayer {
		s.Players = append(s.Players, game.PlayerState{Name: p.Name, Hand: deck.Deck(cards(p.ListCard))})
	}
	for i := len(s.Players); i < r.CntPlayer; i++ {
		s.Players = append(s.Players, game.PlayerState{Name: fmt.Sprintf("Player%d", i), Hand: deck.Deck{}})
	}
	if r.IdxPlayerWinner != nil {
		w := *r.IdxPlayerWinner
		s.Winner = &w
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedState, err)
	}
	return s, nil
}

// EncodeAction converts an action into its plain record
func EncodeAction(a game.Action) ActionRecord {
	switch a := a.(type) {
	case game.Play:
		card := a.Card
		r := ActionRecord{Card: &card, Color: a.Color, Uno: a.Announce}
		if a.Draw > 0 {
			draw := a.Draw
			r.Draw = &draw
		}
		return r
	case game.Draw:
		count := a.Count
		return ActionRecord{Draw: &count}
	}
	return ActionRecord{}
}

// EncodeActions converts a list of actions, keeping its order
func EncodeActions(actions []game.Action) []ActionRecord {
	records := make([]ActionRecord, len(actions))
	for i, a := range actions {
		records[i] = EncodeAction(a)
	}
	return records
}

// DecodeAction converts a record back into an action
func DecodeAction(r ActionRecord) (game.Action, error) {
	if r.Card != nil {
		if r.Card.IsBlank() {
			return nil, fmt.Errorf("%w: hidden card", ErrMalformedAction)
		}
		if r.Draw != nil && *r.Draw < 0 {
			return nil, fmt.Errorf("%w: negative draw", ErrMalformedAction)
		}
		p := game.Play{Card: *r.Card, Color: r.Color, Announce: r.Uno}
		if r.Draw != nil {
			p.Draw = *r.Draw
		}
		return p, nil
	}

	if r.Draw == nil || *r.Draw <= 0 {
		return nil, ErrMalformedAction
	}
	if r.Uno || r.Color != deck.NoColor {
		return nil, fmt.Errorf("%w: a draw has no colour or final card call", ErrMalformedAction)
	}
	return game.Draw{Count: *r.Draw}, nil
}

// cards copies a pile so records never share memory with a game
func cards(d []deck.Card) []deck.Card {
	out := make([]deck.Card, len(d))
	copy(out, d)
	return out
}
