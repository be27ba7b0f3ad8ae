package game

import (
	"testing"

	"github.com/minaorangina/uno/deck"
	utils "github.com/minaorangina/uno/internal"
	"github.com/stretchr/testify/assert"
)

func wildPlays(card deck.Card, draw int, announce bool) []Action {
	actions := []Action{}
	for _, c := range deck.DeclarableColors {
		actions = append(actions, Play{Card: card, Color: c, Draw: draw, Announce: announce})
	}
	return actions
}

func TestLegalActions(t *testing.T) {
	u := NewSeeded(1)

	t.Run("matching card and draw", func(t *testing.T) {
		t.Log("Given red 7 on the discard pile and a red 5 in hand")
		state := tableWith(hand(red7), deck.Red, hand(red5), hand(blue1))

		t.Log("When the legal actions are listed")
		actions := u.LegalActions(state)

		t.Log("Then the red 5 can be played, or a card drawn")
		assert.ElementsMatch(t, []Action{
			Play{Card: red5, Color: deck.Red},
			Draw{Count: 1},
		}, actions)
	})

	t.Run("pending draw of more than two must be drawn", func(t *testing.T) {
		state := tableWith(hand(redDraw2, blueDraw2), deck.Blue, hand(blueDraw2, wildDraw4, red5), hand(blue1))
		state.CntToDraw = 4
		utils.AssertDeepEqual(t, u.LegalActions(state), []Action{Draw{Count: 4}})
	})

	t.Run("a draw two can be stacked on a draw two", func(t *testing.T) {
		state := tableWith(hand(redDraw2), deck.Red, hand(blueDraw2, red5, green3), hand(blue1))
		state.CntToDraw = 2
		assert.ElementsMatch(t, []Action{
			Play{Card: blueDraw2, Color: deck.Blue, Draw: 4},
			Draw{Count: 2},
		}, u.LegalActions(state))
	})

	t.Run("without a draw two the pending cards are drawn", func(t *testing.T) {
		state := tableWith(hand(redDraw2), deck.Red, hand(red5, green3), hand(blue1))
		state.CntToDraw = 2
		utils.AssertDeepEqual(t, u.LegalActions(state), []Action{Draw{Count: 2}})
	})

	t.Run("other pending draws cannot be stacked", func(t *testing.T) {
		state := tableWith(hand(wildDraw4), deck.Red, hand(blueDraw2, red5), hand(blue1))
		state.CntToDraw = 2
		utils.AssertDeepEqual(t, u.LegalActions(state), []Action{Draw{Count: 2}})

		state.CntToDraw = 1
		utils.AssertDeepEqual(t, u.LegalActions(state), []Action{Draw{Count: 1}})
	})

	t.Run("anything goes on an opening wild", func(t *testing.T) {
		state := tableWith(hand(wild), deck.Any, hand(blue1, redSkip, wildDraw4), hand(green3))
		expected := []Action{
			Play{Card: blue1, Color: deck.Blue},
			Play{Card: redSkip, Color: deck.Red},
			Draw{Count: 1},
		}
		expected = append(expected, wildPlays(wildDraw4, 4, false)...)
		assert.ElementsMatch(t, expected, u.LegalActions(state))
	})

	t.Run("a later wild restricts play to its colour", func(t *testing.T) {
		state := tableWith(hand(red5, wild), deck.Green, hand(blue1, green3, red7), hand(red5))
		assert.ElementsMatch(t, []Action{
			Play{Card: green3, Color: deck.Green},
			Draw{Count: 1},
		}, u.LegalActions(state))
	})

	t.Run("a played wild left alone by a reshuffle is not an opening wild", func(t *testing.T) {
		yellow3 := deck.NumberCard(deck.Yellow, 3)
		green9 := deck.NumberCard(deck.Green, 9)

		t.Log("Given a lone wild on the discard pile that was played as yellow")
		state := tableWith(hand(wild), deck.Yellow, hand(yellow3, wildDraw4, green9), hand(red5))

		t.Log("When the legal actions are listed")
		actions := u.LegalActions(state)

		t.Log("Then only yellow can be played and the wild draw four is held back")
		assert.ElementsMatch(t, []Action{
			Play{Card: yellow3, Color: deck.Yellow},
			Draw{Count: 1},
		}, actions)
	})

	t.Run("reshuffling under a played wild keeps its colour in force", func(t *testing.T) {
		yellow3 := deck.NumberCard(deck.Yellow, 3)
		green9 := deck.NumberCard(deck.Green, 9)

		t.Log("Given an empty draw pile and a wild played as yellow on top of the discards")
		state := tableWith(hand(red5, red7, wild), deck.Yellow, hand(blue1, green3), hand(yellow3, wildDraw4, green9))
		state.DrawPile = deck.Deck{}

		t.Log("When the first player draws, reshuffling the discards")
		next, err := u.Apply(state, Draw{Count: 1})
		assert.NoError(t, err)
		utils.AssertDeepEqual(t, next.DiscardPile, hand(wild))

		t.Log("Then the next player must still follow yellow")
		assert.ElementsMatch(t, []Action{
			Play{Card: yellow3, Color: deck.Yellow},
			Draw{Count: 1},
		}, u.LegalActions(next))
	})

	t.Run("matching by symbol", func(t *testing.T) {
		blueSkip := deck.SymbolCard(deck.Blue, deck.Skip)
		state := tableWith(hand(redSkip), deck.Red, hand(blueSkip, blue1, green3), hand(red7))
		assert.ElementsMatch(t, []Action{
			Play{Card: blueSkip, Color: deck.Blue},
			Draw{Count: 1},
		}, u.LegalActions(state))
	})

	t.Run("wild cards offer every colour", func(t *testing.T) {
		state := tableWith(hand(red7), deck.Red, hand(wild, blue1, green3), hand(red5))
		expected := append(wildPlays(wild, 0, false), Draw{Count: 1})
		assert.ElementsMatch(t, expected, u.LegalActions(state))
	})

	t.Run("wild draw four is not allowed while holding the active colour", func(t *testing.T) {
		state := tableWith(hand(red7), deck.Red, hand(wildDraw4, red5, blue1), hand(green3))
		actions := u.LegalActions(state)
		for _, a := range actions {
			if p, ok := a.(Play); ok {
				assert.NotEqual(t, wildDraw4, p.Card)
			}
		}
		assert.ElementsMatch(t, []Action{Play{Card: red5, Color: deck.Red}, Draw{Count: 1}}, actions)
	})

	t.Run("wild draw four is allowed without the active colour", func(t *testing.T) {
		state := tableWith(hand(red7), deck.Red, hand(wildDraw4, wild, blue1), hand(green3))
		expected := append(wildPlays(wildDraw4, 4, false), wildPlays(wild, 0, false)...)
		expected = append(expected, Draw{Count: 1})
		assert.ElementsMatch(t, expected, u.LegalActions(state))
	})

	t.Run("a play leaving one card can be announced", func(t *testing.T) {
		state := tableWith(hand(red7), deck.Red, hand(red5, wild), hand(green3))
		expected := []Action{
			Play{Card: red5, Color: deck.Red, Announce: true},
			Play{Card: red5, Color: deck.Red},
			Draw{Count: 1},
		}
		expected = append(expected, wildPlays(wild, 0, true)...)
		expected = append(expected, wildPlays(wild, 0, false)...)
		assert.ElementsMatch(t, expected, u.LegalActions(state))
	})

	t.Run("stacking a draw two can be announced", func(t *testing.T) {
		state := tableWith(hand(redDraw2), deck.Red, hand(blueDraw2, red5), hand(blue1))
		state.CntToDraw = 2
		assert.ElementsMatch(t, []Action{
			Play{Card: blueDraw2, Color: deck.Blue, Draw: 4, Announce: true},
			Play{Card: blueDraw2, Color: deck.Blue, Draw: 4},
			Draw{Count: 2},
		}, u.LegalActions(state))
	})

	t.Run("draw two played normally passes two", func(t *testing.T) {
		state := tableWith(hand(red7), deck.Red, hand(redDraw2, blue1, green3), hand(blue1))
		assert.Contains(t, u.LegalActions(state), Action(Play{Card: redDraw2, Color: deck.Red, Draw: 2}))
	})

	t.Run("no second draw in a turn", func(t *testing.T) {
		state := tableWith(hand(red7), deck.Red, hand(blue1, green3), hand(red5))
		state.HasDrawn = true
		assert.Empty(t, u.LegalActions(state))
	})

	t.Run("identical cards give one action", func(t *testing.T) {
		state := tableWith(hand(red7), deck.Red, hand(red5, red5, blue1), hand(green3))
		assert.ElementsMatch(t, []Action{Play{Card: red5, Color: deck.Red}, Draw{Count: 1}}, u.LegalActions(state))
	})

	t.Run("nothing to do unless running", func(t *testing.T) {
		state := tableWith(hand(red7), deck.Red, hand(red5), hand(green3))
		state.Phase = PhaseFinished
		assert.Empty(t, u.LegalActions(state))
		state.Phase = PhaseSetup
		assert.Empty(t, u.LegalActions(state))
		assert.Empty(t, u.LegalActions(nil))
	})

	t.Run("listing actions does not change the state", func(t *testing.T) {
		state := tableWith(hand(red7), deck.Red, hand(red5, wild, wildDraw4), hand(green3))
		before := state.Clone()
		u.LegalActions(state)
		assert.Equal(t, before, state)
	})
}

func TestIsPlayable(t *testing.T) {
	cases := []struct {
		name     string
		card     deck.Card
		top      deck.Card
		color    deck.Color
		playable bool
	}{
		{"same colour", red7, red5, deck.Red, true},
		{"same number", deck.NumberCard(deck.Blue, 5), red5, deck.Red, true},
		{"different colour and number", deck.NumberCard(deck.Blue, 2), red5, deck.Red, false},
		{"wild", wild, red5, deck.Red, true},
		{"wild draw four", wildDraw4, red5, deck.Red, true},
		{"special of the same colour", redDraw2, redSkip, deck.Red, true},
		{"different special, different colour", deck.SymbolCard(deck.Blue, deck.Reverse), redSkip, deck.Red, false},
		{"same special", deck.SymbolCard(deck.Blue, deck.Skip), redSkip, deck.Red, true},
		{"declared colour beats card colour", deck.NumberCard(deck.Blue, 2), wild, deck.Blue, true},
		{"number does not match a symbol card", deck.NumberCard(deck.Blue, 0), redSkip, deck.Red, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			utils.AssertEqual(t, IsPlayable(c.card, c.top, c.color), c.playable)
		})
	}
}
