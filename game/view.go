package game

import "github.com/minaorangina/uno/deck"

// PlayerView returns a copy of the state as the player at viewer sees it.
// Other players' hands and the draw pile are blanked out; their sizes are kept.
// The copy shares no memory with s.
func (s *TableState) PlayerView(viewer int) *TableState {
	view := s.Clone()
	for i := range view.Players {
		if i != viewer {
			view.Players[i].Hand = blanks(len(view.Players[i].Hand))
		}
	}
	view.DrawPile = blanks(len(view.DrawPile))
	return view
}

func blanks(n int) deck.Deck {
	d := make(deck.Deck, n)
	for i := range d {
		d[i] = deck.Blank()
	}
	return d
}
