package deck

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Color represents the colour of a card
type Color string

const (
	// NoColor is only carried by blank (hidden) cards
	NoColor Color = ""
	Red     Color = "red"
	Green   Color = "green"
	Yellow  Color = "yellow"
	Blue    Color = "blue"
	// Any is the colour of wild cards
	Any Color = "any"
)

// DeclarableColors are the colours a player may choose when playing a wild card
var DeclarableColors = []Color{Red, Green, Yellow, Blue}

var colorNames = map[Color]struct{}{Red: {}, Green: {}, Yellow: {}, Blue: {}, Any: {}}

// Declarable reports whether c can be chosen for a wild card
func (c Color) Declarable() bool {
	switch c {
	case Red, Green, Yellow, Blue:
		return true
	}
	return false
}

// Symbol represents the special effect printed on a card
type Symbol string

const (
	NoSymbol     Symbol = ""
	Skip         Symbol = "skip"
	Reverse      Symbol = "reverse"
	DrawTwo      Symbol = "draw2"
	Wild         Symbol = "wild"
	WildDrawFour Symbol = "wilddraw4"
)

var symbolNames = map[Symbol]struct{}{Skip: {}, Reverse: {}, DrawTwo: {}, Wild: {}, WildDrawFour: {}}

// Rank is the number printed on a card
type Rank int

// NoRank marks symbol cards and blank cards
const NoRank Rank = -1

const maxRank Rank = 9

// Card represents a playing card.
// A card has either a rank or a symbol. Cards are compared with ==.
// Note that the zero value is a colourless zero, not a blank card: use Blank.
type Card struct {
	Color  Color
	Rank   Rank
	Symbol Symbol
}

// NumberCard constructs a ranked card
func NumberCard(color Color, rank int) Card {
	return Card{Color: color, Rank: Rank(rank)}
}

// SymbolCard constructs a card with a special effect
func SymbolCard(color Color, symbol Symbol) Card {
	return Card{Color: color, Rank: NoRank, Symbol: symbol}
}

// Blank returns a card with every field unset. It stands in for cards a player cannot see.
func Blank() Card {
	return Card{Rank: NoRank}
}

// HasRank reports whether the card carries a number
func (c Card) HasRank() bool {
	return c.Rank >= 0 && c.Rank <= maxRank
}

// IsWild reports whether the card belongs to the wild family
func (c Card) IsWild() bool {
	return c.Symbol == Wild || c.Symbol == WildDrawFour
}

// IsBlank reports whether the card is hidden
func (c Card) IsBlank() bool {
	return c == Blank()
}

func (c Card) String() string {
	if c.IsBlank() {
		return "??"
	}

	var sb strings.Builder
	if c.Color == NoColor {
		sb.WriteString("?")
	} else {
		sb.WriteString(strings.ToUpper(string(c.Color[:1])))
	}

	if c.Symbol == NoSymbol {
		fmt.Fprintf(&sb, "%d", c.Rank)
		return sb.String()
	}

	sb.WriteString(strings.ToUpper(string(c.Symbol)))
	if c.HasRank() {
		fmt.Fprintf(&sb, " %d", c.Rank)
	}
	return sb.String()
}

type cardJSON struct {
	Color  *string `json:"color"`
	Number *int    `json:"number"`
	Symbol *string `json:"symbol"`
}

// MarshalJSON encodes unset fields as null
func (c Card) MarshalJSON() ([]byte, error) {
	var cj cardJSON
	if c.Color != NoColor {
		color := string(c.Color)
		cj.Color = &color
	}
	if c.HasRank() {
		n := int(c.Rank)
		cj.Number = &n
	}
	if c.Symbol != NoSymbol {
		symbol := string(c.Symbol)
		cj.Symbol = &symbol
	}
	return json.Marshal(cj)
}

// UnmarshalJSON decodes a card, rejecting unknown colours, symbols and ranks
func (c *Card) UnmarshalJSON(data []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}

	decoded := Blank()
	if cj.Color != nil {
		if _, ok := colorNames[Color(*cj.Color)]; !ok {
			return fmt.Errorf("unknown card color %q", *cj.Color)
		}
		decoded.Color = Color(*cj.Color)
	}
	if cj.Number != nil {
		if *cj.Number < 0 || Rank(*cj.Number) > maxRank {
			return fmt.Errorf("card number %d out of range", *cj.Number)
		}
		decoded.Rank = Rank(*cj.Number)
	}
	if cj.Symbol != nil {
		if _, ok := symbolNames[Symbol(*cj.Symbol)]; !ok {
			return fmt.Errorf("unknown card symbol %q", *cj.Symbol)
		}
		decoded.Symbol = Symbol(*cj.Symbol)
	}

	*c = decoded
	return nil
}
