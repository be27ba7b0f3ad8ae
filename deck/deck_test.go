package deck

import (
	"math/rand"
	"testing"

	utils "github.com/minaorangina/uno/internal"
	"github.com/stretchr/testify/assert"
)

func TestDeck(t *testing.T) {
	t.Run("full deck composition", func(t *testing.T) {
		d := New()
		utils.AssertEqual(t, len(d), Size)

		for _, color := range DeclarableColors {
			utils.AssertEqual(t, d.Count(NumberCard(color, 0)), 1)
			for rank := 1; rank <= 9; rank++ {
				utils.AssertEqual(t, d.Count(NumberCard(color, rank)), 2)
			}
			for _, symbol := range []Symbol{Skip, Reverse, DrawTwo} {
				utils.AssertEqual(t, d.Count(SymbolCard(color, symbol)), 2)
			}
		}
		utils.AssertEqual(t, d.Count(SymbolCard(Any, Wild)), 4)
		utils.AssertEqual(t, d.Count(SymbolCard(Any, WildDrawFour)), 4)
	})

	t.Run("any colour is reserved for wild cards", func(t *testing.T) {
		for _, c := range New() {
			assert.Equal(t, c.IsWild(), c.Color == Any, c.String())
		}
	})

	t.Run("shuffle is reproducible with a seeded source", func(t *testing.T) {
		d1, d2 := New(), New()
		d1.Shuffle(rand.New(rand.NewSource(42)))
		d2.Shuffle(rand.New(rand.NewSource(42)))
		assert.Equal(t, d1, d2)
		assert.NotEqual(t, New(), d1)
		assert.ElementsMatch(t, New(), d1)
	})

	t.Run("push, top and pop", func(t *testing.T) {
		var d Deck
		_, err := d.Pop()
		assert.ErrorIs(t, err, ErrEmptyDeck)
		_, err = d.Top()
		assert.ErrorIs(t, err, ErrEmptyDeck)

		d.Push(NumberCard(Red, 1), NumberCard(Blue, 2))
		top, err := d.Top()
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, top, NumberCard(Blue, 2))

		popped, err := d.Pop()
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, popped, NumberCard(Blue, 2))
		utils.AssertEqual(t, len(d), 1)
	})

	t.Run("remove takes a single copy", func(t *testing.T) {
		d := Deck{NumberCard(Red, 1), NumberCard(Red, 1), NumberCard(Blue, 2)}
		utils.AssertTrue(t, d.Remove(NumberCard(Red, 1)))
		utils.AssertEqual(t, d.Count(NumberCard(Red, 1)), 1)
		assert.False(t, d.Remove(NumberCard(Green, 9)))
		utils.AssertEqual(t, len(d), 2)
	})

	t.Run("clone does not alias", func(t *testing.T) {
		d := Deck{NumberCard(Red, 1)}
		c := d.Clone()
		c[0] = NumberCard(Blue, 9)
		utils.AssertEqual(t, d[0], NumberCard(Red, 1))
	})
}
