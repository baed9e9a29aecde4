// internal/game/deck.go
package game

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/jason-s-yu/uno/internal/models"
)

const (
	DeckSize     = 108
	HandSize     = 7
	wildsPerKind = 4
)

// Source is the random source used for every shuffle. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a source seeded with seed, or with the current time when seed is 0.
// The returned source must not be shared between goroutines.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// BuildDeck returns the full 108-card set in a fixed order: colors in
// PlayableColors order, each holding 0, two of 1-9, and two of each action,
// followed by the wild and wild4 cards.
func BuildDeck() []models.Card {
	deck := make([]models.Card, 0, DeckSize)
	for _, color := range models.PlayableColors {
		deck = append(deck, models.Card{Color: color, Value: "0"})
		for i := 1; i <= 9; i++ {
			v := models.Value(strconv.Itoa(i))
			deck = append(deck, models.Card{Color: color, Value: v}, models.Card{Color: color, Value: v})
		}
		for _, action := range models.ActionValues {
			deck = append(deck, models.Card{Color: color, Value: action}, models.Card{Color: color, Value: action})
		}
	}
	for i := 0; i < wildsPerKind; i++ {
		deck = append(deck,
			models.Card{Color: models.ColorWild, Value: models.ValueWild},
			models.Card{Color: models.ColorWild, Value: models.ValueWild4},
		)
	}
	return deck
}

// Shuffle permutes cards in place (Fisher-Yates).
func Shuffle(rng Source, cards []models.Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// pop removes and returns the last card of pile. ok is false when pile is empty.
func pop(pile *[]models.Card) (c models.Card, ok bool) {
	n := len(*pile)
	if n == 0 {
		return models.Card{}, false
	}
	c = (*pile)[n-1]
	*pile = (*pile)[:n-1]
	return c, true
}

// revealTopCard pops until a non-wild card turns up. The wilds passed over
// go back under the draw pile so no card leaves circulation.
func revealTopCard(pile *[]models.Card) (models.Card, bool) {
	var passed []models.Card
	for {
		c, ok := pop(pile)
		if !ok {
			*pile = append(passed, *pile...)
			return models.Card{}, false
		}
		if !c.IsWild() {
			*pile = append(passed, *pile...)
			return c, true
		}
		passed = append(passed, c)
	}
}
