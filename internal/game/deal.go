// internal/game/deal.go
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// DealFresh builds and shuffles its own deck, deals HandSize cards to the
// player and then HandSize to the opponent, and reveals a non-wild top card.
// Nothing is shared between calls, so concurrent requests each get an
// independent deal as long as each passes its own Source.
func DealFresh(rng Source) (models.Deal, error) {
	if rng == nil {
		rng = NewSource(0)
	}
	deck := BuildDeck()
	Shuffle(rng, deck)

	d := models.Deal{
		ID:           uuid.New(),
		PlayerHand:   make([]models.Card, 0, HandSize),
		OpponentHand: make([]models.Card, 0, HandSize),
		CreatedAt:    time.Now().UTC(),
	}
	for i := 0; i < HandSize; i++ {
		c, _ := pop(&deck)
		d.PlayerHand = append(d.PlayerHand, c)
	}
	for i := 0; i < HandSize; i++ {
		c, _ := pop(&deck)
		d.OpponentHand = append(d.OpponentHand, c)
	}

	top, ok := revealTopCard(&deck)
	if !ok {
		return models.Deal{}, fmt.Errorf("reveal top card: %w", ErrNoCardsInCirculation)
	}
	d.TopCard = top
	return d, nil
}
