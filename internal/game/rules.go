// internal/game/rules.go
package game

import (
	"fmt"

	"github.com/jason-s-yu/uno/internal/models"
	log "github.com/sirupsen/logrus"
)

const (
	draw2Penalty = 2
	wild4Penalty = 4
)

// CanPlay reports whether card may go on top. A card matches on the active
// color or on the top card's value, so a red 7 plays on a blue 7 and a
// green skip on a yellow skip. Wild cards always play.
func CanPlay(card, top models.Card, active models.Color) bool {
	return card.IsWild() || card.Color == active || card.Value == top.Value
}

// ApplyCardEffect sets up what the played card does to the following turns.
func ApplyCardEffect(card models.Card, g *UnoGame) {
	switch card.Value {
	case models.ValueSkip:
		g.PendingSkip = true
	case models.ValueReverse:
		g.Direction = -g.Direction
	case models.ValueDraw2:
		g.PendingDraw = draw2Penalty
		g.PendingSkip = true
	case models.ValueWild4:
		g.PendingDraw = wild4Penalty
		g.PendingSkip = true
	}
}

// PlayableIndices returns the hand positions of the current player's legal cards.
func (g *UnoGame) PlayableIndices() []int {
	top := g.TopCard()
	var idxs []int
	for i, c := range g.CurrentPlayer().Hand {
		if CanPlay(c, top, g.ActiveColor) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// ResolvePendingDraw makes the current player take a pending draw2/wild4
// penalty. It reports whether there was anything to resolve; if so the turn is over.
func (g *UnoGame) ResolvePendingDraw() (bool, error) {
	if g.PendingDraw == 0 {
		return false, nil
	}
	return true, g.chargePendingDraw(g.CurrentPlayer())
}

func (g *UnoGame) chargePendingDraw(p *models.Player) error {
	n := g.PendingDraw
	if err := g.DrawCards(p, n); err != nil {
		return err
	}
	g.PendingDraw = 0
	g.fireEvent(GameEvent{
		Type:    EventPlayerDrawPenalty,
		User:    eventUser(p),
		Payload: map[string]interface{}{"count": n},
	})
	return nil
}

// DrawOne makes the current player draw a single card, ending their turn.
func (g *UnoGame) DrawOne() error {
	return g.drawOne(false)
}

func (g *UnoGame) drawOne(forced bool) error {
	if g.GameOver {
		return ErrGameOver
	}
	if g.PendingDraw > 0 {
		return ErrPendingDraw
	}
	p := g.CurrentPlayer()
	if err := g.DrawCards(p, 1); err != nil {
		return err
	}
	g.fireEvent(GameEvent{
		Type:    EventPlayerDraw,
		User:    eventUser(p),
		Payload: map[string]interface{}{"count": 1, "forced": forced},
	})
	return nil
}

// PlayCard plays the current player's card at hand index idx. chosen is the
// color a wild resolves to and is ignored for colored cards. On error the
// game is left untouched.
func (g *UnoGame) PlayCard(idx int, chosen models.Color) error {
	if g.GameOver {
		return ErrGameOver
	}
	if g.PendingDraw > 0 {
		return ErrPendingDraw
	}
	p := g.CurrentPlayer()
	if idx < 0 || idx >= len(p.Hand) {
		return fmt.Errorf("%w: %d (hand has %d cards)", ErrInvalidCardIndex, idx, len(p.Hand))
	}
	card := p.Hand[idx]
	if !CanPlay(card, g.TopCard(), g.ActiveColor) {
		return fmt.Errorf("%w: %s on %s (active %s)", ErrIllegalPlay, card, g.TopCard(), g.ActiveColor)
	}
	if card.IsWild() && !chosen.IsConcrete() {
		return fmt.Errorf("%w: got %q", ErrInvalidColor, chosen)
	}

	p.RemoveCard(idx)
	g.DiscardPile = append(g.DiscardPile, card)
	if card.IsWild() {
		g.ActiveColor = chosen
	} else {
		g.ActiveColor = card.Color
	}
	ApplyCardEffect(card, g)

	g.fireEvent(GameEvent{
		Type:  EventPlayerPlay,
		User:  eventUser(p),
		Card:  &card,
		Color: g.ActiveColor,
	})

	switch len(p.Hand) {
	case 0:
		g.GameOver = true
		g.Winner = p
		log.WithFields(log.Fields{
			"game_id": g.ID,
			"turn_id": g.TurnID,
			"player":  p.Name,
		}).Info("game won")
		g.fireEvent(GameEvent{Type: EventGameEnd, User: eventUser(p)})
	case 1:
		g.fireEvent(GameEvent{Type: EventPlayerUno, User: eventUser(p)})
	}
	return nil
}
