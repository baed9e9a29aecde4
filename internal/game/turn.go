// internal/game/turn.go
package game

import (
	"errors"

	"github.com/jason-s-yu/uno/internal/models"
	log "github.com/sirupsen/logrus"
)

// Controller is the interactive side of a game: it shows the table and
// makes the current player's choices.
type Controller interface {
	// Render shows the top card, active color and the current player's hand.
	Render(g *UnoGame)
	// PromptCardChoice returns 0 to draw, or a 1-based hand position up to maxIndex.
	PromptCardChoice(maxIndex int) (int, error)
	// PromptColorChoice returns the color a played wild resolves to.
	PromptColorChoice() (models.Color, error)
}

// TakeTurn resolves one full turn for the current player. It does not
// advance the turn; Run calls AdvanceTurn for that unless the turn ended the game.
//
// A pending draw penalty is taken by whoever is active when the turn starts,
// instead of acting. With two players a draw2 or wild4 skip hands the turn
// straight back, so that is the player who played the card.
//
// A player with nothing playable draws one card. Otherwise the controller
// picks a card or a draw; picking a card that cannot be played raises
// EventPlayerInvalidMove and asks again.
func (g *UnoGame) TakeTurn(ctrl Controller) error {
	if g.GameOver {
		return ErrGameOver
	}
	if resolved, err := g.ResolvePendingDraw(); resolved || err != nil {
		return err
	}
	if len(g.PlayableIndices()) == 0 {
		return g.drawOne(true)
	}

	p := g.CurrentPlayer()
	for {
		choice, err := ctrl.PromptCardChoice(len(p.Hand))
		if err != nil {
			return err
		}
		if choice == 0 {
			return g.DrawOne()
		}
		idx := choice - 1
		if idx < 0 || idx >= len(p.Hand) {
			log.WithFields(log.Fields{"game_id": g.ID, "choice": choice}).Warn("controller returned an out of range card choice")
			continue
		}

		card := p.Hand[idx]
		if !CanPlay(card, g.TopCard(), g.ActiveColor) {
			g.fireEvent(GameEvent{Type: EventPlayerInvalidMove, User: eventUser(p), Card: &card})
			continue
		}

		color := card.Color
		if card.IsWild() {
			if color, err = g.chooseColor(ctrl); err != nil {
				return err
			}
		}
		return g.PlayCard(idx, color)
	}
}

func (g *UnoGame) chooseColor(ctrl Controller) (models.Color, error) {
	for {
		c, err := ctrl.PromptColorChoice()
		if err != nil {
			return "", err
		}
		if c.IsConcrete() {
			return c, nil
		}
	}
}

// Run plays turns until somebody empties their hand and returns the winner.
// Errors from the controller (such as io.EOF) and ErrNoCardsInCirculation stop the game.
func (g *UnoGame) Run(ctrl Controller) (*models.Player, error) {
	g.Start()
	for !g.GameOver {
		ctrl.Render(g)
		if err := g.TakeTurn(ctrl); err != nil {
			if errors.Is(err, ErrNoCardsInCirculation) {
				log.WithFields(log.Fields{
					"game_id": g.ID,
					"turn_id": g.TurnID,
					"cards":   g.CardCount(),
				}).Error("card invariant violated")
			}
			return nil, err
		}
		if !g.GameOver {
			g.AdvanceTurn()
		}
	}
	return g.Winner, nil
}
