// internal/game/game.go
package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
	log "github.com/sirupsen/logrus"
)

// GameEventType is an enum-like type for broadcasting game actions.
type GameEventType string

const (
	EventGameStart         GameEventType = "game_start"
	EventGameReshuffle     GameEventType = "game_reshuffle"      // discard pile turned into a new draw pile
	EventPlayerDraw        GameEventType = "player_draw"         // voluntary or forced single draw
	EventPlayerDrawPenalty GameEventType = "player_draw_penalty" // pending draw2/wild4 resolved
	EventPlayerPlay        GameEventType = "player_play"         // card moved to the discard pile
	EventPlayerInvalidMove GameEventType = "player_invalid_move" // selected card failed the legality check
	EventPlayerUno         GameEventType = "player_uno"          // one card left
	EventGamePlayerTurn    GameEventType = "game_player_turn"    // turn passed
	EventGameEnd           GameEventType = "game_end"
)

// EventUser identifies the acting player in a GameEvent.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// GameEvent holds data about something that happened in the game, in a consistent format.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	User    *EventUser             `json:"user,omitempty"`
	Card    *models.Card           `json:"card,omitempty"`
	Color   models.Color           `json:"color,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// UnoGame holds the entire state of a single two-player game.
// It is driven by one goroutine; nothing in it is synchronized.
type UnoGame struct {
	ID uuid.UUID

	Players     []*models.Player
	Deck        []models.Card // draw pile, top is the last element
	DiscardPile []models.Card // top is the last element

	CurrentPlayerIndex int
	Direction          int
	ActiveColor        models.Color
	PendingDraw        int
	PendingSkip        bool
	TurnID             int

	GameOver bool
	Winner   *models.Player

	// BroadcastFn receives every game event. If nil, no broadcast is done.
	BroadcastFn func(ev GameEvent)

	rng Source
}

// NewUnoGame builds, shuffles and deals a deck for the named players and
// reveals the first non-wild card as the starting discard.
func NewUnoGame(names []string, rng Source) (*UnoGame, error) {
	if len(names) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, len(names))
	}
	if rng == nil {
		rng = NewSource(0)
	}

	g := &UnoGame{
		ID:        uuid.New(),
		Direction: 1,
		rng:       rng,
	}
	for _, name := range names {
		g.Players = append(g.Players, &models.Player{
			ID:   uuid.New(),
			Name: name,
			Hand: make([]models.Card, 0, HandSize),
		})
	}

	g.Deck = BuildDeck()
	Shuffle(g.rng, g.Deck)

	for i := 0; i < HandSize; i++ {
		for _, p := range g.Players {
			c, _ := pop(&g.Deck)
			p.Hand = append(p.Hand, c)
		}
	}

	top, ok := revealTopCard(&g.Deck)
	if !ok {
		// a 108-card deck always has non-wild cards left after the deal
		return nil, fmt.Errorf("reveal starting card: %w", ErrNoCardsInCirculation)
	}
	g.DiscardPile = []models.Card{top}
	g.ActiveColor = top.Color

	log.WithFields(log.Fields{
		"game_id":  g.ID,
		"top_card": top.String(),
		"deck":     len(g.Deck),
	}).Debug("game dealt")

	return g, nil
}

// Start announces the opening state. Call it after BroadcastFn is set.
func (g *UnoGame) Start() {
	top := g.TopCard()
	g.fireEvent(GameEvent{
		Type:  EventGameStart,
		Card:  &top,
		Color: g.ActiveColor,
		User:  eventUser(g.CurrentPlayer()),
	})
}

// CurrentPlayer returns the player whose turn it is.
func (g *UnoGame) CurrentPlayer() *models.Player {
	return g.Players[g.CurrentPlayerIndex]
}

// TopCard returns the top of the discard pile.
func (g *UnoGame) TopCard() models.Card {
	return g.DiscardPile[len(g.DiscardPile)-1]
}

// CardCount returns the number of cards in the draw pile, discard pile and all hands.
func (g *UnoGame) CardCount() int {
	n := len(g.Deck) + len(g.DiscardPile)
	for _, p := range g.Players {
		n += len(p.Hand)
	}
	return n
}

// DrawCards moves count cards from the draw pile into p's hand, one at a
// time. An empty draw pile is rebuilt from everything under the top discard.
func (g *UnoGame) DrawCards(p *models.Player, count int) error {
	for i := 0; i < count; i++ {
		if len(g.Deck) == 0 {
			g.reshuffleDiscardPile()
		}
		c, ok := pop(&g.Deck)
		if !ok {
			return fmt.Errorf("game %s: draw %d of %d for %s: %w", g.ID, i+1, count, p.Name, ErrNoCardsInCirculation)
		}
		p.Hand = append(p.Hand, c)
	}
	return nil
}

func (g *UnoGame) reshuffleDiscardPile() {
	top, ok := pop(&g.DiscardPile)
	if !ok {
		return
	}
	g.Deck = g.DiscardPile
	g.DiscardPile = []models.Card{top}
	Shuffle(g.rng, g.Deck)

	log.WithFields(log.Fields{
		"game_id": g.ID,
		"deck":    len(g.Deck),
	}).Debug("reshuffled discard pile into draw pile")
	g.fireEvent(GameEvent{
		Type:    EventGameReshuffle,
		Payload: map[string]interface{}{"deck_size": len(g.Deck)},
	})
}

// AdvanceTurn passes the turn along Direction, skipping one extra player
// when PendingSkip is set. With two players a skip hands the turn straight back.
func (g *UnoGame) AdvanceTurn() {
	step := 1
	if g.PendingSkip {
		step = 2
	}
	g.PendingSkip = false

	n := len(g.Players)
	g.CurrentPlayerIndex = ((g.CurrentPlayerIndex+step*g.Direction)%n + n) % n
	g.TurnID++

	g.fireEvent(GameEvent{
		Type:    EventGamePlayerTurn,
		User:    eventUser(g.CurrentPlayer()),
		Payload: map[string]interface{}{"turn_id": g.TurnID},
	})
}

func (g *UnoGame) fireEvent(ev GameEvent) {
	if log.IsLevelEnabled(log.TraceLevel) {
		log.WithField("game_id", g.ID).Trace(string(convertEventToBytes(ev)))
	}
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

func eventUser(p *models.Player) *EventUser {
	return &EventUser{ID: p.ID, Name: p.Name}
}
