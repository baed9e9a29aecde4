// internal/models/player.go
package models

import "github.com/google/uuid"

// Player is one seat at the table and the cards it holds.
type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Hand []Card    `json:"hand"`
}

// RemoveCard takes the card at idx out of the hand, keeping the order of the rest.
func (p *Player) RemoveCard(idx int) Card {
	c := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	return c
}
