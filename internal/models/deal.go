// internal/models/deal.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Deal is a fresh two-hand deal produced by the deal service. It is persisted
// as three separate JSON documents: both hands and the revealed top card.
type Deal struct {
	ID           uuid.UUID `json:"id"`
	PlayerHand   []Card    `json:"hand"`
	OpponentHand []Card    `json:"opponent_hand"`
	TopCard      Card      `json:"top_card"`
	CreatedAt    time.Time `json:"created_at"`
}
