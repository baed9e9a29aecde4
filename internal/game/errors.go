// internal/game/errors.go
package game

import "errors"

var (
	ErrInvalidPlayerCount   = errors.New("game requires exactly 2 players")
	ErrNoCardsInCirculation = errors.New("draw pile and discard pile are both exhausted")
	ErrGameOver             = errors.New("game is over")
	ErrPendingDraw          = errors.New("player must resolve pending draw before acting")
	ErrInvalidCardIndex     = errors.New("card index out of range")
	ErrIllegalPlay          = errors.New("card cannot be played on the current top card")
	ErrInvalidColor         = errors.New("wild color must be red, yellow, green or blue")
)
