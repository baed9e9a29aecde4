// internal/console/console.go

// Package console drives an UnoGame from a terminal: it renders the table,
// reads card and color choices, and prints game notices.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
)

// Console implements game.Controller over a line-oriented reader and writer.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	// Clear is written before each render. The console binary sets it to an
	// ANSI clear-screen sequence; it is empty by default.
	Clear string
}

// New returns a Console reading answers from r and writing to w.
func New(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewReader(r), out: w}
}

// Render prints the top card, active color and the current player's hand with 1-based indices.
func (c *Console) Render(g *game.UnoGame) {
	p := g.CurrentPlayer()
	fmt.Fprint(c.out, c.Clear)
	fmt.Fprintf(c.out, "Top Card: %s\n", g.TopCard())
	fmt.Fprintf(c.out, "Current Color: %s\n", strings.ToUpper(string(g.ActiveColor)))
	fmt.Fprintf(c.out, "\n%s's hand:\n", p.Name)
	for i, card := range p.Hand {
		fmt.Fprintf(c.out, "%d: %s\n", i+1, card)
	}
}

// PromptCardChoice asks until it gets a number in [0, maxIndex].
func (c *Console) PromptCardChoice(maxIndex int) (int, error) {
	for {
		line, err := c.ask("\nChoose a card number to play (or 0 to draw): ")
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 0 || n > maxIndex {
			fmt.Fprintf(c.out, "Please enter a number from 0 to %d.\n", maxIndex)
			continue
		}
		return n, nil
	}
}

// PromptColorChoice asks until it gets red, yellow, green or blue.
func (c *Console) PromptColorChoice() (models.Color, error) {
	for {
		line, err := c.ask("Choose a color (red, yellow, green, blue): ")
		if err != nil {
			return "", err
		}
		if color, parseErr := models.ParseColor(line); parseErr == nil {
			return color, nil
		}
	}
}

// HandleEvent prints the notices a player at the terminal needs to see.
// Use it as the game's BroadcastFn.
func (c *Console) HandleEvent(ev game.GameEvent) {
	switch ev.Type {
	case game.EventPlayerDrawPenalty:
		fmt.Fprintf(c.out, "%s must draw %v cards.\n", ev.User.Name, ev.Payload["count"])
	case game.EventPlayerDraw:
		if forced, _ := ev.Payload["forced"].(bool); forced {
			fmt.Fprintln(c.out, "No playable cards. Drawing one...")
		}
	case game.EventPlayerInvalidMove:
		fmt.Fprintf(c.out, "Invalid move! %s cannot be played.\n", ev.Card)
	case game.EventPlayerUno:
		fmt.Fprintln(c.out, "UNO!")
		c.pause()
	case game.EventGameReshuffle:
		fmt.Fprintln(c.out, "Draw pile empty, reshuffling the discard pile.")
	case game.EventGameEnd:
		fmt.Fprint(c.out, c.Clear)
		fmt.Fprintf(c.out, "%s WINS! 🏆\n", ev.User.Name)
	}
}

// pause waits for Enter. A closed input is ignored here; the next prompt reports it.
func (c *Console) pause() {
	_, _ = c.ask("Press Enter...")
}

func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
