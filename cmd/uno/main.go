// cmd/uno/main.go
package main

import (
	"errors"
	"io"
	"os"

	"github.com/jason-s-yu/uno/internal/config"
	"github.com/jason-s-yu/uno/internal/console"
	"github.com/jason-s-yu/uno/internal/game"
	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	level, err := cfg.ConsoleLevel()
	if err != nil {
		log.Fatal(err)
	}
	// the terminal belongs to the game; logs go to stderr
	log.SetOutput(os.Stderr)
	log.SetLevel(level)

	g, err := game.NewUnoGame([]string{cfg.PlayerOne, cfg.PlayerTwo}, game.NewSource(cfg.Seed))
	if err != nil {
		log.Fatalf("failed to set up game: %v", err)
	}

	c := console.New(os.Stdin, os.Stdout)
	c.Clear = "\033[H\033[2J"
	g.BroadcastFn = c.HandleEvent

	winner, err := g.Run(c)
	if errors.Is(err, io.EOF) {
		log.Info("input closed, leaving game")
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("game %s stopped: %v", g.ID, err)
	}
	log.WithField("winner", winner.Name).Debug("game finished")
}
