// internal/store/store.go

// Package store persists the most recent deal made by the deal service.
// Every backend keeps the player hand, the opponent hand and the top card
// as three separate JSON documents and overwrites them on each save.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jason-s-yu/uno/internal/config"
	"github.com/jason-s-yu/uno/internal/models"
)

// ErrNoDeal is returned by LoadDeal when nothing has been saved yet.
var ErrNoDeal = errors.New("no deal has been saved")

// DealStore is safe for concurrent use.
type DealStore interface {
	SaveDeal(ctx context.Context, d models.Deal) error
	LoadDeal(ctx context.Context) (models.Deal, error)
	Close() error
}

// Open builds the store selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config) (DealStore, error) {
	switch cfg.StoreBackend {
	case "", "file":
		return NewFileStore(cfg.DataDir)
	case "postgres":
		return NewPostgresStore(ctx, cfg.DatabaseURL)
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
