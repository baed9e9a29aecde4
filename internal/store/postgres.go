// internal/store/postgres.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/uno/internal/models"
	log "github.com/sirupsen/logrus"
)

const currentSlot = "current"

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS uno_deal (
		slot          TEXT PRIMARY KEY,
		deal_id       UUID NOT NULL,
		player_hand   JSONB NOT NULL,
		opponent_hand JSONB NOT NULL,
		top_card      JSONB NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)
`

// PostgresStore keeps the current deal in a single uno_deal row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and creates the uno_deal table if needed.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres store")
	}
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create uno_deal table: %w", err)
	}

	log.WithField("host", config.ConnConfig.Host).Info("connected to postgres deal store")
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) SaveDeal(ctx context.Context, d models.Deal) error {
	hand, opp, top, err := marshalDeal(d)
	if err != nil {
		return err
	}
	q := `
		INSERT INTO uno_deal (slot, deal_id, player_hand, opponent_hand, top_card, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slot) DO UPDATE
		SET deal_id = $2, player_hand = $3, opponent_hand = $4, top_card = $5, created_at = $6
	`
	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, currentSlot, d.ID, hand, opp, top, d.CreatedAt)
		return e
	})
	if err != nil {
		return fmt.Errorf("tx upsert deal: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadDeal(ctx context.Context) (models.Deal, error) {
	q := `
		SELECT deal_id, player_hand, opponent_hand, top_card, created_at
		FROM uno_deal
		WHERE slot = $1
	`
	var d models.Deal
	var hand, opp, top []byte
	err := s.pool.QueryRow(ctx, q, currentSlot).Scan(&d.ID, &hand, &opp, &top, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Deal{}, ErrNoDeal
	}
	if err != nil {
		return models.Deal{}, fmt.Errorf("select deal: %w", err)
	}
	if err := unmarshalDeal(&d, hand, opp, top); err != nil {
		return models.Deal{}, err
	}
	return d, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// marshalDeal encodes the three documents every backend stores.
func marshalDeal(d models.Deal) (hand, opp, top []byte, err error) {
	if hand, err = json.Marshal(d.PlayerHand); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal player hand: %w", err)
	}
	if opp, err = json.Marshal(d.OpponentHand); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal opponent hand: %w", err)
	}
	if top, err = json.Marshal(d.TopCard); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal top card: %w", err)
	}
	return hand, opp, top, nil
}

func unmarshalDeal(d *models.Deal, hand, opp, top []byte) error {
	if err := json.Unmarshal(hand, &d.PlayerHand); err != nil {
		return fmt.Errorf("failed to decode player hand: %w", err)
	}
	if err := json.Unmarshal(opp, &d.OpponentHand); err != nil {
		return fmt.Errorf("failed to decode opponent hand: %w", err)
	}
	if err := json.Unmarshal(top, &d.TopCard); err != nil {
		return fmt.Errorf("failed to decode top card: %w", err)
	}
	return nil
}
