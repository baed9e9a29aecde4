// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS uno_deal (
		slot          TEXT PRIMARY KEY,
		deal_id       TEXT NOT NULL,
		player_hand   TEXT NOT NULL,
		opponent_hand TEXT NOT NULL,
		top_card      TEXT NOT NULL,
		created_at    TEXT NOT NULL
	);`

// SQLiteStore keeps the current deal in a single uno_deal row of a local database file.
type SQLiteStore struct {
	conn *sql.DB
}

func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.WithField("dsn", dsn).Info("sqlite deal store ready")
	return &SQLiteStore{conn: db}, nil
}

func (s *SQLiteStore) SaveDeal(ctx context.Context, d models.Deal) error {
	hand, opp, top, err := marshalDeal(d)
	if err != nil {
		return err
	}
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO uno_deal (slot, deal_id, player_hand, opponent_hand, top_card, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			deal_id = excluded.deal_id,
			player_hand = excluded.player_hand,
			opponent_hand = excluded.opponent_hand,
			top_card = excluded.top_card,
			created_at = excluded.created_at`,
		currentSlot, d.ID.String(), string(hand), string(opp), string(top), d.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert deal: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit deal: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadDeal(ctx context.Context) (models.Deal, error) {
	var id, hand, opp, top, created string
	err := s.conn.QueryRowContext(ctx,
		`SELECT deal_id, player_hand, opponent_hand, top_card, created_at FROM uno_deal WHERE slot = ?`,
		currentSlot,
	).Scan(&id, &hand, &opp, &top, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Deal{}, ErrNoDeal
	}
	if err != nil {
		return models.Deal{}, fmt.Errorf("select deal: %w", err)
	}

	var d models.Deal
	if d.ID, err = uuid.Parse(id); err != nil {
		return models.Deal{}, fmt.Errorf("invalid deal id %q: %w", id, err)
	}
	if d.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return models.Deal{}, fmt.Errorf("invalid deal timestamp %q: %w", created, err)
	}
	if err := unmarshalDeal(&d, []byte(hand), []byte(opp), []byte(top)); err != nil {
		return models.Deal{}, err
	}
	return d, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
