// internal/store/redis.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jason-s-yu/uno/internal/models"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisStore keeps the current deal under three keys sharing a prefix.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore connects to addr and checks the connection with a ping.
func NewRedisStore(ctx context.Context, addr string, db int, prefix string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	log.WithFields(log.Fields{"addr": addr, "db": db}).Info("connected to redis deal store")
	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *RedisStore) keys() (hand, opp, top string) {
	return s.prefix + ":hand", s.prefix + ":opponent_hand", s.prefix + ":topcard"
}

// SaveDeal writes all three documents in one MULTI/EXEC so readers see either the old deal or the new one.
func (s *RedisStore) SaveDeal(ctx context.Context, d models.Deal) error {
	hand, opp, top, err := marshalDeal(d)
	if err != nil {
		return err
	}
	handKey, oppKey, topKey := s.keys()
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, handKey, hand, 0)
		pipe.Set(ctx, oppKey, opp, 0)
		pipe.Set(ctx, topKey, top, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write deal to Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadDeal(ctx context.Context) (models.Deal, error) {
	handKey, oppKey, topKey := s.keys()
	vals, err := s.rdb.MGet(ctx, handKey, oppKey, topKey).Result()
	if err != nil {
		return models.Deal{}, fmt.Errorf("failed to read deal from Redis: %w", err)
	}

	docs := make([][]byte, len(vals))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			return models.Deal{}, ErrNoDeal
		}
		docs[i] = []byte(str)
	}

	var d models.Deal
	if err := unmarshalDeal(&d, docs[0], docs[1], docs[2]); err != nil {
		return models.Deal{}, err
	}
	return d, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
