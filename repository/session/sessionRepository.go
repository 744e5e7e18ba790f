package sessionrepo

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps one slot per visitor: the id of their current open order.
type Store interface {
	// OrderID returns the bound order id, or 0 when the slot is empty.
	OrderID(ctx context.Context, sessionID string) (int64, error)
	Bind(ctx context.Context, sessionID string, orderID int64) error
	Clear(ctx context.Context, sessionID string) error
}

type store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) Store {
	return &store{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string { return "session:order:" + sessionID }

func (s *store) OrderID(ctx context.Context, sessionID string) (int64, error) {
	v, err := s.rdb.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// corrupt slot, treat as no active basket
		return 0, nil
	}
	return id, nil
}

func (s *store) Bind(ctx context.Context, sessionID string, orderID int64) error {
	return s.rdb.Set(ctx, key(sessionID), orderID, s.ttl).Err()
}

func (s *store) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, key(sessionID)).Err()
}
