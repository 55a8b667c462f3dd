package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GreetGuard реализует ports.GreetGuard на redis: SETNX с TTL на пару чат/пользователь.
type GreetGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewGreetGuard(rdb *redis.Client, ttl time.Duration) *GreetGuard {
	return &GreetGuard{rdb: rdb, ttl: ttl}
}

func (g *GreetGuard) FirstSeen(ctx context.Context, chatID, userID int64) (bool, error) {
	key := fmt.Sprintf("greet:%d:%d", chatID, userID)

	first, err := g.rdb.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("greet setnx %s: %w", key, err)
	}
	return first, nil
}
