package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const consumedKeyPrefix = "onetime:consumed:"

// RedisCredentialGuard marks redeemed one-time credentials in Redis with a
// SET NX, so a replay sees the key and is rejected even across server
// instances.
type RedisCredentialGuard struct {
	client *redis.Client
}

func NewRedisCredentialGuard(client *redis.Client) *RedisCredentialGuard {
	return &RedisCredentialGuard{client: client}
}

func (g *RedisCredentialGuard) Consume(ctx context.Context, credentialHash string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, consumedKeyPrefix+credentialHash, 1, ttl).Result()
}
