package redis

import (
	"context"
	"errors"
	"fmt"

	"wayfinder/business/quota"

	"github.com/redis/go-redis/v9"
)

const quotaKeyPrefix = "quota:user:"

// consumeScript performs the conditional decrement server-side so it is
// atomic across any number of API instances. Returns the new balance on
// success, -1 when the key is missing, -2 when the balance is insufficient.
var consumeScript = redis.NewScript(`
local remaining = redis.call("GET", KEYS[1])
if remaining == false then
	return -1
end
remaining = tonumber(remaining)
local amount = tonumber(ARGV[1])
if remaining < amount then
	return -2
end
return redis.call("DECRBY", KEYS[1], amount)
`)

// QuotaStore is the Redis-backed quota backend.
type QuotaStore struct {
	client *redis.Client
}

var _ quota.Store = (*QuotaStore)(nil)

func NewQuotaStore(client *redis.Client) *QuotaStore {
	return &QuotaStore{client: client}
}

func quotaKey(userID string) string {
	return quotaKeyPrefix + userID
}

func (s *QuotaStore) Get(ctx context.Context, userID string) (int, bool, error) {
	val, err := s.client.Get(ctx, quotaKey(userID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get quota from Redis: %w", err)
	}

	return val, true, nil
}

func (s *QuotaStore) ConsumeIfAvailable(ctx context.Context, userID string, amount int) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive, got %d", amount)
	}

	res, err := consumeScript.Run(ctx, s.client, []string{quotaKey(userID)}, amount).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to run quota consume script: %w", err)
	}

	return res >= 0, nil
}

func (s *QuotaStore) Set(ctx context.Context, userID string, value int) error {
	if value < 0 {
		return fmt.Errorf("value must not be negative, got %d", value)
	}

	// no TTL: the daily reset is triggered externally via Set
	if err := s.client.Set(ctx, quotaKey(userID), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set quota in Redis: %w", err)
	}

	return nil
}
