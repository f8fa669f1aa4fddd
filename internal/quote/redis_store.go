package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"solar-sizer/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps quotes as JSON entries of a redis list. RPUSH is atomic on
// the server, so any number of API instances may append concurrently.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(addr, key string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb, key: key}
}

// Ping checks connectivity; used at start-up.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Append(ctx context.Context, q model.QuoteRequest) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote %s: %w", q.QuoteID, err)
	}
	if err := r.client.RPush(ctx, r.key, raw).Err(); err != nil {
		return fmt.Errorf("append quote %s: %w", q.QuoteID, err)
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context) ([]model.QuoteRequest, error) {
	vals, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	quotes := make([]model.QuoteRequest, 0, len(vals))
	for i, v := range vals {
		var q model.QuoteRequest
		if err := json.Unmarshal([]byte(v), &q); err != nil {
			slog.Warn("skipping undecodable quote entry", "key", r.key, "index", i, "error", err)
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
