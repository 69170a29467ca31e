package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopcore/storefront/internal/cart/domain"
)

const keyPrefix = "guest_cart:"

// GuestCartStore holds guest carts in Redis as JSON blobs with a TTL.
// Every write refreshes the TTL so active sessions do not expire mid-browse.
type GuestCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGuestCartStore creates a Redis-backed guest cart store.
func NewGuestCartStore(client *redis.Client, ttl time.Duration) *GuestCartStore {
	return &GuestCartStore{client: client, ttl: ttl}
}

func (s *GuestCartStore) GetItems(ctx context.Context, token string) ([]domain.Item, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Item{}, nil
		}
		return nil, fmt.Errorf("get guest cart %s: %w", token, err)
	}

	var items []domain.Item
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode guest cart %s: %w", token, err)
	}
	return items, nil
}

func (s *GuestCartStore) SetItems(ctx context.Context, token string, items []domain.Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode guest cart %s: %w", token, err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("set guest cart %s: %w", token, err)
	}
	return nil
}

func (s *GuestCartStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete guest cart %s: %w", token, err)
	}
	return nil
}
