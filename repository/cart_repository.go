package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mathdino/cardapio-backend/models"

	"github.com/redis/go-redis/v9"
)

// CartRepository persists session carts in redis as JSON with a TTL,
// keyed per store and session.
type CartRepository interface {
	Get(ctx context.Context, storeID, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, storeID, sessionID string) error
}

// RedisCartRepository implements CartRepository.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartRepository creates a new RedisCartRepository.
func NewRedisCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &RedisCartRepository{client: client, ttl: ttl}
}

func (r *RedisCartRepository) key(storeID, sessionID string) string {
	return fmt.Sprintf("cart:%s:%s", storeID, sessionID)
}

// Get returns the cart for the session, or nil when none exists.
func (r *RedisCartRepository) Get(ctx context.Context, storeID, sessionID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(storeID, sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *RedisCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(cart.StoreID, cart.SessionID), data, r.ttl).Err()
}

func (r *RedisCartRepository) Delete(ctx context.Context, storeID, sessionID string) error {
	return r.client.Del(ctx, r.key(storeID, sessionID)).Err()
}
