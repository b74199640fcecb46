package cart

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redis-backed carts expire after a month of inactivity.
const redisCartTTL = 30 * 24 * time.Hour

// RedisStorage persists the serialized cart under cart-storage:<session>.
type RedisStorage struct {
	client *redis.Client
	key    string
}

func NewRedisStorage(client *redis.Client, sessionID string) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    StorageKey + ":" + sessionID,
	}
}

func (r *RedisStorage) Load() ([]byte, error) {
	data, err := r.client.Get(context.Background(), r.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisStorage) Save(data []byte) error {
	return r.client.Set(context.Background(), r.key, data, redisCartTTL).Err()
}
