package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis, shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisClient opens a client for the session database.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: "citenote:session:"}
}

func (r *RedisStore) Load(ctx context.Context, id string) (Data, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, errors.Wrap(err, "session: load")
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, false, errors.Wrap(err, "session: decode")
	}
	return data, true, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, data Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return errors.Wrap(r.client.Set(ctx, r.prefix+id, raw, r.ttl).Err(), "session: save")
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(r.client.Del(ctx, r.prefix+id).Err(), "session: delete")
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
