package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/foodcourt/shopfront/internal/config"
	"github.com/foodcourt/shopfront/internal/session"
	"github.com/redis/go-redis/v9"
)

// redisStore keeps sessions in Redis with a per-session TTL, so a shopfront
// instance can be restarted (or scaled out) without dropping live carts.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient connects to the configured Redis instance and verifies the
// connection before returning.
func NewRedisClient(cfg *config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func (r *redisStore) Get(ctx context.Context, id string) (*session.Session, error) {

	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {

		if err == redis.Nil {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get session %s from redis: %w", id, err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}

	return &sess, nil
}

func (r *redisStore) Save(ctx context.Context, sess *session.Session) error {

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", sess.ID, err)
	}

	if err := r.client.Set(ctx, sessionKey(sess.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session %s in redis: %w", sess.ID, err)
	}

	return nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {

	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s from redis: %w", id, err)
	}

	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
