package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// TTL expires sessions after the given duration; zero keeps them.
	TTL time.Duration
	// Prefix namespaces keys; defaults to "mindtower:game:".
	Prefix string
}

// RedisStore keeps each session as a JSON string and indexes a player's
// sessions in a sorted set scored by creation time.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return NewRedisStoreFromClient(client, cfg), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, cfg RedisConfig) *RedisStore {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "mindtower:game:"
	}
	return &RedisStore{client: client, ttl: cfg.TTL, prefix: prefix}
}

func (r *RedisStore) sessionKey(id string) string { return r.prefix + "session:" + id }
func (r *RedisStore) userKey(user string) string { return r.prefix + "user:" + user }

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &sess, nil
}

func (r *RedisStore) Put(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.sessionKey(sess.ID), data, r.ttl)
		p.ZAdd(ctx, r.userKey(sess.UserID), redis.Z{
			Score:  float64(sess.CreatedAt.UnixNano()),
			Member: sess.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put session: %w", err)
	}
	return nil
}

// List walks the player's index newest first. Index entries whose session
// has expired are dropped from the index.
func (r *RedisStore) List(ctx context.Context, f Filter) ([]*Session, error) {
	ids, err := r.client.ZRevRange(ctx, r.userKey(f.UserID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list sessions: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.sessionKey(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load sessions: %w", err)
	}

	limit := f.limit()
	var out []*Session
	var stale []any
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var sess Session
		if err := json.Unmarshal([]byte(str), &sess); err != nil {
			continue
		}
		if f.match(&sess) && len(out) < limit {
			out = append(out, &sess)
		}
	}
	if len(stale) > 0 {
		r.client.ZRem(ctx, r.userKey(f.UserID), stale...)
	}
	return out, nil
}

// Close closes the underlying client.
func (r *RedisStore) Close() error { return r.client.Close() }

var _ Store = (*RedisStore)(nil)
