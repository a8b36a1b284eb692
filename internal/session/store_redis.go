package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// updateAttempts bounds the optimistic retries of Update under contention
const updateAttempts = 10

// RedisStore keeps sessions as JSON values that expire with the session
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (r *RedisStore) Save(ctx context.Context, s *Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(s.ID), data, ttl).Err()
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	val, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// Update is an optimistic read-modify-write: WATCH the key, apply fn, and
// write inside MULTI. A concurrent write aborts the transaction and the
// update is retried against the newer value.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*Session)) (*Session, error) {
	key := sessionKey(id)
	var updated *Session

	txf := func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNoSession
		}
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		var s Session
		if err := json.Unmarshal(val, &s); err != nil {
			return fmt.Errorf("failed to decode session: %w", err)
		}
		fn(&s)
		data, err := json.Marshal(&s)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, redis.KeepTTL)
			return nil
		})
		if err == nil {
			updated = &s
		}
		return err
	}

	for i := 0; i < updateAttempts; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("failed to update session %s: too many concurrent writes", id)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}
