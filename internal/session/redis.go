package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-slots/internal/httperr"
)

const keyPrefix = "barber-slots:editor:"

// RedisStore keeps editor state in redis so any API replica can serve
// the next step of a batch.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) (EditorState, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return EditorState{}, nil
	}
	if err != nil {
		return EditorState{}, httperr.Storage("session_load", err)
	}

	var st EditorState
	if err := json.Unmarshal(raw, &st); err != nil {
		return EditorState{}, nil
	}
	return st, nil
}

func (r *RedisStore) Save(ctx context.Context, sessionID string, st EditorState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, keyPrefix+sessionID, raw, r.ttl).Err(); err != nil {
		return httperr.Storage("session_save", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return httperr.Storage("session_clear", err)
	}
	return nil
}
