package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jxdata/portal/internal/config"
	"github.com/jxdata/portal/internal/quiz"
	"github.com/redis/go-redis/v9"
)

// maxUpdateRetries bounds optimistic-lock retries per Update call.
const maxUpdateRetries = 5

// QuizSessionRedisRepository stores quiz sessions as JSON strings in Redis.
// Every write refreshes the key's TTL so idle sessions expire.
type QuizSessionRedisRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewQuizSessionRedisRepository(rdb *redis.Client, ttl time.Duration) *QuizSessionRedisRepository {
	return &QuizSessionRedisRepository{rdb: rdb, ttl: ttl}
}

// Get returns the visitor's session or ErrSessionNotFound.
func (r *QuizSessionRedisRepository) Get(ctx context.Context, visitorID string) (*quiz.Session, error) {
	return r.load(ctx, r.rdb, config.CacheKey.QuizSessionKey(visitorID))
}

// Update applies fn to the visitor's session inside a WATCH/MULTI transaction.
// A missing session starts from the initial state. If fn returns an error
// nothing is written.
func (r *QuizSessionRedisRepository) Update(ctx context.Context, visitorID string, fn func(*quiz.Session) error) (*quiz.Session, error) {
	key := config.CacheKey.QuizSessionKey(visitorID)

	var updated *quiz.Session
	txf := func(tx *redis.Tx) error {
		s, err := r.load(ctx, tx, key)
		if errors.Is(err, ErrSessionNotFound) {
			s = quiz.NewSession()
		} else if err != nil {
			return err
		}

		if err := fn(s); err != nil {
			return err
		}

		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode quiz session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = s
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, ErrSessionConflict
}

// Delete removes the visitor's session.
func (r *QuizSessionRedisRepository) Delete(ctx context.Context, visitorID string) error {
	return r.rdb.Del(ctx, config.CacheKey.QuizSessionKey(visitorID)).Err()
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *QuizSessionRedisRepository) load(ctx context.Context, c stringGetter, key string) (*quiz.Session, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get quiz session: %w", err)
	}

	var s quiz.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode quiz session: %w", err)
	}
	if s.Answers == nil {
		s.Answers = []int{}
	}

	return &s, nil
}
