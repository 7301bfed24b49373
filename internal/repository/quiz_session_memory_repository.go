package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jxdata/portal/internal/quiz"
)

// QuizSessionMemoryRepository keeps quiz sessions in a bounded, expiring LRU
// inside the process. Sessions are lost on restart.
type QuizSessionMemoryRepository struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *quiz.Session]
}

func NewQuizSessionMemoryRepository(size int, ttl time.Duration) *QuizSessionMemoryRepository {
	return &QuizSessionMemoryRepository{
		cache: expirable.NewLRU[string, *quiz.Session](size, nil, ttl),
	}
}

func (r *QuizSessionMemoryRepository) Get(_ context.Context, visitorID string) (*quiz.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.cache.Get(visitorID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (r *QuizSessionMemoryRepository) Update(_ context.Context, visitorID string, fn func(*quiz.Session) error) (*quiz.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.cache.Get(visitorID)
	if ok {
		s = s.Clone()
	} else {
		s = quiz.NewSession()
	}

	if err := fn(s); err != nil {
		return nil, err
	}

	r.cache.Add(visitorID, s.Clone())
	return s, nil
}

func (r *QuizSessionMemoryRepository) Delete(_ context.Context, visitorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Remove(visitorID)
	return nil
}

// Len reports the number of live sessions.
func (r *QuizSessionMemoryRepository) Len() int {
	return r.cache.Len()
}
