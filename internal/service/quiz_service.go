package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jxdata/portal/internal/quiz"
	"github.com/jxdata/portal/internal/repository"
	"github.com/rs/zerolog"
)

// ErrStaleStep is returned when an answer targets a question the visitor is
// no longer on, e.g. a double-submitted form.
var ErrStaleStep = errors.New("stale quiz step")

// QuizSessionStore persists one quiz session per visitor.
type QuizSessionStore interface {
	Get(ctx context.Context, visitorID string) (*quiz.Session, error)
	Update(ctx context.Context, visitorID string, fn func(*quiz.Session) error) (*quiz.Session, error)
	Delete(ctx context.Context, visitorID string) error
}

// QuestionView is the client-facing part of a question.
type QuestionView struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Glyph   string   `json:"glyph"`
}

// QuizState is a snapshot of a visitor's quiz for rendering.
type QuizState struct {
	// Step is the 1-based number of the question being shown.
	Step            int                   `json:"step"`
	Total           int                   `json:"total"`
	Question        *QuestionView         `json:"question,omitempty"`
	Answers         []int                 `json:"answers"`
	Completed       bool                  `json:"completed"`
	Recommendations []quiz.Recommendation `json:"recommendations,omitempty"`
}

// QuizService runs engine transitions against stored visitor sessions.
type QuizService struct {
	engine *quiz.Engine
	store  QuizSessionStore
	log    zerolog.Logger
}

func NewQuizService(engine *quiz.Engine, store QuizSessionStore, log zerolog.Logger) *QuizService {
	return &QuizService{
		engine: engine,
		store:  store,
		log:    log.With().Str("component", "quiz_service").Logger(),
	}
}

// Engine exposes the underlying quiz engine.
func (s *QuizService) Engine() *quiz.Engine {
	return s.engine
}

// State returns the visitor's current quiz state without modifying it.
func (s *QuizService) State(ctx context.Context, visitorID string) (*QuizState, error) {
	sess, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return s.buildState(sess), nil
}

// Answer records option for the visitor's current question. When
// expectedStep is set it must match the current 1-based question number.
func (s *QuizService) Answer(ctx context.Context, visitorID string, option int, expectedStep *int) (*QuizState, error) {
	sess, err := s.store.Update(ctx, visitorID, func(sess *quiz.Session) error {
		s.repair(visitorID, sess)

		if expectedStep != nil && !sess.Completed && *expectedStep != sess.CurrentIndex+1 {
			return ErrStaleStep
		}
		return s.engine.Answer(sess, option)
	})
	if err != nil {
		return nil, err
	}

	if sess.Completed {
		s.log.Info().
			Str("visitor_id", visitorID).
			Ints("answers", sess.Answers).
			Msg("Quiz completed")
	}

	return s.buildState(sess), nil
}

// Reset returns the visitor's quiz to the first question.
func (s *QuizService) Reset(ctx context.Context, visitorID string) (*QuizState, error) {
	sess, err := s.store.Update(ctx, visitorID, func(sess *quiz.Session) error {
		s.engine.Reset(sess)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.buildState(sess), nil
}

// Recommendations returns the visitor's recommended services, or
// quiz.ErrNotCompleted while the quiz is in progress.
func (s *QuizService) Recommendations(ctx context.Context, visitorID string) ([]quiz.Recommendation, error) {
	sess, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	return s.engine.Recommendations(sess)
}

func (s *QuizService) load(ctx context.Context, visitorID string) (*quiz.Session, error) {
	sess, err := s.store.Get(ctx, visitorID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return s.engine.NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz session: %w", err)
	}

	s.repair(visitorID, sess)
	return sess, nil
}

// repair resets a stored session that no longer fits the question list,
// e.g. after the catalog changed between deploys.
func (s *QuizService) repair(visitorID string, sess *quiz.Session) {
	if err := s.engine.Validate(sess); err != nil {
		s.log.Warn().Err(err).Str("visitor_id", visitorID).Msg("Discarding invalid quiz session")
		s.engine.Reset(sess)
	}
}

func (s *QuizService) buildState(sess *quiz.Session) *QuizState {
	state := &QuizState{
		Step:      sess.CurrentIndex + 1,
		Total:     s.engine.Len(),
		Answers:   append([]int{}, sess.Answers...),
		Completed: sess.Completed,
	}

	if q, err := s.engine.Current(sess); err == nil {
		state.Question = &QuestionView{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
			Glyph:   q.Glyph,
		}
	}

	if recs, err := s.engine.Recommendations(sess); err == nil {
		state.Recommendations = recs
	}

	return state
}
