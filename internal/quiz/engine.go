// Package quiz implements the lead-qualification quiz: a fixed, forward-only
// sequence of questions whose answers select a set of recommended services.
package quiz

import (
	"errors"
	"fmt"
)

// Domain errors returned by Engine operations.
var (
	ErrCompleted        = errors.New("quiz already completed")
	ErrNotCompleted     = errors.New("quiz is not completed")
	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrInvalidSession   = errors.New("invalid quiz session")
)

// affirmativeOptions is the number of leading options that signal interest.
// The option after them is always the "no need" choice.
const affirmativeOptions = 2

// Question is one static quiz question.
type Question struct {
	ID             int      `yaml:"id" json:"id"`
	Prompt         string   `yaml:"prompt" json:"prompt"`
	Options        []string `yaml:"options" json:"options"`
	Recommendation string   `yaml:"recommendation" json:"recommendation"`
	Glyph          string   `yaml:"glyph" json:"glyph"`
}

// Recommendation is a service surfaced by an affirmative answer.
type Recommendation struct {
	QuestionID int    `json:"question_id"`
	Label      string `json:"label"`
	Glyph      string `json:"glyph"`
}

// Session is a single visitor's progress through the quiz.
type Session struct {
	CurrentIndex int   `json:"current_index"`
	Answers      []int `json:"answers"`
	Completed    bool  `json:"completed"`
}

// Engine owns the question list and applies transitions to sessions.
// It holds no per-visitor state and is safe for concurrent use.
type Engine struct {
	questions []Question
}

// NewEngine creates an Engine over a fixed question list.
func NewEngine(questions []Question) (*Engine, error) {
	if len(questions) == 0 {
		return nil, errors.New("quiz requires at least one question")
	}
	for i, q := range questions {
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d has no options", i+1)
		}
	}

	qs := make([]Question, len(questions))
	copy(qs, questions)

	return &Engine{questions: qs}, nil
}

// Questions returns a copy of the question list.
func (e *Engine) Questions() []Question {
	qs := make([]Question, len(e.questions))
	copy(qs, e.questions)
	return qs
}

// Len returns the number of questions.
func (e *Engine) Len() int {
	return len(e.questions)
}

// NewSession returns a session positioned at the first question.
func NewSession() *Session {
	return &Session{
		CurrentIndex: 0,
		Answers:      []int{},
		Completed:    false,
	}
}

// NewSession returns a session positioned at the first question.
func (e *Engine) NewSession() *Session {
	return NewSession()
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	answers := make([]int, len(s.Answers))
	copy(answers, s.Answers)
	return &Session{
		CurrentIndex: s.CurrentIndex,
		Answers:      answers,
		Completed:    s.Completed,
	}
}

// Current returns the question the session is waiting on.
func (e *Engine) Current(s *Session) (Question, error) {
	if s.Completed {
		return Question{}, ErrCompleted
	}
	return e.questions[s.CurrentIndex], nil
}

// Answer records option for the current question and advances the session.
// Answering the last question completes the session without moving the index.
func (e *Engine) Answer(s *Session, option int) error {
	if s.Completed {
		return ErrCompleted
	}

	q := e.questions[s.CurrentIndex]
	if option < 0 || option >= len(q.Options) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOptionOutOfRange, option, len(q.Options))
	}

	s.Answers = append(s.Answers, option)
	if s.CurrentIndex < len(e.questions)-1 {
		s.CurrentIndex++
	} else {
		s.Completed = true
	}

	return nil
}

// Reset returns the session to its initial state. It is always allowed.
func (e *Engine) Reset(s *Session) {
	s.CurrentIndex = 0
	s.Answers = []int{}
	s.Completed = false
}

// Recommendations lists the services for every question answered with an
// affirmative option, in question order.
func (e *Engine) Recommendations(s *Session) ([]Recommendation, error) {
	if !s.Completed {
		return nil, ErrNotCompleted
	}

	recs := make([]Recommendation, 0, len(e.questions))
	for i, q := range e.questions {
		if s.Answers[i] < affirmativeOptions {
			recs = append(recs, Recommendation{
				QuestionID: q.ID,
				Label:      q.Recommendation,
				Glyph:      q.Glyph,
			})
		}
	}

	return recs, nil
}

// Validate checks a session restored from storage against the engine's
// questions.
func (e *Engine) Validate(s *Session) error {
	n := len(e.questions)

	if s.Completed {
		if len(s.Answers) != n || s.CurrentIndex != n-1 {
			return fmt.Errorf("%w: completed with %d answers at index %d", ErrInvalidSession, len(s.Answers), s.CurrentIndex)
		}
	} else {
		if s.CurrentIndex < 0 || s.CurrentIndex >= n {
			return fmt.Errorf("%w: index %d", ErrInvalidSession, s.CurrentIndex)
		}
		if len(s.Answers) != s.CurrentIndex {
			return fmt.Errorf("%w: %d answers at index %d", ErrInvalidSession, len(s.Answers), s.CurrentIndex)
		}
	}

	for i, a := range s.Answers {
		if a < 0 || a >= len(e.questions[i].Options) {
			return fmt.Errorf("%w: answer %d is %d", ErrInvalidSession, i, a)
		}
	}

	return nil
}
