package service

import (
	"io"
	"testing"
	"time"

	"github.com/jxdata/portal/internal/content"
	"github.com/jxdata/portal/internal/quiz"
	"github.com/jxdata/portal/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testLog = zerolog.New(io.Discard)

func newTestQuizService(t *testing.T) (*QuizService, *repository.QuizSessionMemoryRepository) {
	t.Helper()

	catalog, err := content.Load("")
	require.NoError(t, err)

	engine, err := quiz.NewEngine(catalog.Questions)
	require.NoError(t, err)

	store := repository.NewQuizSessionMemoryRepository(100, time.Hour)
	return NewQuizService(engine, store, testLog), store
}

func intPtr(v int) *int {
	return &v
}
