package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jxdata/portal/internal/quiz"
	"github.com/jxdata/portal/internal/repository"
	"github.com/jxdata/portal/internal/response"
	"github.com/jxdata/portal/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestQuizErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   response.ErrCode
	}{
		{err: fmt.Errorf("%w: 5 not in [0, 3)", quiz.ErrOptionOutOfRange), status: http.StatusBadRequest, code: response.ErrOptionOutOfRange},
		{err: quiz.ErrCompleted, status: http.StatusConflict, code: response.ErrQuizCompleted},
		{err: quiz.ErrNotCompleted, status: http.StatusConflict, code: response.ErrQuizNotCompleted},
		{err: service.ErrStaleStep, status: http.StatusConflict, code: response.ErrStaleStep},
		{err: fmt.Errorf("update: %w", repository.ErrSessionConflict), status: http.StatusConflict, code: response.ErrConflict},
		{err: errors.New("redis down"), status: http.StatusInternalServerError, code: response.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			status, code := quizErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
