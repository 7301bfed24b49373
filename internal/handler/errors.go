package handler

import (
	"errors"
	"net/http"

	"github.com/jxdata/portal/internal/quiz"
	"github.com/jxdata/portal/internal/repository"
	"github.com/jxdata/portal/internal/response"
	"github.com/jxdata/portal/internal/service"
)

// quizErrorStatus maps quiz domain errors to an HTTP status and error code.
func quizErrorStatus(err error) (int, response.ErrCode) {
	switch {
	case errors.Is(err, quiz.ErrOptionOutOfRange):
		return http.StatusBadRequest, response.ErrOptionOutOfRange
	case errors.Is(err, quiz.ErrCompleted):
		return http.StatusConflict, response.ErrQuizCompleted
	case errors.Is(err, quiz.ErrNotCompleted):
		return http.StatusConflict, response.ErrQuizNotCompleted
	case errors.Is(err, service.ErrStaleStep):
		return http.StatusConflict, response.ErrStaleStep
	case errors.Is(err, repository.ErrSessionConflict):
		return http.StatusConflict, response.ErrConflict
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}
