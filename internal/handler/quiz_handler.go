package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jxdata/portal/internal/middleware"
	"github.com/jxdata/portal/internal/model"
	"github.com/jxdata/portal/internal/response"
	"github.com/jxdata/portal/internal/service"
	"github.com/jxdata/portal/internal/validator"
	"github.com/rs/zerolog"
)

// QuizHandler exposes the visitor's quiz over JSON.
type QuizHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
}

func NewQuizHandler(quizService *service.QuizService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		log:         log.With().Str("component", "quiz_handler").Logger(),
	}
}

// GetState godoc
// GET /api/v1/quiz
func (h *QuizHandler) GetState(c *gin.Context) {
	state, err := h.quizService.State(c.Request.Context(), middleware.GetVisitorID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// Answer godoc
// POST /api/v1/quiz/answer
func (h *QuizHandler) Answer(c *gin.Context) {
	var req model.AnswerQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.quizService.Answer(c.Request.Context(), middleware.GetVisitorID(c), *req.Option, req.Step)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// Reset godoc
// POST /api/v1/quiz/reset
func (h *QuizHandler) Reset(c *gin.Context) {
	state, err := h.quizService.Reset(c.Request.Context(), middleware.GetVisitorID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// GetRecommendations godoc
// GET /api/v1/quiz/recommendations
// Returns 409 until the visitor has answered every question.
func (h *QuizHandler) GetRecommendations(c *gin.Context) {
	recs, err := h.quizService.Recommendations(c.Request.Context(), middleware.GetVisitorID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recommendations": recs})
}

func (h *QuizHandler) fail(c *gin.Context, err error) {
	status, code := quizErrorStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("visitor_id", middleware.GetVisitorID(c)).Msg("Quiz request failed")
	}
	response.Fail(c, status, code)
}
