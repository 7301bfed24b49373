package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jxdata/portal/internal/content"
	"github.com/jxdata/portal/internal/middleware"
	"github.com/jxdata/portal/internal/model"
	"github.com/jxdata/portal/internal/quiz"
	"github.com/jxdata/portal/internal/service"
	"github.com/jxdata/portal/internal/validator"
	"github.com/jxdata/portal/internal/view"
	"github.com/rs/zerolog"
)

// Notices shown above the quiz after a form redirect, keyed by the "quiz"
// query parameter.
var quizNotices = map[string]string{
	"stale":   "该题已作答，已为您显示最新进度。",
	"invalid": "请选择一个有效的选项。",
	"error":   "测评服务暂时不可用，请稍后重试。",
}

// PageHandler serves the server-rendered landing page and its form posts.
type PageHandler struct {
	catalog        *content.Catalog
	quizService    *service.QuizService
	settingService *service.SettingService
	leadService    *service.LeadService
	log            zerolog.Logger
}

func NewPageHandler(
	catalog *content.Catalog,
	quizService *service.QuizService,
	settingService *service.SettingService,
	leadService *service.LeadService,
	log zerolog.Logger,
) *PageHandler {
	return &PageHandler{
		catalog:        catalog,
		quizService:    quizService,
		settingService: settingService,
		leadService:    leadService,
		log:            log.With().Str("component", "page_handler").Logger(),
	}
}

// Index godoc
// GET /
func (h *PageHandler) Index(c *gin.Context) {
	data := h.pageData(c)
	if notice, ok := quizNotices[c.Query("quiz")]; ok {
		data.Notice = notice
	}
	data.Consult.Sent = c.Query("consult") == "ok"

	h.render(c, http.StatusOK, data)
}

// AnswerForm godoc
// POST /quiz/answer
// Records the submitted option and redirects back to the quiz section.
func (h *PageHandler) AnswerForm(c *gin.Context) {
	var req model.AnswerQuizRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		h.redirectQuiz(c, "invalid")
		return
	}

	_, err := h.quizService.Answer(c.Request.Context(), middleware.GetVisitorID(c), *req.Option, req.Step)
	switch {
	case err == nil:
		h.redirectQuiz(c, "")
	case errors.Is(err, service.ErrStaleStep), errors.Is(err, quiz.ErrCompleted):
		h.redirectQuiz(c, "stale")
	case errors.Is(err, quiz.ErrOptionOutOfRange):
		h.redirectQuiz(c, "invalid")
	default:
		h.log.Error().Err(err).Str("visitor_id", middleware.GetVisitorID(c)).Msg("Quiz answer failed")
		h.redirectQuiz(c, "error")
	}
}

// ResetForm godoc
// POST /quiz/reset
func (h *PageHandler) ResetForm(c *gin.Context) {
	if _, err := h.quizService.Reset(c.Request.Context(), middleware.GetVisitorID(c)); err != nil {
		h.log.Error().Err(err).Str("visitor_id", middleware.GetVisitorID(c)).Msg("Quiz reset failed")
		h.redirectQuiz(c, "error")
		return
	}
	h.redirectQuiz(c, "")
}

// ConsultForm godoc
// POST /consult
// Re-renders the page with field errors on invalid input.
func (h *PageHandler) ConsultForm(c *gin.Context) {
	var req model.CreateLeadRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		data := h.pageData(c)
		data.Consult = view.ConsultForm{Values: req, Errors: fields, Failed: fields["detail"] != ""}
		h.render(c, http.StatusBadRequest, data)
		return
	}

	if _, err := h.leadService.Submit(c.Request.Context(), middleware.GetVisitorID(c), &req); err != nil {
		data := h.pageData(c)
		data.Consult = view.ConsultForm{Values: req, Failed: true}
		h.render(c, http.StatusInternalServerError, data)
		return
	}

	c.Redirect(http.StatusSeeOther, "/?consult=ok#cta")
}

func (h *PageHandler) pageData(c *gin.Context) view.PageData {
	ctx := c.Request.Context()

	data := view.PageData{
		Catalog: h.catalog,
		Stats:   h.settingService.Stats(ctx),
	}

	state, err := h.quizService.State(ctx, middleware.GetVisitorID(c))
	if err != nil {
		h.log.Error().Err(err).Str("visitor_id", middleware.GetVisitorID(c)).Msg("Failed to load quiz state")
		data.Notice = quizNotices["error"]
		return data
	}
	data.Quiz = state

	return data
}

func (h *PageHandler) render(c *gin.Context, status int, data view.PageData) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := view.Render(c.Writer, data); err != nil {
		h.log.Error().Err(err).Msg("Failed to render page")
	}
}

func (h *PageHandler) redirectQuiz(c *gin.Context, notice string) {
	target := "/#quiz"
	if notice != "" {
		target = "/?quiz=" + notice + "#quiz"
	}
	c.Redirect(http.StatusSeeOther, target)
}
