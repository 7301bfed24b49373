package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jxdata/portal/internal/middleware"
	"github.com/jxdata/portal/internal/model"
	"github.com/jxdata/portal/internal/response"
	"github.com/jxdata/portal/internal/service"
	"github.com/jxdata/portal/internal/validator"
)

type LeadHandler struct {
	leadService *service.LeadService
}

func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLead godoc
// POST /api/v1/public/leads
// Queues a consultation request. The visitor's quiz recommendations are
// attached when the quiz is completed.
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req model.CreateLeadRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lead, err := h.leadService.Submit(c.Request.Context(), middleware.GetVisitorID(c), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"id":              lead.ID,
		"recommendations": lead.Recommendations,
	})
}
