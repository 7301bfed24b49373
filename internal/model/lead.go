package model

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a consultation request submitted from the landing page.
type Lead struct {
	ID              uuid.UUID `json:"id"`
	VisitorID       string    `json:"visitor_id"`
	Name            string    `json:"name"`
	Company         string    `json:"company"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	Message         string    `json:"message,omitempty"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateLeadRequest is the payload for "立即咨询专家".
type CreateLeadRequest struct {
	Name    string `json:"name" form:"name" binding:"required,notblank,max=50"`
	Company string `json:"company" form:"company" binding:"required,notblank,max=100"`
	Phone   string `json:"phone" form:"phone" binding:"required,max=20,contact_phone"`
	Email   string `json:"email" form:"email" binding:"omitempty,email,max=100"`
	Message string `json:"message" form:"message" binding:"max=500"`
}
