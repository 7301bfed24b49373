package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jxdata/portal/internal/response"
	"github.com/jxdata/portal/internal/service"
)

// ContextKeyVisitorID is the Gin context key for the anonymous visitor ID.
const ContextKeyVisitorID = "visitor_id"

// VisitorCookie describes the cookie carrying the visitor token.
type VisitorCookie struct {
	Name   string
	Secure bool
}

// VisitorSession resolves the visitor ID from the signed cookie, issuing a
// new cookie when it is missing, expired or tampered with.
func VisitorSession(visitorService *service.VisitorService, cookie VisitorCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookie.Name); err == nil && token != "" {
			if visitorID, err := visitorService.Validate(token); err == nil {
				c.Set(ContextKeyVisitorID, visitorID)
				c.Next()
				return
			}
		}

		token, visitorID, err := visitorService.Issue()
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie.Name, token, int(visitorService.TTL().Seconds()), "/", "", cookie.Secure, true)
		c.Set(ContextKeyVisitorID, visitorID)
		c.Next()
	}
}

// GetVisitorID retrieves the visitor ID from the Gin context.
func GetVisitorID(c *gin.Context) string {
	val, exists := c.Get(ContextKeyVisitorID)
	if !exists {
		return ""
	}
	id, _ := val.(string)
	return id
}
