package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jxdata/portal/internal/config"
	"github.com/jxdata/portal/internal/handler"
	"github.com/jxdata/portal/internal/middleware"
	"github.com/jxdata/portal/internal/response"
	"github.com/jxdata/portal/internal/service"
	"github.com/jxdata/portal/internal/view"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Page    *handler.PageHandler
	Quiz    *handler.QuizHandler
	Lead    *handler.LeadHandler
	Setting *handler.SettingHandler
	Catalog *handler.CatalogHandler
	WS      *handler.WSHandler
	System  *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds the lifetime of background middleware state.
func SetupRouter(
	ctx context.Context,
	visitorService *service.VisitorService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:      middleware.DefaultBrotliConfig.Quality,
		MinLength:    middleware.DefaultBrotliConfig.MinLength,
		SkipPrefixes: []string{"/ws/"},
	}))

	// Embedded stylesheet with long-lived caching.
	staticGroup := router.Group("/static")
	staticGroup.Use(middleware.CacheControl(cfg.StaticCacheSecs))
	{
		staticGroup.StaticFS("/", http.FS(view.Static()))
	}

	// Health check.
	router.GET("/health", handlers.System.Health)

	visitor := middleware.VisitorSession(visitorService, middleware.VisitorCookie{
		Name:   cfg.VisitorCookie,
		Secure: cfg.CookieSecure,
	})

	// Per-IP limit on lead submissions.
	leadLimiter := middleware.NewRateLimiter(ctx, cfg.LeadRatePerMin, time.Minute)

	// ─── 0. Landing Page (HTML + form posts) ───────────────────────────
	page := router.Group("/")
	page.Use(visitor, middleware.NoStore())
	{
		page.GET("", handlers.Page.Index)
		page.POST("quiz/answer", handlers.Page.AnswerForm)
		page.POST("quiz/reset", handlers.Page.ResetForm)
		page.POST("consult", leadLimiter.Middleware(), handlers.Page.ConsultForm)
	}

	// ─── 1. Public Group (No Visitor) ──────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/catalog", handlers.Catalog.GetCatalog)
		publicAPI.GET("/settings", handlers.Setting.GetPublicSettings)
		publicAPI.POST("/leads", leadLimiter.Middleware(), visitor, handlers.Lead.CreateLead)
	}

	// ─── 2. Quiz Group (Visitor Cookie) ────────────────────────────────
	quizAPI := router.Group("/api/v1/quiz")
	quizAPI.Use(visitor, middleware.NoStore())
	{
		quizAPI.GET("", handlers.Quiz.GetState)
		quizAPI.POST("/answer", handlers.Quiz.Answer)
		quizAPI.POST("/reset", handlers.Quiz.Reset)
		quizAPI.GET("/recommendations", handlers.Quiz.GetRecommendations)
	}

	// ─── 3. WebSocket Group (Visitor Cookie) ───────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(visitor)
	{
		ws.GET("/quiz", handlers.WS.QuizStream)
	}

	return router
}
