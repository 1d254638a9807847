package routes

import (
	"net/http"
	"time"

	"termcompass/handlers"
	"termcompass/middleware"
	"termcompass/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterCatalogRoutes registers the read-only catalog and the service card gate.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/sites", hb.Catalog.GetSitesHandler)
		api.GET("/services", hb.Catalog.GetServicesHandler)
		api.GET("/domains", hb.Catalog.GetDomainsHandler)
		// Optional authentication: anonymous visitors are treated as non-business.
		api.POST("/services/open", middleware.JWTAuthMiddleware(hb.TokenChecker, true), hb.Catalog.OpenServiceHandler)
	}
}

// RegisterCarouselRoutes registers the graded sites carousel.
func RegisterCarouselRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/carousel/session")
	{
		api.POST("", hb.Carousel.OpenSessionHandler)
		api.GET("/:sessionID", hb.Carousel.GetSessionHandler)
		api.POST("/:sessionID/advance", hb.Carousel.AdvanceHandler)
		api.POST("/:sessionID/retreat", hb.Carousel.RetreatHandler)
		api.POST("/:sessionID/swipe", hb.Carousel.SwipeHandler)
		api.DELETE("/:sessionID", hb.Carousel.CloseSessionHandler)
	}
}

// RegisterAuthFormRoutes registers the login/signup form endpoints.
func RegisterAuthFormRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth/form")
	{
		api.POST("", hb.AuthForm.OpenFormHandler)
		api.GET("/:formID", hb.AuthForm.GetFormHandler)
		api.POST("/:formID/toggle", hb.AuthForm.ToggleModeHandler)
		api.POST("/:formID/agree", hb.AuthForm.AgreeHandler)
		api.POST("/:formID/cancel", hb.AuthForm.CancelHandler)
		api.PUT("/:formID/category", hb.AuthForm.SelectCategoryHandler)
		api.PUT("/:formID/field", hb.AuthForm.SetFieldHandler)
		api.POST("/:formID/submit", hb.AuthForm.SubmitHandler)
		api.DELETE("/:formID", hb.AuthForm.CloseFormHandler)
	}
}

// RegisterAuthoringRoutes registers the terms authoring workflow. Authentication is optional so an
// anonymous start is answered with the business-only refusal rather than a bare 401.
func RegisterAuthoringRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/terms/session")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.TokenChecker, true))
		api.POST("", hb.Authoring.StartSessionHandler)
		api.GET("/:sessionID", hb.Authoring.GetSessionHandler)
		api.POST("/:sessionID/domain", hb.Authoring.SelectDomainHandler)
		api.POST("/:sessionID/standard-terms", hb.Authoring.SubmitStandardTermsHandler)
		api.PUT("/:sessionID/clauses/pending", hb.Authoring.SetPendingClauseHandler)
		api.POST("/:sessionID/clauses", hb.Authoring.AddClauseHandler)
		api.POST("/:sessionID/clauses/finish", hb.Authoring.FinishClausesHandler)
		api.POST("/:sessionID/back", hb.Authoring.GoBackHandler)
		api.POST("/:sessionID/review", hb.Authoring.RequestReviewHandler)
		api.DELETE("/:sessionID", hb.Authoring.CloseSessionHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm TermCompass", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterMetricsRoute exposes the prometheus collectors.
func RegisterMetricsRoute(r *gin.Engine) {
	utils.RegisterMetrics()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
	RegisterCatalogRoutes(r, hb)
	RegisterCarouselRoutes(r, hb)
	RegisterAuthFormRoutes(r, hb)
	RegisterAuthoringRoutes(r, hb)
}
