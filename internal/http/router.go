package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tripbudget/internal/config"
	h "tripbudget/internal/http/handlers"
	"tripbudget/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authed := middleware.RequireAuth(h.JWTSecret())

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		trips := api.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.POST("", authed, h.CreateTrip)
		trips.PUT("/:id", authed, h.UpdateTrip)
		trips.DELETE("/:id", authed, h.DeleteTrip)

		api.GET("/rates", h.GetRates)
		api.PUT("/rates", authed, middleware.RequireRoles("planner", "admin"), h.UpdateRates)

		budgets := api.Group("/budgets")
		budgets.POST("/compute", h.ComputeBudget)
		budgets.POST("", authed, h.CreateBudget)
		budgets.GET("/:id", h.GetBudget)
		budgets.GET("/:id/csv", h.GetBudgetCSV)
		budgets.GET("/:id/pdf", h.GetBudgetPDF)
	}

	return r
}
