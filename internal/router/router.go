package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/handler"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/middleware"
	"github.com/laximgqozaZZZYT/vow-sub001/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	habitHandler *handler.HabitHandler,
	activityHandler *handler.ActivityHandler,
	goalHandler *handler.GoalHandler,
	stickyHandler *handler.StickyHandler,
	statsHandler *handler.StatsHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/guest", authHandler.Guest)
	auth.POST("/migrate", middleware.Auth(authService), authHandler.Migrate)

	protected := api.Group("")
	protected.Use(middleware.Auth(authService))

	habits := protected.Group("/habits")
	habits.POST("", habitHandler.Create)
	habits.GET("", habitHandler.List)
	habits.GET("/:id", habitHandler.Get)
	habits.PUT("/:id", habitHandler.Update)
	habits.DELETE("/:id", habitHandler.Delete)

	activities := protected.Group("/activities")
	activities.POST("", activityHandler.Log)
	activities.GET("", activityHandler.List)
	activities.PUT("/:id", activityHandler.Update)
	activities.DELETE("/:id", activityHandler.Delete)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.Create)
	goals.GET("", goalHandler.List)
	goals.PUT("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)

	stickies := protected.Group("/stickies")
	stickies.POST("", stickyHandler.Create)
	stickies.GET("", stickyHandler.List)
	stickies.PUT("/:id", stickyHandler.Update)
	stickies.DELETE("/:id", stickyHandler.Delete)

	tags := protected.Group("/tags")
	tags.POST("", stickyHandler.CreateTag)
	tags.GET("", stickyHandler.ListTags)
	tags.PUT("/:id", stickyHandler.UpdateTag)
	tags.DELETE("/:id", stickyHandler.DeleteTag)

	stats := protected.Group("/stats")
	stats.GET("/today", statsHandler.Today)
	stats.GET("/series", statsHandler.Series)

	return engine
}
