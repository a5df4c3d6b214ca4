package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pranav-Anand04/TerpFit/internal/auth"
)

// NewRouter wires every route. Health and metrics stay outside auth.
func NewRouter(app App, provider auth.Provider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), AccessLogMiddleware(app.Logger()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protected := r.Group("/", auth.AuthMiddleware(provider))

	protected.POST("/workouts", PostWorkout(app))
	protected.GET("/workouts", ListWorkouts(app))
	protected.GET("/workouts/stats", GetWorkoutStats(app))
	protected.GET("/workouts/streak", GetWorkoutStreak(app))
	protected.GET("/workouts/:id", GetWorkout(app))
	protected.DELETE("/workouts/:id", DeleteWorkout(app))
	protected.PUT("/workouts/:id/notes", PutWorkoutNotes(app))

	protected.GET("/gyms", ListGyms(app))
	protected.GET("/gyms/:name", GetGym(app))

	protected.POST("/chat/sessions", CreateChatSession(app))
	protected.POST("/chat/sessions/:id/messages", PostChatMessage(app))
	protected.POST("/chat/sessions/:id/log", PostChatLogging(app))
	protected.POST("/chat/sessions/:id/gym", PostChatGym(app))
	protected.DELETE("/chat/sessions/:id", DeleteChatSession(app))

	return r
}
