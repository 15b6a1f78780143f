package main

import (
	"github.com/gin-gonic/gin"

	"reout/internal/api/controllers"
	"reout/pkg/config"
	"reout/pkg/logger"
	"reout/pkg/middleware"
)

func ProvideRouter(
	cfg config.Config,
	log *logger.Logger,
	sessionController *controllers.SessionController,
	plannerController *controllers.PlannerController,
	feedbackController *controllers.FeedbackController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	RegisterRoutes(r, sessionController, plannerController, feedbackController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	sessionController *controllers.SessionController,
	plannerController *controllers.PlannerController,
	feedbackController *controllers.FeedbackController) {

	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	sessionGroup := r.Group("/sessions")
	sessionGroup.POST("", sessionController.CreateSession)
	sessionGroup.GET("/:id", sessionController.GetSession)
	sessionGroup.DELETE("/:id", sessionController.EndSession)
	sessionGroup.PUT("/:id/city", sessionController.SetCity)
	sessionGroup.POST("/:id/participants", sessionController.AddParticipant)
	sessionGroup.DELETE("/:id/participants", sessionController.ClearParticipants)
	sessionGroup.POST("/:id/generate", sessionController.Generate)
	sessionGroup.POST("/:id/rating", sessionController.SubmitRating)
	sessionGroup.POST("/:id/comment", sessionController.SubmitComment)

	r.GET("/models", plannerController.ListModels)
	r.GET("/cities", plannerController.SuggestCities)

	feedbackGroup := r.Group("/feedback")
	feedbackGroup.GET("/list", feedbackController.ListFeedback)
}
