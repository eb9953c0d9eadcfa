package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/studywise/studywise-backend/internal/handlers"
	"github.com/studywise/studywise-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	CounselingHandler   *handlers.CounselingHandler
	StudyPlanHandler    *handlers.StudyPlanHandler
	StudySessionHandler *handlers.StudySessionHandler
	ReminderHandler     *handlers.ReminderHandler
	ProgressHandler     *handlers.ProgressHandler
	AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
		protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		protected.GET("/auth/me", cfg.AuthHandler.Me)
		protected.PUT("/auth/profile", cfg.AuthHandler.UpdateProfile)
		protected.POST("/auth/change-password", cfg.AuthHandler.ChangePassword)

		counseling := protected.Group("/ai/career-counseling")
		{
			counseling.POST("/start", cfg.CounselingHandler.StartSession)
			counseling.POST("/action-plan", cfg.CounselingHandler.GenerateActionPlan)
			counseling.GET("/history", cfg.CounselingHandler.History)
			counseling.POST("/convert-to-study-plan", cfg.CounselingHandler.ConvertToStudyPlan)
		}
		protected.POST("/ai/generate-study-plan", cfg.StudyPlanHandler.GenerateAIPlan)

		plans := protected.Group("/study-plans")
		{
			plans.POST("", cfg.StudyPlanHandler.Create)
			plans.GET("", cfg.StudyPlanHandler.List)
			plans.GET("/:id", cfg.StudyPlanHandler.Get)
			plans.PUT("/:id", cfg.StudyPlanHandler.Update)
			plans.DELETE("/:id", cfg.StudyPlanHandler.Deactivate)
			plans.GET("/:id/sessions", cfg.StudySessionHandler.ListByPlan)
		}

		sessions := protected.Group("/study-sessions")
		{
			sessions.POST("", cfg.StudySessionHandler.Create)
			sessions.POST("/:id/start", cfg.StudySessionHandler.Start)
			sessions.POST("/:id/complete", cfg.StudySessionHandler.Complete)
		}

		reminders := protected.Group("/reminders")
		{
			reminders.POST("", cfg.ReminderHandler.Create)
			reminders.GET("", cfg.ReminderHandler.List)
			reminders.GET("/upcoming", cfg.ReminderHandler.Upcoming)
			reminders.POST("/study-session", cfg.ReminderHandler.CreateStudySessionReminder)
			reminders.POST("/break", cfg.ReminderHandler.CreateBreakReminder)
			reminders.POST("/smart-recommendations", cfg.ReminderHandler.SmartRecommendations)
			reminders.GET("/:id", cfg.ReminderHandler.Get)
			reminders.PUT("/:id", cfg.ReminderHandler.Update)
			reminders.POST("/:id/sent", cfg.ReminderHandler.MarkSent)
			reminders.DELETE("/:id", cfg.ReminderHandler.Delete)
		}

		progress := protected.Group("/progress")
		{
			progress.POST("", cfg.ProgressHandler.Create)
			progress.GET("", cfg.ProgressHandler.List)
			progress.GET("/summary", cfg.ProgressHandler.Summary)
			progress.GET("/analytics", cfg.ProgressHandler.Analytics)
		}
	}

	return router
}
