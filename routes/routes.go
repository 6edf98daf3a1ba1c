package routes

import (
	"net/http"

	"tastebud/handlers"
	"tastebud/middleware"
	"tastebud/models"
	"tastebud/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	sessionHandler *handlers.SessionHandler,
	resultHandler *handlers.ResultHandler,
	categoryHandler *handlers.CategoryHandler,
	achievementHandler *handlers.AchievementHandler,
	hub *services.Hub,
	sessionService *services.SessionService,
	jwtSecret string,
	log *logrus.Logger,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Public catalog routes
		api.GET("/quizzes", quizHandler.ListQuizzes)
		api.GET("/quizzes/featured", quizHandler.GetFeaturedQuizzes)
		api.GET("/quizzes/:slug", quizHandler.GetQuizBySlug)
		api.GET("/quizzes/:slug/leaderboard", resultHandler.GetQuizLeaderboard)
		api.GET("/categories", categoryHandler.ListCategories)
		api.GET("/categories/:slug", categoryHandler.GetCategoryBySlug)
		api.GET("/results/leaderboard", resultHandler.GetLeaderboard)
		api.GET("/achievements", achievementHandler.ListAchievements)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			protected.POST("/quizzes/:slug/start", sessionHandler.StartSession)
			protected.GET("/sessions/:id", sessionHandler.GetSession)
			protected.POST("/sessions/:id/answer", sessionHandler.SubmitAnswer)

			protected.POST("/results", resultHandler.SubmitResult)
			protected.GET("/results/user/:id", resultHandler.GetUserResults)
			protected.GET("/results/statistics/:id", resultHandler.GetUserStatistics)

			protected.GET("/users/:id/achievements", achievementHandler.ListUserAchievements)

			// Admin routes
			admin := protected.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/quizzes", quizHandler.CreateQuiz)
				admin.PUT("/quizzes/:slug", quizHandler.UpdateQuiz)
				admin.DELETE("/quizzes/:slug", quizHandler.DeleteQuiz)
				admin.POST("/categories", categoryHandler.CreateCategory)
				admin.POST("/achievements", achievementHandler.CreateAchievement)
				admin.POST("/users/:id/achievements", achievementHandler.GrantAchievement)
			}
		}
	}

	// WebSocket stream of timer and completion events for one attempt.
	router.GET("/ws/sessions/:id", func(c *gin.Context) {
		sessionID := c.Param("id")
		if !sessionService.SessionExists(c.Request.Context(), sessionID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.WithError(err).WithField("session_id", sessionID).Warn("websocket upgrade failed")
			return
		}

		hub.RegisterClient(conn, sessionID)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
