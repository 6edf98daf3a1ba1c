package main

import (
	"time"

	"tastebud/config"
	"tastebud/handlers"
	"tastebud/middleware"
	"tastebud/models"
	"tastebud/routes"
	"tastebud/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := config.InitLogger()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.Result{},
		&models.AnswerRecord{},
		&models.Achievement{},
		&models.UserAchievement{},
	)
	if err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	redisClient := config.InitRedis(cfg)

	hub := services.NewHub(log)
	go hub.Run()

	sessionStore := services.NewSessionStore(redisClient, time.Duration(cfg.SessionTTLMin)*time.Minute)

	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenDays, log)
	quizService := services.NewQuizService(db, log)
	categoryService := services.NewCategoryService(db, log)
	resultService := services.NewResultService(db, log)
	achievementService := services.NewAchievementService(db, log)
	sessionService := services.NewSessionService(db, sessionStore, resultService, hub, log)

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	resultHandler := handlers.NewResultHandler(resultService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)

	router := gin.Default()
	router.Use(middleware.CORS())

	routes.SetupRoutes(
		router,
		authHandler,
		quizHandler,
		sessionHandler,
		resultHandler,
		categoryHandler,
		achievementHandler,
		hub,
		sessionService,
		cfg.JWTSecret,
		log,
	)

	addr := cfg.BindAddress + ":" + cfg.Port
	log.WithField("addr", addr).Info("server starting")
	if err := router.Run(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
