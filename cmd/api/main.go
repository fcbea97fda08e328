package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Sammyduzit/movieweb-app/internal/config"
	"github.com/Sammyduzit/movieweb-app/internal/handler"
	"github.com/Sammyduzit/movieweb-app/internal/middleware"
	pgRepo "github.com/Sammyduzit/movieweb-app/internal/repository/postgres"
	redisRepo "github.com/Sammyduzit/movieweb-app/internal/repository/redis"
	"github.com/Sammyduzit/movieweb-app/internal/service"
	"github.com/Sammyduzit/movieweb-app/internal/service/triviagen"
	"github.com/Sammyduzit/movieweb-app/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	movieRepo := pgRepo.NewMovieRepo(db)
	reviewRepo := pgRepo.NewReviewRepo(db)
	scoreRepo := pgRepo.NewScoreRepo(db)

	sessionRepo, err := redisRepo.NewSessionRepo(redisClient, time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	if err != nil {
		log.Printf("Failed to initialize SessionRepo: %v", err)
		os.Exit(1)
	}

	// Месячный счетчик вызовов основного провайдера
	tracker := triviagen.NewUsageTracker(
		triviagen.NewFileUsageStore(cfg.Quota.UsageFile),
		cfg.Quota.MonthlyLimit,
	)

	// Собираем цепочку провайдеров вопросов. В режиме mock внешние API
	// не вызываются вовсе.
	var providers []triviagen.Provider
	if cfg.Trivia.ProviderMode == triviagen.ProviderMock {
		log.Println("ВНИМАНИЕ: включен mock-режим генерации вопросов, внешние API не используются")
		providers = []triviagen.Provider{triviagen.NewMockProvider()}
	} else {
		providers = []triviagen.Provider{
			triviagen.NewRapidAPIProvider(cfg.APIs.RapidAPI, tracker),
			triviagen.NewOpenAIProvider(cfg.APIs.OpenAI),
		}
	}
	chain := triviagen.NewChain(providers...)

	// Инициализируем сервисы
	omdbService := service.NewOMDbService(cfg.APIs.OMDb)
	userService := service.NewUserService(userRepo)
	movieService := service.NewMovieService(movieRepo, userRepo, omdbService)
	reviewService := service.NewReviewService(reviewRepo, movieRepo)
	triviaService := service.NewTriviaService(
		cfg.Trivia, cfg.Leaderboard,
		chain, providers, tracker,
		userRepo, movieRepo, scoreRepo, sessionRepo,
	)

	// Инициализируем обработчики
	userHandler := handler.NewUserHandler(userService)
	movieHandler := handler.NewMovieHandler(movieService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	triviaHandler := handler.NewTriviaHandler(triviaService)
	usageHandler := handler.NewUsageHandler(triviaService)

	// Инициализируем middleware
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		// Production: не доверять прокси-заголовкам
		// Если используете load balancer, замените nil на []string{"IP_БАЛАНСИРОВЩИКА"}
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Каждому браузеру выдается cookie с идентификатором: к нему
	// привязывается активная игровая сессия
	router.Use(middleware.BrowserSession(cfg.Session.CookieName))

	// Настраиваем маршруты API
	api := router.Group("/api")
	api.Use(rateLimiter.LimitByIP(middleware.DefaultAPIRateLimitConfig()))
	{
		// Пользователи
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)

			userWithID := users.Group("/:user_id")
			userWithID.Use(middleware.ExtractUintParam("user_id", "userID"))
			{
				userWithID.GET("", userHandler.GetUser)
				userWithID.GET("/movies", movieHandler.ListUserMovies)
				userWithID.POST("/movies", movieHandler.CreateMovie)
				userWithID.GET("/trivia-stats", triviaHandler.UserStats)

				// Запуск викторин лимитируется отдельно: каждый запуск
				// может стоить платного вызова внешнего API
				triviaStart := userWithID.Group("")
				triviaStart.Use(rateLimiter.Limit(middleware.TriviaStartRateLimitConfig()))
				{
					triviaStart.POST("/trivia", triviaHandler.StartCollectionTrivia)
					triviaStart.POST("/movies/:movie_id/trivia",
						middleware.ExtractUintParam("movie_id", "movieID"),
						triviaHandler.StartMovieTrivia)
				}
			}
		}

		// Фильмы
		movies := api.Group("/movies/:movie_id")
		movies.Use(middleware.ExtractUintParam("movie_id", "movieID"))
		{
			movies.GET("", movieHandler.GetMovie)
			movies.PUT("", movieHandler.UpdateMovie)
			movies.DELETE("", movieHandler.DeleteMovie)
			movies.GET("/reviews", reviewHandler.ListMovieReviews)
			movies.POST("/reviews", reviewHandler.CreateReview)
			movies.GET("/leaderboard", triviaHandler.MovieLeaderboard)
		}

		// Рецензии
		reviews := api.Group("/reviews/:review_id")
		reviews.Use(middleware.ExtractUintParam("review_id", "reviewID"))
		{
			reviews.PUT("", reviewHandler.UpdateReview)
			reviews.DELETE("", reviewHandler.DeleteReview)
			reviews.POST("/like", reviewHandler.LikeReview)
		}

		// Ход активной викторины
		trivia := api.Group("/trivia")
		{
			trivia.GET("/question", triviaHandler.CurrentQuestion)
			trivia.POST("/answer", triviaHandler.SubmitAnswer)
			trivia.GET("/results", triviaHandler.Results)
			trivia.POST("/quit", triviaHandler.Quit)
		}

		// Лидерборды (публичные маршруты)
		api.GET("/leaderboard", triviaHandler.GlobalLeaderboard)
		api.GET("/leaderboard/collection", triviaHandler.CollectionLeaderboard)

		// Операторские маршруты
		api.GET("/usage", usageHandler.UsageStats)
		api.POST("/usage/reset", usageHandler.ResetUsage)
		api.GET("/test-apis", usageHandler.TestAPIs)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ждем сигнал остановки и корректно гасим сервер
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
