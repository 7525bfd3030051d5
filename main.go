package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"

	"github.com/michael123610/codesnippet-hub/cache"
	"github.com/michael123610/codesnippet-hub/config"
	"github.com/michael123610/codesnippet-hub/handlers"
	"github.com/michael123610/codesnippet-hub/helper"
	"github.com/michael123610/codesnippet-hub/middleware"
	"github.com/michael123610/codesnippet-hub/realtime"
	"github.com/michael123610/codesnippet-hub/repositories"
	"github.com/michael123610/codesnippet-hub/services"
)

func newHTTPHelper() *helper.HTTPHelper {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		log.WithError(err).Fatal("failed to register validator translations")
	}

	return &helper.HTTPHelper{Validate: validate, Translator: translator}
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	log.SetFormatter(&log.JSONFormatter{})

	// Initialize backends
	db := config.InitDB()
	redisClient := config.InitRedis()
	snippetCache := cache.NewRedisCache(redisClient)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	snippetRepo := repositories.NewSnippetRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	engagementRepo := repositories.NewEngagementRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	snippetService := services.NewSnippetService(snippetRepo, engagementRepo, snippetCache)
	engagementService := services.NewEngagementService(engagementRepo, snippetCache)
	tagService := services.NewTagService(tagRepo, snippetCache)
	userService := services.NewUserService(userRepo, snippetRepo)

	// Initialize handlers
	httpHelper := newHTTPHelper()
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	snippetHandler := handlers.NewSnippetHandler(snippetService, engagementService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)
	userHandler := handlers.NewUserHandler(userService, httpHelper)

	// Realtime room relay
	hub := realtime.NewHub()

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Realtime channel
	router.GET("/ws", hub.ServeWS)

	// API routes
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthMiddleware(), authHandler.GetProfile)
		}

		snippets := api.Group("/snippets")
		{
			snippets.GET("", middleware.OptionalAuthMiddleware(), snippetHandler.ListSnippets)
			snippets.GET("/:id", middleware.OptionalAuthMiddleware(), snippetHandler.GetSnippet)
			snippets.POST("", middleware.AuthMiddleware(), snippetHandler.CreateSnippet)
			snippets.DELETE("/:id", middleware.AuthMiddleware(), snippetHandler.DeleteSnippet)
			snippets.POST("/:id/like", middleware.AuthMiddleware(), snippetHandler.ToggleLike)
			snippets.POST("/:id/favorite", middleware.AuthMiddleware(), snippetHandler.ToggleFavorite)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.GetTags)
			tags.GET("/popular", tagHandler.GetPopularTags)
		}

		users := api.Group("/users")
		{
			users.GET("/me/snippets", middleware.AuthMiddleware(), userHandler.GetMySnippets)
			users.GET("/me/favorites", middleware.AuthMiddleware(), userHandler.GetMyFavorites)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/snippets", userHandler.GetUserSnippets)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("server starting")
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
