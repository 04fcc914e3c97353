package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"forumhub/database"
	"forumhub/internal/cache"
	"forumhub/internal/config"
	"forumhub/internal/http-api/handler"
	"forumhub/internal/http-api/middleware"
	"forumhub/internal/http-api/repository"
	"forumhub/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	ratingCache, err := cache.NewRatingCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RatingCacheTTL)
	if err != nil {
		// The rating cache is an optimization; the service runs without it.
		logger.Warn("rating cache unavailable, continuing without redis", "error", err)
		ratingCache = nil
	} else {
		defer ratingCache.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	lifecycleRepo := repository.NewLifecycleRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	ratingService := service.NewRatingService(reactionRepo, userRepo, ratingCache, logger)
	reactionService := service.NewReactionService(reactionRepo, postRepo, commentRepo, ratingService, logger)
	commentService := service.NewCommentService(commentRepo, postRepo, ratingService, logger)
	postService := service.NewPostService(postRepo, categoryRepo, reactionRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, postRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	lifecycleService := service.NewLifecycleService(lifecycleRepo, postRepo, userRepo, ratingService, ratingCache, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, int64(cfg.AccessTokenTTL.Seconds()))
	postHandler := handler.NewPostHandler(postService, lifecycleService)
	commentHandler := handler.NewCommentHandler(commentService)
	reactionHandler := handler.NewReactionHandler(reactionService, ratingService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	categoryHandler := handler.NewCategoryHandler(categoryService, postService)
	userHandler := handler.NewUserHandler(lifecycleService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.RateLimitMiddleware(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public routes
	authHandler.RegisterRoutes(api.Group("/auth"))
	categories := api.Group("/categories")

	// Authenticated routes
	posts := api.Group("/posts", middleware.AuthMiddleware(authService))
	comments := api.Group("/comments", middleware.AuthMiddleware(authService))
	users := api.Group("/users", middleware.AuthMiddleware(authService))
	admin := api.Group("/admin", middleware.AuthMiddleware(authService), middleware.RequireAdmin())

	postHandler.RegisterRoutes(posts, users, admin)
	commentHandler.RegisterRoutes(posts, comments, admin)
	reactionHandler.RegisterRoutes(posts, comments, users)
	favoriteHandler.RegisterRoutes(posts, users)
	categoryHandler.RegisterRoutes(categories, admin)
	userHandler.RegisterRoutes(users, admin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
