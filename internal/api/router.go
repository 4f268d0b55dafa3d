package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openwave/social-platform/internal/api/handler"
	"github.com/openwave/social-platform/internal/api/middleware"
	"github.com/openwave/social-platform/internal/core/ports"
	"github.com/openwave/social-platform/internal/core/service"
	"github.com/openwave/social-platform/internal/infrastructure/config"
	mongodb "github.com/openwave/social-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/openwave/social-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	activity ports.ActivityDispatcher,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("social"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	feedCache := redisdb.NewFeedCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 0)
	postService := service.NewPostService(postRepo, userRepo, feedCache, activity, log)
	userService := service.NewUserService(userRepo, postRepo, activity, log)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService, cfg.UploadsDir)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Post routes ---
	posts := e.Group("/posts", authMiddleware)
	posts.GET("/feed", postHandler.Feed)
	posts.GET("/my-posts", postHandler.MyPosts)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", postHandler.Create)
	posts.PUT("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)
	posts.POST("/:id/like", postHandler.ToggleLike)
	posts.POST("/:id/comments", postHandler.AddComment)
	posts.DELETE("/:id/comments/:commentId", postHandler.DeleteComment)

	// --- User routes ---
	users := e.Group("/users", authMiddleware)
	users.GET("/search", userHandler.Search)
	users.GET("/:username", userHandler.Profile)
	users.POST("/:username/follow", userHandler.ToggleFollow)

	// --- Uploaded images (references stored on posts point here) ---
	e.Static("/uploads", cfg.UploadsDir)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
