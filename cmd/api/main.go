package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/getmentor/mentorlink-api/config"
	"github.com/getmentor/mentorlink-api/internal/cache"
	"github.com/getmentor/mentorlink-api/internal/database/postgres"
	"github.com/getmentor/mentorlink-api/internal/handlers"
	"github.com/getmentor/mentorlink-api/internal/middleware"
	"github.com/getmentor/mentorlink-api/internal/repository"
	"github.com/getmentor/mentorlink-api/internal/services"
	"github.com/getmentor/mentorlink-api/pkg/db"
	"github.com/getmentor/mentorlink-api/pkg/logger"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
	"github.com/getmentor/mentorlink-api/pkg/profiling"
	"github.com/getmentor/mentorlink-api/pkg/storage"
	"github.com/getmentor/mentorlink-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type apiHandlers struct {
	auth        *handlers.AuthHandler
	profile     *handlers.ProfileHandler
	browse      *handlers.BrowseHandler
	requests    *handlers.ConnectionRequestHandler
	connections *handlers.ConnectionHandler
	posts       *handlers.PostHandler
}

type rateLimiters struct {
	general *middleware.RateLimiter
	auth    *middleware.RateLimiter
	write   *middleware.RateLimiter
}

// registerAPIRoutes registers the versioned API routes
func registerAPIRoutes(group *gin.RouterGroup, h apiHandlers, limits rateLimiters) {
	// Authentication routes
	auth := group.Group("/auth")
	auth.POST("/register", limits.auth.Middleware(), middleware.BodySizeLimitMiddleware(16*1024), h.auth.Register)
	auth.POST("/login", limits.auth.Middleware(), middleware.BodySizeLimitMiddleware(16*1024), h.auth.Login)
	auth.POST("/logout", h.auth.Logout)
	auth.GET("/session", limits.general.Middleware(), h.auth.GetSession)

	// Profile routes
	group.PUT("/profile", limits.write.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), h.profile.UpsertProfile)
	group.GET("/profile", limits.general.Middleware(), h.profile.GetMyProfile)
	group.POST("/profile/picture", limits.write.Middleware(), middleware.RequireIdentity(), middleware.BodySizeLimitMiddleware(15*1024*1024), h.profile.UploadPicture)

	// Browse
	group.GET("/users", limits.general.Middleware(), h.browse.BrowseUsers)

	// Connection requests
	group.POST("/requests", limits.write.Middleware(), middleware.BodySizeLimitMiddleware(16*1024), h.requests.SendRequest)
	group.GET("/requests/pending", limits.general.Middleware(), h.requests.GetPendingRequests)
	group.POST("/requests/:id/respond", limits.write.Middleware(), middleware.BodySizeLimitMiddleware(1024), h.requests.RespondToRequest)

	// Connections
	group.GET("/connections", limits.general.Middleware(), h.connections.GetMyConnections)

	// Posts and comments
	group.GET("/posts", limits.general.Middleware(), h.posts.ListFeed)
	group.POST("/posts", limits.write.Middleware(), middleware.RequireIdentity(), middleware.BodySizeLimitMiddleware(64*1024), h.posts.CreatePost)
	group.GET("/posts/:id/comments", limits.general.Middleware(), h.posts.ListComments)
	group.POST("/posts/:id/comments", limits.write.Middleware(), middleware.RequireIdentity(), middleware.BodySizeLimitMiddleware(32*1024), h.posts.AddComment)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MentorLink API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Settings{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling
	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Error("Failed to start profiler, continuing without it", zap.Error(err))
	} else {
		defer stopProfiler()
	}

	// Start infrastructure metrics collection
	stopMetrics := make(chan struct{})
	defer close(stopMetrics)
	metrics.RecordInfrastructureMetrics(stopMetrics)

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer db.Close(pool)

	// NOTE: Database migrations are run separately via the migrate command

	dbClient := postgres.NewClient(pool)

	// Profile pictures are optional; uploads answer 503 without storage credentials
	var uploader services.ImageUploader
	if cfg.StorageEnabled() {
		uploader = storage.NewStorageClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
	} else {
		logger.Warn("Profile picture uploads disabled: storage credentials not configured")
	}

	// Initialize repositories
	userCache := cache.NewUserCache(dbClient, cfg.Cache.IdentityTTLSeconds)
	userRepo := repository.NewUserRepository(dbClient, userCache)
	profileRepo := repository.NewProfileRepository(dbClient)
	requestRepo := repository.NewConnectionRequestRepository(dbClient)
	connectionRepo := repository.NewConnectionRepository(dbClient)
	postRepo := repository.NewPostRepository(dbClient)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.Session)
	profileService := services.NewProfileService(profileRepo, uploader)
	browseService := services.NewBrowseService(profileRepo)
	requestService := services.NewConnectionRequestService(requestRepo, userRepo)
	connectionService := services.NewConnectionService(connectionRepo)
	postService := services.NewPostService(postRepo, connectionRepo)

	// Initialize handlers
	h := apiHandlers{
		auth:        handlers.NewAuthHandler(authService),
		profile:     handlers.NewProfileHandler(profileService),
		browse:      handlers.NewBrowseHandler(browseService),
		requests:    handlers.NewConnectionRequestHandler(requestService),
		connections: handlers.NewConnectionHandler(connectionService),
		posts:       handlers.NewPostHandler(postService),
	}
	healthHandler := handlers.NewHealthHandler(dbClient.Ping)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.Session.CookieSecure))

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-Expired"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	// Resolve the caller once per request; anonymous requests pass through
	router.Use(middleware.IdentityMiddleware(
		authService.GetTokenManager(),
		authService.GetCookieDomain(),
		authService.GetCookieSecure(),
	))

	// SECURITY: Rate limiters to prevent abuse and DoS attacks
	limits := rateLimiters{
		general: middleware.NewRateLimiter(100, 200), // 100 req/sec, burst of 200
		auth:    middleware.NewRateLimiter(0.2, 5),   // 1 req/5sec, burst of 5 (credential stuffing)
		write:   middleware.NewRateLimiter(10, 20),   // 10 req/sec, burst of 20
	}
	defer func() {
		limits.general.Stop()
		limits.auth.Stop()
		limits.write.Stop()
	}()

	// API routes
	api := router.Group("/api")
	// Utility endpoints (not versioned - operational endpoints)
	api.GET("/healthcheck", limits.general.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", limits.general.Middleware(), gin.WrapH(promhttp.Handler()))

	// API v1 routes
	// SECURITY: Apply body size limits to prevent DoS attacks
	registerAPIRoutes(router.Group("/api/v1"), h, limits)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server exited")
}
