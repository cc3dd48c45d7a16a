package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/prachanda482244/Production-grade-backend/internal/facades"
	"github.com/prachanda482244/Production-grade-backend/internal/handlers"
	"github.com/prachanda482244/Production-grade-backend/internal/jwt"
	"github.com/prachanda482244/Production-grade-backend/internal/logger"
	"github.com/prachanda482244/Production-grade-backend/internal/middlewares"
	"github.com/prachanda482244/Production-grade-backend/internal/repositories"
	"github.com/prachanda482244/Production-grade-backend/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title user-accounts API
// @version 1.0.0
// @description REST backend for user accounts, sessions and channel subscriptions
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// config holds all application, database, Redis, Kafka, media-host, logging,
// JWT and cookie settings.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers []string
	KafkaTopic   string

	MediaBaseURL string

	JWTAccessSecret    string
	JWTRefreshSecret   string
	JWTAccessExpSec    int
	JWTRefreshExpSec   int
	CookieSecure       bool
	ProfileCacheTTLSec int
}

// parseConfig loads environment variables from a file and returns the full
// application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}
	if cfg.ProfileCacheTTLSec, err = strconv.Atoi(getEnv("PROFILE_CACHE_TTL_SECOND", "30")); err != nil {
		return
	}

	// Kafka config
	cfg.KafkaBrokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "user-events")

	// Media host config
	cfg.MediaBaseURL = getEnv("MEDIA_BASE_URL", "http://localhost:9000")

	// JWT config
	cfg.JWTAccessSecret = getEnv("JWT_ACCESS_SECRET_KEY", "my_super_secret_access_key")
	cfg.JWTRefreshSecret = getEnv("JWT_REFRESH_SECRET_KEY", "my_super_secret_refresh_key")
	if cfg.JWTAccessExpSec, err = strconv.Atoi(getEnv("JWT_ACCESS_EXP_SECOND", "900")); err != nil {
		return
	}
	if cfg.JWTRefreshExpSec, err = strconv.Atoi(getEnv("JWT_REFRESH_EXP_SECOND", "864000")); err != nil {
		return
	}
	cfg.CookieSecure = getEnv("COOKIE_SECURE", "false") == "true"

	return cfg, nil
}

// run initializes the logger, database, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infof("Connecting to PostgreSQL: %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer for user events
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers...),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()

	// Initialize JWT service
	tokens := jwt.New(cfg.JWTAccessSecret, cfg.JWTRefreshSecret,
		time.Duration(cfg.JWTAccessExpSec)*time.Second,
		time.Duration(cfg.JWTRefreshExpSec)*time.Second)

	// Initialize facades
	mediaFacade := facades.NewMediaUploadFacade(nil, cfg.MediaBaseURL)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	channelRepo := repositories.NewChannelReadRepository(db)
	channelCacheRepo := repositories.NewChannelProfileCacheRepository(rdb,
		time.Duration(cfg.ProfileCacheTTLSec)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, kafkaWriter)
	userService := services.NewUserService(userReadRepo, userWriteRepo, mediaFacade)
	channelService := services.NewChannelService(userReadRepo, channelRepo, channelCacheRepo, subscriptionRepo)

	cookies := handlers.CookieConfig{
		Secure:        cfg.CookieSecure,
		AccessMaxAge:  time.Duration(cfg.JWTAccessExpSec) * time.Second,
		RefreshMaxAge: time.Duration(cfg.JWTRefreshExpSec) * time.Second,
	}

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService, mediaFacade)
	loginHandler := handlers.NewLoginHandler(authService, cookies)
	logoutHandler := handlers.NewLogoutHandler(authService, cookies)
	refreshHandler := handlers.NewRefreshHandler(authService, cookies)
	changePasswordHandler := handlers.NewChangePasswordHandler(authService)
	currentUserHandler := handlers.NewCurrentUserHandler(userService)
	updateAccountHandler := handlers.NewUpdateAccountHandler(userService)
	updateAvatarHandler := handlers.NewUpdateAvatarHandler(userService)
	updateCoverImageHandler := handlers.NewUpdateCoverImageHandler(userService)
	channelProfileHandler := handlers.NewChannelProfileHandler(channelService)
	toggleSubscriptionHandler := handlers.NewToggleSubscriptionHandler(channelService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware())

	authMiddleware := middlewares.AuthMiddleware(tokens)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/users/register", registerHandler)
		r.Post("/users/login", loginHandler)
		r.Post("/users/refresh-token", refreshHandler)

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/users/logout", logoutHandler)
			r.Post("/users/change-password", changePasswordHandler)
			r.Get("/users/current-user", currentUserHandler)
			r.Patch("/users/update-account", updateAccountHandler)
			r.Patch("/users/avatar", updateAvatarHandler)
			r.Patch("/users/cover-image", updateCoverImageHandler)
			r.Get("/users/channel/{username}", channelProfileHandler)
			r.Post("/subscriptions/{channelID}", toggleSubscriptionHandler)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
