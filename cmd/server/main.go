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
	"github.com/rabbitmq/amqp091-go"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	ginprometheus "github.com/zsais/go-gin-prometheus"

	"pta-server/internal/auth"
	"pta-server/internal/catalog"
	"pta-server/internal/config"
	"pta-server/internal/database"
	"pta-server/internal/handler"
	"pta-server/internal/messaging"
	"pta-server/internal/repository"
	"pta-server/internal/service"
	sharedLogger "pta-server/shared/logger"
	sharedMiddleware "pta-server/shared/middleware"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// --- External connections ---
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := database.NewPool(ctx, cfg.DatabaseURL(), logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	if err := database.ApplyMigrations(pgPool, logger); err != nil {
		zap.L().Fatal("Failed to apply migrations", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	zap.L().Info("Connected to Redis")

	mqConn, err := connectRabbitMQ(cfg.RabbitMQURL, logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()
	zap.L().Info("Connected to RabbitMQ")

	// --- Species catalog ---
	speciesCatalog, err := catalog.Load()
	if err != nil {
		zap.L().Fatal("Failed to load species catalog", zap.Error(err))
	}
	zap.L().Info("Species catalog loaded", zap.Int("species", speciesCatalog.SpeciesCount()))

	// --- Dependency injection ---
	userRepo := repository.NewPgUserRepository(pgPool, logger.Named("PgUserRepo"))
	gameRepo := repository.NewPgGameRepository(pgPool, logger.Named("PgGameRepo"))
	trainerRepo := repository.NewPgTrainerRepository(pgPool, logger.Named("PgTrainerRepo"))
	npcRepo := repository.NewPgNPCRepository(pgPool, logger.Named("PgNPCRepo"))
	pokemonRepo := repository.NewPgPokemonRepository(pgPool, logger.Named("PgPokemonRepo"))
	settingRepo := repository.NewPgSettingRepository(pgPool, logger.Named("PgSettingRepo"))
	shopRepo := repository.NewPgShopRepository(pgPool, logger.Named("PgShopRepo"))
	dexRepo := repository.NewPgDexRepository(pgPool, logger.Named("PgDexRepo"))
	logRepo := repository.NewPgGameLogRepository(pgPool, logger.Named("PgGameLogRepo"))
	tokenRepo := repository.NewRedisTokenRepository(redisClient, logger.Named("RedisTokenRepo"))

	publisher, err := messaging.NewRabbitMQGameEventPublisher(mqConn, cfg.GameEventsQueue, logger)
	if err != nil {
		zap.L().Fatal("Failed to create game event publisher", zap.Error(err))
	}

	services := service.NewServices(service.Dependencies{
		Users:     userRepo,
		Games:     gameRepo,
		Trainers:  trainerRepo,
		NPCs:      npcRepo,
		Pokemon:   pokemonRepo,
		Settings:  settingRepo,
		Shops:     shopRepo,
		Dex:       dexRepo,
		Logs:      logRepo,
		Tokens:    tokenRepo,
		Catalog:   speciesCatalog,
		Publisher: publisher,
	}, logger)

	guard := auth.NewGuard(userRepo, trainerRepo, tokenRepo, cfg.SessionAuthHash, logger)

	apiHandler := handler.NewHandler(
		services.Users,
		services.Games,
		services.Trainers,
		services.Pokemon,
		services.Dex,
		services.Settings,
		services.Catch,
		services.Exchange,
		guard,
		logger,
	)

	wsLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	wsHandler := handler.NewWebSocketHandler(services.Settings, guard, wsLogger)

	// --- HTTP server (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(sharedMiddleware.ZapLoggingMiddlewareForGin(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if allowedOrigins := cfg.GetAllowedOrigins(); len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Length", "Content-Type",
		handler.HeaderUserID, handler.HeaderActivityToken, handler.HeaderSessionAuth,
	}
	corsConfig.ExposeHeaders = []string{handler.HeaderActivityToken}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/ws", gin.WrapF(wsHandler.ServeWS))

	apiHandler.RegisterRoutes(router)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// connectRabbitMQ dials the broker with retries so the server survives
// broker restarts during deployment.
func connectRabbitMQ(url string, logger *zap.Logger) (*amqp091.Connection, error) {
	var conn *amqp091.Connection
	var err error
	maxRetries := 5
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		conn, err = amqp091.Dial(url)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ", zap.Int("attempt", attempt))
			go func() {
				notifyClose := make(chan *amqp091.Error)
				conn.NotifyClose(notifyClose)
				if closeErr := <-notifyClose; closeErr != nil {
					logger.Error("RabbitMQ connection closed unexpectedly", zap.Error(closeErr))
				}
			}()
			return conn, nil
		}
		logger.Warn("RabbitMQ connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err))
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}
