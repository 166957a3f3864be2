package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/QuizMaster/config"
	"github.com/lshigami/QuizMaster/database"
	_ "github.com/lshigami/QuizMaster/docs" // Swagger docs
	"github.com/lshigami/QuizMaster/internal/catalog"
	adminctrl "github.com/lshigami/QuizMaster/internal/controller/admin"
	userctrl "github.com/lshigami/QuizMaster/internal/controller/user"
	"github.com/lshigami/QuizMaster/internal/logger"
	"github.com/lshigami/QuizMaster/internal/offline"
	"github.com/lshigami/QuizMaster/internal/repository"
	"github.com/lshigami/QuizMaster/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// @title QuizMaster Quiz API
// @version 1.2.0
// @description Quiz acquisition with caching, offline fallback and background pre-sync of generated quizzes.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core
		fx.Provide(
			config.NewConfig,
			NewKVStore,
			catalog.Load,
			offline.Load,
			NewGinEngine,
		),

		// Services
		fx.Provide(
			service.NewQuestionGenerator,
			service.NewQuizCacheService,
			service.NewQuizGenerationService,
			service.NewConnectivityService,
			func(m *service.ConnectivityMonitor) service.ConnectivityService { return m },
			func(s *offline.FallbackSet) service.OfflineQuizSource { return s },
			service.NewQuizAcquisitionService,
			service.NewQuizSyncService,
		),

		// Controllers
		fx.Provide(
			userctrl.NewQuizController,
			adminctrl.NewSyncController,
		),

		fx.Invoke(func(cfg *config.Config) { logger.SetLevel(cfg.LogLevel) }),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(StartBackgroundWorkers),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

// NewKVStore opens the cache substrate selected by CACHE_DRIVER and closes
// it on shutdown.
func NewKVStore(lc fx.Lifecycle, cfg *config.Config) (repository.KVStore, error) {
	var (
		store repository.KVStore
		err   error
	)

	switch strings.ToLower(cfg.Cache.Driver) {
	case "memory":
		store = repository.NewMemoryKVStore()
	case "", "sqlite":
		db, openErr := database.NewSQLite(cfg)
		if openErr != nil {
			return nil, openErr
		}
		store, err = repository.NewSQLiteKVStore(db)
	case "postgres":
		db, openErr := database.NewDatabase(cfg)
		if openErr != nil {
			return nil, openErr
		}
		store, err = repository.NewCacheEntryRepository(db)
	case "redis":
		client, openErr := database.NewRedis(cfg)
		if openErr != nil {
			return nil, openErr
		}
		store = repository.NewRedisKVStore(client)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("driver", cfg.Cache.Driver).Msg("Quiz cache store ready")
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(requestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("request_id", param.Request.Header.Get("X-Request-ID")).
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// requestID tags each request with an id, reusing the caller's X-Request-ID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set("X-Request-ID", id)
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	quizCtrl *userctrl.QuizController,
	syncCtrl *adminctrl.SyncController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/sync", syncCtrl.TriggerSync)
		adminAPIGroup.POST("/connectivity", syncCtrl.UpdateConnectivity)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.POST("/quizzes", quizCtrl.AcquireQuiz)
		userAPIGroup.GET("/catalog", quizCtrl.GetCatalog)
		userAPIGroup.GET("/sync/status", quizCtrl.GetSyncStatus)
		userAPIGroup.POST("/sync/acknowledge", quizCtrl.AcknowledgeSync)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizMaster API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// StartBackgroundWorkers runs the connectivity probe and the sync scheduler
// for the lifetime of the app.
func StartBackgroundWorkers(
	lc fx.Lifecycle,
	cfg *config.Config,
	syncService service.QuizSyncService,
	monitor *service.ConnectivityMonitor,
	generator service.QuestionGenerator,
) {
	probeCtx, cancelProbe := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go monitor.RunProbe(probeCtx)

			if !cfg.Sync.Enabled {
				log.Info().Msg("Background quiz sync disabled")
				return nil
			}
			syncService.Init(func(updatedAny bool) {
				if updatedAny {
					log.Info().Msg("New quizzes are available offline")
				}
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancelProbe()
			syncService.Stop()
			if closer, ok := generator.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					log.Warn().Err(err).Msg("Failed to close question generator")
				}
			}
			return nil
		},
	})
}
