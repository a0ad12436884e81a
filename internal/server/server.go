package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowwork/internal/cache"
	"flowwork/internal/config"
	"flowwork/internal/database"
	"flowwork/internal/glguess"
	"flowwork/internal/handler"
	"flowwork/internal/logger"
	"flowwork/internal/metrics"
	"flowwork/internal/middleware"
	"flowwork/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Engine  *gin.Engine
	DB      *gorm.DB
	Config  *config.Config
	Log     *logger.Logger
	Metrics *metrics.Metrics

	redis *redis.Client
}

func Init(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Server, error) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Event(ctx, zerolog.InfoLevel).Str("driver", cfg.DBDriver).Msg("connected to database")

	s := &Server{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Metrics: metrics.New(),
	}

	// Initialize repositories
	stores := handler.Stores{
		Boards:  repository.NewBoardRepository(db),
		Groups:  repository.NewGroupRepository(db),
		Columns: repository.NewColumnRepository(db),
		Items:   repository.NewItemRepository(db),
		Values:  repository.NewValueRepository(db),
	}

	var aimaps glguess.AIMapSource = repository.NewAIMapRepository(db)
	if cfg.CacheEnabled() {
		client, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		s.redis = client
		aimaps = cache.NewAIMapCache(client, aimaps, cfg.AIMapCacheTTL, log)
		log.Info(ctx, "ai map cache enabled")
	}
	engine := glguess.NewEngine(
		repository.NewHistoryRepository(db),
		aimaps,
		repository.NewHintRepository(db),
	)

	s.Engine = s.routes(stores, engine)
	return s, nil
}

func (s *Server) routes(stores handler.Stores, guesser handler.Guesser) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(s.Log, s.Metrics))

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(stores, s.Config.BoardItemLimit, s.Log, s.Metrics)
	groupHandler := handler.NewGroupHandler(stores, s.Log)
	columnHandler := handler.NewColumnHandler(stores, s.Log)
	itemHandler := handler.NewItemHandler(stores, s.Log, s.Metrics)
	glHandler := handler.NewGLGuessHandler(guesser, s.Log, s.Metrics)

	// Public routes
	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(s.Config.JWTSecret))
	{
		// Board routes
		api.POST("/boards", boardHandler.Create)
		api.GET("/boards", boardHandler.GetAll)
		api.GET("/boards/:id", boardHandler.GetByID)
		api.GET("/boards/:id/grid", boardHandler.Grid)
		api.POST("/boards/:id/recompute", boardHandler.Recompute)

		// Group routes
		api.POST("/boards/:id/groups", groupHandler.Create)
		api.GET("/boards/:id/groups", groupHandler.GetAll)

		// Column routes
		api.POST("/columns", columnHandler.Create)
		api.GET("/boards/:id/columns", columnHandler.GetAll)
		api.GET("/columns/:id", columnHandler.GetByID)
		api.PUT("/columns/:id", columnHandler.Update)
		api.DELETE("/columns/:id", columnHandler.Delete)
		api.POST("/boards/:id/columns/reorder", columnHandler.ReorderColumns)

		// Item routes
		api.POST("/boards/:id/items", itemHandler.Create)
		api.PUT("/items/:id/values/:column_id", itemHandler.SetValue)
		api.POST("/items/:id/move", itemHandler.Move)

		api.POST("/gl/guess", glHandler.Guess)
	}
	return r
}

func (s *Server) health(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), s.DB); err != nil {
		s.Log.Error(c.Request.Context(), "health check", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Close releases the database and cache connections.
func (s *Server) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	errs = append(errs, database.Close(s.DB))
	return errors.Join(errs...)
}

// Run serves until SIGINT or SIGTERM and then shuts down gracefully.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx := context.Background()

	errCh := make(chan error, 1)
	go func() {
		s.Log.Event(ctx, zerolog.InfoLevel).Str("port", s.Config.ServerPort).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to listen: %w", err)
	case <-quit:
	}
	s.Log.Info(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := s.Close(); err != nil {
		s.Log.Error(ctx, "closing connections", err)
	}

	s.Log.Info(ctx, "server exited properly")
	return nil
}
