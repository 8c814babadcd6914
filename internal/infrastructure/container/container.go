package container

import (
	"fmt"

	"github.com/fitmatch-app/backend/internal/config"
	delivery "github.com/fitmatch-app/backend/internal/delivery/http"
	"github.com/fitmatch-app/backend/internal/delivery/http/handler"
	"github.com/fitmatch-app/backend/internal/delivery/http/middleware"
	"github.com/fitmatch-app/backend/internal/delivery/ws"
	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/fitmatch-app/backend/internal/fanout"
	"github.com/fitmatch-app/backend/internal/infrastructure/database"
	"github.com/fitmatch-app/backend/internal/infrastructure/server"
	"github.com/fitmatch-app/backend/internal/logger"
	"github.com/fitmatch-app/backend/internal/presence"
	"github.com/fitmatch-app/backend/internal/repository/postgres"
	"github.com/fitmatch-app/backend/internal/usecase/chat"
	"github.com/fitmatch-app/backend/internal/usecase/match"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Log    zerolog.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.New("fitmatch-backend", cfg.Logging.Level)

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	clock := domain.SystemClock()
	tracker := presence.NewTracker(redisClient, clock)
	hub := fanout.NewHub(log)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	chatRepo := postgres.NewChatRepository(db)

	// Use cases
	matchUseCase := match.NewUseCase(userRepo, matchRepo, clock, log)
	chatUseCase := chat.NewUseCase(chatRepo, userRepo, hub, tracker, clock, log)

	// Delivery
	matchHandler := handler.NewMatchHandler(matchUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	wsHandler := ws.NewHandler(hub, chatUseCase, tracker, cfg.JWT.AccessSecret, log)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret, tracker)

	router := delivery.NewRouter(matchHandler, chatHandler, wsHandler, authMiddleware)
	ginRouter := router.Setup()

	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Log:    log,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error().Err(err).Msg("error closing redis")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
