package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"personal-notes-be/internal/config"
	"personal-notes-be/internal/controller"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/pkg/token"
	"personal-notes-be/internal/repository/contract"
	"personal-notes-be/internal/repository/memory"
	"personal-notes-be/internal/repository/redisstore"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/internal/service"
	pktNats "personal-notes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HealthController   controller.IHealthController
	AuthController     controller.IAuthController
	CategoryController controller.ICategoryController
	NoteController     controller.INoteController
	CommentController  controller.ICommentController

	AuthMiddleware fiber.Handler
	Logger         logger.ILogger

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	closers []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db, sysLogger)
	tokens := token.NewManager(cfg.Auth.JwtSecret)

	sessions, err := c.newSessionRepository(cfg)
	if err != nil {
		return nil, err
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	var mirror service.EventMirror
	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			mirror = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	activityLogger := logger.NewIsolatedLogger(cfg.App.ActivityLogFilePath)
	c.closers = append(c.closers, activityLogger.Sync)

	publisherService := service.NewPublisherService(cfg.Events.ActivityTopic, pubSub, mirror, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.ActivityTopic, activityLogger, sysLogger)

	// 3. Services
	authService := service.NewAuthService(uowFactory, sessions, tokens, cfg.Auth.SessionTTL, publisherService)
	categoryService := service.NewCategoryService(uowFactory, publisherService, cfg.Cache.CategoryTTL)
	noteService := service.NewNoteService(uowFactory, publisherService)
	commentService := service.NewCommentService(uowFactory, publisherService)

	// 4. Controllers
	c.AuthMiddleware = serverutils.JwtMiddleware(tokens, sessions)
	c.HealthController = controller.NewHealthController(db)
	c.AuthController = controller.NewAuthController(authService)
	c.CategoryController = controller.NewCategoryController(categoryService)
	c.NoteController = controller.NewNoteController(noteService)
	c.CommentController = controller.NewCommentController(commentService)

	return c, nil
}

func (c *Container) newSessionRepository(cfg *config.Config) (contract.SessionRepository, error) {
	switch cfg.Auth.SessionStore {
	case "", "memory":
		return memory.NewSessionRepository(), nil
	case "redis":
		opt, err := redis.ParseURL(cfg.Auth.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opt)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}

		c.closers = append(c.closers, rdb.Close)
		return redisstore.NewSessionRepository(rdb), nil
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.Auth.SessionStore)
	}
}

// Close releases the event bus and external connections in reverse order.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
