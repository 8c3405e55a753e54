package container

import (
	"context"
	"errors"
	"fmt"

	gcs "cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hyb-mobile-app/hyb-api/config"
	"github.com/hyb-mobile-app/hyb-api/internal/domain/repository"
	"github.com/hyb-mobile-app/hyb-api/internal/infrastructure/cache"
	"github.com/hyb-mobile-app/hyb-api/internal/infrastructure/memory"
	pginfra "github.com/hyb-mobile-app/hyb-api/internal/infrastructure/postgres"
	"github.com/hyb-mobile-app/hyb-api/internal/infrastructure/search"
	"github.com/hyb-mobile-app/hyb-api/internal/infrastructure/storage"
	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
)

// Container holds the components constructed once at startup and shared by the
// router modules. Optional backends are nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager

	Users repository.UserRepository
	Posts repository.PostRepository

	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	GCS       *gcs.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	UserIndex *search.UserIndex
	Avatars   *storage.AvatarStore
}

// NewMemory builds a container backed by in-process repositories only.
func NewMemory(cfg *config.Config, logger *logrus.Logger) *Container {
	users := memory.NewUserRepository()
	return &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Users:  users,
		Posts:  memory.NewPostRepository(users),
	}
}

// Build connects the configured store and optional backends. Optional backends
// that fail to come up are logged and left nil; the store is mandatory.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	var c *Container
	switch cfg.StoreDriver {
	case "memory":
		c = NewMemory(cfg, logger)
		logger.Warn("using in-memory store; data is lost on restart")
	case "postgres", "":
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		c = &Container{
			Config: cfg,
			Logger: logger,
			JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
			PGPool: pool,
			Users:  pginfra.NewUserRepository(pool),
			Posts:  pginfra.NewPostRepository(pool),
		}
	default:
		return nil, errors.New("unknown STORE_DRIVER " + cfg.StoreDriver)
	}

	if cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, user cache disabled")
		} else {
			c.Redis = rdb
			c.Users = cache.NewUserRepository(c.Users, rdb, cfg.UserCacheTTL, logger)
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed, search disabled")
		} else {
			idx := search.NewUserIndex(es, cfg.ESUsersIndex, logger)
			if err := idx.EnsureIndex(ctx); err != nil {
				logger.WithError(err).Warn("elasticsearch index setup failed, search disabled")
			} else {
				c.ES = es
				c.UserIndex = idx
			}
		}
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, welcome emails disabled")
		} else {
			c.RabbitPub = pub
		}
	}

	if cfg.GCSBucket != "" {
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs client init failed, avatar upload disabled")
		} else {
			c.GCS = client
			c.Avatars = storage.NewAvatarStore(client, cfg.GCSBucket)
		}
	}

	return c, nil
}

// Close releases every backend connection held by the container.
func (c *Container) Close() {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
