package container

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/config"
	"github.com/oksasatya/budget-ledger-api/internal/application"
	esinfra "github.com/oksasatya/budget-ledger-api/internal/infrastructure/elasticsearch"
	gcsinfra "github.com/oksasatya/budget-ledger-api/internal/infrastructure/gcs"
	"github.com/oksasatya/budget-ledger-api/internal/infrastructure/memory"
	"github.com/oksasatya/budget-ledger-api/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/budget-ledger-api/internal/infrastructure/postgres"
	"github.com/oksasatya/budget-ledger-api/pkg/helpers"
	mailtpl "github.com/oksasatya/budget-ledger-api/pkg/mailer/templates"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Container holds every component built from config, once, at startup.
// Optional infrastructure stays nil when it is not configured or unreachable.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Pool   *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitPublisher

	Tokens   *helpers.JWTManager
	Hasher   *helpers.PasswordHasher
	Cookies  *helpers.CookieManager
	Services *application.Services

	closers []func()
}

// New wires the application. Only the primary store is mandatory; Redis, RabbitMQ,
// Elasticsearch and GCS degrade to "feature off" with a warning.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	repos, err := c.repositories(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Tokens = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.SessionTTL)
	c.Hasher = helpers.NewPasswordHasher(cfg.ArgonSalt, helpers.Argon2Params{
		Time:    cfg.ArgonTime,
		Memory:  cfg.ArgonMemoryKB,
		Threads: cfg.ArgonThreads,
	}, cfg.HashWorkers)
	c.Cookies = helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	c.connectRedis(ctx)
	deps := application.Deps{
		Repos:      repos,
		Tokens:     c.Tokens,
		Hasher:     c.Hasher,
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	if n := c.notifier(); n != nil {
		deps.Notifier = n
	}
	if d := c.directory(ctx); d != nil {
		deps.Directory = d
	}
	if a := c.avatars(ctx); a != nil {
		deps.Avatars = a
	}
	c.Services = application.NewServices(deps)
	return c, nil
}

func (c *Container) repositories(ctx context.Context) (application.Repositories, error) {
	cfg := c.Config
	switch cfg.Storage {
	case StorageMemory:
		c.Logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore(time.Now)
		return application.Repositories{
			Users:      store.Users(),
			Sessions:   store.Sessions(),
			Categories: store.Categories(),
			Budgets:    store.Budgets(),
			Expenses:   store.Expenses(),
		}, nil
	case StoragePostgres, "":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return application.Repositories{}, fmt.Errorf("connect postgres: %w", err)
		}
		c.Pool = pool
		c.closers = append(c.closers, pool.Close)
		return application.Repositories{
			Users:      pginfra.NewUserRepository(pool),
			Sessions:   pginfra.NewSessionRepository(pool, time.Now),
			Categories: pginfra.NewCategoryRepository(pool),
			Budgets:    pginfra.NewBudgetRepository(pool),
			Expenses:   pginfra.NewExpenseRepository(pool),
		}, nil
	default:
		return application.Repositories{}, fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}
}

// Migrate applies pending migrations. It is a no-op for in-memory storage.
func (c *Container) Migrate() error {
	if c.Pool == nil {
		return nil
	}
	return pginfra.RunMigrations(c.Config.PostgresDSN(), c.Config.MigrationsDir, c.Logger)
}

func (c *Container) connectRedis(ctx context.Context) {
	if c.Config.RedisAddr == "" {
		return
	}
	rdb := helpers.NewRedisClient(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := helpers.PingRedis(ctx, rdb); err != nil {
		c.Logger.WithError(err).Warn("redis unreachable; rate limiting disabled")
		_ = rdb.Close()
		return
	}
	c.Redis = rdb
	c.closers = append(c.closers, func() { _ = rdb.Close() })
}

func (c *Container) notifier() *notify.QueueNotifier {
	cfg := c.Config
	if cfg.RabbitMQURL == "" {
		return nil
	}
	pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		c.Logger.WithError(err).Warn("rabbitmq unreachable; notifications disabled")
		return nil
	}
	c.Rabbit = pub
	c.closers = append(c.closers, pub.Close)
	return notify.NewQueueNotifier(pub, mailtpl.Branding{
		AppName:        cfg.AppName,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
	})
}

func (c *Container) directory(ctx context.Context) *esinfra.UserIndex {
	addrs := c.Config.ESAddrs()
	if len(addrs) == 0 {
		return nil
	}
	client, err := helpers.NewESClient(addrs, c.Config.ElasticsearchUser, c.Config.ElasticsearchPass)
	if err == nil {
		err = helpers.PingES(ctx, client)
	}
	if err != nil {
		c.Logger.WithError(err).Warn("elasticsearch unavailable; user search disabled")
		return nil
	}
	c.ES = client
	return esinfra.NewUserIndex(client, c.Config.ESUsersIndex)
}

func (c *Container) avatars(ctx context.Context) *gcsinfra.AvatarStore {
	if c.Config.GCSBucket == "" {
		return nil
	}
	client, err := helpers.NewGCSClient(ctx, c.Config.GCSCredentialsJSONPath)
	if err != nil {
		c.Logger.WithError(err).Warn("gcs client failed; avatar upload disabled")
		return nil
	}
	c.GCS = client
	c.closers = append(c.closers, func() { _ = client.Close() })
	return gcsinfra.NewAvatarStore(client, c.Config.GCSBucket)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
