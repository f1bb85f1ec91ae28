package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap"

	_ "github.com/Nazarious-ucu/blog-newsletter-api/docs"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/cache"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/config"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/emailer"
	postHandlers "github.com/Nazarious-ucu/blog-newsletter-api/internal/handlers/posts"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/handlers/subscription"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/producers"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/reporter"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/repository/sqlite"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/services/email"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/services/logger"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/services/posts"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/services/subscriptions"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/services/uploads"
)

const timeoutDuration = 5 * time.Second

type postService interface {
	Create(ctx context.Context, in models.PostInput, image *models.Image) (models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (models.Post, error)
	Delete(ctx context.Context, id string) (models.Post, error)
}

type eventPublisher interface {
	subscriptions.EventPublisher
	posts.EventPublisher
}

// ServiceContainer owns every long-lived resource of the process.
type ServiceContainer struct {
	SubscriptionService *subscriptions.Service
	PostService         postService
	Reporter            *reporter.Reporter

	Router     *gin.Engine
	Srv        *http.Server
	Db         *sql.DB
	Redis      *redis.Client
	RabbitConn *rabbitmq.Conn
	Publisher  *rabbitmq.Publisher
	AccessLog  *zap.Logger
}

type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metrics.Metrics
}

func New(cfg config.Config, logger zerolog.Logger, m *metrics.Metrics) *App {
	logger = logger.With().Str("service", "blog-newsletter-api").Timestamp().Logger()
	return &App{cfg: cfg, l: logger, m: m}
}

// Start builds the container, serves HTTP until ctx is cancelled and then shuts everything down.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init(ctx)
	if err != nil {
		return err
	}

	if err := srvContainer.Reporter.Start(ctx); err != nil {
		a.l.Error().Err(err).Msg("stats reporter not started")
	}

	serveErr := make(chan error, 1)
	go func() {
		a.l.Info().Str("http_addr", a.cfg.ServerAddress()).Msg("HTTP server listening")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.l.Info().Msg("Shutdown signal received")
	case err = <-serveErr:
		if err != nil {
			a.l.Error().Err(err).Msg("HTTP server error")
		}
	}

	if stopErr := a.Stop(srvContainer); stopErr != nil && err == nil {
		err = stopErr
	}
	return err
}

// Init opens the store and the optional side channels and registers every route.
func (a *App) Init(ctx context.Context) (ServiceContainer, error) {
	a.l.Info().Str("db", a.cfg.DB.Source).Msg("Initializing application")

	openCtx, cancel := context.WithTimeout(ctx, timeoutDuration)
	defer cancel()

	db, err := sqlite.Open(openCtx, a.cfg.DB.Dialect, a.cfg.DB.Source)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("open database: %w", err)
	}
	c := ServiceContainer{Db: db}
	fail := func(err error) (ServiceContainer, error) {
		c.release(a.l)
		return ServiceContainer{}, err
	}

	if err := sqlite.Migrate(db); err != nil {
		return fail(fmt.Errorf("migrate database: %w", err))
	}
	a.m.RegisterDB(db, a.cfg.DB.Source)

	c.AccessLog, err = logger.NewFileLogger(a.cfg.AccessLogPath)
	if err != nil {
		return fail(fmt.Errorf("open access log: %w", err))
	}

	storage, err := uploads.NewStorage(a.cfg.UploadsDir)
	if err != nil {
		return fail(err)
	}

	welcome, err := email.NewService(a.setupSender())
	if err != nil {
		return fail(fmt.Errorf("parse e-mail templates: %w", err))
	}
	events := a.setupEvents(&c)

	subRepo := sqlite.NewSubscriptionRepository(db, a.l, a.m)
	postRepo := sqlite.NewPostRepository(db, a.l, a.m)

	tokens := subscriptions.NewTokens(a.cfg.UnsubscribeSecret, a.cfg.PublicBaseURL)
	c.SubscriptionService = subscriptions.NewService(subRepo, tokens, welcome, events, a.l, a.m)
	c.PostService = a.setupPostCache(openCtx, &c, posts.NewService(postRepo, storage, events, a.l, a.m))
	c.Reporter = reporter.New(subRepo, a.l, a.cfg.StatsSchedule, a.m)

	c.Router = a.router(c, storage)
	c.Srv = &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     c.Router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return c, nil
}

func (a *App) router(c ServiceContainer, storage *uploads.Storage) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), a.m.HTTPMiddleware(), logger.AccessLog(c.AccessLog))

	subHandler := subscription.NewHandler(c.SubscriptionService, a.cfg.UnsubscribeRedirect, a.l)
	postHandler := postHandlers.NewHandler(c.PostService, a.l)

	router.POST("/posts", postHandler.Create)
	router.GET("/posts", postHandler.List)
	router.GET("/posts/:id", postHandler.Get)
	router.DELETE("/posts", postHandler.Delete)

	router.POST("/subscriptions", subHandler.Subscribe)
	router.GET("/subscriptions", subHandler.List)
	router.PATCH("/subscriptions", subHandler.UpdateStatus)
	router.DELETE("/subscriptions", subHandler.Delete)
	router.GET("/unsubscribe", subHandler.Unsubscribe)

	router.Static(uploads.PublicPrefix, storage.Dir())
	router.GET("/metrics", gin.WrapH(a.m.Handler()))
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))

	return router
}

func (a *App) setupSender() email.Emailer {
	if !a.cfg.Email.Enabled() {
		a.l.Warn().Msg("SMTP not configured, welcome e-mails are only logged")
		return emailer.NewLogSender(a.l)
	}
	smtpService := emailer.NewSMTPService(a.cfg.Email, a.l, a.m)
	return emailer.NewBreakerSender("smtp", smtpService, a.cfg.Breaker)
}

func (a *App) setupEvents(c *ServiceContainer) eventPublisher {
	if !a.cfg.RabbitMQ.Enabled() {
		a.l.Warn().Msg("RabbitMQ not configured, domain events are dropped")
		return producers.Noop{}
	}

	conn, err := a.setupConn()
	if err != nil {
		return producers.Noop{}
	}
	publisher, err := a.setupPublisher(conn)
	if err != nil {
		a.l.Error().Err(err).Msg("RabbitMQ publisher error")
		_ = conn.Close()
		return producers.Noop{}
	}

	c.RabbitConn = conn
	c.Publisher = publisher
	return producers.NewProducer(publisher, a.l, a.m)
}

func (a *App) setupPostCache(ctx context.Context, c *ServiceContainer, svc *posts.Service) postService {
	if !a.cfg.Redis.Enabled() {
		return svc
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		a.l.Error().Err(err).Str("addr", a.cfg.Redis.Addr).Msg("Redis unreachable, post list is not cached")
		_ = client.Close()
		return svc
	}
	c.Redis = client

	redisCache := cache.NewMetricsDecorator[[]models.Post](cache.NewRedisClient[[]models.Post](client, a.l), a.m)
	return posts.NewCachedService(svc, redisCache, a.l, a.cfg.Redis.TTL)
}

// release closes whatever Init managed to open before it failed.
func (c *ServiceContainer) release(l zerolog.Logger) {
	if c.Publisher != nil {
		c.Publisher.Close()
	}
	if c.RabbitConn != nil {
		if err := c.RabbitConn.Close(); err != nil {
			l.Error().Err(err).Msg("RabbitMQ close error")
		}
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.AccessLog != nil {
		_ = c.AccessLog.Sync()
	}
	if c.Db != nil {
		if err := c.Db.Close(); err != nil {
			l.Error().Err(err).Msg("Database close error")
		}
	}
}

func (a *App) Stop(c ServiceContainer) error {
	a.l.Info().Msg("Stopping application")

	if c.Reporter != nil {
		c.Reporter.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()
	if err := c.Srv.Shutdown(ctx); err != nil {
		a.l.Error().Err(err).Msg("HTTP shutdown error")
	} else {
		a.l.Info().Msg("HTTP server stopped")
	}

	if c.Publisher != nil {
		c.Publisher.Close()
	}
	if c.RabbitConn != nil {
		if err := c.RabbitConn.Close(); err != nil {
			a.l.Error().Err(err).Msg("RabbitMQ close error")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			a.l.Error().Err(err).Msg("Redis close error")
		}
	}

	var err error
	if err = c.Db.Close(); err != nil {
		a.l.Error().Err(err).Msg("Database close error")
	} else {
		a.l.Info().Msg("Database closed")
	}

	_ = c.AccessLog.Sync()
	a.l.Info().Msg("Application shutdown complete")
	return err
}
