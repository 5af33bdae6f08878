package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/go-playground/validator/v10"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/Ramsey-B/clover/config"
	"github.com/Ramsey-B/clover/internal/handlers"
	"github.com/Ramsey-B/clover/pkg/actions"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/health"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/middleware"
	cloverredis "github.com/Ramsey-B/clover/pkg/redis"
	"github.com/Ramsey-B/clover/pkg/repositories"
	"github.com/Ramsey-B/clover/pkg/startup"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var version = "dev"

type app struct {
	cfg    *config.Config
	logger ectologger.Logger

	db          database.DB
	sqlDB       *sqlx.DB
	redisClient *cloverredis.Client
	producer    *kafka.Producer
	echo        *echo.Echo
	checker     *health.Checker
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg config.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("read config: %v", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := buildLogger(&cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: cfg.AppName,
		Enabled:     cfg.OTLPEnabled,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		log.Fatalf("initialize tracing: %v", err)
	}

	a := &app{cfg: &cfg, logger: logger}

	manager := startup.NewStartup(logger, cfg.StartupMaxAttempts)
	manager.AddDependency(&databaseDependency{app: a})
	if cfg.RedisEnabled {
		manager.AddDependency(&redisDependency{app: a})
	}
	if cfg.KafkaEnabled {
		manager.AddDependency(&kafkaDependency{app: a})
	}
	manager.AddDependency(&serverDependency{app: a})

	if err := manager.Start(ctx); err != nil {
		logger.WithError(err).Error("startup failed")
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := manager.Stop(stopCtx); err != nil {
		logger.WithError(err).Error("shutdown did not complete cleanly")
	}
	if err := shutdownTracing(stopCtx); err != nil {
		logger.WithError(err).Error("failed to flush traces")
	}
}

func buildLogger(cfg *config.Config) ectologger.Logger {
	var zapLogger *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

type databaseDependency struct {
	app *app
}

func (d *databaseDependency) GetName() string    { return "database" }
func (d *databaseDependency) DependsOn() []string { return nil }

func (d *databaseDependency) Start(ctx context.Context) error {
	cfg := d.app.cfg

	db, sqlDB, err := database.Connect(ctx, database.Config{
		Driver:          cfg.DatabaseDriver,
		Host:            cfg.DatabaseHost,
		Port:            cfg.DatabasePort,
		UserName:        cfg.DatabaseUserName,
		Password:        cfg.DatabasePassword,
		Name:            cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	}, d.app.logger)
	if err != nil {
		return err
	}
	d.app.db = db
	d.app.sqlDB = sqlDB

	driver, err := migratepg.WithInstance(sqlDB.DB, &migratepg.Config{})
	if err != nil {
		return err
	}

	migrations := database.NewMigrationService(d.app.logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
	})
	return migrations.Migrate(cfg.DatabaseName, driver)
}

func (d *databaseDependency) Stop(context.Context) error {
	if d.app.sqlDB != nil {
		return d.app.sqlDB.Close()
	}
	return nil
}

type redisDependency struct {
	app *app
}

func (d *redisDependency) GetName() string    { return "redis" }
func (d *redisDependency) DependsOn() []string { return nil }

func (d *redisDependency) Start(context.Context) error {
	client, err := cloverredis.NewClient(cloverredis.Config{
		Host:     d.app.cfg.RedisHost,
		Port:     d.app.cfg.RedisPort,
		Password: d.app.cfg.RedisPassword,
		DB:       d.app.cfg.RedisDB,
	}, d.app.logger)
	if err != nil {
		return err
	}
	d.app.redisClient = client
	return nil
}

func (d *redisDependency) Stop(context.Context) error {
	if d.app.redisClient != nil {
		return d.app.redisClient.Close()
	}
	return nil
}

type kafkaDependency struct {
	app *app
}

func (d *kafkaDependency) GetName() string    { return "kafka" }
func (d *kafkaDependency) DependsOn() []string { return nil }

func (d *kafkaDependency) Start(context.Context) error {
	d.app.producer = kafka.NewProducer(kafka.ProducerConfig{
		Brokers: strings.Split(d.app.cfg.KafkaBrokers, ","),
		Topic:   d.app.cfg.KafkaEventsTopic,
	}, d.app.logger)
	return nil
}

func (d *kafkaDependency) Stop(context.Context) error {
	if d.app.producer != nil {
		return d.app.producer.Close()
	}
	return nil
}

type serverDependency struct {
	app *app
}

func (d *serverDependency) GetName() string { return "server" }

func (d *serverDependency) DependsOn() []string {
	deps := []string{"database"}
	if d.app.cfg.RedisEnabled {
		deps = append(deps, "redis")
	}
	if d.app.cfg.KafkaEnabled {
		deps = append(deps, "kafka")
	}
	return deps
}

func (d *serverDependency) Start(context.Context) error {
	a := d.app
	cfg := a.cfg

	submissionRepo := repositories.NewSubmissionRepository(a.db, a.logger)
	inventoryRepo := repositories.NewInventoryRepository(a.db, a.logger)
	forecastRepo := repositories.NewForecastRepository(a.db, a.logger)
	saleRepo := repositories.NewSaleRepository(a.db, a.logger)

	var emitter events.Emitter = events.NoopEmitter{}
	if a.producer != nil {
		emitter = events.NewKafkaEmitter(a.producer, a.logger)
	}

	service := actions.NewService(submissionRepo, inventoryRepo, forecastRepo, saleRepo, emitter, a.logger)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second

	e.HTTPErrorHandler = middleware.Error(a.logger)
	e.Use(echomw.Recover())
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(a.logger))

	if cfg.AuthEnabled {
		e.Use(middleware.Authentication(a.logger, cfg.AuthIssuerURL, cfg.AuthClientID))
	} else {
		e.Use(middleware.TestAuth())
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	a.checker = health.NewChecker(a.sqlDB, redisRaw(a.redisClient), version)
	a.checker.RegisterRoutes(e)

	api := e.Group("/api/v1")
	if a.redisClient != nil {
		limiter := cloverredis.NewRateLimiter(a.redisClient, "clover:ratelimit:")
		api.Use(middleware.RateLimit(limiter, a.logger, cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	handlers.NewDashboardHandler(service, submissionRepo).RegisterRoutes(api)
	handlers.NewInventoryHandler(service, inventoryRepo).RegisterRoutes(api)
	handlers.NewForecastHandler(service, forecastRepo).RegisterRoutes(api)
	handlers.NewAnalyticsHandler(submissionRepo, inventoryRepo, forecastRepo, saleRepo).RegisterRoutes(api)

	a.echo = e

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Error("http server stopped unexpectedly")
			os.Exit(1)
		}
	}()

	a.checker.SetReady(true)
	return nil
}

func (d *serverDependency) Stop(ctx context.Context) error {
	if d.app.checker != nil {
		d.app.checker.SetReady(false)
	}
	if d.app.echo != nil {
		return d.app.echo.Shutdown(ctx)
	}
	return nil
}

func redisRaw(client *cloverredis.Client) *goredis.Client {
	if client == nil {
		return nil
	}
	return client.Redis()
}
