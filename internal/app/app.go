package app

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/weatherops/weather-automation-api/docs"
	"github.com/weatherops/weather-automation-api/internal/cache"
	"github.com/weatherops/weather-automation-api/internal/config"
	"github.com/weatherops/weather-automation-api/internal/emailer"
	"github.com/weatherops/weather-automation-api/internal/handlers/middleware"
	submissionHandler "github.com/weatherops/weather-automation-api/internal/handlers/submission"
	weatherHandler "github.com/weatherops/weather-automation-api/internal/handlers/weather"
	webhookHandler "github.com/weatherops/weather-automation-api/internal/handlers/webhook"
	"github.com/weatherops/weather-automation-api/internal/kvstore"
	"github.com/weatherops/weather-automation-api/internal/metrics"
	"github.com/weatherops/weather-automation-api/internal/models"
	"github.com/weatherops/weather-automation-api/internal/repository"
	"github.com/weatherops/weather-automation-api/internal/services/email"
	"github.com/weatherops/weather-automation-api/internal/services/logger"
	"github.com/weatherops/weather-automation-api/internal/services/submission"
	serviceWeather "github.com/weatherops/weather-automation-api/internal/services/weather"
	"github.com/weatherops/weather-automation-api/internal/services/weather/decorators"
	"github.com/weatherops/weather-automation-api/internal/services/webhook"
)

const (
	timeoutDuration = 5 * time.Second

	fileMode = 0o644
)

type App struct {
	cfg config.Config
	log *log.Logger
}

type ServiceContainer struct {
	WeatherService    *serviceWeather.Resolver
	SubmissionService *submission.MetricsDecorator
	EmailService      *email.Service
	WebhookService    *webhook.Service
	Repository        *repository.WeatherRequestRepository
	Collector         *metrics.PromCollector

	Router     *gin.Engine
	Srv        *http.Server
	Db         *sql.DB
	Redis      *redis.Client
	FileLogger *zap.Logger
}

func New(cfg config.Config, logger *log.Logger) *App {
	return &App{
		cfg: cfg,
		log: logger,
	}
}

func (a *App) Init() ServiceContainer {
	a.log.Println("Initializing application on", a.cfg.ServerAddress())

	db, err := CreateSqliteDb(a.cfg.DB.Dialect, a.cfg.DB.Source)
	if err != nil {
		a.log.Panic(err)
	}

	if err := InitSqliteDb(db, a.cfg.DB.MigrationsPath); err != nil {
		a.log.Panic(err)
	}

	router := gin.Default()

	apiServer := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	fileLogger, err := newFileLogger(a.cfg.LogsPath)
	if err != nil {
		a.log.Panicf("failed to create file logger: %v", err)
	}

	httpLogClient := &http.Client{
		Transport: logger.NewRoundTripper(fileLogger),
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: a.cfg.Redis.Address(),
		DB:   a.cfg.Redis.Db,
	})

	fallback := serviceWeather.NewFallback(nil)

	var weatherService *serviceWeather.Resolver
	if a.cfg.WeatherAPIKey == "" {
		a.log.Println("no weather provider key configured, resolving from fallback only")
		weatherService = serviceWeather.NewResolver(a.log, nil, fallback)
	} else {
		apiClient := serviceWeather.NewWeatherAPIClient(
			a.cfg.WeatherAPIKey,
			a.cfg.WeatherAPIURL,
			httpLogClient,
			a.log,
		)
		breakerClient := serviceWeather.NewBreakerClient(
			"weatherapi",
			apiClient,
			time.Duration(a.cfg.Breaker.TimeInterval)*time.Second,
			time.Duration(a.cfg.Breaker.TimeTimeOut)*time.Second,
			a.cfg.Breaker.RepeatNumber,
		)
		cachedClient := decorators.NewCachedClient(
			breakerClient,
			cache.NewRedisClient[models.WeatherSnapshot](rdb, a.log),
			a.log,
			time.Duration(a.cfg.Redis.LiveTime)*time.Minute,
		)
		weatherService = serviceWeather.NewResolver(a.log, cachedClient, fallback)
	}

	resendClient, err := emailer.NewResendClient(&a.cfg, httpLogClient, a.log)
	if err != nil {
		a.log.Panicf("failed to create email client: %v", err)
	}
	emailService := email.NewService(resendClient, a.cfg.TemplatesDir, a.cfg.Email.Timezone, a.log)

	webhookService := webhook.NewService(
		httpLogClient,
		kvstore.NewRedisStore(rdb),
		a.log,
		a.cfg.App.Name,
		a.cfg.App.Version,
	)

	requestRepository := repository.NewWeatherRequestRepository(db, a.log)
	collector := metrics.NewPromCollector()

	submissionService := submission.NewMetricsDecorator(
		submission.NewService(weatherService, requestRepository, emailService, a.log),
		collector,
	)

	return ServiceContainer{
		WeatherService:    weatherService,
		SubmissionService: submissionService,
		EmailService:      emailService,
		WebhookService:    webhookService,
		Repository:        requestRepository,
		Collector:         collector,

		Router:     router,
		Srv:        apiServer,
		Db:         db,
		Redis:      rdb,
		FileLogger: fileLogger,
	}
}

func (a *App) Start(srvContainer ServiceContainer) error {
	a.log.Println("Starting server on", a.cfg.ServerAddress())

	submitHandler := submissionHandler.NewHandler(
		srvContainer.SubmissionService,
		srvContainer.Repository,
		a.log,
	)
	wHandler := weatherHandler.NewHandler(srvContainer.WeatherService)
	hookHandler := webhookHandler.NewHandler(
		srvContainer.WebhookService,
		srvContainer.WeatherService,
		srvContainer.Collector,
		a.log,
	)

	api := srvContainer.Router.Group("/api")
	{
		api.GET("/weather", wHandler.GetWeather)

		authed := api.Group("", middleware.Identity())
		{
			authed.POST("/weather-request", submitHandler.Submit)
			authed.GET("/weather-requests", submitHandler.History)

			hooks := authed.Group("/webhook")
			{
				hooks.POST("/config", hookHandler.SaveConfig)
				hooks.GET("/config", hookHandler.GetConfig)
				hooks.DELETE("/config", hookHandler.ResetConfig)
				hooks.POST("/send", hookHandler.Send)
			}
		}
	}
	srvContainer.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	srvContainer.Router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))

	if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *App) Stop(srvContainer ServiceContainer) error {
	a.log.Println("Stopping application")

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		a.log.Println("HTTP shutdown error:", err)
	} else {
		a.log.Println("HTTP server stopped")
	}

	if err := srvContainer.Redis.Close(); err != nil {
		a.log.Println("Redis close error:", err)
	}

	if err := srvContainer.Db.Close(); err != nil {
		a.log.Println("DB close error:", err)
	} else {
		a.log.Println("Database closed")
	}

	if err := srvContainer.FileLogger.Sync(); err != nil {
		a.log.Printf("failed to sync file logger: %v", err)
	}

	a.log.Println("Shutdown complete")
	return nil
}

func CreateSqliteDb(dialect, name string) (*sql.DB, error) {
	if name == "" {
		return nil, errors.New("database name cannot be empty")
	}
	connectionString := "file:" + name + "?cache=shared&mode=rwc"
	db, err := sql.Open(dialect, connectionString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitSqliteDb(db *sql.DB, migrationPath string) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	if err := goose.Up(db, migrationPath); err != nil {
		return err
	}

	return nil
}

func newFileLogger(filePath string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filepath.Clean(filePath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, err
	}

	writer := zapcore.AddSync(file)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		writer,
		zap.InfoLevel,
	)
	return zap.New(core), nil
}
