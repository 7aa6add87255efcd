package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	logger_adapter "property-service/internal/adapters/logger"
	"property-service/internal/adapters/memory"
	mongodb_adapter "property-service/internal/adapters/mongodb"
	postgres_adapter "property-service/internal/adapters/postgres"
	rabbitmq_adapter "property-service/internal/adapters/rabbitmq"
	"property-service/internal/adapters/rest"
	"property-service/internal/configs"
	"property-service/internal/constants"
	"property-service/internal/contextkeys"
	"property-service/internal/core/port"
	usecases_port "property-service/internal/core/port/usecases_port"
	"property-service/internal/core/usecase"

	fluentlogger "property-service/pkg/fluent_logger"
	"property-service/pkg/mongodb"
	"property-service/pkg/postgres"
	"property-service/pkg/rabbitmq/rabbitmq_common"
	"property-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// storage - набор хранилищ выбранного драйвера
type storage struct {
	owners     port.OwnerStoragePort
	properties port.PropertyStoragePort
	images     port.PropertyImageStoragePort
	traces     port.PropertyTraceStoragePort

	health rest.HealthChecker
	close  func()
}

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	storage      *storage
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
	baseLogger   port.LoggerPort

	connManager    *rabbitmq_common.ConnectionManager
	eventsProducer *rabbitmq_producer.Publisher
	seedUseCase    usecases_port.SeedDataUseCase
}

// NewApp - composition root: все зависимости создаются и связываются здесь
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, "log", parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
		baseLogger:   baseLogger,
	}

	// --- 2. ХРАНИЛИЩЕ ---
	initCtx := contextkeys.ContextWithLogger(context.Background(), baseLogger.WithFields(port.Fields{"component": "storage"}))
	application.storage, err = openStorage(initCtx, appConfig)
	if err != nil {
		appLogger.Error("Failed to initialize storage", err, port.Fields{"driver": appConfig.Storage.Driver})
		application.closeResources()
		return nil, err
	}
	appLogger.Info("Storage initialized", port.Fields{"driver": appConfig.Storage.Driver})

	// --- 3. СОБЫТИЯ ---
	var eventsPublisher port.PropertyEventPublisherPort = rabbitmq_adapter.NoopPropertyEventsPublisher{}
	if appConfig.RabbitMQ.Enabled {
		publisher, err := application.initEventsPublisher()
		if err != nil {
			appLogger.Error("Failed to initialize RabbitMQ publisher", err, nil)
			application.closeResources()
			return nil, err
		}
		eventsPublisher = publisher
		appLogger.Info("Property events publisher initialized", port.Fields{"exchange": constants.PropertiesExchange})
	}

	// --- 4. USE CASES ---
	st := application.storage
	clock := usecase.SystemClock

	assembler := usecase.NewPropertyDetailsAssembler(st.owners, st.images, st.traces)
	filterUseCase := usecase.NewFilterPropertiesUseCase(st.owners, st.properties)
	findUseCase := usecase.NewFindPropertiesUseCase(filterUseCase, assembler)
	propertiesUseCase := usecase.NewPropertiesUseCase(st.properties, assembler, eventsPublisher, clock)
	ownersUseCase := usecase.NewOwnersUseCase(st.owners, clock)
	imagesUseCase := usecase.NewPropertyImagesUseCase(st.images, clock)
	tracesUseCase := usecase.NewPropertyTracesUseCase(st.traces, st.properties, eventsPublisher, clock)

	if appConfig.SeedOnStartup {
		application.seedUseCase = usecase.NewSeedDataUseCase(st.owners, st.properties, st.images, st.traces, clock)
	}

	// --- 5. REST ---
	handlers := rest.Handlers{
		Owners:     rest.NewOwnersHandler(ownersUseCase),
		Properties: rest.NewPropertiesHandler(propertiesUseCase, findUseCase),
		Images:     rest.NewPropertyImagesHandler(imagesUseCase),
		Traces:     rest.NewPropertyTracesHandler(tracesUseCase),
		Health:     rest.NewHealthHandler(st.health),
	}
	application.apiServer = rest.NewServer(appConfig.Rest.PORT, appConfig.Rest.AllowedOrigins, handlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

func openStorage(ctx context.Context, cfg *configs.AppConfig) (*storage, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	switch cfg.Storage.Driver {
	case configs.StorageMongo:
		client, db, err := mongodb.NewClient(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		store := mongodb_adapter.NewStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to create MongoDB indexes: %w", err)
		}
		logger.Info("Connected to MongoDB", port.Fields{"database": cfg.Mongo.Database})
		return &storage{
			owners: store.Owners, properties: store.Properties, images: store.Images, traces: store.Traces,
			health: func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			},
		}, nil

	case configs.StoragePostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.Database.URL, MaxConns: cfg.Database.MaxConns})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := postgres_adapter.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		store, err := postgres_adapter.NewStore(pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
		}
		logger.Info("Successfully connected to PostgreSQL pool!", nil)
		return &storage{
			owners: store.Owners, properties: store.Properties, images: store.Images, traces: store.Traces,
			health: pool.Ping,
			close:  pool.Close,
		}, nil

	case configs.StorageMemory:
		store := memory.NewStore()
		logger.Warn("Using in-memory storage, data will be lost on restart", nil)
		return &storage{
			owners: store.Owners, properties: store.Properties, images: store.Images, traces: store.Traces,
			close: func() {},
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func (a *App) initEventsPublisher() (*rabbitmq_adapter.PropertyEventsAdapter, error) {
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(a.baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             constants.PropertiesExchange,
		ExchangeType:             constants.PropertiesExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(a.baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create events producer: %w", err)
	}
	a.eventsProducer = producer

	return rabbitmq_adapter.NewPropertyEventsAdapter(producer)
}

// Run запускает сервер и ждет сигнала завершения
func (a *App) Run() error {
	defer a.shutdown()

	a.logger.Info("Application is starting...", nil)

	if a.seedUseCase != nil {
		seedCtx := contextkeys.ContextWithLogger(context.Background(), a.baseLogger.WithFields(port.Fields{"component": "seeder"}))
		if err := a.seedUseCase.Execute(seedCtx); err != nil {
			// сервис работает и без демо-данных
			a.logger.Error("Seeding failed", err, nil)
		}
	}

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		return err
	}
}

func (a *App) shutdown() {
	a.logger.Info("Shutdown sequence initiated...", nil)

	if a.apiServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
	}

	a.closeResources()
	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func (a *App) closeResources() {
	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Error closing events producer", err, nil)
		}
		a.eventsProducer = nil
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		a.connManager = nil
	}
	if a.storage != nil {
		a.storage.close()
		a.storage = nil
		a.logger.Info("Storage closed.", nil)
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
