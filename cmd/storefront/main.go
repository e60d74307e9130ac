package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cartcommand "github.com/pixelpour/storefront/internal/cart/usecase/command"
	carthttp "github.com/pixelpour/storefront/internal/cart/delivery/http"
	cartrepo "github.com/pixelpour/storefront/internal/cart/repository"
	catalogdomain "github.com/pixelpour/storefront/internal/catalog/domain"
	cataloghttp "github.com/pixelpour/storefront/internal/catalog/delivery/http"
	catalogrepo "github.com/pixelpour/storefront/internal/catalog/repository"
	favhttp "github.com/pixelpour/storefront/internal/favorites/delivery/http"
	favrepo "github.com/pixelpour/storefront/internal/favorites/repository"
	"github.com/pixelpour/storefront/internal/notify"
	notifyhttp "github.com/pixelpour/storefront/internal/notify/delivery/http"
	reviewhttp "github.com/pixelpour/storefront/internal/review/delivery/http"
	reviewrepo "github.com/pixelpour/storefront/internal/review/repository"
	"github.com/pixelpour/storefront/internal/session"
	sessionhttp "github.com/pixelpour/storefront/internal/session/delivery/http"
	sessionrepo "github.com/pixelpour/storefront/internal/session/repository"
	"github.com/pixelpour/storefront/kafka"
	"github.com/pixelpour/storefront/pkg/database"
	"github.com/pixelpour/storefront/pkg/kvstore"
	"github.com/pixelpour/storefront/pkg/logger"
	"github.com/pixelpour/storefront/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting storefront service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// State container storage: Redis when configured, in-memory otherwise
	var store kvstore.Store
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			cancel()
			logger.Logger.Fatal().Err(err).Str("addr", redisAddr).Msg("Failed to connect to Redis")
		}
		cancel()

		store = kvstore.NewRedisStore(client)
		defer client.Close()

		logger.Logger.Info().Str("addr", redisAddr).Msg("Using Redis state storage")
	} else {
		store = kvstore.NewMemoryStore()
		logger.Logger.Info().Msg("Using in-memory state storage")
	}

	// Catalog: Postgres when configured, seeded in-memory otherwise
	var catalog catalogdomain.CatalogRepository
	if os.Getenv("DB_HOST") != "" {
		dbConfig := database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "storefrontdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		}

		db, err := database.NewGormConnection(dbConfig)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}

		sqlDB, err := db.DB()
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
		}
		defer sqlDB.Close()

		gormCatalog := catalogrepo.NewGormCatalogRepository(db)
		if err := gormCatalog.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run catalog migrations")
		}
		if err := gormCatalog.Seed(catalogrepo.SeedProducts()); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to seed catalog")
		}
		catalog = gormCatalog

		logger.Logger.Info().Msg("Using Postgres catalog")
	} else {
		catalog = catalogrepo.NewMemoryCatalogRepository(catalogrepo.SeedProducts())
		logger.Logger.Info().Msg("Using seeded in-memory catalog")
	}
	catalog = catalogrepo.NewTracingCatalogRepository(catalog)

	// Sessions and per-user state containers
	sessionManager := session.NewManager()
	accountRepo := sessionrepo.NewMemoryAccountRepository()
	notifyCenter := notify.NewCenter()

	cartRepository := cartrepo.NewKVCartRepository(store)
	favoritesRepository := favrepo.NewKVFavoritesRepository(store)
	reviewRepository := reviewrepo.NewKVReviewRepository(store)

	// Login and logout reset the in-memory copies so each session starts
	// from what storage has
	sessionManager.AddListener(cartRepository)
	sessionManager.AddListener(favoritesRepository)

	// Kafka is optional: without brokers, cart updates are simply not announced
	var events cartcommand.EventPublisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer publisher.Close()
		events = publisher

		// Other instances' cart updates invalidate our in-memory copy
		consumer, err := kafka.NewConsumer(
			strings.Split(brokers, ","),
			getEnv("KAFKA_CONSUMER_GROUP", "storefront-service"),
			[]string{kafka.TopicCartUpdated},
		)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
		}
		defer consumer.Close()

		consumer.RegisterHandler(kafka.EventTypeCartUpdated, func(ctx context.Context, event kafka.CartUpdatedEvent) error {
			cartRepository.Forget(event.UserID)
			return nil
		})

		consumerCtx, cancelConsumer := context.WithCancel(context.Background())
		defer cancelConsumer()
		if err := consumer.Start(consumerCtx); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
		}
	} else {
		logger.Logger.Info().Msg("Kafka brokers not configured, cart events disabled")
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(serviceName, httpPort, deps{
		catalog:   catalog,
		sessions:  sessionManager,
		accounts:  accountRepo,
		notify:    notifyCenter,
		carts:     cartRepository,
		favorites: favoritesRepository,
		reviews:   reviewRepository,
		events:    events,
	})

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

type deps struct {
	catalog   catalogdomain.CatalogRepository
	sessions  *session.Manager
	accounts  *sessionrepo.MemoryAccountRepository
	notify    *notify.Center
	carts     *cartrepo.KVCartRepository
	favorites *favrepo.KVFavoritesRepository
	reviews   *reviewrepo.KVReviewRepository
	events    cartcommand.EventPublisher
}

func startHTTPServer(serviceName, port string, d deps) {
	router := mux.NewRouter()

	sessionHandler := sessionhttp.NewSessionHandler(d.accounts, d.sessions)
	sessionHandler.RegisterRoutes(router)

	catalogHandler := cataloghttp.NewCatalogHandler(d.catalog)
	catalogHandler.RegisterRoutes(router)

	reviewHandler := reviewhttp.NewReviewHandler(d.reviews, d.catalog)
	reviewHandler.RegisterRoutes(router)

	cartHandler := carthttp.NewCartHandler(d.carts, d.catalog, d.sessions, d.notify, d.events)
	cartHandler.RegisterRoutes(router)

	favoritesHandler := favhttp.NewFavoritesHandler(d.favorites, d.catalog, d.sessions, d.notify)
	favoritesHandler.RegisterRoutes(router)

	notificationHandler := notifyhttp.NewNotificationHandler(d.notify, d.sessions)
	notificationHandler.RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"` + serviceName + `"}`))
	}).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), serviceName)

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
