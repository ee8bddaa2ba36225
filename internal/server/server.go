package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"kam-store/internal/cart"
	"kam-store/internal/catalog"
	"kam-store/internal/checkout"
	"kam-store/internal/config"
	"kam-store/internal/identity"
	custommiddleware "kam-store/internal/middleware"
	"kam-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client, idAdapter identity.Adapter) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Cart persistence backend
	slots := newSlotStore(cfg, db, redisClient, logger)

	// Core services
	catalogRepo := catalog.NewStaticRepository()
	cartManager := cart.NewManager(slots, cfg.Cart.SlotKeyPrefix, logger)
	processor := checkout.NewSimulatedProcessor(time.Duration(cfg.Checkout.PaymentDelayMS) * time.Millisecond)
	checkoutService := checkout.NewService(cartManager, processor, cfg.Checkout.ShippingFee, logger)

	// Handlers
	catalogHandler := transport.NewCatalogHandler(catalogRepo, logger)
	cartHandler := transport.NewCartHandler(cartManager, catalogRepo, cfg.Cart.CookieName, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, cfg.Cart.CookieName, logger)
	authHandler := transport.NewAuthHandler(idAdapter, logger)

	authMiddleware := custommiddleware.AuthMiddleware(idAdapter, logger)

	// Register routes
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router)

	if redisClient != nil {
		// Credential endpoints get a tighter limit than the rest of the API
		rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 20,
			Window:            time.Minute,
			KeyPrefix:         "kam-store:ratelimit:auth",
		}, logger)

		router.Group(func(r chi.Router) {
			r.Use(rateLimit)
			authHandler.RegisterRoutes(r, authMiddleware)
		})
	} else {
		authHandler.RegisterRoutes(router, authMiddleware)
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

// newSlotStore picks the cart persistence backend. A misconfigured or
// unreachable backend degrades to in-memory storage rather than refusing to
// start.
func newSlotStore(cfg *config.Config, db *sql.DB, redisClient *redis.Client, logger *zap.Logger) cart.SlotStore {
	switch cfg.Cart.Backend {
	case "postgres":
		if db != nil {
			return cart.NewPostgresSlotStore(db)
		}
		logger.Warn("Cart backend is postgres but no database is connected, using memory")
	case "redis":
		if redisClient != nil {
			ttl := time.Duration(cfg.Cart.RedisTTLHours) * time.Hour
			return cart.NewRedisSlotStore(redisClient, ttl)
		}
		logger.Warn("Cart backend is redis but no redis client is connected, using memory")
	case "memory":
	default:
		logger.Warn("Unknown cart backend, using memory", zap.String("backend", cfg.Cart.Backend))
	}
	return cart.NewMemorySlotStore()
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
