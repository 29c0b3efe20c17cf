package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Dhruv6019/BrivaMart/internal/cache"
	"github.com/Dhruv6019/BrivaMart/internal/config"
	"github.com/Dhruv6019/BrivaMart/internal/database"
	"github.com/Dhruv6019/BrivaMart/internal/events"
	"github.com/Dhruv6019/BrivaMart/internal/handler"
	"github.com/Dhruv6019/BrivaMart/internal/middleware"
	"github.com/Dhruv6019/BrivaMart/internal/repository"
	"github.com/Dhruv6019/BrivaMart/internal/search"
	"github.com/Dhruv6019/BrivaMart/internal/service"
)

// main is the application entrypoint for the BrivaMart storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting brivamart api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Kafka event producer (nil when no brokers configured)
	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if producer != nil {
		defer producer.Close()
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("kafka producer ready")
	}

	// 3d. Elasticsearch product index (nil when no URL configured)
	productIndex, err := search.NewProductIndex(&cfg.Elastic)
	if err != nil {
		log.Warn().Err(err).Msg("search index initialization failed - product search will be disabled")
	}
	if productIndex.Enabled() {
		log.Info().Str("index", cfg.Elastic.Index).Msg("product search index ready")
	}

	// 4. Initialize repositories
	userRepo := repository.NewUserProfileRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// 5. Initialize services
	authSvc := service.NewAuthService(userRepo, otpRepo, sessionRepo, auditRepo, producer, &cfg.Auth)
	productSvc := service.NewProductService(productRepo, userRepo, auditRepo, producer, productIndex)
	cartSvc := service.NewCartService(redisClient, productRepo, orderRepo, auditRepo, producer)

	avatarSvc, err := service.NewAvatarService(context.Background(), &cfg.S3)
	if err != nil {
		log.Warn().Err(err).Msg("avatar storage initialization failed - uploads will be disabled")
	}

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(db, redisClient),
		Auth:    handler.NewAuthHandler(authSvc, cartSvc, avatarSvc),
		Product: handler.NewProductHandler(productSvc),
		Cart:    handler.NewCartHandler(cartSvc),
		Order:   handler.NewOrderHandler(cartSvc),
	}

	// 7. Initialize middleware
	authMw := middleware.NewAuthMiddleware(authSvc)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, authMw)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public auth routes
	auth := router.Group("/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/verify-otp", handlers.Auth.VerifyOTP)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/password-reset/request", handlers.Auth.RequestPasswordReset)
		auth.POST("/password-reset/confirm", handlers.Auth.ResetPassword)
	}

	// Authenticated account routes
	account := router.Group("/v1/auth")
	account.Use(authMiddleware.Handle())
	{
		account.POST("/logout", handlers.Auth.Logout)
		account.GET("/me", handlers.Auth.Me)
		account.PUT("/profile", handlers.Auth.UpdateProfile)
		account.POST("/avatar", handlers.Auth.UploadAvatar)
		account.DELETE("/account", handlers.Auth.DeleteAccount)
		account.GET("/sessions", handlers.Auth.ListSessions)
		account.DELETE("/sessions/:id", handlers.Auth.RevokeSession)
	}

	// Catalog routes (reads are public, mutations require an authenticated
	// admin; role is checked in the service)
	products := router.Group("/v1/products")
	{
		products.GET("", handlers.Product.GetProducts)
		products.GET("/search", handlers.Product.SearchProducts)
		products.GET("/:id", handlers.Product.GetProduct)
	}
	productsAdmin := router.Group("/v1/products")
	productsAdmin.Use(authMiddleware.Handle())
	{
		productsAdmin.POST("", handlers.Product.CreateProduct)
		productsAdmin.PUT("/:id", handlers.Product.UpdateProduct)
		productsAdmin.DELETE("/:id", handlers.Product.DeleteProduct)
	}

	// Cart, wishlist and checkout routes
	cart := router.Group("/v1/cart")
	cart.Use(authMiddleware.Handle())
	{
		cart.GET("", handlers.Cart.GetCart)
		cart.POST("/items", handlers.Cart.AddToCart)
		cart.PUT("/items/:itemId", handlers.Cart.UpdateCartItem)
		cart.DELETE("/items/:itemId", handlers.Cart.RemoveCartItem)
		cart.DELETE("", handlers.Cart.ClearCart)
		cart.POST("/checkout", handlers.Cart.Checkout)
	}

	wishlist := router.Group("/v1/wishlist")
	wishlist.Use(authMiddleware.Handle())
	{
		wishlist.GET("", handlers.Cart.GetWishlist)
		wishlist.POST("", handlers.Cart.AddToWishlist)
		wishlist.DELETE("/:productId", handlers.Cart.RemoveFromWishlist)
		wishlist.DELETE("", handlers.Cart.ClearWishlist)
	}

	orders := router.Group("/v1/orders")
	orders.Use(authMiddleware.Handle())
	{
		orders.GET("", handlers.Order.ListOrders)
		orders.GET("/:id", handlers.Order.GetOrder)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
