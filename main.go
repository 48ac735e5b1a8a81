package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mathdino/cardapio-backend/controllers"
	"github.com/Mathdino/cardapio-backend/database"
	"github.com/Mathdino/cardapio-backend/geo"
	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/notifier"
	"github.com/Mathdino/cardapio-backend/repository"
	"github.com/Mathdino/cardapio-backend/routes"
	"github.com/Mathdino/cardapio-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// --- Database ---
	db, err := database.ConnectPostgres(logger,
		&models.Store{},
		&models.BusinessHours{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	database.DB = db

	// --- Redis (cart storage) ---
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Redis connection failed", zap.Error(err))
	}

	// --- WhatsApp notifier (optional) ---
	var orderNotifier notifier.OrderNotifier
	if twilio, err := notifier.NewTwilioWhatsAppNotifier(); err != nil {
		logger.Warn("WhatsApp notifier disabled", zap.Error(err))
	} else {
		orderNotifier = twilio
	}

	// --- HTTP router ---
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("clock", models.ValidClock); err != nil {
			logger.Fatal("Failed to register clock validation", zap.Error(err))
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{getEnv("CORS_ORIGIN", "*")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Structured HTTP request logging
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		switch {
		case status >= 500:
			logger.Error("http_request", fields...)
		case status >= 400:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
	})

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	storeRepo := repository.NewGormStoreRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	couponRepo := repository.NewGormCouponRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	cartRepo := repository.NewRedisCartRepository(redisClient, cfg.CartTTL)

	storeService := services.NewStoreService(storeRepo, logger)
	productService := services.NewProductService(productRepo, logger)
	couponService := services.NewCouponService(couponRepo, logger)
	cartService := services.NewCartService(cartRepo, productRepo, couponRepo, logger)
	scheduleService := services.NewScheduleService(cartRepo, productRepo, storeRepo, logger)
	orderService := services.NewOrderService(orderRepo, cartRepo, storeRepo, couponRepo, orderNotifier, logger)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, logger)

	ctrls := &routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Store:   controllers.NewStoreController(storeService),
		Product: controllers.NewProductController(productService, storeService),
		Coupon:  controllers.NewCouponController(couponService, storeService),
		Cart:    controllers.NewCartController(cartService, storeService),
		Order:   controllers.NewOrderController(orderService, scheduleService, storeService),
		Address: controllers.NewAddressController(geo.NewViaCEPClient(), logger),
	}

	routes.Register(r, ctrls, cfg.JWTSecret)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "cardapio-backend"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	httpShutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(httpShutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", zap.Error(err))
	}

	if err := database.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	log.Println("Service stopped gracefully")
}
