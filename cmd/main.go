package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"kitchenpos/internal/adapter/logger"
	"kitchenpos/internal/adapter/memory"
	"kitchenpos/internal/adapter/postgres"
	"kitchenpos/internal/adapter/profanity"
	"kitchenpos/internal/adapter/rabbitmq"
	redisCache "kitchenpos/internal/adapter/redis"
	"kitchenpos/internal/app/catalog"
	"kitchenpos/internal/app/order"
	"kitchenpos/internal/config"
	"kitchenpos/internal/interfaces"

	httpAdapter "kitchenpos/internal/adapter/http"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	storage := flag.String("storage", "postgres", "Storage backend: postgres or memory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx := context.Background()
	lgr := logger.New("kitchenpos")

	var (
		products interfaces.ProductRepository
		groups   interfaces.MenuGroupRepository
		menus    interfaces.MenuRepository
		orders   interfaces.OrderRepository
		tables   interfaces.OrderTableRepository
	)

	switch *storage {
	case "memory":
		products = memory.NewProductStore()
		groups = memory.NewMenuGroupStore()
		menus = memory.NewMenuStore()
		orders = memory.NewOrderStore()
		tables = memory.NewOrderTableStore()
		lgr.Info("storage_ready", "Using in-memory storage", nil)

	case "postgres":
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}

		products = postgres.NewProductRepository(db)
		groups = postgres.NewMenuGroupRepository(db)
		menus = postgres.NewMenuRepository(db)
		orders = postgres.NewOrderRepository(db)
		tables = postgres.NewOrderTableRepository(db)
		lgr.Info("db_connected", "Connected to PostgreSQL database", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})

	default:
		log.Fatalf("Invalid storage backend: %s", *storage)
	}

	// Events and caching are best-effort: the service runs without them.
	var publisher interfaces.EventPublisher
	if mqConn, err := rabbitmq.Connect(cfg.RabbitMQ); err != nil {
		lgr.Error("rabbitmq_unavailable", "Running without event publishing", nil, err)
	} else {
		defer mqConn.Close()
		publisher = rabbitmq.NewPublisher(mqConn)
		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
	}

	var cache interfaces.MenuCache
	menuCache := redisCache.NewMenuCache(cfg.Redis)
	if err := menuCache.Ping(ctx); err != nil {
		lgr.Error("redis_unavailable", "Running without menu cache", nil, err)
		menuCache.Close()
	} else {
		defer menuCache.Close()
		cache = menuCache
		lgr.Info("redis_connected", "Connected to Redis", map[string]interface{}{
			"host": cfg.Redis.Host,
		})
	}

	profanityClient := profanity.NewClient(cfg.Profanity.BaseURL, cfg.Profanity.Timeout)

	catalogService := catalog.NewService(products, groups, menus, profanityClient, publisher, cache, lgr)
	orderService := order.NewService(orders, menus, tables, publisher, lgr)

	productHandler := httpAdapter.NewProductHandler(catalogService, lgr)
	menuHandler := httpAdapter.NewMenuHandler(catalogService, lgr)
	orderHandler := httpAdapter.NewOrderHandler(orderService, lgr)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}/price", productHandler.ChangePrice).Methods(http.MethodPut)

	api.HandleFunc("/menu-groups", menuHandler.CreateGroup).Methods(http.MethodPost)
	api.HandleFunc("/menu-groups", menuHandler.ListGroups).Methods(http.MethodGet)

	api.HandleFunc("/menus", menuHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/menus", menuHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/menus/{menuId}/price", menuHandler.ChangePrice).Methods(http.MethodPut)
	api.HandleFunc("/menus/{menuId}/display", menuHandler.Display).Methods(http.MethodPut)
	api.HandleFunc("/menus/{menuId}/hide", menuHandler.Hide).Methods(http.MethodPut)

	api.HandleFunc("/order-tables", orderHandler.CreateTable).Methods(http.MethodPost)
	api.HandleFunc("/order-tables", orderHandler.ListTables).Methods(http.MethodGet)

	api.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}", orderHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}/accept", orderHandler.Accept).Methods(http.MethodPut)
	api.HandleFunc("/orders/{orderId}/serve", orderHandler.Serve).Methods(http.MethodPut)
	api.HandleFunc("/orders/{orderId}/start-delivery", orderHandler.StartDelivery).Methods(http.MethodPut)
	api.HandleFunc("/orders/{orderId}/complete-delivery", orderHandler.CompleteDelivery).Methods(http.MethodPut)
	api.HandleFunc("/orders/{orderId}/complete", orderHandler.Complete).Methods(http.MethodPut)

	handler := httpAdapter.LoggingMiddleware(lgr)(router)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)
	handler = cors.Default().Handler(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		lgr.Info("server_started", "HTTP server listening", map[string]interface{}{
			"port": cfg.HTTP.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	lgr.Info("server_stopping", "Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		lgr.Error("shutdown_failed", "Graceful shutdown failed", nil, err)
	}
}
