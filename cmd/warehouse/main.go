package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"warehouse-system/config"
	"warehouse-system/internal/events"
	"warehouse-system/internal/gateway/clients"
	"warehouse-system/internal/gateway/handlers"
	"warehouse-system/internal/metrics"
	"warehouse-system/internal/services/inventory"
	"warehouse-system/internal/services/inventory/handler"
	"warehouse-system/internal/services/user"
	"warehouse-system/internal/utils"
)

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	cfg := config.LoadConfig()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	// Prices go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Event sinks
	publishers := inventory.MultiPublisher{metrics.StockEventCounter{}}
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()
		publishers = append(publishers, events.NewRedisPublisher(rdb))
		logger.Info("publishing stock events to redis", zap.String("addr", cfg.Redis.Addr()))
	}

	// Inventory core
	catalog := inventory.NewCatalog()
	ledger := inventory.NewLedger()
	dir := user.NewDirectory(bcrypt.DefaultCost)
	if cfg.SeedDemo {
		if err := inventory.Seed(catalog, inventory.DemoProducts()); err != nil {
			logger.Fatal("failed to seed products", zap.Error(err))
		}
		if err := user.SeedDemoUsers(dir); err != nil {
			logger.Fatal("failed to seed users", zap.Error(err))
		}
		logger.Info("demo data loaded", zap.Int("products", catalog.Len()), zap.Int("users", dir.Len()))
	} else {
		logger.Warn("demo data disabled; catalog and user directory start empty")
	}

	queries := inventory.NewQueryService(catalog, ledger)
	adjustments := inventory.NewAdjustmentService(catalog, ledger,
		inventory.WithPublisher(publishers),
		inventory.WithLogger(logger.Named("inventory")),
	)

	tokens := utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auth := user.NewAuthService(dir, tokens, cfg.Auth.LoginRatePerMinute, logger.Named("auth"))

	// gRPC server
	grpcServer := handler.NewServer(handler.NewInventoryHandler(queries, adjustments, logger.Named("grpc")), auth, logger.Named("grpc"))
	lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("port", cfg.GRPC.Port), zap.Error(err))
	}
	go func() {
		logger.Info("gRPC server listening", zap.String("port", cfg.GRPC.Port))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", zap.Error(err))
		}
	}()

	grpcClient, err := clients.NewInventoryClient("localhost:"+cfg.GRPC.Port, "")
	if err != nil {
		logger.Warn("gRPC health client unavailable", zap.Error(err))
	} else {
		defer grpcClient.Close()
	}

	// HTTP server
	router, err := newRouter(routerDeps{
		cfg:        cfg,
		logger:     logger.Named("http"),
		auth:       auth,
		inventory:  handlers.NewInventoryHTTPHandler(queries, adjustments, logger.Named("http")),
		users:      handlers.NewAuthHTTPHandler(auth, logger.Named("http")),
		grpcClient: grpcClient,
		redis:      rdb,
	})
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.HTTP.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", zap.Error(err))
	}
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}
