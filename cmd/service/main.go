package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shop-service/config"
	_ "shop-service/docs"
	"shop-service/internal/cache"
	"shop-service/internal/cleanup"
	"shop-service/internal/database"
	"shop-service/internal/hashing"
	"shop-service/internal/logger"
	"shop-service/internal/producer"
	"shop-service/internal/repository"
	"shop-service/internal/router"
	"shop-service/internal/service"
	"shop-service/internal/token"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// @Title Shop API
// @Version 1.0
// @Description API магазина мебели: каталог, корзина, заказы, оценки и консультации
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var limiter service.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		limiter = redisClient
		log.Info("Redis rate limit enabled")
	} else {
		log.Info("Redis rate limit disabled")
	}

	var (
		events service.EventBus
		mailer service.Mailer
	)
	if cfg.Kafka.Enabled() {
		orderEvents := producer.NewOrderEventProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
		defer orderEvents.Close()
		emails := producer.NewEmailProducer(cfg.Kafka.Brokers, cfg.Kafka.EmailTopic)
		defer emails.Close()
		events, mailer = orderEvents, emails
		log.Info("Kafka producers enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		log.Info("Kafka disabled, PIN-коды будут только в логах")
	}

	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	hasher := hashing.NewBcrypt(0)

	svc := router.Services{
		Auth:          service.NewAuthService(repos, hasher, tokens, limiter, mailer, cfg.JWT.AccessExp, log),
		Catalog:       service.NewCatalogService(repos, log),
		Cart:          service.NewCartService(repos),
		Orders:        service.NewOrderService(repos, events, log),
		Ratings:       service.NewRatingService(repos, log),
		Consultations: service.NewConsultationService(repos, log),
	}

	cleanupSvc := cleanup.NewCleanupService(repos, log)
	scheduler := cleanup.NewScheduler(cleanupSvc, cleanup.DefaultInterval, log)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	scheduler.Start(cleanupCtx)

	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Port),
		Handler:           router.Router(svc, cfg.RequestTimeout, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lis, err := net.Listen("tcp", listenAddr(cfg.GRPCPort))
	if err != nil {
		log.Fatal("failed to listen", zap.Error(err))
	}
	grpcServer := grpc.NewServer()

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthSrv)

	reflection.Register(grpcServer)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting gRPC health server", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run http server", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down...")

	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	// Останавливаем планировщик
	scheduler.Stop()
	cleanupCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	grpcServer.GracefulStop()
	log.Info("Servers stopped gracefully")
}

// listenAddr принимает как "8080", так и ":8080" или "host:8080".
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
