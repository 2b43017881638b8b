package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/fixture"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/handler"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/middleware"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/repository"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/session"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/config"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	repo := repository.NewSQLRepository(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	sessions := session.NewRedisStore(redisClient)

	var source ports.TransactionSource = repo
	if cfg.TransactionSource == config.TransactionSourceFixture {
		source = fixture.NewSource()
	}
	log.Printf("transactions served from %s", cfg.TransactionSource)

	authService := services.NewAuthService(repo, sessions, cfg.JWTPrivateKey, cfg.SessionTTL)
	vendorService := services.NewVendorService(repo)
	walletService := services.NewWalletService(repo)
	registrationService := services.NewRegistrationService(repo, vendorService)
	transactionService := services.NewTransactionService(source)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, sessions)

	router := handler.NewRouter(handler.Handlers{
		Auth:         handler.NewAuthHandler(authService, cfg.SessionTTL),
		Registration: handler.NewRegistrationHandler(registrationService),
		Vendors:      handler.NewVendorHandler(vendorService),
		Transactions: handler.NewTransactionHandler(transactionService, walletService),
		Wallet:       handler.NewWalletHandler(walletService),
		Health:       handler.NewHealthHandler(db, redisClient),
	}, authMiddleware, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("received signal %v, shutting down...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	log.Println("server stopped")
}
