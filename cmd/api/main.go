package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pr1me-admin/internal/application/account"
	"github.com/pr1me-admin/internal/application/ledger"
	"github.com/pr1me-admin/internal/application/todo"
	"github.com/pr1me-admin/internal/config"
	"github.com/pr1me-admin/internal/infrastructure/dynamo"
	jwtinfra "github.com/pr1me-admin/internal/infrastructure/jwt"
	transporthttp "github.com/pr1me-admin/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	dynamoClient, err := dynamo.NewClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("dynamodb client: %v", err)
	}
	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider unavailable: %v", err)
	}

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	sessionRepo := dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions)

	deps := &transporthttp.Deps{
		Account: account.NewService(account.ServiceDeps{
			UserRepo:    userRepo,
			SessionRepo: sessionRepo,
			JWTProvider: jwtProvider,
		}),
		Todos: todo.NewService(dynamo.NewTodoRepo(dynamoClient, cfg.DynamoTables.Todos)),
		Ledger: ledger.NewService(ledger.ServiceDeps{
			WithdrawalRepo: dynamo.NewWithdrawalRepo(dynamoClient, cfg.DynamoTables.Withdrawals),
			MerchantRepo:   dynamo.NewMerchantRepo(dynamoClient, cfg.DynamoTables.Merchants),
		}),
		JWTProvider: jwtProvider,
		Sessions:    sessionRepo,
	}

	router, err := transporthttp.NewRouter(cfg, deps)
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("RPC server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
