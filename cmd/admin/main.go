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
	"github.com/pr1me-admin/internal/application/identity"
	"github.com/pr1me-admin/internal/application/login"
	"github.com/pr1me-admin/internal/config"
	"github.com/pr1me-admin/internal/infrastructure/dynamo"
	jwtinfra "github.com/pr1me-admin/internal/infrastructure/jwt"
	"github.com/pr1me-admin/internal/infrastructure/smtp"
	"github.com/pr1me-admin/internal/infrastructure/sns"
	"github.com/pr1me-admin/internal/infrastructure/turnstile"
	"github.com/pr1me-admin/internal/pkg/normalize"
	"github.com/pr1me-admin/internal/rpc/client"
	"github.com/pr1me-admin/internal/transport/web"
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

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider unavailable: %v", err)
	}

	// Login alerts are optional.
	alerts, err := sns.NewNotifier(cfg)
	if err != nil {
		log.Printf("WARN: SNS login alerts not available: %v", err)
	}

	sessionRepo := dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions)
	idp := identity.NewService(identity.ServiceDeps{
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.OTPVerifications),
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		SessionRepo:      sessionRepo,
		JWTProvider:      jwtProvider,
		Mailer:           smtp.NewMailer(cfg),
		Alerts:           alerts,
		OTPTTL:           cfg.OTPTTL,
		ResendCooldown:   cfg.OTPResendCooldown,
		MaxAttempts:      cfg.LoginMaxOTPAttempts,
	})

	rpc := client.New(cfg.RPCBaseURL, nil, client.WithTimeout(cfg.RPCTimeout))

	logins := login.NewStore(login.FlowDeps{
		Challenge:      turnstile.NewVerifier(cfg),
		Checker:        login.RPCAdminChecker{Client: rpc},
		Identity:       idp,
		Mapper:         normalize.NewEmailMapper(cfg.AdminEmailDomain),
		MaxOTPAttempts: cfg.LoginMaxOTPAttempts,
	}, cfg.LoginFlowTTL)
	defer logins.Close()

	router, err := web.NewRouter(cfg, &web.Deps{
		Logins:      logins,
		RPC:         rpc,
		JWTProvider: jwtProvider,
		Sessions:    sessionRepo,
	})
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AdminPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Admin app starting on :%s (env=%s, backend=%s)", cfg.AdminPort, cfg.AppEnv, cfg.RPCBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down admin app...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Admin app stopped")
}
