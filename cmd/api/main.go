package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/ratepoint/service-core/internal/auth"
	ratingrepo "github.com/ratepoint/service-core/internal/rating/repo"
	"github.com/ratepoint/service-core/internal/router"
	storerepo "github.com/ratepoint/service-core/internal/store/repo"
	userrepo "github.com/ratepoint/service-core/internal/user/repo"
	"github.com/ratepoint/service-core/pkg/database"
	"github.com/ratepoint/service-core/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting ratepoint service-core")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		sugar.Fatal("JWT_SECRET is required")
	}
	issuer := auth.NewIssuer([]byte(secret))

	// init db
	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	// bootstrap tables; prefer migrations in production
	setupCtx, setupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer setupCancel()
	if err := userrepo.NewUserRepo(sqlxDB).EnsureTable(setupCtx); err != nil {
		sugar.Fatalf("ensure users table: %v", err)
	}
	if err := storerepo.NewStoreRepo(sqlxDB).EnsureTable(setupCtx); err != nil {
		sugar.Fatalf("ensure stores table: %v", err)
	}
	if err := ratingrepo.NewRatingRepo(sqlxDB).EnsureTable(setupCtx); err != nil {
		sugar.Fatalf("ensure ratings table: %v", err)
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	// mount http server
	handler := router.RegisterRoutes(sugar, sqlxDB, issuer)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	sugar.Infow("service is running", "addr", addr)

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
