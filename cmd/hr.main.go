package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wisemik/veretha-backend/internal/config"
	"github.com/wisemik/veretha-backend/internal/handler"
	"github.com/wisemik/veretha-backend/internal/provider/circle"
	"github.com/wisemik/veretha-backend/internal/provider/openai"
	"github.com/wisemik/veretha-backend/internal/provider/proxycurl"
	"github.com/wisemik/veretha-backend/internal/provider/worldid"
	"github.com/wisemik/veretha-backend/internal/repository"
	"github.com/wisemik/veretha-backend/internal/router"
	"github.com/wisemik/veretha-backend/internal/service"
	"github.com/wisemik/veretha-backend/pkg/security"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// db connection
	dbpool, err := pgxpool.New(context.Background(), cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer dbpool.Close()

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr, Password: cfg.RedisPass,
	})
	defer rdb.Close()

	// entity secret is a hard requirement for wallet operations;
	// a bad secret or key means the deployment is misconfigured
	entity, err := security.NewEntitySecret(cfg.CircleEntitySecret, cfg.CirclePublicKey)
	if err != nil {
		log.Fatalf("entity secret: %v", err)
	}

	// providers
	circleCli := circle.NewClient(cfg.CircleBaseURL, cfg.CircleAPIKey, cfg.CircleBlockchain, entity)
	worldIDCli := worldid.NewClient(cfg.WorldIDBaseURL, cfg.WorldIDAppID)
	proxycurlCli := proxycurl.NewClient(cfg.ProxycurlBaseURL, cfg.ProxycurlAPIKey)
	openaiCli := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// repos & services
	userRepo := repository.NewUserRepo(dbpool)
	verificationRepo := repository.NewVerificationRepo(dbpool)
	walletRepo := repository.NewWalletRepo(dbpool)

	authSvc := service.NewAuthService(userRepo, verificationRepo, cfg.JWTSecret, logger)
	verificationSvc := service.NewVerificationService(verificationRepo, worldIDCli, logger)
	walletSvc := service.NewWalletService(circleCli, walletRepo, cfg.CircleDefaultTokenID, logger)
	resumeSvc := service.NewResumeService(openaiCli, logger)
	profileSvc := service.NewProfileService(proxycurlCli, rdb, logger)

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc, logger),
		Verification: handler.NewVerificationHandler(verificationSvc, logger),
		Wallet:       handler.NewWalletHandler(walletSvc, authSvc, logger),
		Resume:       handler.NewResumeHandler(resumeSvc, logger),
		Profile:      handler.NewProfileHandler(profileSvc, logger),
	}

	r := chi.NewRouter()
	router.SetupRoutes(r, h, rdb, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	// run server in goroutine
	go func() {
		log.Printf("HR REST server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
}
