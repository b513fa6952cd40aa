package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/wisemik/veretha-backend/internal/handler"
	"github.com/wisemik/veretha-backend/internal/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Verification *handler.VerificationHandler
	Wallet       *handler.WalletHandler
	Resume       *handler.ResumeHandler
	Profile      *handler.ProfileHandler
}

func SetupRoutes(r chi.Router, h Handlers, rdb *redis.Client, jwtSecret []byte) chi.Router {
	// ---- Global Middleware ----
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "ngrok-skip-browser-warning"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false, // must be false when using "*"
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(rdb, 100, time.Minute, 10*time.Minute, "global"))

	// ---- Public endpoints ----
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/register", h.Auth.Register)
	r.Post("/login", h.Auth.Login)

	r.Post("/verify", h.Verification.VerifyProof)
	r.Post("/set-verified", h.Verification.SetVerified)
	r.Get("/get-verified/{email}", h.Verification.GetVerified)

	r.Post("/resume/extract", h.Resume.ExtractText)
	r.Post("/resume/score", h.Resume.Score)
	r.Get("/linkedin/profile", h.Profile.LinkedInProfile)

	// ---- Authenticated wallet endpoints ----
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(jwtSecret))
		pr.Use(middleware.RateLimit(rdb, 15, 5*time.Minute, 5*time.Minute, "wallet"))

		pr.Post("/wallet/create", h.Wallet.CreateWallet)
		pr.Get("/wallet", h.Wallet.GetWallet)
		pr.Post("/wallet/transfer", h.Wallet.Transfer)
		pr.Get("/wallet/{walletID}/balance", h.Wallet.Balance)
	})

	return r
}
