package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/iho/bankledger/internal/adapter/http/handler"
	"github.com/iho/bankledger/internal/adapter/http/middleware"
	"github.com/iho/bankledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	StatementHandler *handler.StatementHandler
	AuthHandler      *handler.AuthHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler

	TokenVerifier    middleware.TokenVerifier
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	MetricsHandler   http.Handler
	CORSOrigins      []string
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", middleware.IdempotencyKeyHeader},
			ExposedHeaders: []string{"Content-Disposition", middleware.IdempotencyReplayHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
			}

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/", cfg.AccountHandler.List)

				r.Route("/{id}", func(r chi.Router) {
					r.Delete("/", cfg.AccountHandler.Close)
					r.Get("/balance", cfg.AccountHandler.Balance)
					r.Post("/deposit", cfg.AccountHandler.Deposit)
					r.Post("/withdraw", cfg.AccountHandler.Withdraw)
					r.Get("/statement", cfg.StatementHandler.Get)
					r.Post("/statement/print", cfg.StatementHandler.Print)
					r.Get("/statement/export", cfg.StatementHandler.Export)
					r.Get("/consistency", cfg.LedgerHandler.CheckConsistency)
				})
			})
		})
	})

	return r
}
