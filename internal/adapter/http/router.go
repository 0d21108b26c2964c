package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/radkal2/bonusbank/internal/adapter/http/handler"
	"github.com/radkal2/bonusbank/internal/adapter/http/middleware"
	"github.com/radkal2/bonusbank/internal/domain"
	"github.com/radkal2/bonusbank/internal/infrastructure/auth"
	"github.com/radkal2/bonusbank/internal/infrastructure/metrics"
	"github.com/radkal2/bonusbank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler        *handler.UserHandler
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	LoanHandler        *handler.LoanHandler
	BranchHandler      *handler.BranchHandler
	StatisticHandler   *handler.StatisticHandler
	AdminHandler       *handler.AdminHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	Metrics            *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	authenticated := middleware.AuthMiddleware(cfg.JWTManager)
	staffOnly := middleware.RequireRole(domain.RoleBranchManager)
	ownerOnly := middleware.RequireRole(domain.RoleBankOwner)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Public endpoints
		r.Post("/users/register", cfg.UserHandler.Register)
		r.Post("/users/login", cfg.UserHandler.Login)

		// Customer endpoints
		r.Group(func(r chi.Router) {
			r.Use(authenticated)

			r.Get("/users/me", cfg.UserHandler.Me)
			r.Put("/users/me", cfg.UserHandler.UpdateProfile)
			r.Get("/users/me/statistic", cfg.StatisticHandler.Mine)

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Open)
				r.Post("/close", cfg.AccountHandler.Close)
				r.Get("/", cfg.AccountHandler.List)
				r.With(staffOnly).Get("/by-number/{number}", cfg.AccountHandler.GetByNumber)
				r.Get("/{id}", cfg.AccountHandler.Get)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", cfg.TransactionHandler.Apply)
				r.Get("/", cfg.TransactionHandler.List)
				r.Get("/{id}", cfg.TransactionHandler.Get)
			})

			r.Route("/loans", func(r chi.Router) {
				r.Post("/", cfg.LoanHandler.Create)
				r.Get("/", cfg.LoanHandler.List)
				r.Get("/{id}", cfg.LoanHandler.Get)
			})

			r.Get("/branches", cfg.BranchHandler.ListBranches)
			r.Get("/branches/{id}", cfg.BranchHandler.GetBranch)
		})

		// Staff endpoints
		r.Group(func(r chi.Router) {
			r.Use(authenticated, staffOnly)

			r.Get("/reports/statistics", cfg.StatisticHandler.List)
			r.Get("/reports/transactions", cfg.TransactionHandler.Search)
			r.Get("/staff", cfg.UserHandler.ListStaff)
		})

		// Bank owner endpoints
		r.Group(func(r chi.Router) {
			r.Use(authenticated, ownerOnly)

			r.Post("/users/staff", cfg.UserHandler.CreateStaff)
			r.Post("/banks", cfg.BranchHandler.CreateBank)
			r.Get("/banks/mine", cfg.BranchHandler.GetMyBank)
			r.Post("/branches", cfg.BranchHandler.CreateBranch)
			r.Post("/admin/sweeps/{job}", cfg.AdminHandler.RunSweep)
		})
	})

	return r
}
