package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/pkg/cache"
	"equiprent-backend/internal/service"
)

// RouterConfig bundles the handlers' dependencies. Cache is optional; when
// nil the rate limiter is not installed.
type RouterConfig struct {
	Verifier   TokenVerifier
	AuthSvc    service.AuthService
	ClientSvc  service.ClientService
	EquipSvc   service.EquipmentService
	RentalSvc  service.RentalService
	LedgerSvc  service.LedgerService
	ReportSvc  service.ReportService
	Cache      cache.Client
	RateLimit  int
	RateWindow time.Duration
}

// NewRouter wires all API routes under /api/v1. Everything except login,
// refresh and the health check requires a bearer token; stock adjustments
// additionally require the admin role.
func NewRouter(cfg RouterConfig) *mux.Router {
	root := mux.NewRouter()
	root.Use(RequestLogger)
	if cfg.Cache != nil {
		root.Use(RateLimiter(cfg.Cache, cfg.RateLimit, cfg.RateWindow))
	}

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()

	auth := NewAuthHandler(cfg.AuthSvc)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", auth.Refresh).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(Authenticate(cfg.Verifier))

	clients := NewClientHandler(cfg.ClientSvc)
	protected.HandleFunc("/clients", clients.List).Methods(http.MethodGet)
	protected.HandleFunc("/clients", clients.Create).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{id}", clients.Get).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{id}", clients.Update).Methods(http.MethodPut)
	protected.HandleFunc("/clients/{id}", clients.Delete).Methods(http.MethodDelete)

	equipment := NewEquipmentHandler(cfg.EquipSvc, cfg.LedgerSvc)
	protected.HandleFunc("/equipment", equipment.List).Methods(http.MethodGet)
	protected.HandleFunc("/equipment", equipment.Create).Methods(http.MethodPost)
	protected.HandleFunc("/equipment/{id}", equipment.Get).Methods(http.MethodGet)
	protected.HandleFunc("/equipment/{id}", equipment.Update).Methods(http.MethodPut)
	protected.HandleFunc("/equipment/{id}", equipment.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/equipment/{id}/stock", equipment.Stock).Methods(http.MethodGet)
	protected.HandleFunc("/inventory/stats", equipment.InventoryStats).Methods(http.MethodGet)

	rentals := NewRentalHandler(cfg.RentalSvc)
	protected.HandleFunc("/rentals", rentals.Register).Methods(http.MethodPost)
	protected.HandleFunc("/rentals", rentals.List).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}", rentals.Get).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}/finalize", rentals.Finalize).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/cancel", rentals.Cancel).Methods(http.MethodPost)

	stock := NewStockHandler(cfg.LedgerSvc)
	protected.HandleFunc("/stock/adjustments", stock.ListAdjustments).Methods(http.MethodGet)

	admin := protected.NewRoute().Subrouter()
	admin.Use(RequireRole(domain.UserRoleAdmin))
	admin.HandleFunc("/stock/adjustments", stock.Adjust).Methods(http.MethodPost)

	reports := NewReportHandler(cfg.ReportSvc)
	protected.HandleFunc("/reports/rentals-per-day", reports.RentalsPerDay).Methods(http.MethodGet)
	protected.HandleFunc("/reports/revenue-by-category", reports.RevenueByCategory).Methods(http.MethodGet)
	protected.HandleFunc("/reports/top-clients", reports.TopClients).Methods(http.MethodGet)
	protected.HandleFunc("/reports/top-equipment", reports.TopEquipment).Methods(http.MethodGet)
	protected.HandleFunc("/reports/summary", reports.FinancialSummary).Methods(http.MethodGet)

	return root
}
