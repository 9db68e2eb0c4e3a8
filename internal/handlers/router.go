package handlers

import (
	"net/http"
	"strings"

	"backoffice/internal/auth"
	"backoffice/internal/config"
	"backoffice/internal/middleware"
	"backoffice/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg      config.Config
	payments BulkPaymentService
	reports  PositionService
	debts    DebtStore
	accounts AccountStore
	audit    AuditStore
	hub      *websocket.Hub
}

func New(cfg config.Config, payments BulkPaymentService, reports PositionService, debts DebtStore, accounts AccountStore, audit AuditStore, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:      cfg,
		payments: payments,
		reports:  reports,
		debts:    debts,
		accounts: accounts,
		audit:    audit,
		hub:      hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/payments/bulk", h.BulkPayment)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/debts", h.ListDebts)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/accounts", h.ListAccounts)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/reports/position", h.MonthlyPosition)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/reports/distribution", h.PartnerDistribution)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/audit", h.ListAuditLog)
	router.Get("/ws/cashboxes", h.WSCashboxes)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

// WSCashboxes streams cash movement updates to dashboards. Browser websocket
// clients cannot set headers, so the token is also accepted via ?token=.
// Clients may pass ?currency=ARS|USD to narrow the stream; the default is
// every currency.
func (h *Handler) WSCashboxes(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	if _, err := auth.ParseToken(h.cfg.JWTSecret, token); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	topic := r.URL.Query().Get("currency")
	if topic == "" {
		topic = websocket.TopicAll
	}
	websocket.ServeWS(w, r, h.hub, topic)
}
