package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kestrelgames/emberrealm/internal/battle"
	"github.com/kestrelgames/emberrealm/internal/character"
	"github.com/kestrelgames/emberrealm/internal/database"
	"github.com/kestrelgames/emberrealm/internal/handler"
	"github.com/kestrelgames/emberrealm/internal/inventory"
	"github.com/kestrelgames/emberrealm/internal/item"
	"github.com/kestrelgames/emberrealm/internal/ledger"
	"github.com/kestrelgames/emberrealm/internal/logger"
	"github.com/kestrelgames/emberrealm/internal/metrics"
	"github.com/kestrelgames/emberrealm/internal/shop"
	"github.com/kestrelgames/emberrealm/internal/sse"
)

// Services bundles the game services the router exposes.
type Services struct {
	Ledger    ledger.Service
	Inventory inventory.Service
	Character character.Service
	Shop      shop.Service
	Battle    battle.Service
	Catalog   item.Catalog
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, dbPool database.Pool, services Services, sseHub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Real-time battle broadcast
	r.Get("/events", sse.Handler(sseHub))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/player", func(r chi.Router) {
			r.Post("/register", handler.HandleRegister(services.Character))
			r.Get("/character", handler.HandleGetCharacter(services.Character))
			r.Get("/stats", handler.HandleGetEffectiveStats(services.Character))
			r.Post("/experience", handler.HandleAwardExperience(services.Character))
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/balances", handler.HandleGetBalances(services.Ledger))
			r.Post("/credit", handler.HandleCredit(services.Ledger))
			r.Post("/debit", handler.HandleDebit(services.Ledger))
			r.Post("/transfer", handler.HandleTransfer(services.Ledger))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(services.Inventory))
			r.Get("/equipped", handler.HandleGetEquipped(services.Inventory))

			r.Route("/item", func(r chi.Router) {
				r.Post("/add", handler.HandleAddItem(services.Inventory))
				r.Post("/remove", handler.HandleRemoveItem(services.Inventory))
				r.Post("/equip", handler.HandleEquip(services.Inventory))
				r.Post("/unequip", handler.HandleUnequip(services.Inventory))
			})
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/listings", handler.HandleGetListings(services.Shop))
			r.Get("/item", handler.HandleGetItem(services.Catalog))
			r.Post("/buy", handler.HandleBuyItem(services.Shop))
		})

		r.Route("/battle", func(r chi.Router) {
			r.Post("/pvp", handler.HandleStartPvP(services.Battle))
			r.Post("/boss", handler.HandleStartBoss(services.Battle))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// RequestSizeLimitMiddleware rejects request bodies larger than maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
