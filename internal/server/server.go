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
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/opengamebackend/collection/internal/catalog"
	"github.com/opengamebackend/collection/internal/claim"
	"github.com/opengamebackend/collection/internal/collection"
	"github.com/opengamebackend/collection/internal/container"
	"github.com/opengamebackend/collection/internal/database"
	"github.com/opengamebackend/collection/internal/handler"
	"github.com/opengamebackend/collection/internal/loadout"
	"github.com/opengamebackend/collection/internal/logger"
	"github.com/opengamebackend/collection/internal/metrics"
)

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	catalogService    catalog.Service
	collectionService collection.Service
	containerService  container.Service
	claimService      claim.Service
	loadoutService    loadout.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, catalogService catalog.Service, collectionService collection.Service, containerService container.Service, claimService claim.Service, loadoutService loadout.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Client routes: player identity comes from the Player-Id header set by
	// the platform gateway.
	r.Route("/client", func(r chi.Router) {
		r.Get("/collection", handler.HandleGetCollection(collectionService))
		r.Post("/collection/{definitionId}/open", handler.HandleOpenContainer(containerService))

		r.Post("/claimitemset", handler.HandleClaimItemSet(claimService))

		r.Route("/loadouts", func(r chi.Router) {
			r.Post("/", handler.HandleAddLoadout(loadoutService))
			r.Get("/", handler.HandleGetLoadouts(loadoutService))
			r.Put("/{loadoutId}", handler.HandlePutLoadout(loadoutService))
			r.Delete("/{loadoutId}", handler.HandleDeleteLoadout(loadoutService))
		})
	})

	// Admin routes require the API key
	r.Route("/admin", func(r chi.Router) {
		r.Use(AuthMiddleware(apiKey, trustedProxies, detector))

		r.Get("/itemdefinitions", handler.HandleGetItemDefinitions(catalogService))
		r.Put("/itemdefinitions", handler.HandlePutItemDefinitions(catalogService))

		r.Get("/itemsets", handler.HandleGetItemSets(catalogService))
		r.Put("/itemsets", handler.HandlePutItemSets(catalogService))

		r.Get("/loadouttypes", handler.HandleGetLoadoutTypes(loadoutService))
		r.Put("/loadouttypes", handler.HandlePutLoadoutTypes(loadoutService))

		r.Get("/claimeditemsets/{playerId}", handler.HandleGetClaimedItemSets(claimService))

		r.Route("/collection/{playerId}", func(r chi.Router) {
			r.Get("/", handler.HandleGetCollectionAdmin(collectionService))
			r.Post("/items", handler.HandleAddCollectionItems(collectionService))
			r.Put("/items/{definitionId}", handler.HandleSetCollectionItems(collectionService))
			r.Delete("/items/{definitionId}", handler.HandleRemoveCollectionItems(collectionService))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:            dbPool,
		catalogService:    catalogService,
		collectionService: collectionService,
		containerService:  containerService,
		claimService:      claimService,
		loadoutService:    loadoutService,
	}
}

// Handler exposes the configured router, used by handler-level tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
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
		statusCode:     http.StatusOK, // default status
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

		// Skip logging for health check endpoints and metrics.
		// HasPrefix catches variations like /healthz/.
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

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
