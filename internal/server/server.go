// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/masar-app/masar/internal/ai"
	"github.com/masar-app/masar/internal/config"
	"github.com/masar-app/masar/internal/db"
	"github.com/masar-app/masar/internal/export"
	"github.com/masar-app/masar/internal/payment"
	"github.com/masar-app/masar/internal/server/middleware"
	"github.com/masar-app/masar/internal/server/ratelimit"
	"github.com/masar-app/masar/internal/types"
)

// DocumentStore is the CV and application persistence surface the
// handlers need. *db.DB satisfies it.
type DocumentStore interface {
	SaveCVDocument(ctx context.Context, userID uuid.UUID, cv *types.CVRecord) error
	GetCVDocument(ctx context.Context, userID uuid.UUID) (*db.CVDocument, error)
	SetShareSlug(ctx context.Context, userID uuid.UUID, slug string) error
	GetCVByShareSlug(ctx context.Context, slug string) (*db.CVDocument, error)
	CreateApplication(ctx context.Context, userID uuid.UUID, company, roleTitle, notes string) (uuid.UUID, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*db.JobApplication, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]db.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, notes string) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error
}

// Exporter captures rendered HTML as a PDF document. *export.Exporter
// satisfies it; tests substitute a stub that skips the browser.
type Exporter interface {
	Export(ctx context.Context, req export.Request) ([]byte, string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	users       UserStore
	docs        DocumentStore
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	aiService   *ai.Service
	exporter    Exporter
	gateway     *payment.Gateway
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	s := &Server{
		db:      database,
		users:   database,
		docs:    database,
		gateway: payment.NewGateway(cfg.BaseURL),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, ai.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		s.aiService = ai.NewService(client)
	}

	s.exporter = export.NewExporter()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for PDF capture
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Split out so tests can drive handlers
// without a listening socket.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Public surface
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("POST /cv/preview", s.handlePreview)
	mux.HandleFunc("POST /cv/validate", s.handleValidate)
	mux.HandleFunc("GET /share/{slug}", s.handleSharedCV)

	// Authenticated surface
	requireAuth := middleware.RequireAuth(s.jwtService)
	authed := http.NewServeMux()
	authed.HandleFunc("GET /me", s.handleProfile)
	authed.HandleFunc("GET /cv", s.handleGetCV)
	authed.HandleFunc("PUT /cv", s.handlePutCV)
	authed.HandleFunc("POST /cv/export", s.handleExport)
	authed.HandleFunc("POST /cv/share", s.handleShareCV)
	authed.HandleFunc("POST /ai/summary", s.handleAISummary)
	authed.HandleFunc("POST /ai/bullets", s.handleAIBullets)
	authed.HandleFunc("POST /ai/skills", s.handleAISkills)
	authed.HandleFunc("POST /ai/analyze", s.handleAIAnalyze)
	authed.HandleFunc("POST /ai/from-text", s.handleAIFromText)
	authed.HandleFunc("POST /payment/checkout", s.handleCheckout)
	authed.HandleFunc("GET /payment/callback", s.handlePaymentCallback)

	// Application tracking is exclusive to the guaranteed plan
	authed.Handle("GET /applications", s.requirePlan(types.PlanGuaranteed, "application tracking", http.HandlerFunc(s.handleListApplications)))
	authed.Handle("POST /applications", s.requirePlan(types.PlanGuaranteed, "application tracking", http.HandlerFunc(s.handleCreateApplication)))
	authed.Handle("PUT /applications/{id}", s.requirePlan(types.PlanGuaranteed, "application tracking", http.HandlerFunc(s.handleUpdateApplication)))
	authed.Handle("DELETE /applications/{id}", s.requirePlan(types.PlanGuaranteed, "application tracking", http.HandlerFunc(s.handleDeleteApplication)))

	mux.Handle("/", requireAuth(authed))
	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// requirePlan rejects requests from accounts that do not hold the given
// plan with an active, unexpired subscription.
func (s *Server) requirePlan(plan types.Plan, feature string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.GetUserID(r)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := s.users.GetUser(r.Context(), userID)
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, "Failed to load account")
			return
		}
		if user == nil {
			errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		expired := user.SubscriptionEnds != nil && user.SubscriptionEnds.Before(time.Now())
		if user.Plan != plan || !user.SubscriptionActive || expired {
			planErr := &ErrPlanRequired{Plan: plan, Feature: feature}
			errorResponse(w, HTTPStatus(planErr), planErr.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	jsonResponse(w, http.StatusTooManyRequests, response)
}
