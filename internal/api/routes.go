package api

import (
	"database/sql"
	"net/http"
	"strings"

	"log/slog"

	"github.com/iamnithishraja/cavens-sub001/internal/analytics"
	"github.com/iamnithishraja/cavens-sub001/internal/auth"
	"github.com/iamnithishraja/cavens-sub001/internal/ranking"
	"github.com/iamnithishraja/cavens-sub001/internal/recommendation"
)

// SetupRoutes configures all API routes
func SetupRoutes(mux *http.ServeMux, ranker *ranking.Engine, recommender *recommendation.Engine, snapshots *analytics.Builder, db *sql.DB, authConfig auth.Config, logger *slog.Logger) {
	handler := NewHandler(ranker, recommender, snapshots, db, logger)
	authHandler := NewAuthHandler(authConfig, logger)

	authMiddleware := auth.Middleware(authConfig)

	// Authentication routes (public)
	mux.HandleFunc("/api/auth/login", authHandler.Login)

	// City ranking (public)
	mux.HandleFunc("/api/cities/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/top-event") {
			handler.TopEventHandler(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Per-event recommendation (public)
	mux.HandleFunc("/api/events/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/recommendation") {
			handler.RecommendationForEventHandler(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Ad-hoc recommendation from a caller-supplied snapshot (admin only)
	mux.HandleFunc("/api/recommendations", func(w http.ResponseWriter, r *http.Request) {
		authMiddleware(http.HandlerFunc(handler.RecommendHandler)).ServeHTTP(w, r)
	})

	// Health check
	mux.HandleFunc("/healthz", handler.HealthHandler)
}
