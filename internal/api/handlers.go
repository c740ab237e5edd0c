package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/iamnithishraja/cavens-sub001/internal/analytics"
	"github.com/iamnithishraja/cavens-sub001/internal/database"
	"github.com/iamnithishraja/cavens-sub001/internal/models"
	"github.com/iamnithishraja/cavens-sub001/internal/ranking"
	"github.com/iamnithishraja/cavens-sub001/internal/recommendation"
)

type Handler struct {
	ranker      *ranking.Engine
	recommender *recommendation.Engine
	snapshots   *analytics.Builder
	db          *sql.DB
	logger      *slog.Logger
	startTime   time.Time
}

// NewHandler creates the API handler set. db may be nil (tests); the
// health endpoint then skips the database check.
func NewHandler(ranker *ranking.Engine, recommender *recommendation.Engine, snapshots *analytics.Builder, db *sql.DB, logger *slog.Logger) *Handler {
	return &Handler{
		ranker:      ranker,
		recommender: recommender,
		snapshots:   snapshots,
		db:          db,
		logger:      logger,
		startTime:   time.Now(),
	}
}

// TopEventResponse pairs the ranked winner with its push payload.
type TopEventResponse struct {
	Event        models.Event               `json:"event"`
	Club         models.Club                `json:"club"`
	Score        models.PopularityScore     `json:"score"`
	Notification models.NotificationPayload `json:"notification"`
}

// TopEventHandler handles GET /api/cities/:city/top-event
func (h *Handler) TopEventHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path shape: /api/cities/:city/top-event
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[3] == "" || parts[4] != "top-event" {
		http.Error(w, "City required", http.StatusBadRequest)
		return
	}
	city := parts[3]

	top, err := h.ranker.TopEventForCity(r.Context(), city)
	if err != nil {
		if errors.Is(err, ranking.ErrNoTrendingEvent) {
			writeError(w, http.StatusNotFound, "no trending event for city")
			return
		}
		h.logger.Error("failed to rank city events", "city", city, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, TopEventResponse{
		Event:        top.Event,
		Club:         top.Club,
		Score:        top.PopularityScore,
		Notification: ranking.FormatForNotification(top, time.Now()),
	})
}

// RecommendationForEventHandler handles GET /api/events/:id/recommendation.
// It assembles the analytics snapshot server-side, then runs the engine.
func (h *Handler) RecommendationForEventHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path shape: /api/events/:id/recommendation
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[3] == "" || parts[4] != "recommendation" {
		http.Error(w, "Event ID required", http.StatusBadRequest)
		return
	}
	eventID := parts[3]

	snapshot, err := h.snapshots.Snapshot(r.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to assemble snapshot", "event_id", eventID, "error", err)
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	rec := h.recommender.Recommend(r.Context(), snapshot)
	writeJSON(w, http.StatusOK, rec)
}

// RecommendHandler handles POST /api/recommendations with a caller-
// supplied snapshot, for callers that aggregate their own analytics.
func (h *Handler) RecommendHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var snapshot models.AnalyticsSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec := h.recommender.Recommend(r.Context(), snapshot)
	writeJSON(w, http.StatusOK, rec)
}

// HealthResponse reports service liveness and database reachability.
type HealthResponse struct {
	Status   string         `json:"status"`
	Uptime   string         `json:"uptime"`
	Database map[string]any `json:"database,omitempty"`
}

// HealthHandler handles GET /healthz
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	}

	if h.db != nil {
		if err := database.HealthCheck(r.Context(), h.db); err != nil {
			h.logger.Error("database health check failed", "error", err)
			resp.Status = "degraded"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = database.Stats(h.db)
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
