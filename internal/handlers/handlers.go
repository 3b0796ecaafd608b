package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Kossler/Actual-Analytics/internal/cache"
	"github.com/Kossler/Actual-Analytics/internal/db"
	"github.com/Kossler/Actual-Analytics/pkg/models"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db    db.StatsDB
	cache *cache.SeasonCache // nil when caching is disabled
}

// NewHandler creates a new handler with dependencies. cache may be nil.
func NewHandler(database db.StatsDB, seasonCache *cache.SeasonCache) *Handler {
	return &Handler{
		db:    database,
		cache: seasonCache,
	}
}

// HealthCheck returns service health along with a data-presence sanity
// check mirroring what the ingestion pipeline's health script verifies
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unhealthy", err)
		return
	}

	playerCount, err := h.db.CountPlayers(ctx)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unhealthy", err)
		return
	}

	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:      "healthy",
		Service:     "stats-service",
		Timestamp:   time.Now().UTC(),
		PlayerCount: playerCount,
	})
}

// Helper functions

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		fmt.Printf("error encoding error response: %v\n", err)
	}
}
