package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Kossler/Actual-Analytics/internal/db"
	"github.com/Kossler/Actual-Analytics/pkg/models"
	"github.com/Kossler/Actual-Analytics/pkg/statmath"
	"github.com/go-chi/chi/v5"
)

// ColumnFlags tells the dashboard which stat families to render for a
// player's season table
type ColumnFlags struct {
	ShowPassing   bool `json:"show_passing"`
	ShowRushing   bool `json:"show_rushing"`
	ShowReceiving bool `json:"show_receiving"`
}

// SeasonsResponse is the payload for the seasons endpoint
type SeasonsResponse struct {
	Player  models.Player            `json:"player"`
	Seasons []models.SeasonAggregate `json:"seasons"`
	Career  models.SeasonAggregate   `json:"career"`
	Columns ColumnFlags              `json:"columns"`
}

// SearchPlayers retrieves players by name
// Query params: q, position, limit
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := r.URL.Query().Get("q")
	position := r.URL.Query().Get("position")
	limit := parseIntParam(r, "limit", 25)

	if limit > 100 {
		limit = 100
	}

	players, err := h.db.SearchPlayers(ctx, db.PlayerFilters{
		Query:    query,
		Position: position,
		Limit:    limit,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to search players", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": players,
		"count":   len(players),
	})
}

// GetPlayer retrieves a single player by ID
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, "player_id is required", nil)
		return
	}

	player, err := h.db.GetPlayer(ctx, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve player", err)
		return
	}

	if player == nil {
		respondError(w, http.StatusNotFound, "player not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// GetGameLog retrieves a player's weekly records
// Query params: season
func (h *Handler) GetGameLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, "player_id is required", nil)
		return
	}

	player, err := h.db.GetPlayer(ctx, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve player", err)
		return
	}
	if player == nil {
		respondError(w, http.StatusNotFound, "player not found", nil)
		return
	}

	filters := db.GameStatFilters{
		PlayerID:   playerID,
		WeeklyOnly: true,
	}

	if label := r.URL.Query().Get("season"); label != "" {
		season, ok := statmath.ParseSeasonLabel(label)
		if !ok {
			// Dropped, not an error: an unusable season label selects
			// nothing, and the drop is logged so it stays observable.
			fmt.Printf("[Drop] ignoring non-numeric season label %q for player %s\n", label, playerID)
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"games": []models.GameStat{},
				"count": 0,
			})
			return
		}
		filters.Season = &season
	}

	stats, err := h.db.GetGameStats(ctx, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve game log", err)
		return
	}

	if stats == nil {
		stats = []models.GameStat{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": stats,
		"count": len(stats),
	})
}

// GetSeasons retrieves a player's per-season aggregates with column
// flags and a career totals row
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, "player_id is required", nil)
		return
	}

	player, err := h.db.GetPlayer(ctx, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve player", err)
		return
	}
	if player == nil {
		respondError(w, http.StatusNotFound, "player not found", nil)
		return
	}

	seasons, err := h.loadSeasons(ctx, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to aggregate seasons", err)
		return
	}

	respondJSON(w, http.StatusOK, SeasonsResponse{
		Player:  *player,
		Seasons: seasons,
		Career:  statmath.CareerTotals(seasons),
		Columns: columnFlags(player.Position, seasons),
	})
}

// RefreshSeasons drops a player's cached aggregates and recomputes
// them from source records. The ETL calls this after rewriting a
// player's GameStat rows so the dashboard never serves stale totals
// for a full cache TTL.
func (h *Handler) RefreshSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, "player_id is required", nil)
		return
	}

	player, err := h.db.GetPlayer(ctx, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve player", err)
		return
	}
	if player == nil {
		respondError(w, http.StatusNotFound, "player not found", nil)
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, playerID); err != nil {
			fmt.Printf("[Cache] invalidate failed for player %s: %v\n", playerID, err)
		}
	}

	seasons, err := h.loadSeasons(ctx, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to aggregate seasons", err)
		return
	}

	respondJSON(w, http.StatusOK, SeasonsResponse{
		Player:  *player,
		Seasons: seasons,
		Career:  statmath.CareerTotals(seasons),
		Columns: columnFlags(player.Position, seasons),
	})
}

// GetSeasonMedians retrieves per-season median/average yardage rates
func (h *Handler) GetSeasonMedians(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, "player_id is required", nil)
		return
	}

	medians, err := h.db.GetSeasonMedians(ctx, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve medians", err)
		return
	}

	if medians == nil {
		medians = []models.SeasonMedians{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"medians": medians,
		"count":   len(medians),
	})
}

// GetAdvancedMetrics retrieves season-level EPA rollups
func (h *Handler) GetAdvancedMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, "player_id is required", nil)
		return
	}

	metrics, err := h.db.GetAdvancedMetrics(ctx, playerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve advanced metrics", err)
		return
	}

	if metrics == nil {
		metrics = []models.AdvancedMetrics{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"metrics": metrics,
		"count":   len(metrics),
	})
}

// loadSeasons returns a player's season aggregates, cache-aside when a
// cache is configured. Cache failures degrade to an uncached read.
func (h *Handler) loadSeasons(ctx context.Context, playerID string) ([]models.SeasonAggregate, error) {
	if h.cache != nil {
		cached, err := h.cache.ReadSeasons(ctx, playerID)
		if err != nil {
			fmt.Printf("[Cache] read failed for player %s: %v\n", playerID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := h.db.GetGameStats(ctx, db.GameStatFilters{PlayerID: playerID})
	if err != nil {
		return nil, err
	}

	seasons := statmath.AggregateSeasons(stats)

	if h.cache != nil {
		if err := h.cache.WriteSeasons(ctx, playerID, seasons); err != nil {
			fmt.Printf("[Cache] write failed for player %s: %v\n", playerID, err)
		}
	}

	return seasons, nil
}

func columnFlags(position string, seasons []models.SeasonAggregate) ColumnFlags {
	return ColumnFlags{
		ShowPassing:   statmath.ShouldShowPassing(position),
		ShowRushing:   statmath.ShouldShowRushing(position, seasons),
		ShowReceiving: statmath.ShouldShowReceiving(position),
	}
}
