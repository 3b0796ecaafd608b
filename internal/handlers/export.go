package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Kossler/Actual-Analytics/pkg/models"
	"github.com/Kossler/Actual-Analytics/pkg/statmath"
	"github.com/go-chi/chi/v5"
)

// ExportSeasons writes a player's season table as CSV, with the same
// column families the dashboard shows for that position. The final
// TOTAL row keeps legitimate zeros visible; season rows render zero and
// missing alike as the no-data marker.
func (h *Handler) ExportSeasons(w http.ResponseWriter, r *http.Request) {
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

	flags := columnFlags(player.Position, seasons)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-seasons.csv", playerID)))

	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader(flags)); err != nil {
		fmt.Printf("error writing csv header: %v\n", err)
		return
	}

	for _, season := range seasons {
		label := strconv.Itoa(season.Season)
		if err := cw.Write(exportRow(label, season, flags, false)); err != nil {
			fmt.Printf("error writing csv row: %v\n", err)
			return
		}
	}

	career := statmath.CareerTotals(seasons)
	if err := cw.Write(exportRow("TOTAL", career, flags, true)); err != nil {
		fmt.Printf("error writing csv totals row: %v\n", err)
		return
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		fmt.Printf("error flushing csv: %v\n", err)
	}
}

func exportHeader(flags ColumnFlags) []string {
	header := []string{"Season", "G"}

	if flags.ShowPassing {
		header = append(header, "Cmp", "PassAtt", "Cmp%", "PassYds", "PassTD", "Int", "Sck", "PassEPA")
	}
	if flags.ShowRushing {
		header = append(header, "RushAtt", "RushYds", "RushTD", "RushEPA")
	}
	if flags.ShowReceiving {
		header = append(header, "Tgt", "Rec", "RecYds", "RecTD", "RecEPA")
	}

	return header
}

func exportRow(label string, agg models.SeasonAggregate, flags ColumnFlags, allowZero bool) []string {
	row := []string{label, countCell(agg.GameCount, allowZero)}

	if flags.ShowPassing {
		pct := statmath.CompletionPct(&agg.Passing.Completions, &agg.Passing.Attempts)
		row = append(row,
			countCell(agg.Passing.Completions, allowZero),
			countCell(agg.Passing.Attempts, allowZero),
			statmath.DisplayFixed(pct, 1, allowZero),
			countCell(agg.Passing.Yards, allowZero),
			countCell(agg.Passing.Touchdowns, allowZero),
			countCell(agg.Passing.Interceptions, allowZero),
			countCell(agg.Passing.Sacks, allowZero),
			epaCell(agg.Passing.EPA, allowZero),
		)
	}
	if flags.ShowRushing {
		row = append(row,
			countCell(agg.Rushing.Attempts, allowZero),
			countCell(agg.Rushing.Yards, allowZero),
			countCell(agg.Rushing.Touchdowns, allowZero),
			epaCell(agg.Rushing.EPA, allowZero),
		)
	}
	if flags.ShowReceiving {
		row = append(row,
			countCell(agg.Receiving.Targets, allowZero),
			countCell(agg.Receiving.Receptions, allowZero),
			countCell(agg.Receiving.Yards, allowZero),
			countCell(agg.Receiving.Touchdowns, allowZero),
			epaCell(agg.Receiving.EPA, allowZero),
		)
	}

	return row
}

func countCell(v int, allowZero bool) string {
	return statmath.DisplayInt(&v, allowZero)
}

func epaCell(v float64, allowZero bool) string {
	return statmath.DisplayFixed(&v, 2, allowZero)
}
