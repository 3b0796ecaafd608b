package models

import "time"

// Player represents an NFL player tracked by the ingestion pipeline
type Player struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Team     *string `json:"team,omitempty"`
	PfrID    *string `json:"pfr_id,omitempty"`
}

// PassingStats holds the passing stat family for one record.
// All fields are nullable: nil means "not recorded", which is distinct
// from an explicit zero.
type PassingStats struct {
	Attempts      *int     `json:"attempts"`
	Completions   *int     `json:"completions"`
	Yards         *int     `json:"yards"`
	Touchdowns    *int     `json:"touchdowns"`
	Interceptions *int     `json:"interceptions"`
	Sacks         *int     `json:"sacks"`
	EPA           *float64 `json:"epa"`
	EPAPerPlay    *float64 `json:"epa_per_play"`
	SuccessRate   *float64 `json:"success_rate"`
	CPOE          *float64 `json:"cpoe"`
}

// RushingStats holds the rushing stat family for one record
type RushingStats struct {
	Attempts    *int     `json:"attempts"`
	Yards       *int     `json:"yards"`
	Touchdowns  *int     `json:"touchdowns"`
	EPA         *float64 `json:"epa"`
	EPAPerPlay  *float64 `json:"epa_per_play"`
	SuccessRate *float64 `json:"success_rate"`
}

// ReceivingStats holds the receiving stat family for one record
type ReceivingStats struct {
	Targets     *int     `json:"targets"`
	Receptions  *int     `json:"receptions"`
	Yards       *int     `json:"yards"`
	Touchdowns  *int     `json:"touchdowns"`
	EPA         *float64 `json:"epa"`
	EPAPerPlay  *float64 `json:"epa_per_play"`
	SuccessRate *float64 `json:"success_rate"`
}

// GameStat is one per-player statistical observation from the ingestion
// pipeline. Week == nil marks a season-level rollup record carrying an
// authoritative Games count; otherwise the record covers a single week.
type GameStat struct {
	ID        int            `json:"id"`
	PlayerID  string         `json:"player_id"`
	Season    int            `json:"season"`
	Week      *int           `json:"week"`
	Games     *int           `json:"games,omitempty"`
	Passing   PassingStats   `json:"passing"`
	Rushing   RushingStats   `json:"rushing"`
	Receiving ReceivingStats `json:"receiving"`
}

// PassingTotals holds summed passing stats for one season
type PassingTotals struct {
	Attempts      int     `json:"attempts"`
	Completions   int     `json:"completions"`
	Yards         int     `json:"yards"`
	Touchdowns    int     `json:"touchdowns"`
	Interceptions int     `json:"interceptions"`
	Sacks         int     `json:"sacks"`
	EPA           float64 `json:"epa"`
}

// RushingTotals holds summed rushing stats for one season
type RushingTotals struct {
	Attempts   int     `json:"attempts"`
	Yards      int     `json:"yards"`
	Touchdowns int     `json:"touchdowns"`
	EPA        float64 `json:"epa"`
}

// ReceivingTotals holds summed receiving stats for one season
type ReceivingTotals struct {
	Targets    int     `json:"targets"`
	Receptions int     `json:"receptions"`
	Yards      int     `json:"yards"`
	Touchdowns int     `json:"touchdowns"`
	EPA        float64 `json:"epa"`
}

// SeasonAggregate is the per-season reduction of a player's GameStat
// records. It is recomputed from source records on every query and never
// persisted independently of them.
type SeasonAggregate struct {
	Season    int             `json:"season"`
	GameCount int             `json:"game_count"`
	Passing   PassingTotals   `json:"passing"`
	Rushing   RushingTotals   `json:"rushing"`
	Receiving ReceivingTotals `json:"receiving"`
}

// SeasonMedians carries the per-season median/average yardage rates the
// ETL computes from play-by-play data (PlayerStats table).
type SeasonMedians struct {
	PlayerID                      string   `json:"player_id"`
	Season                        int      `json:"season"`
	MedianYardsPerPassAttempt     *float64 `json:"median_yards_per_pass_attempt"`
	AverageYardsPerPassAttempt    *float64 `json:"average_yards_per_pass_attempt"`
	MedianYardsPerRushingAttempt  *float64 `json:"median_yards_per_rushing_attempt"`
	AverageYardsPerRushingAttempt *float64 `json:"average_yards_per_rushing_attempt"`
	MedianYardsPerReception       *float64 `json:"median_yards_per_reception"`
	AverageYardsPerReception      *float64 `json:"average_yards_per_reception"`
}

// AdvancedMetrics carries the season-level efficiency rollups the ETL
// derives from weekly EPA data (AdvancedMetrics table).
type AdvancedMetrics struct {
	PlayerID     string   `json:"player_id"`
	Season       int      `json:"season"`
	PassingEPA   *float64 `json:"passing_epa"`
	RushingEPA   *float64 `json:"rushing_epa"`
	ReceivingEPA *float64 `json:"receiving_epa"`
	TotalEPA     *float64 `json:"total_epa"`
	SuccessRate  *float64 `json:"success_rate"`
	CPOE         *float64 `json:"cpoe"`
}

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthStatus is the payload returned by the health endpoint
type HealthStatus struct {
	Status      string    `json:"status"`
	Service     string    `json:"service"`
	Timestamp   time.Time `json:"timestamp"`
	PlayerCount int       `json:"player_count"`
}
