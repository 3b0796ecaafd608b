package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kossler/Actual-Analytics/pkg/models"
	_ "github.com/lib/pq"
)

// StatsDB defines the interface for stats database operations
type StatsDB interface {
	SearchPlayers(ctx context.Context, filters PlayerFilters) ([]models.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)
	GetGameStats(ctx context.Context, filters GameStatFilters) ([]models.GameStat, error)
	GetSeasonMedians(ctx context.Context, playerID string) ([]models.SeasonMedians, error)
	GetAdvancedMetrics(ctx context.Context, playerID string) ([]models.AdvancedMetrics, error)
	CountPlayers(ctx context.Context) (int, error)
	Close() error
	Ping(ctx context.Context) error
}

// PlayerFilters contains filters for searching players
type PlayerFilters struct {
	Query    string
	Position string
	Limit    int
}

// GameStatFilters contains filters for querying game stats
type GameStatFilters struct {
	PlayerID   string
	Season     *int
	WeeklyOnly bool
}

// Client implements StatsDB against the Postgres database the ingestion
// pipeline populates
type Client struct {
	db *sql.DB
}

// NewClient creates a new stats DB client
func NewClient(dsn string) (*Client, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// SearchPlayers retrieves players matching a name query
func (c *Client) SearchPlayers(ctx context.Context, filters PlayerFilters) ([]models.Player, error) {
	query := `
		SELECT id, name, position, team, pfr_id
		FROM "Player"
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filters.Query != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+filters.Query+"%")
		argIdx++
	}

	if filters.Position != "" {
		query += fmt.Sprintf(" AND position = $%d", argIdx)
		args = append(args, filters.Position)
		argIdx++
	}

	query += " ORDER BY name ASC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filters.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.Team, &p.PfrID); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}

	return players, nil
}

// GetPlayer retrieves a single player by ID
func (c *Client) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	query := `
		SELECT id, name, position, team, pfr_id
		FROM "Player"
		WHERE id = $1
	`

	var p models.Player
	err := c.db.QueryRowContext(ctx, query, playerID).Scan(
		&p.ID, &p.Name, &p.Position, &p.Team, &p.PfrID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query player: %w", err)
	}

	return &p, nil
}

// GetGameStats retrieves a player's GameStat records. Season-level
// rollup records (week IS NULL) sort before the weekly records of their
// season.
func (c *Client) GetGameStats(ctx context.Context, filters GameStatFilters) ([]models.GameStat, error) {
	query := `
		SELECT id, "playerId", season, week, games,
		       passing_attempts, passing_completions, passing_yards, passing_tds,
		       passing_interceptions, passing_sacks, passing_epa,
		       passing_epa_per_play, passing_success_rate, passing_cpoe,
		       rushing_attempts, rushing_yards, rushing_tds, rushing_epa,
		       rushing_epa_per_play, rushing_success_rate,
		       receiving_targets, receiving_receptions, receiving_yards, receiving_tds,
		       receiving_epa, receiving_epa_per_play, receiving_success_rate
		FROM "GameStat"
		WHERE "playerId" = $1
	`
	args := []interface{}{filters.PlayerID}
	argIdx := 2

	if filters.Season != nil {
		query += fmt.Sprintf(" AND season = $%d", argIdx)
		args = append(args, *filters.Season)
	}

	if filters.WeeklyOnly {
		query += " AND week IS NOT NULL"
	}

	query += " ORDER BY season DESC, week ASC NULLS FIRST"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query game stats: %w", err)
	}
	defer rows.Close()

	var stats []models.GameStat
	for rows.Next() {
		var gs models.GameStat
		if err := rows.Scan(
			&gs.ID, &gs.PlayerID, &gs.Season, &gs.Week, &gs.Games,
			&gs.Passing.Attempts, &gs.Passing.Completions, &gs.Passing.Yards, &gs.Passing.Touchdowns,
			&gs.Passing.Interceptions, &gs.Passing.Sacks, &gs.Passing.EPA,
			&gs.Passing.EPAPerPlay, &gs.Passing.SuccessRate, &gs.Passing.CPOE,
			&gs.Rushing.Attempts, &gs.Rushing.Yards, &gs.Rushing.Touchdowns, &gs.Rushing.EPA,
			&gs.Rushing.EPAPerPlay, &gs.Rushing.SuccessRate,
			&gs.Receiving.Targets, &gs.Receiving.Receptions, &gs.Receiving.Yards, &gs.Receiving.Touchdowns,
			&gs.Receiving.EPA, &gs.Receiving.EPAPerPlay, &gs.Receiving.SuccessRate,
		); err != nil {
			return nil, fmt.Errorf("scan game stat: %w", err)
		}
		stats = append(stats, gs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game stats: %w", err)
	}

	return stats, nil
}

// GetSeasonMedians retrieves per-season median/average yardage rates
func (c *Client) GetSeasonMedians(ctx context.Context, playerID string) ([]models.SeasonMedians, error) {
	query := `
		SELECT "playerId", season,
		       median_yards_per_pass_attempt, average_yards_per_pass_attempt,
		       median_yards_per_rushing_attempt, average_yards_per_rushing_attempt,
		       median_yards_per_reception, average_yards_per_reception
		FROM "PlayerStats"
		WHERE "playerId" = $1
		ORDER BY season DESC
	`

	rows, err := c.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("query season medians: %w", err)
	}
	defer rows.Close()

	var medians []models.SeasonMedians
	for rows.Next() {
		var m models.SeasonMedians
		if err := rows.Scan(
			&m.PlayerID, &m.Season,
			&m.MedianYardsPerPassAttempt, &m.AverageYardsPerPassAttempt,
			&m.MedianYardsPerRushingAttempt, &m.AverageYardsPerRushingAttempt,
			&m.MedianYardsPerReception, &m.AverageYardsPerReception,
		); err != nil {
			return nil, fmt.Errorf("scan season medians: %w", err)
		}
		medians = append(medians, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate season medians: %w", err)
	}

	return medians, nil
}

// GetAdvancedMetrics retrieves season-level EPA rollups
func (c *Client) GetAdvancedMetrics(ctx context.Context, playerID string) ([]models.AdvancedMetrics, error) {
	query := `
		SELECT "playerId", season,
		       passing_epa, rushing_epa, receiving_epa, total_epa,
		       success_rate, cpoe
		FROM "AdvancedMetrics"
		WHERE "playerId" = $1
		ORDER BY season DESC
	`

	rows, err := c.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("query advanced metrics: %w", err)
	}
	defer rows.Close()

	var metrics []models.AdvancedMetrics
	for rows.Next() {
		var m models.AdvancedMetrics
		if err := rows.Scan(
			&m.PlayerID, &m.Season,
			&m.PassingEPA, &m.RushingEPA, &m.ReceivingEPA, &m.TotalEPA,
			&m.SuccessRate, &m.CPOE,
		); err != nil {
			return nil, fmt.Errorf("scan advanced metrics: %w", err)
		}
		metrics = append(metrics, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate advanced metrics: %w", err)
	}

	return metrics, nil
}

// CountPlayers returns the number of players in the database. Used by
// the health endpoint as a data-presence sanity check.
func (c *Client) CountPlayers(ctx context.Context) (int, error) {
	var count int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "Player"`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping checks database connectivity
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
