package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/finsight/decider/internal/model"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	// Create PostgreSQL connection string
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// The database may still be starting when the service comes up.
	pingBackoff := backoff.NewExponentialBackOff()
	pingBackoff.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(db.Ping, pingBackoff); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS decisions (
			id BIGSERIAL PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			context_timestamp TEXT NOT NULL,
			symbol TEXT NOT NULL,
			timeframe TEXT NOT NULL,
			signal TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			weighted_score DOUBLE PRECISION NOT NULL,
			risk_level TEXT NOT NULL,
			target_1 DOUBLE PRECISION NOT NULL,
			target_2 DOUBLE PRECISION NOT NULL,
			target_3 DOUBLE PRECISION NOT NULL,
			stop_loss DOUBLE PRECISION NOT NULL,
			position_size_multiplier DOUBLE PRECISION NOT NULL,
			technical_score DOUBLE PRECISION NOT NULL,
			regime_score DOUBLE PRECISION NOT NULL,
			levels_score DOUBLE PRECISION NOT NULL,
			economic_score DOUBLE PRECISION NOT NULL,
			confluence_score DOUBLE PRECISION NOT NULL,
			reasoning TEXT NOT NULL,
			processing_time_ms DOUBLE PRECISION NOT NULL
		)
	`)

	return err
}

// SaveDecision stores one decision record for audit.
func (db *DB) SaveDecision(d *model.Decision) error {
	_, err := db.Exec(`
		INSERT INTO decisions (
			context_timestamp, symbol, timeframe, signal, confidence,
			weighted_score, risk_level, target_1, target_2, target_3,
			stop_loss, position_size_multiplier, technical_score,
			regime_score, levels_score, economic_score, confluence_score,
			reasoning, processing_time_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`,
		d.Timestamp, d.Symbol, d.Timeframe, d.Signal, d.Confidence,
		d.WeightedScore, d.RiskLevel, d.PriceTargets.Target1, d.PriceTargets.Target2, d.PriceTargets.Target3,
		d.StopLoss, d.PositionSizeMultiplier, d.Scores.Technical,
		d.Scores.Regime, d.Scores.Levels, d.Scores.Economic, d.Scores.Confluence,
		d.Reasoning, d.ProcessingTimeMs,
	)
	if err != nil {
		return fmt.Errorf("saving decision: %w", err)
	}
	return nil
}

// RecentDecisions returns the latest stored decisions for a symbol, newest
// first.
func (db *DB) RecentDecisions(symbol string, limit int) ([]model.Decision, error) {
	rows, err := db.Query(`
		SELECT
			context_timestamp, symbol, timeframe, signal, confidence,
			weighted_score, risk_level, target_1, target_2, target_3,
			stop_loss, position_size_multiplier, technical_score,
			regime_score, levels_score, economic_score, confluence_score,
			reasoning, processing_time_ms
		FROM decisions
		WHERE symbol = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var decisions []model.Decision
	for rows.Next() {
		var d model.Decision
		if err := rows.Scan(
			&d.Timestamp, &d.Symbol, &d.Timeframe, &d.Signal, &d.Confidence,
			&d.WeightedScore, &d.RiskLevel, &d.PriceTargets.Target1, &d.PriceTargets.Target2, &d.PriceTargets.Target3,
			&d.StopLoss, &d.PositionSizeMultiplier, &d.Scores.Technical,
			&d.Scores.Regime, &d.Scores.Levels, &d.Scores.Economic, &d.Scores.Confluence,
			&d.Reasoning, &d.ProcessingTimeMs,
		); err != nil {
			return nil, fmt.Errorf("scanning decision row: %w", err)
		}
		decisions = append(decisions, d)
	}

	return decisions, rows.Err()
}
