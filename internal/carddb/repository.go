package carddb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hikari-lab/lessonsim/internal/config"
	"github.com/hikari-lab/lessonsim/internal/game/card"
)

// Repository reads card records from Postgres. Effects and conditions are
// stored as JSONB in the same shape the JSON file loader accepts.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository connects a pgx pool and verifies the connection.
func NewRepository(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Repository, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if logger != nil {
		logger.Info("card repository connected",
			zap.Int32("max_conns", pool.Config().MaxConns),
		)
	}
	return &Repository{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// ListCards returns every card in the database.
func (r *Repository) ListCards(ctx context.Context) ([]card.Card, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, type, plan, cost, cost_type, unique_card,
		       usage_limit, start_in_hand, effects, conditions
		FROM cards
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []card.Card
	for rows.Next() {
		var (
			c              card.Card
			effectsJSON    []byte
			conditionsJSON []byte
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Plan, &c.Cost,
			&c.CostType, &c.Unique, &c.UsageLimit, &c.StartInHand,
			&effectsJSON, &conditionsJSON); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		if len(effectsJSON) > 0 {
			if err := json.Unmarshal(effectsJSON, &c.Effects); err != nil {
				return nil, fmt.Errorf("card %s: parse effects: %w", c.ID, err)
			}
		}
		if len(conditionsJSON) > 0 {
			if err := json.Unmarshal(conditionsJSON, &c.Conditions); err != nil {
				return nil, fmt.Errorf("card %s: parse conditions: %w", c.ID, err)
			}
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}

	if err := validate(cards); err != nil {
		return nil, err
	}
	return cards, nil
}
