package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/pairmatch-backend/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListTop(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

type dbResult struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &dbResult{
		conn: conn,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT INTO results (game_id, score, elapsed_seconds, finished_at) VALUES (?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, result.GameID, result.Score, result.Elapsed, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// ListTop returns finished rounds ordered by score, fastest first on ties.
func (that *dbResult) ListTop(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	query := `SELECT game_id, score, elapsed_seconds, finished_at FROM results
		ORDER BY score DESC, elapsed_seconds ASC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []*entity.GameResult

	for rows.Next() {
		result := &entity.GameResult{}
		if err = rows.Scan(&result.GameID, &result.Score, &result.Elapsed, &result.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return results, nil
}
