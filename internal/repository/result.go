package repository

import (
	"context"
	"fmt"

	"github.com/playforgeinc/gridgame-backend/internal/entity"
	"github.com/playforgeinc/gridgame-backend/internal/repository/storage/sqlite"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListRecent(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

type dbResult struct {
	storage *sqlite.Storage
}

func NewResultRepository(storage *sqlite.Storage) ResultRepository {
	return &dbResult{
		storage: storage,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT INTO results (session_id, size, winner, moves, finished_at) VALUES (?, ?, ?, ?, ?)`

	_, err := that.storage.Connection.ExecContext(ctx, query,
		result.SessionID, result.Size, result.Winner, result.Moves, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) ListRecent(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	query := `SELECT session_id, size, winner, moves, finished_at FROM results ORDER BY id DESC LIMIT ?`

	rows, err := that.storage.Connection.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []*entity.GameResult
	for rows.Next() {
		var result entity.GameResult
		if err = rows.Scan(&result.SessionID, &result.Size, &result.Winner, &result.Moves, &result.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return results, nil
}
