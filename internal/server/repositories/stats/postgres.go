package stats

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gameauth/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the zeroed stats row for a new account.
func (r *PostgresRepository) Create(ctx context.Context, accountID int64) error {
	query := `INSERT INTO game_stats (user_id) VALUES ($1)`

	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
