package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gameauth/internal/common"
	"github.com/dmitrijs2005/gameauth/internal/dbx"
	"github.com/dmitrijs2005/gameauth/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the account and fills in its generated ID and stored
// balance. A taken username yields common.ErrorConflict.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO users (username, password, balance)
		 VALUES ($1, $2, $3)
		 RETURNING id, balance
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.UserName, account.PasswordHash, account.Balance).Scan(&account.ID, &account.Balance)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	query :=
		`SELECT id, username, password, balance FROM users
		 WHERE username = $1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, userName).
		Scan(&account.ID, &account.UserName, &account.PasswordHash, &account.Balance)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetProfile joins the account with its stats. A missing stats row reads as
// zero counters.
func (r *PostgresRepository) GetProfile(ctx context.Context, id int64) (*models.ProfileView, error) {
	query :=
		`SELECT u.id, u.username, u.balance,
		        COALESCE(g.kills, 0), COALESCE(g.deaths, 0), COALESCE(g.wins, 0), COALESCE(g.losses, 0)
		 FROM users u
		 LEFT JOIN game_stats g ON u.id = g.user_id
		 WHERE u.id = $1
		 `

	p := &models.ProfileView{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.UserName, &p.Balance, &p.Kills, &p.Deaths, &p.Wins, &p.Losses)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}
