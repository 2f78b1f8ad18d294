package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gameauth/internal/dbx"
	"github.com/dmitrijs2005/gameauth/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gameauth/internal/server/repositories/stats"
)

// RepositoryManager vends repositories bound to a DBTX, so the same service
// code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Stats(db dbx.DBTX) stats.Repository
}
