package stats

import "context"

type Repository interface {
	Create(ctx context.Context, accountID int64) error
}
