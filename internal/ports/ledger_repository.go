package ports

import (
	"context"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
)

// LedgerRepository owns the durable account table. Update runs the whole
// load-mutate-persist sequence under the store write lock: when fn returns an
// error nothing is persisted, so success is only ever reported for durably
// recorded mutations. List returns accounts in insertion order.
type LedgerRepository interface {
	GetOrCreate(ctx context.Context, id domain.UserID) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, id domain.UserID, fn func(*domain.Account) error) (domain.Account, error)
}
