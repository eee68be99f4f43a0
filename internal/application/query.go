package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/KPSTVLD/warrant-articles-bot/internal/ports"
)

var ErrUnsupportedMetric = errors.New("unsupported leaderboard metric")

const DefaultLeaderboardSize = 30

// QueryService serves the read-only views: profile lookups and leaderboards
// over the last-persisted snapshot.
type QueryService struct {
	ledger ports.LedgerRepository
}

func NewQueryService(ledger ports.LedgerRepository) *QueryService {
	return &QueryService{ledger: ledger}
}

func (s *QueryService) Profile(ctx context.Context, id domain.UserID) (domain.Account, error) {
	account, err := s.ledger.GetOrCreate(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get or create account: %w", err)
	}

	return account, nil
}

// Top returns up to n accounts ranked descending by the metric. Ties keep
// the ledger's insertion order.
func (s *QueryService) Top(ctx context.Context, metric Metric, n int) ([]LeaderboardEntry, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMetric, metric)
	}
	if n <= 0 {
		n = DefaultLeaderboardSize
	}

	accounts, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(accounts))
	for _, account := range accounts {
		value := account.Balance
		if metric == MetricArticles {
			value = account.Articles
		}
		entries = append(entries, LeaderboardEntry{UserID: account.ID, Value: value})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	if len(entries) > n {
		entries = entries[:n]
	}

	return entries, nil
}
