package application

import (
	"context"
	"fmt"
	"time"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/KPSTVLD/warrant-articles-bot/internal/ports"
)

// DispenseService draws content from a named pool and grants the reward in
// one ledger transaction. The optional pacing delay runs before the mutation
// lock is taken, never inside it.
type DispenseService struct {
	ledger ports.LedgerRepository
	pools  map[string]domain.Pool
	policy *domain.RewardPolicy
	delay  time.Duration
}

func NewDispenseService(ledger ports.LedgerRepository, pools map[string]domain.Pool, policy *domain.RewardPolicy, delay time.Duration) *DispenseService {
	if policy == nil {
		policy, _ = domain.NewRewardPolicy(domain.DefaultRewardConfig(), nil)
	}

	return &DispenseService{
		ledger: ledger,
		pools:  pools,
		policy: policy,
		delay:  delay,
	}
}

func (s *DispenseService) Pools() []string {
	names := make([]string, 0, len(s.pools))
	for name := range s.pools {
		names = append(names, name)
	}
	return names
}

func (s *DispenseService) Dispense(ctx context.Context, id domain.UserID, poolName string) (DispenseResult, error) {
	pool, ok := s.pools[poolName]
	if !ok {
		return DispenseResult{}, fmt.Errorf("resolve pool %q: %w", poolName, domain.ErrPoolNotFound)
	}
	if pool.Empty() {
		return DispenseResult{}, fmt.Errorf("pool %q: %w", poolName, domain.ErrPoolEmpty)
	}

	if err := s.pause(ctx); err != nil {
		return DispenseResult{}, err
	}

	var result DispenseResult
	_, err := s.ledger.Update(ctx, id, func(account *domain.Account) error {
		item, ok := pool.Draw(account.ConsumedSet())
		if !ok {
			// The user has seen every item in this pool; start a new cycle.
			account.ResetConsumed()
			item, ok = pool.Draw(nil)
			if !ok {
				return domain.ErrPoolEmpty
			}
		}

		// The reward tier draw is independent of the item draw.
		reward := s.policy.Draw()

		account.Articles++
		account.MarkConsumed(item)
		account.Balance += reward

		result = DispenseResult{
			Pool:     poolName,
			Item:     item,
			Reward:   reward,
			Balance:  account.Balance,
			Articles: account.Articles,
		}
		return nil
	})
	if err != nil {
		return DispenseResult{}, fmt.Errorf("update account: %w", err)
	}

	return result, nil
}

func (s *DispenseService) pause(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
