package flatfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()

	ledgerPath := filepath.Join(t.TempDir(), "users_data.txt")
	config := viper.New()
	config.Set("ledger.path", ledgerPath)

	repo, err := NewRepository(config, nil)
	require.NoError(t, err)

	return repo, ledgerPath
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	first, err := repo.Update(context.Background(), 100, func(a *domain.Account) error {
		a.Balance = 250
		a.Articles = 3
		a.Title = "Baron"
		a.Consumed = []string{"Article 105", "Article 228"}
		return nil
	})
	require.NoError(t, err)

	second, err := repo.Update(context.Background(), 200, func(a *domain.Account) error {
		a.Balance = 10
		a.Articles = 1
		return nil
	})
	require.NoError(t, err)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{first, second}, accounts)
}

func TestRepositoryGetOrCreatePersistsImmediately(t *testing.T) {
	t.Parallel()

	repo, ledgerPath := newTestRepository(t)

	account, err := repo.GetOrCreate(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(42), account.ID)
	assert.Equal(t, int64(0), account.Balance)
	assert.Equal(t, int64(0), account.Articles)
	assert.Equal(t, domain.DefaultTitle, account.Title)
	assert.Empty(t, account.Consumed)

	data, err := os.ReadFile(ledgerPath)
	require.NoError(t, err)
	assert.Equal(t, "42|0|0|none|\n", string(data))
}

func TestRepositorySkipsMalformedRecords(t *testing.T) {
	t.Parallel()

	repo, ledgerPath := newTestRepository(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(ledgerPath), 0o755))

	fixture := "abc|1|2\n" +
		"1|100|2|Baron|Article 105,Article 228\n" +
		"2|not-a-number|0\n" +
		"3|5\n" +
		"4|-5|1\n" +
		"5|70|7\n"
	require.NoError(t, os.WriteFile(ledgerPath, []byte(fixture), 0o644))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, accounts, 2)
	assert.Equal(t, domain.UserID(1), accounts[0].ID)
	assert.Equal(t, int64(100), accounts[0].Balance)
	assert.Equal(t, []string{"Article 105", "Article 228"}, accounts[0].Consumed)
	assert.Equal(t, domain.UserID(5), accounts[1].ID)
}

func TestRepositoryDefaultsOptionalFields(t *testing.T) {
	t.Parallel()

	repo, ledgerPath := newTestRepository(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(ledgerPath), 0o755))
	require.NoError(t, os.WriteFile(ledgerPath, []byte("9|30|2\n"), 0o644))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, accounts, 1)
	assert.Equal(t, domain.DefaultTitle, accounts[0].Title)
	assert.Empty(t, accounts[0].Consumed)
}

func TestRepositoryMissingFileLoadsEmpty(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestRepositoryUpdateErrorLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	repo, ledgerPath := newTestRepository(t)

	_, err := repo.Update(context.Background(), 1, func(a *domain.Account) error {
		a.Balance = 500
		return nil
	})
	require.NoError(t, err)

	before, err := os.ReadFile(ledgerPath)
	require.NoError(t, err)

	mutationErr := errors.New("refused")
	_, err = repo.Update(context.Background(), 1, func(a *domain.Account) error {
		a.Balance = 0
		return mutationErr
	})
	require.ErrorIs(t, err, mutationErr)

	after, err := os.ReadFile(ledgerPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestRepositoryPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	for _, id := range []domain.UserID{30, 10, 20} {
		_, err := repo.GetOrCreate(context.Background(), id)
		require.NoError(t, err)
	}

	// Mutating an existing account must not move it.
	_, err := repo.Update(context.Background(), 10, func(a *domain.Account) error {
		a.Balance = 1
		return nil
	})
	require.NoError(t, err)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)

	ids := make([]domain.UserID, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
	}
	assert.Equal(t, []domain.UserID{30, 10, 20}, ids)
}

func TestRepositoryConcurrentUpdatesDoNotClobber(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	const perUser = 25
	users := []domain.UserID{1, 2, 3, 4}

	var wg sync.WaitGroup
	for _, id := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perUser {
				_, err := repo.Update(context.Background(), id, func(a *domain.Account) error {
					a.Balance += 10
					a.Articles++
					return nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, len(users))

	for _, account := range accounts {
		assert.Equal(t, int64(perUser*10), account.Balance, fmt.Sprintf("user %d", account.ID))
		assert.Equal(t, int64(perUser), account.Articles)
	}
}

func TestRepositoryCanceledContext(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.Update(ctx, 1, func(*domain.Account) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
