package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepository(t *testing.T) *Repository {
	t.Helper()

	repo, err := Open(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := openTestRepository(t)

	account, err := repo.Update(context.Background(), 100, func(a *domain.Account) error {
		a.Balance = 250
		a.Articles = 3
		a.Title = "Baron"
		a.Consumed = []string{"Article 105", "Article 228"}
		return nil
	})
	require.NoError(t, err)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, account, accounts[0])
}

func TestRepositoryGetOrCreateDefaults(t *testing.T) {
	t.Parallel()

	repo := openTestRepository(t)

	account, err := repo.GetOrCreate(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(42), account.ID)
	assert.Equal(t, int64(0), account.Balance)
	assert.Equal(t, domain.DefaultTitle, account.Title)
	assert.Empty(t, account.Consumed)

	again, err := repo.GetOrCreate(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, account, again)
}

func TestRepositoryListKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	repo := openTestRepository(t)

	for _, id := range []domain.UserID{30, 10, 20} {
		_, err := repo.GetOrCreate(context.Background(), id)
		require.NoError(t, err)
	}

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)

	ids := make([]domain.UserID, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
	}
	assert.Equal(t, []domain.UserID{30, 10, 20}, ids)
}

func TestRepositoryUpdateErrorRollsBack(t *testing.T) {
	t.Parallel()

	repo := openTestRepository(t)

	_, err := repo.Update(context.Background(), 1, func(a *domain.Account) error {
		a.Balance = 500
		return nil
	})
	require.NoError(t, err)

	mutationErr := errors.New("refused")
	_, err = repo.Update(context.Background(), 1, func(a *domain.Account) error {
		a.Balance = 0
		return mutationErr
	})
	require.ErrorIs(t, err, mutationErr)

	account, err := repo.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), account.Balance)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := Open("", nil)
	assert.Error(t, err)
}
