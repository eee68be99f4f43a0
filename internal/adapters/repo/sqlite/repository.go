// Package sqlite provides a SQLite-backed ledger repository for deployments
// that outgrow the flat record file. It honors the same contract: updates
// run load-mutate-persist as one serialized transaction.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/KPSTVLD/warrant-articles-bot/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id  INTEGER NOT NULL UNIQUE,
	balance  INTEGER NOT NULL DEFAULT 0,
	articles INTEGER NOT NULL DEFAULT 0,
	title    TEXT    NOT NULL DEFAULT 'none',
	consumed TEXT    NOT NULL DEFAULT ''
);`

type Repository struct {
	db  *sql.DB
	log *slog.Logger
	mu  sync.Mutex
}

var _ ports.LedgerRepository = (*Repository)(nil)

func Open(path string, log *slog.Logger) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ledger path is empty")
	}
	if log == nil {
		log = slog.Default()
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Repository{db: db, log: log}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) GetOrCreate(ctx context.Context, id domain.UserID) (domain.Account, error) {
	return r.Update(ctx, id, func(*domain.Account) error { return nil })
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, balance, articles, title, consumed FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *Repository) Update(ctx context.Context, id domain.UserID, fn func(*domain.Account) error) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Account{}, fmt.Errorf("begin update transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	account := domain.NewAccount(id)
	row := tx.QueryRowContext(ctx,
		`SELECT user_id, balance, articles, title, consumed FROM accounts WHERE user_id = ?`, int64(id))
	existing, err := scanAccount(row)
	switch {
	case err == nil:
		account = existing
	case errors.Is(err, sql.ErrNoRows):
	default:
		return domain.Account{}, err
	}

	if err := fn(&account); err != nil {
		return domain.Account{}, err
	}
	account.Normalize()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (user_id, balance, articles, title, consumed)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   balance  = excluded.balance,
		   articles = excluded.articles,
		   title    = excluded.title,
		   consumed = excluded.consumed`,
		int64(account.ID),
		account.Balance,
		account.Articles,
		account.Title,
		domain.JoinItems(account.Consumed),
	)
	if err != nil {
		return domain.Account{}, fmt.Errorf("upsert account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Account{}, fmt.Errorf("commit update transaction: %w", err)
	}

	return account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		id       int64
		balance  int64
		articles int64
		title    string
		consumed string
	)
	if err := row.Scan(&id, &balance, &articles, &title, &consumed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}

	account := domain.Account{
		ID:       domain.UserID(id),
		Balance:  balance,
		Articles: articles,
		Title:    title,
		Consumed: domain.SplitItems(consumed),
	}
	account.Normalize()

	return account, nil
}
