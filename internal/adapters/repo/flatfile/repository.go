// Package flatfile persists the ledger as pipe-delimited records, one
// account per line:
//
//	user_id|balance|articles|title|item1,item2
//
// Fields after articles are optional for compatibility with records written
// before titles and consumed sets existed.
package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/KPSTVLD/warrant-articles-bot/internal/ports"
	"github.com/spf13/viper"
)

const (
	ledgerPathKey     = "ledger.path"
	defaultLedgerPath = "data/users_data.txt"
	ledgerFileMode    = 0o644
	ledgerDirMode     = 0o755
	tempFilePattern   = ".ledger-*.txt.tmp"
)

type Repository struct {
	ledgerPath string
	log        *slog.Logger
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.LedgerRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper, log *slog.Logger) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if log == nil {
		log = slog.Default()
	}

	cfg.SetDefault(ledgerPathKey, defaultLedgerPath)

	ledgerPath := cfg.GetString(ledgerPathKey)
	if ledgerPath == "" {
		return nil, errors.New("ledger path is empty")
	}
	ledgerPath, err := normalizeLedgerPath(ledgerPath)
	if err != nil {
		return nil, err
	}

	return &Repository{ledgerPath: ledgerPath, log: log, mu: lockForPath(ledgerPath)}, nil
}

func (r *Repository) GetOrCreate(ctx context.Context, id domain.UserID) (domain.Account, error) {
	// Creation goes through Update so a fresh account is durable before it
	// is ever reported to a caller.
	return r.Update(ctx, id, func(*domain.Account) error { return nil })
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readRecords()
}

func (r *Repository) Update(ctx context.Context, id domain.UserID, fn func(*domain.Account) error) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.readRecords()
	if err != nil {
		return domain.Account{}, err
	}

	idx := -1
	for i := range accounts {
		if accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		accounts = append(accounts, domain.NewAccount(id))
		idx = len(accounts) - 1
	}

	account := accounts[idx]
	if err := fn(&account); err != nil {
		return domain.Account{}, err
	}
	account.Normalize()
	accounts[idx] = account

	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	if err := r.writeRecords(accounts); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (r *Repository) readRecords() ([]domain.Account, error) {
	file, err := os.Open(r.ledgerPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var accounts []domain.Account
	index := map[domain.UserID]int{}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		account, err := parseRecord(line)
		if err != nil {
			r.log.Warn("skipping malformed ledger record",
				"path", r.ledgerPath, "line", lineNo, "err", err)
			continue
		}

		// Duplicate ids keep the later record, matching a wholesale rewrite.
		if i, ok := index[account.ID]; ok {
			accounts[i] = account
			continue
		}
		index[account.ID] = len(accounts)
		accounts = append(accounts, account)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	return accounts, nil
}

func parseRecord(line string) (domain.Account, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return domain.Account{}, fmt.Errorf("want at least 3 fields, got %d", len(parts))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return domain.Account{}, fmt.Errorf("parse user id: %w", err)
	}
	balance, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return domain.Account{}, fmt.Errorf("parse balance: %w", err)
	}
	articles, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
	if err != nil {
		return domain.Account{}, fmt.Errorf("parse article count: %w", err)
	}
	if balance < 0 || articles < 0 {
		return domain.Account{}, fmt.Errorf("negative balance %d or article count %d", balance, articles)
	}

	account := domain.NewAccount(domain.UserID(id))
	account.Balance = balance
	account.Articles = articles
	if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
		account.Title = strings.TrimSpace(parts[3])
	}
	if len(parts) > 4 {
		account.Consumed = domain.SplitItems(parts[4])
	}

	return account, nil
}

func formatRecord(account domain.Account) string {
	return fmt.Sprintf("%d|%d|%d|%s|%s",
		account.ID,
		account.Balance,
		account.Articles,
		account.Title,
		domain.JoinItems(account.Consumed),
	)
}

func (r *Repository) writeRecords(accounts []domain.Account) error {
	if err := os.MkdirAll(filepath.Dir(r.ledgerPath), ledgerDirMode); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	var b strings.Builder
	for _, account := range accounts {
		b.WriteString(formatRecord(account))
		b.WriteByte('\n')
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.ledgerPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.WriteString(b.String()); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp ledger file: %w", err)
	}

	if err := tempFile.Chmod(ledgerFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp ledger file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp ledger file: %w", err)
	}

	if err := os.Rename(tempName, r.ledgerPath); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}

	cleanup = false

	return nil
}

func normalizeLedgerPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve ledger path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
