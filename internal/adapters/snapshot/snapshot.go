// Package snapshot exports and imports the ledger as a TOML document, a
// structured backup format for the pipe-delimited ledger file.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	currentSchemaVersion = 1
	snapshotFileMode     = 0o644
	snapshotDirMode      = 0o755
	tempFilePattern      = ".snapshot-*.toml.tmp"
)

type fileSchema struct {
	Version    int             `toml:"version"`
	ExportedAt string          `toml:"exported_at,omitempty"`
	Accounts   []accountSchema `toml:"accounts"`
}

type accountSchema struct {
	UserID   int64    `toml:"user_id"`
	Balance  int64    `toml:"balance"`
	Articles int64    `toml:"articles"`
	Title    string   `toml:"title"`
	Consumed []string `toml:"consumed,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported snapshot schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func Export(path string, accounts []domain.Account, exportedAt time.Time) error {
	file := fileSchema{
		Version:  currentSchemaVersion,
		Accounts: make([]accountSchema, 0, len(accounts)),
	}
	if !exportedAt.IsZero() {
		file.ExportedAt = exportedAt.UTC().Format(time.RFC3339)
	}

	for _, account := range accounts {
		file.Accounts = append(file.Accounts, toSchema(account))
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), snapshotDirMode); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp snapshot file: %w", err)
	}

	if err := tempFile.Chmod(snapshotFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp snapshot file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp snapshot file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	cleanup = false

	return nil
}

func Import(path string) ([]domain.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}
	file.applyDefaults()

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		account, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func toSchema(account domain.Account) accountSchema {
	return accountSchema{
		UserID:   int64(account.ID),
		Balance:  account.Balance,
		Articles: account.Articles,
		Title:    account.Title,
		Consumed: account.Consumed,
	}
}

func fromSchema(entry accountSchema) (domain.Account, error) {
	if entry.Balance < 0 || entry.Articles < 0 {
		return domain.Account{}, errors.New("negative balance or article count in snapshot")
	}

	account := domain.Account{
		ID:       domain.UserID(entry.UserID),
		Balance:  entry.Balance,
		Articles: entry.Articles,
		Title:    entry.Title,
		Consumed: entry.Consumed,
	}
	account.Normalize()

	return account, nil
}
