// Package source loads the read-only content pools and the title catalog
// from plain-text files. A missing file degrades to an empty collection so
// the rest of the system stays usable.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
)

func LoadPool(name, path string, log *slog.Logger) (domain.Pool, error) {
	if log == nil {
		log = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("content source missing, pool loads empty", "pool", name, "path", path)
			return domain.NewPool(name, nil), nil
		}
		return domain.Pool{}, fmt.Errorf("open content source: %w", err)
	}
	defer func() { _ = file.Close() }()

	pool, err := domain.ReadPool(name, file)
	if err != nil {
		return domain.Pool{}, fmt.Errorf("read content source: %w", err)
	}

	return pool, nil
}

func LoadPools(paths map[string]string, log *slog.Logger) (map[string]domain.Pool, error) {
	pools := make(map[string]domain.Pool, len(paths))
	for name, path := range paths {
		pool, err := LoadPool(name, path, log)
		if err != nil {
			return nil, fmt.Errorf("load pool %q: %w", name, err)
		}
		pools[name] = pool
	}

	return pools, nil
}

// LoadCatalog parses pipe-delimited "name|price" lines. Malformed lines are
// skipped with a warning.
func LoadCatalog(path string, log *slog.Logger) (domain.Catalog, error) {
	if log == nil {
		log = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("title listing missing, catalog loads empty", "path", path)
			return domain.NewCatalog(nil), nil
		}
		return domain.Catalog{}, fmt.Errorf("open title listing: %w", err)
	}
	defer func() { _ = file.Close() }()

	var listings []domain.Listing

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		listing, err := parseListing(line)
		if err != nil {
			log.Warn("skipping malformed title listing", "path", path, "line", lineNo, "err", err)
			continue
		}
		listings = append(listings, listing)
	}
	if err := scanner.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("read title listing: %w", err)
	}

	return domain.NewCatalog(listings), nil
}

func parseListing(line string) (domain.Listing, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 2 {
		return domain.Listing{}, fmt.Errorf("want 2 fields, got %d", len(parts))
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return domain.Listing{}, errors.New("empty title name")
	}

	price, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("parse price: %w", err)
	}
	if price < 0 {
		return domain.Listing{}, fmt.Errorf("negative price %d", price)
	}

	return domain.Listing{Name: name, Price: price}, nil
}
