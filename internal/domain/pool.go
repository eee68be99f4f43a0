package domain

import (
	"bufio"
	"io"
	"math/rand/v2"
	"strings"
)

// Pool is an immutable named collection of content items. Items are unique
// within the pool by their own text.
type Pool struct {
	name  string
	items []string
}

func NewPool(name string, items []string) Pool {
	deduped := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		deduped = append(deduped, trimmed)
	}

	return Pool{name: name, items: deduped}
}

// ReadPool parses a newline-delimited source into a pool, one item per
// non-empty line.
func ReadPool(name string, r io.Reader) (Pool, error) {
	var items []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		items = append(items, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Pool{}, err
	}

	return NewPool(name, items), nil
}

func (p Pool) Name() string {
	return p.name
}

func (p Pool) Len() int {
	return len(p.items)
}

func (p Pool) Empty() bool {
	return len(p.items) == 0
}

func (p Pool) Items() []string {
	items := make([]string, len(p.items))
	copy(items, p.items)
	return items
}

// Draw selects uniformly at random from the pool minus the excluded set.
// It reports false when no eligible item remains; the caller decides whether
// to reset its exclusion state and retry.
func (p Pool) Draw(excluded map[string]struct{}) (string, bool) {
	if len(p.items) == 0 {
		return "", false
	}

	eligible := p.items
	if len(excluded) > 0 {
		eligible = make([]string, 0, len(p.items))
		for _, item := range p.items {
			if _, ok := excluded[item]; ok {
				continue
			}
			eligible = append(eligible, item)
		}
	}

	if len(eligible) == 0 {
		return "", false
	}

	return eligible[rand.IntN(len(eligible))], true
}
