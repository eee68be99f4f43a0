package domain

import "strings"

type UserID int64

// DefaultTitle is the sentinel shown for accounts that never bought a title.
const DefaultTitle = "none"

type Account struct {
	ID       UserID
	Balance  int64
	Articles int64
	Title    string
	Consumed []string
}

func NewAccount(id UserID) Account {
	return Account{ID: id, Title: DefaultTitle}
}

func (a *Account) Normalize() {
	if a == nil {
		return
	}

	if strings.TrimSpace(a.Title) == "" {
		a.Title = DefaultTitle
	}

	consumed := make([]string, 0, len(a.Consumed))
	seen := make(map[string]struct{}, len(a.Consumed))
	for _, item := range a.Consumed {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		consumed = append(consumed, trimmed)
	}

	if len(consumed) == 0 {
		a.Consumed = nil
		return
	}
	a.Consumed = consumed
}

func (a Account) ConsumedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.Consumed))
	for _, item := range a.Consumed {
		set[item] = struct{}{}
	}
	return set
}

func (a *Account) MarkConsumed(item string) {
	for _, existing := range a.Consumed {
		if existing == item {
			return
		}
	}
	a.Consumed = append(a.Consumed, item)
}

func (a *Account) ResetConsumed() {
	a.Consumed = nil
}

// JoinItems encodes a consumed set as the comma-separated ledger field.
func JoinItems(items []string) string {
	return strings.Join(items, ",")
}

// SplitItems decodes the comma-separated ledger field, dropping empty entries.
func SplitItems(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		items = append(items, trimmed)
	}

	if len(items) == 0 {
		return nil
	}
	return items
}
