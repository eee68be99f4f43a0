package application

import "github.com/KPSTVLD/warrant-articles-bot/internal/domain"

type DispenseResult struct {
	Pool     string
	Item     string
	Reward   int64
	Balance  int64
	Articles int64
}

type PurchaseResult struct {
	Title   string
	Price   int64
	Balance int64
}

type LeaderboardEntry struct {
	UserID domain.UserID
	Value  int64
}

type Metric string

const (
	MetricBalance  Metric = "balance"
	MetricArticles Metric = "articles"
)

func (m Metric) Valid() bool {
	switch m {
	case MetricBalance, MetricArticles:
		return true
	default:
		return false
	}
}
