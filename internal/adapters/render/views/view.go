// Package views renders core results for the terminal. The outbound surface
// stays structured; formatting lives here so callers can swap it out.
package views

import (
	"fmt"

	"github.com/KPSTVLD/warrant-articles-bot/internal/application"
	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func Dispense(result application.DispenseResult) string {
	s := newStyles()

	return lipgloss.JoinVertical(lipgloss.Left,
		s.item.Render(result.Item),
		s.section.Render(s.reward.Render(fmt.Sprintf("+%d cabbage", result.Reward))),
		s.detail.Render(fmt.Sprintf("balance: %d", result.Balance)),
		s.detail.Render(fmt.Sprintf("articles: %d", result.Articles)),
	)
}

func Profile(account domain.Account) string {
	s := newStyles()

	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render(fmt.Sprintf("Profile %d", account.ID)),
		s.detail.Render(fmt.Sprintf("cabbage: %d", account.Balance)),
		s.detail.Render(fmt.Sprintf("articles: %d", account.Articles)),
		s.detail.Render(fmt.Sprintf("title: %s", account.Title)),
	)
}

func Shop(listings []domain.Listing) string {
	s := newStyles()

	lines := []string{s.title.Render("Title shop")}
	if len(listings) == 0 {
		lines = append(lines, s.empty.Render("No titles available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, listing := range listings {
		lines = append(lines, s.item.Render(fmt.Sprintf("%s — %d cabbage", listing.Name, listing.Price)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func Purchase(result application.PurchaseResult) string {
	s := newStyles()

	return lipgloss.JoinVertical(lipgloss.Left,
		s.reward.Render(fmt.Sprintf("Title %q purchased", result.Title)),
		s.detail.Render(fmt.Sprintf("balance: %d", result.Balance)),
	)
}

func Top(metric application.Metric, entries []application.LeaderboardEntry) string {
	s := newStyles()

	label := "cabbage"
	if metric == application.MetricArticles {
		label = "articles"
	}

	lines := []string{s.title.Render(fmt.Sprintf("Top %d by %s", len(entries), label))}
	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("Nobody is on the board yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, entry := range entries {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.rank.Render(fmt.Sprintf("%2d. ", i+1)),
			s.item.Render(fmt.Sprintf("%d", entry.UserID)),
			s.detail.Render(fmt.Sprintf(" — %d", entry.Value)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func Failure(message string) string {
	return newStyles().failure.Render(message)
}
