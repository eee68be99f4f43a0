package application

import (
	"context"
	"fmt"

	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/KPSTVLD/warrant-articles-bot/internal/ports"
)

type ShopService struct {
	ledger  ports.LedgerRepository
	catalog domain.Catalog
}

func NewShopService(ledger ports.LedgerRepository, catalog domain.Catalog) *ShopService {
	return &ShopService{ledger: ledger, catalog: catalog}
}

func (s *ShopService) Listings() []domain.Listing {
	return s.catalog.Listings()
}

// Purchase debits the title price and equips the title as one atomic
// check-then-mutate against the ledger.
func (s *ShopService) Purchase(ctx context.Context, id domain.UserID, title string) (PurchaseResult, error) {
	price, ok := s.catalog.Price(title)
	if !ok {
		return PurchaseResult{}, fmt.Errorf("resolve title %q: %w", title, domain.ErrTitleNotFound)
	}

	var result PurchaseResult
	_, err := s.ledger.Update(ctx, id, func(account *domain.Account) error {
		if account.Balance < price {
			return domain.ErrInsufficientFunds
		}

		account.Balance -= price
		account.Title = title

		result = PurchaseResult{
			Title:   title,
			Price:   price,
			Balance: account.Balance,
		}
		return nil
	})
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("update account: %w", err)
	}

	return result, nil
}
