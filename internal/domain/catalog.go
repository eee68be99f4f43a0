package domain

import "strings"

// Listing is one purchasable title with its fixed price.
type Listing struct {
	Name  string
	Price int64
}

// Catalog is the read-only title listing. Order follows the source file so
// rendered listings stay stable.
type Catalog struct {
	listings []Listing
	prices   map[string]int64
}

func NewCatalog(listings []Listing) Catalog {
	kept := make([]Listing, 0, len(listings))
	prices := make(map[string]int64, len(listings))
	for _, listing := range listings {
		name := strings.TrimSpace(listing.Name)
		if name == "" || listing.Price < 0 {
			continue
		}
		if _, ok := prices[name]; ok {
			continue
		}
		prices[name] = listing.Price
		kept = append(kept, Listing{Name: name, Price: listing.Price})
	}

	return Catalog{listings: kept, prices: prices}
}

func (c Catalog) Price(name string) (int64, bool) {
	price, ok := c.prices[name]
	return price, ok
}

func (c Catalog) Listings() []Listing {
	listings := make([]Listing, len(c.listings))
	copy(listings, c.listings)
	return listings
}

func (c Catalog) Empty() bool {
	return len(c.listings) == 0
}
