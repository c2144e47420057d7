package catalog

import (
	"sort"
	"strings"

	"github.com/shopverse/storefront/internal/domain"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// SortKey selects the ordering of a filtered listing.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
)

// ParseSortKey maps a raw sort parameter to a SortKey. Empty means default;
// anything unrecognized is rejected.
func ParseSortKey(raw string) (SortKey, bool) {
	switch SortKey(raw) {
	case "", SortDefault:
		return SortDefault, true
	case SortPriceLow, SortPriceHigh, SortRating, SortName:
		return SortKey(raw), true
	default:
		return SortDefault, false
	}
}

// Criteria is the combination of search term, category, and sort key that
// derives a filtered view of the catalog. It is built per request and never
// persisted.
type Criteria struct {
	Search   string
	Category string
	Sort     SortKey
}

// Result is an ordered filtered listing plus its match count, which drives
// the "N results for ..." message.
type Result struct {
	Products []domain.Product
	Total    int
}

// Filter applies the criteria to the given products, in order: free-text
// search, category filter, then sort. Products are matched by
// case-insensitive substring against name, category, or description; an
// absent description is a non-match, not an error. The category filter is an
// exact, case-sensitive match, disabled by CategoryAll or empty. All sorts
// are stable, so ties keep catalog order.
func Filter(products []domain.Product, c Criteria) Result {
	filtered := make([]domain.Product, 0, len(products))

	term := strings.ToLower(strings.TrimSpace(c.Search))
	for _, p := range products {
		if term != "" && !matches(p, term) {
			continue
		}
		if c.Category != "" && c.Category != CategoryAll && p.Category != c.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, c.Sort)

	return Result{Products: filtered, Total: len(filtered)}
}

func matches(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), term) {
		return true
	}
	return p.Description != "" && strings.Contains(strings.ToLower(p.Description), term)
}

// sortProducts orders the slice per the sort key. Name ordering is
// case-folded lexicographic rather than locale collation, so it is
// deterministic across deployments.
func sortProducts(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	default:
		// SortDefault keeps catalog order.
	}
}
