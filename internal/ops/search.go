package ops

import (
	"strings"

	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/food"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // free text; blank yields an empty result, not an error
	Limit int    // default: 10, max: 100
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Query string        `json:"query"`
	Items []food.Record `json:"items"`
	Count int           `json:"count"`
}

// Search finds catalog records by name: exact matches first, substring
// containment only when nothing matches exactly. Results come back in
// catalog row order.
func Search(cat *catalog.Catalog, input SearchInput) *SearchOutput {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	items := cat.Search(strings.TrimSpace(input.Query), limit)
	if items == nil {
		items = []food.Record{}
	}
	return &SearchOutput{
		Query: input.Query,
		Items: items,
		Count: len(items),
	}
}

// AllFoodsOutput contains the whole catalog in row order.
type AllFoodsOutput struct {
	Items []food.Record `json:"items"`
	Count int           `json:"count"`
}

// AllFoods lists every record in the catalog.
func AllFoods(cat *catalog.Catalog) *AllFoodsOutput {
	items := cat.Records()
	return &AllFoodsOutput{Items: items, Count: len(items)}
}
