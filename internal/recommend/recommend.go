// Package recommend ranks catalog foods by nutritional similarity, with
// category and random-sample fallbacks when similarity is unavailable.
// Recommend never fails: the worst case is an empty or random sequence.
package recommend

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/food"
)

// DefaultTopN is the number of recommendations returned when the caller
// does not say otherwise.
const DefaultTopN = 5

// Recommender ranks foods against a catalog. The random source behind
// the last-resort fallback is injected so tests can seed it.
type Recommender struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// New creates a Recommender over the given catalog.
func New(cat *catalog.Catalog, src rand.Source) *Recommender {
	return &Recommender{
		catalog: cat,
		rng:     rand.New(src),
	}
}

// Recommend returns up to topN records most nutritionally similar to
// foodName, most similar first. The query food itself is never among the
// results on the similarity path. When the food cannot be located or the
// feature matrix is unavailable, it falls back to same-category records,
// then to a uniform random sample.
func (r *Recommender) Recommend(foodName string, topN int) []food.Record {
	if topN <= 0 {
		topN = DefaultTopN
	}

	records, matrix := r.catalog.Snapshot()
	if len(records) == 0 {
		return nil
	}

	idx := findIndex(records, foodName)
	if idx < 0 || matrix == nil {
		return r.fallback(records, foodName, topN)
	}

	row, ok := matrix.Similarity(idx)
	if !ok {
		return r.fallback(records, foodName, topN)
	}

	// Rank every other record by similarity descending; ties broken by
	// original catalog row order. The query row is excluded outright
	// rather than relying on self-similarity sorting first, which ties
	// between identical records would break.
	order := make([]int, 0, len(records)-1)
	for i := range records {
		if i != idx {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})

	if len(order) > topN {
		order = order[:topN]
	}
	out := make([]food.Record, len(order))
	for i, j := range order {
		out[i] = records[j]
	}
	return out
}

// fallback is the degraded path: same-category records when the name can
// be located at all, otherwise a seeded uniform sample without
// replacement.
func (r *Recommender) fallback(records []food.Record, foodName string, topN int) []food.Record {
	needle := strings.ToLower(foodName)

	var source *food.Record
	for i, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			source = &records[i]
			break
		}
	}

	if source != nil {
		var sameCategory []food.Record
		for _, rec := range records {
			if rec.Category == source.Category && strings.ToLower(rec.Name) != needle {
				sameCategory = append(sameCategory, rec)
				if len(sameCategory) == topN {
					break
				}
			}
		}
		if len(sameCategory) > 0 {
			return sameCategory
		}
	}

	return r.sample(records, topN)
}

// sample draws up to topN records uniformly without replacement.
func (r *Recommender) sample(records []food.Record, topN int) []food.Record {
	n := min(topN, len(records))
	out := make([]food.Record, 0, n)
	for _, i := range r.rng.Perm(len(records))[:n] {
		out = append(out, records[i])
	}
	return out
}

// findIndex locates foodName's row: exact case-insensitive match first,
// then the first case-insensitive substring match, in row order.
// Returns -1 when nothing matches.
func findIndex(records []food.Record, foodName string) int {
	needle := strings.ToLower(strings.TrimSpace(foodName))
	if needle == "" {
		return -1
	}
	for i, rec := range records {
		if strings.ToLower(rec.Name) == needle {
			return i
		}
	}
	for i, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			return i
		}
	}
	return -1
}
