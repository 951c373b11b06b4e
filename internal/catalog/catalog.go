// Package catalog owns the tabular food records and their derived
// feature matrix. The catalog is loaded wholesale from a CSV source and
// rewritten wholesale on every mutation; the feature matrix is rebuilt
// aside and swapped in, so readers never observe a half-built matrix.
package catalog

import (
	"strings"
	"sync"

	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/food"
)

// Clean thresholds: a record matching ANY of these is considered an
// erroneous entry and removed. Absolute values, strictly greater-than.
const (
	MaxCalories = 5000
	MaxProtein  = 100
	MaxFat      = 100
	MaxCarbs    = 500
)

// Catalog is an ordered sequence of food records with an associated
// feature-matrix cache. All mutations are serialized behind one mutex.
type Catalog struct {
	path string

	mu      sync.RWMutex
	records []food.Record
	columns map[string]bool
	matrix  *food.FeatureMatrix // nil when similarity is unavailable
}

// Load reads the catalog from its CSV source and builds the feature
// matrix. Fails with NOT_FOUND if the source does not exist.
func Load(path string) (*Catalog, error) {
	records, columns, err := loadCSV(path)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		path:    path,
		records: records,
		columns: columns,
		matrix:  food.BuildFeatureMatrix(records, columns),
	}, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Records returns a copy of all records in row order.
func (c *Catalog) Records() []food.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]food.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Snapshot returns a consistent view of the records and the feature
// matrix as of one instant. The matrix is nil when unavailable. The
// returned slice is a copy; the matrix is immutable.
func (c *Catalog) Snapshot() ([]food.Record, *food.FeatureMatrix) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]food.Record, len(c.records))
	copy(out, c.records)
	return out, c.matrix
}

// Search finds records by name, case-insensitively. The first pass is
// exact full-name equality; only when that yields nothing does the second
// pass match on substring containment. Hits come back in original row
// order, capped at limit (limit <= 0 means uncapped). An empty or
// unmatched query returns an empty result, never an error.
func (c *Catalog) Search(query string, limit int) []food.Record {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var hits []food.Record
	for _, rec := range c.records {
		if strings.ToLower(rec.Name) == query {
			hits = append(hits, rec)
			if limit > 0 && len(hits) == limit {
				return hits
			}
		}
	}
	if len(hits) > 0 {
		return hits
	}

	for _, rec := range c.records {
		if strings.Contains(strings.ToLower(rec.Name), query) {
			hits = append(hits, rec)
			if limit > 0 && len(hits) == limit {
				return hits
			}
		}
	}
	return hits
}

// ResolveForLogging maps free-text user input to a canonical catalog
// record. It tries Search first, then falls back to a catalog-wide
// substring scan, and fails with NOT_FOUND when neither matches;
// callers must not log an unresolved name.
func (c *Catalog) ResolveForLogging(freeText string) (food.Record, error) {
	freeText = strings.TrimSpace(freeText)
	if freeText == "" {
		return food.Record{}, errors.NewNotFound("food", freeText)
	}

	if hits := c.Search(freeText, 1); len(hits) > 0 {
		return hits[0], nil
	}

	needle := strings.ToLower(freeText)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, rec := range c.records {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			return rec, nil
		}
	}
	return food.Record{}, errors.NewNotFound("food", freeText)
}

// NutritionFor returns the record whose name exactly matches, case-
// insensitively. Aggregation and recommendation fallbacks use this;
// callers decide whether absence is fatal or skippable.
func (c *Catalog) NutritionFor(name string) (food.Record, error) {
	needle := strings.ToLower(name)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, rec := range c.records {
		if strings.ToLower(rec.Name) == needle {
			return rec, nil
		}
	}
	return food.Record{}, errors.NewNotFound("food", name)
}

// AddFood appends a new record. Name is required; category defaults to
// "Other" and absent nutrients stay 0 (callers validate that calories
// were supplied at all). The new id is max existing id + 1, or 1 for an
// empty catalog. The catalog is persisted in full and the feature matrix
// rebuilt before returning.
func (c *Catalog) AddFood(rec food.Record) (food.Record, error) {
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return food.Record{}, errors.NewValidation("name", "required")
	}
	if rec.Category == "" {
		rec.Category = food.DefaultCategory
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	maxID := 0
	for _, r := range c.records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	rec.ID = maxID + 1

	updated := append(append([]food.Record{}, c.records...), rec)
	if err := saveCSV(c.path, updated); err != nil {
		return food.Record{}, err
	}

	c.records = updated
	c.columns = fullColumns()
	c.matrix = food.BuildFeatureMatrix(c.records, c.columns)
	return rec, nil
}

// Clean removes records with out-of-range nutrition values and reassigns
// ids 1..N in surviving row order. Returns the number removed.
func (c *Catalog) Clean() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	survivors := make([]food.Record, 0, len(c.records))
	for _, rec := range c.records {
		if rec.Calories > MaxCalories || rec.Protein > MaxProtein ||
			rec.Fat > MaxFat || rec.Carbs > MaxCarbs {
			continue
		}
		survivors = append(survivors, rec)
	}
	removed := len(c.records) - len(survivors)

	for i := range survivors {
		survivors[i].ID = i + 1
	}

	if err := saveCSV(c.path, survivors); err != nil {
		return 0, err
	}

	c.records = survivors
	c.columns = fullColumns()
	c.matrix = food.BuildFeatureMatrix(c.records, c.columns)
	return removed, nil
}
