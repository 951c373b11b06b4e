// Package nutrition computes daily nutrition totals and body-metric
// derived values (BMR, TDEE, BMI, macro splits).
package nutrition

import (
	"math"

	"github.com/mkyawt/nutrilog/internal/food"
)

// Entry is one (food name, quantity) pair to aggregate. Quantity is a
// serving multiplier against the record's 100g nutrition basis.
type Entry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Resolver looks up a food record by exact, case-insensitive name.
type Resolver interface {
	NutritionFor(name string) (food.Record, error)
}

// Sum aggregates scaled nutrition across entries. Entries that do not
// resolve to a catalog record are skipped silently and contribute
// nothing; the rest of the batch is still computed. Every total is
// rounded to 1 decimal place.
func Sum(resolver Resolver, entries []Entry) food.Nutrients {
	var totals food.Nutrients
	for _, e := range entries {
		rec, err := resolver.NutritionFor(e.Name)
		if err != nil {
			continue
		}
		totals = totals.Add(rec.Nutrients.Scale(e.Quantity))
	}
	return roundTotals(totals)
}

func roundTotals(n food.Nutrients) food.Nutrients {
	return food.Nutrients{
		Calories: round1(n.Calories),
		Protein:  round1(n.Protein),
		Fat:      round1(n.Fat),
		Carbs:    round1(n.Carbs),
		Fiber:    round1(n.Fiber),
		Sugar:    round1(n.Sugar),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
