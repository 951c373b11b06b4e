package ops

import (
	"strings"

	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/food"
	"github.com/mkyawt/nutrilog/internal/recommend"
)

// RecommendInput contains parameters for the Recommend operation.
type RecommendInput struct {
	FoodName string // required
	TopN     int    // default: recommend.DefaultTopN, max: 50
}

// RecommendOutput contains the ranked recommendations, most similar first.
type RecommendOutput struct {
	FoodName string        `json:"food_name"`
	Items    []food.Record `json:"items"`
	Count    int           `json:"count"`
}

// Recommend ranks the catalog by nutritional similarity to the named
// food. Degraded outcomes (category or random fallback) are not errors;
// only a blank food name is rejected.
func Recommend(rec *recommend.Recommender, input RecommendInput) (*RecommendOutput, error) {
	name := strings.TrimSpace(input.FoodName)
	if name == "" {
		return nil, errors.NewInvalidRequest("food name is required")
	}

	topN := input.TopN
	if topN > MaxTopN {
		topN = MaxTopN
	}

	items := rec.Recommend(name, topN)
	if items == nil {
		items = []food.Record{}
	}
	return &RecommendOutput{
		FoodName: name,
		Items:    items,
		Count:    len(items),
	}, nil
}
