package ops

import (
	"testing"

	"github.com/mkyawt/nutrilog/internal/errors"
)

func TestRecommendExcludesQuery(t *testing.T) {
	cat := newTestCatalog(t)
	rec := newTestRecommender(t, cat)

	out, err := Recommend(rec, RecommendInput{FoodName: "Chicken Breast", TopN: 5})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if out.Count == 0 {
		t.Fatal("expected recommendations")
	}
	for _, item := range out.Items {
		if item.Name == "Chicken Breast" {
			t.Errorf("query food appeared in its own recommendations")
		}
	}
}

func TestRecommendBlankNameRejected(t *testing.T) {
	cat := newTestCatalog(t)
	rec := newTestRecommender(t, cat)

	_, err := Recommend(rec, RecommendInput{FoodName: "  "})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestRecommendUnknownFoodDegrades(t *testing.T) {
	cat := newTestCatalog(t)
	rec := newTestRecommender(t, cat)

	// Unknown foods fall back to a random sample, never an error.
	out, err := Recommend(rec, RecommendInput{FoodName: "plutonium"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if out.Count == 0 {
		t.Error("fallback should still return items")
	}
}

func TestRecommendTopNCapped(t *testing.T) {
	cat := newTestCatalog(t)
	rec := newTestRecommender(t, cat)

	out, err := Recommend(rec, RecommendInput{FoodName: "Apple", TopN: MaxTopN + 1})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if out.Count > MaxTopN {
		t.Errorf("Count = %d, want <= %d", out.Count, MaxTopN)
	}
}
