package recommend

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkyawt/nutrilog/internal/catalog"
)

const sampleCSV = `id,name,category,calories,protein,fat,carbs,fiber,sugar
1,Apple,Fruits,52,0.3,0.2,14,2.4,10
2,Banana,Fruits,89,1.1,0.3,23,2.6,12
3,Pear,Fruits,57,0.4,0.1,15,3.1,10
4,Chicken Breast,Proteins,165,31,3.6,0,0,0
5,Salmon,Proteins,208,20,13,0,0,0
6,Turkey Breast,Proteins,135,30,1,0,0,0
7,White Rice,Grains,130,2.7,0.3,28,0.4,0.1
8,Oats,Grains,389,16.9,6.9,66,10.6,0
`

// noSimilarityCSV lacks the fiber column, so the feature matrix is
// unavailable and all recommendations take the fallback paths.
const noSimilarityCSV = `id,name,category,calories,protein
1,Apple,Fruits,52,0.3
2,Banana,Fruits,89,1.1
3,Pear,Fruits,57,0.4
4,Salmon,Proteins,208,20
`

func loadCatalog(t *testing.T, content string) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "food_catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cat
}

func newTestRecommender(t *testing.T, content string) *Recommender {
	t.Helper()
	return New(loadCatalog(t, content), rand.NewSource(1))
}

func TestRecommendExcludesQueryFood(t *testing.T) {
	r := newTestRecommender(t, sampleCSV)
	recs := r.Recommend("Apple", 5)
	if len(recs) != 5 {
		t.Fatalf("len = %d, want 5", len(recs))
	}
	for _, rec := range recs {
		if rec.Name == "Apple" {
			t.Error("query food must not appear in similarity results")
		}
	}
}

func TestRecommendSimilarityOrdering(t *testing.T) {
	r := newTestRecommender(t, sampleCSV)
	recs := r.Recommend("Chicken Breast", 3)
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	// Turkey breast is nutritionally the nearest neighbor of chicken
	// breast in this catalog; fruits should not lead the ranking.
	if recs[0].Name != "Turkey Breast" {
		t.Errorf("top recommendation = %q, want Turkey Breast (got %v)", recs[0].Name, recs)
	}
}

func TestRecommendSubstringLocatesQuery(t *testing.T) {
	r := newTestRecommender(t, sampleCSV)
	recs := r.Recommend("chicken", 3)
	if len(recs) == 0 {
		t.Fatal("substring query should take the similarity path")
	}
	for _, rec := range recs {
		if strings.EqualFold(rec.Name, "Chicken Breast") {
			t.Error("matched row must be excluded from its own results")
		}
	}
}

func TestRecommendTopNCapsOutput(t *testing.T) {
	r := newTestRecommender(t, sampleCSV)
	if got := len(r.Recommend("Apple", 2)); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
	// topN larger than catalog: everything except the query comes back.
	if got := len(r.Recommend("Apple", 50)); got != 7 {
		t.Errorf("len = %d, want 7", got)
	}
}

func TestCategoryFallbackWhenSimilarityUnavailable(t *testing.T) {
	r := newTestRecommender(t, noSimilarityCSV)
	recs := r.Recommend("apple", 5)
	if len(recs) != 2 {
		t.Fatalf("fallback results = %v, want the 2 other fruits", recs)
	}
	for _, rec := range recs {
		if rec.Category != "Fruits" {
			t.Errorf("fallback should stay in category, got %+v", rec)
		}
		if strings.EqualFold(rec.Name, "apple") {
			t.Error("source name must be excluded from category fallback")
		}
	}
}

func TestRandomFallbackForUnknownFood(t *testing.T) {
	r := newTestRecommender(t, noSimilarityCSV)
	recs := r.Recommend("dragonfruit", 3)
	if len(recs) != 3 {
		t.Fatalf("random fallback len = %d, want 3", len(recs))
	}
	seen := make(map[int]bool)
	for _, rec := range recs {
		if seen[rec.ID] {
			t.Errorf("sample with replacement: id %d repeated", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestRandomFallbackIsDeterministicPerSeed(t *testing.T) {
	cat := loadCatalog(t, noSimilarityCSV)
	a := New(cat, rand.NewSource(42)).Recommend("dragonfruit", 4)
	b := New(cat, rand.NewSource(42)).Recommend("dragonfruit", 4)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed produced different samples: %v vs %v", a, b)
		}
	}
}

func TestRandomFallbackSmallCatalog(t *testing.T) {
	r := newTestRecommender(t, noSimilarityCSV)
	recs := r.Recommend("dragonfruit", 50)
	if len(recs) != 4 {
		t.Errorf("len = %d, want whole catalog (4)", len(recs))
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	r := newTestRecommender(t, "id,name,category,calories,protein,fat,carbs,fiber,sugar\n")
	if recs := r.Recommend("anything", 5); len(recs) != 0 {
		t.Errorf("empty catalog should recommend nothing, got %v", recs)
	}
}

func TestRecommendDefaultTopN(t *testing.T) {
	r := newTestRecommender(t, sampleCSV)
	if got := len(r.Recommend("Apple", 0)); got != DefaultTopN {
		t.Errorf("len = %d, want DefaultTopN %d", got, DefaultTopN)
	}
}
