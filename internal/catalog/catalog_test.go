package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/food"
)

const sampleCSV = `id,name,category,calories,protein,fat,carbs,fiber,sugar
1,Apple,Fruits,52,0.3,0.2,14,2.4,10
2,Banana,Fruits,89,1.1,0.3,23,2.6,12
3,Chicken Breast,Proteins,165,31,3.6,0,0,0
4,Chicken Thigh,Proteins,209,26,10.9,0,0,0
5,White Rice,Grains,130,2.7,0.3,28,0.4,0.1
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "food_catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func loadSample(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Load(writeCatalog(t, sampleCSV))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cat
}

func TestLoadMissingSource(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Load on missing file = %v, want NOT_FOUND", err)
	}
}

func TestLoadPreservesRowOrderAndIDs(t *testing.T) {
	cat := loadSample(t)
	records := cat.Records()
	if len(records) != 5 {
		t.Fatalf("len = %d, want 5", len(records))
	}
	if records[0].Name != "Apple" || records[4].Name != "White Rice" {
		t.Errorf("row order not preserved: %v", records)
	}
	if records[2].ID != 3 {
		t.Errorf("id = %d, want 3", records[2].ID)
	}
}

func TestLoadBuildsMatrix(t *testing.T) {
	cat := loadSample(t)
	_, matrix := cat.Snapshot()
	if matrix == nil {
		t.Fatal("matrix should be available for full schema")
	}
	if matrix.Size() != cat.Len() {
		t.Errorf("matrix size = %d, want %d", matrix.Size(), cat.Len())
	}
}

func TestLoadMissingFeatureColumn(t *testing.T) {
	csv := "id,name,category,calories,protein\n1,Apple,Fruits,52,0.3\n"
	cat, err := Load(writeCatalog(t, csv))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, matrix := cat.Snapshot(); matrix != nil {
		t.Error("matrix should be unavailable without all feature columns")
	}
	// Missing nutrient cells default to 0, category still read.
	rec := cat.Records()[0]
	if rec.Fat != 0 || rec.Carbs != 0 {
		t.Errorf("missing nutrients should be 0, got %+v", rec)
	}
}

func TestSearchExactBeatsSubstring(t *testing.T) {
	cat := loadSample(t)

	// "chicken breast" exactly matches row 3; the substring pass must not run.
	hits := cat.Search("chicken breast", 10)
	if len(hits) != 1 || hits[0].Name != "Chicken Breast" {
		t.Fatalf("Search exact = %v", hits)
	}

	// "chicken" matches nothing exactly, so both chicken rows come back
	// in row order.
	hits = cat.Search("chicken", 10)
	if len(hits) != 2 || hits[0].Name != "Chicken Breast" || hits[1].Name != "Chicken Thigh" {
		t.Fatalf("Search substring = %v", hits)
	}
}

func TestSearchLimitAndEmptyQuery(t *testing.T) {
	cat := loadSample(t)
	if hits := cat.Search("chicken", 1); len(hits) != 1 {
		t.Errorf("limit not applied: %v", hits)
	}
	if hits := cat.Search("", 10); len(hits) != 0 {
		t.Errorf("Search(\"\") = %v, want empty", hits)
	}
	if hits := cat.Search("zzz", 10); len(hits) != 0 {
		t.Errorf("unmatched query = %v, want empty", hits)
	}
}

func TestResolveForLogging(t *testing.T) {
	cat := loadSample(t)

	rec, err := cat.ResolveForLogging("BANANA")
	if err != nil {
		t.Fatalf("resolve exact: %v", err)
	}
	if rec.Name != "Banana" {
		t.Errorf("canonical name = %q, want Banana", rec.Name)
	}

	rec, err = cat.ResolveForLogging("rice")
	if err != nil {
		t.Fatalf("resolve substring: %v", err)
	}
	if rec.Name != "White Rice" {
		t.Errorf("canonical name = %q, want White Rice", rec.Name)
	}

	if _, err := cat.ResolveForLogging("dragonfruit"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unresolved name = %v, want NOT_FOUND", err)
	}
	if _, err := cat.ResolveForLogging("  "); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("blank name = %v, want NOT_FOUND", err)
	}
}

func TestNutritionFor(t *testing.T) {
	cat := loadSample(t)
	rec, err := cat.NutritionFor("apple")
	if err != nil {
		t.Fatalf("NutritionFor failed: %v", err)
	}
	if rec.Calories != 52 {
		t.Errorf("calories = %f, want 52", rec.Calories)
	}

	// Exact match only; substrings do not resolve here.
	if _, err := cat.NutritionFor("chick"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("substring should not resolve, got %v", err)
	}
}

func TestAddFood(t *testing.T) {
	cat := loadSample(t)
	before := cat.Len()

	rec, err := cat.AddFood(food.Record{
		Name:      "Dragonfruit",
		Nutrients: food.Nutrients{Calories: 60, Carbs: 13, Fiber: 3},
	})
	if err != nil {
		t.Fatalf("AddFood failed: %v", err)
	}
	if rec.ID != 6 {
		t.Errorf("new id = %d, want max+1 = 6", rec.ID)
	}
	if rec.Category != food.DefaultCategory {
		t.Errorf("category = %q, want %q", rec.Category, food.DefaultCategory)
	}
	if cat.Len() != before+1 {
		t.Errorf("len = %d, want %d", cat.Len(), before+1)
	}

	hits := cat.Search("Dragonfruit", 10)
	if len(hits) != 1 || hits[0].ID != 6 {
		t.Errorf("new record not searchable: %v", hits)
	}

	// Persisted: a fresh load sees the new record.
	reloaded, err := Load(cat.path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != before+1 {
		t.Errorf("reloaded len = %d, want %d", reloaded.Len(), before+1)
	}
}

func TestAddFoodRequiresName(t *testing.T) {
	cat := loadSample(t)
	_, err := cat.AddFood(food.Record{Nutrients: food.Nutrients{Calories: 100}})
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("AddFood without name = %v, want VALIDATION", err)
	}
}

func TestAddFoodToEmptyCatalog(t *testing.T) {
	cat, err := Load(writeCatalog(t, strings.Join(canonicalColumns, ",")+"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	rec, err := cat.AddFood(food.Record{Name: "Oats", Nutrients: food.Nutrients{Calories: 389}})
	if err != nil {
		t.Fatalf("AddFood failed: %v", err)
	}
	if rec.ID != 1 {
		t.Errorf("first id = %d, want 1", rec.ID)
	}
}

func TestCleanThresholdsAreStrict(t *testing.T) {
	csv := `id,name,category,calories,protein,fat,carbs,fiber,sugar
1,Boundary,Other,5000,100,100,500,0,0
2,Calorie Bomb,Other,6000,10,10,10,0,0
3,Protein Bomb,Other,400,150,10,10,0,0
4,Normal,Other,4000,20,20,50,1,1
`
	cat, err := Load(writeCatalog(t, csv))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	removed, err := cat.Clean()
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	records := cat.Records()
	if len(records) != 2 {
		t.Fatalf("survivors = %v", records)
	}
	// Exactly-at-threshold row survives; ids renumbered 1..N in row order.
	if records[0].Name != "Boundary" || records[0].ID != 1 {
		t.Errorf("survivor 0 = %+v", records[0])
	}
	if records[1].Name != "Normal" || records[1].ID != 2 {
		t.Errorf("survivor 1 = %+v", records[1])
	}

	// Matrix rebuilt to the new size.
	_, matrix := cat.Snapshot()
	if matrix == nil || matrix.Size() != 2 {
		t.Errorf("matrix not rebuilt after clean")
	}
}

func TestSaveNormalizesSchema(t *testing.T) {
	// A source missing feature columns becomes full-schema after any
	// mutation, so similarity becomes available.
	csv := "id,name,category,calories,protein\n1,Apple,Fruits,52,0.3\n"
	cat, err := Load(writeCatalog(t, csv))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, matrix := cat.Snapshot(); matrix != nil {
		t.Fatal("precondition: matrix unavailable")
	}

	if _, err := cat.AddFood(food.Record{Name: "Banana", Nutrients: food.Nutrients{Calories: 89}}); err != nil {
		t.Fatalf("AddFood failed: %v", err)
	}
	if _, matrix := cat.Snapshot(); matrix == nil {
		t.Error("matrix should be available after save normalizes the schema")
	}
}
