package ops

import (
	"testing"

	"github.com/mkyawt/nutrilog/internal/errors"
)

func TestAddFoodAssignsNextID(t *testing.T) {
	cat := newTestCatalog(t)

	out, err := AddFood(cat, AddFoodInput{
		Name:     "Greek Yogurt",
		Category: "Dairy",
		Calories: floatPtr(59),
		Protein:  10,
		Carbs:    3.6,
	})
	if err != nil {
		t.Fatalf("AddFood failed: %v", err)
	}
	if out.Food.ID != 7 {
		t.Errorf("ID = %d, want 7", out.Food.ID)
	}
	if out.Food.Name != "Greek Yogurt" {
		t.Errorf("Name = %q", out.Food.Name)
	}

	// The record is immediately searchable.
	if found := Search(cat, SearchInput{Query: "greek yogurt"}); found.Count != 1 {
		t.Errorf("search after add: Count = %d, want 1", found.Count)
	}
}

func TestAddFoodDefaultsCategory(t *testing.T) {
	cat := newTestCatalog(t)

	out, err := AddFood(cat, AddFoodInput{Name: "Mystery Bar", Calories: floatPtr(200)})
	if err != nil {
		t.Fatalf("AddFood failed: %v", err)
	}
	if out.Food.Category != "Other" {
		t.Errorf("Category = %q, want Other", out.Food.Category)
	}
}

func TestAddFoodRequiresNameAndCalories(t *testing.T) {
	cat := newTestCatalog(t)

	if _, err := AddFood(cat, AddFoodInput{Calories: floatPtr(1)}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("missing name: err = %v, want VALIDATION", err)
	}
	if _, err := AddFood(cat, AddFoodInput{Name: "Thing"}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("missing calories: err = %v, want VALIDATION", err)
	}
}

func TestAddFoodZeroCaloriesAllowed(t *testing.T) {
	cat := newTestCatalog(t)

	out, err := AddFood(cat, AddFoodInput{Name: "Water", Calories: floatPtr(0)})
	if err != nil {
		t.Fatalf("AddFood failed: %v", err)
	}
	if out.Food.Calories != 0 {
		t.Errorf("Calories = %g, want 0", out.Food.Calories)
	}
}
