package catalog

import (
	"os"

	"github.com/mkyawt/nutrilog/internal/food"
)

// starterFoods is the catalog written on first run when no CSV exists.
var starterFoods = []food.Record{
	{ID: 1, Name: "Apple", Category: "Fruit", Nutrients: food.Nutrients{Calories: 52, Protein: 0.3, Fat: 0.2, Carbs: 14, Fiber: 2.4, Sugar: 10}},
	{ID: 2, Name: "Banana", Category: "Fruit", Nutrients: food.Nutrients{Calories: 89, Protein: 1.1, Fat: 0.3, Carbs: 23, Fiber: 2.6, Sugar: 12}},
	{ID: 3, Name: "Chicken Breast", Category: "Meat", Nutrients: food.Nutrients{Calories: 165, Protein: 31, Fat: 3.6}},
	{ID: 4, Name: "White Rice", Category: "Grains", Nutrients: food.Nutrients{Calories: 130, Protein: 2.7, Fat: 0.3, Carbs: 28, Fiber: 0.4, Sugar: 0.1}},
	{ID: 5, Name: "Eggs", Category: "Dairy & Eggs", Nutrients: food.Nutrients{Calories: 155, Protein: 13, Fat: 11, Carbs: 1.1, Sugar: 1.1}},
	{ID: 6, Name: "Broccoli", Category: "Vegetables", Nutrients: food.Nutrients{Calories: 34, Protein: 2.8, Fat: 0.4, Carbs: 7, Fiber: 2.6, Sugar: 1.7}},
	{ID: 7, Name: "Salmon", Category: "Fish", Nutrients: food.Nutrients{Calories: 208, Protein: 20, Fat: 13}},
	{ID: 8, Name: "Bread", Category: "Grains", Nutrients: food.Nutrients{Calories: 265, Protein: 9, Fat: 3.2, Carbs: 49, Fiber: 2.7, Sugar: 5}},
	{ID: 9, Name: "Milk", Category: "Dairy & Eggs", Nutrients: food.Nutrients{Calories: 42, Protein: 3.4, Fat: 1, Carbs: 5, Sugar: 5}},
	{ID: 10, Name: "Almonds", Category: "Nuts", Nutrients: food.Nutrients{Calories: 579, Protein: 21, Fat: 50, Carbs: 22, Fiber: 12, Sugar: 4}},
}

// EnsureDefault writes the starter catalog to path if no file exists there.
// An existing file, whatever its contents, is left alone.
func EnsureDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return saveCSV(path, starterFoods)
}
