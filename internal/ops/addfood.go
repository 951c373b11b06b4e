package ops

import (
	"fmt"
	"strings"

	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/food"
)

// AddFoodInput contains parameters for the AddFood operation. Calories is
// a pointer so a missing value can be told apart from an explicit zero.
type AddFoodInput struct {
	Name     string
	Category string
	Calories *float64
	Protein  float64
	Fat      float64
	Carbs    float64
	Fiber    float64
	Sugar    float64
}

// AddFoodOutput contains the result of the AddFood operation.
type AddFoodOutput struct {
	Food    food.Record `json:"food"`
	Message string      `json:"message"`
}

// AddFood appends a new record to the catalog and persists it.
func AddFood(cat *catalog.Catalog, input AddFoodInput) (*AddFoodOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.NewValidation("name", "name is required")
	}
	if input.Calories == nil {
		return nil, errors.NewValidation("calories", "calories is required")
	}

	rec, err := cat.AddFood(food.Record{
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
		Nutrients: food.Nutrients{
			Calories: *input.Calories,
			Protein:  input.Protein,
			Fat:      input.Fat,
			Carbs:    input.Carbs,
			Fiber:    input.Fiber,
			Sugar:    input.Sugar,
		},
	})
	if err != nil {
		return nil, err
	}
	return &AddFoodOutput{
		Food:    rec,
		Message: fmt.Sprintf("Added %s to the catalog", rec.Name),
	}, nil
}
