package food

// DefaultCategory is assigned when a record has no category.
const DefaultCategory = "Other"

// Nutrients holds the six tracked nutrient values for one food, on a
// 100g basis. A log entry's quantity is a serving multiplier against
// these values, not a gram amount.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

// Record is one row of the food catalog.
type Record struct {
	// ID is a stable integer id, unique within the catalog, assigned on
	// insert and never reused within a session. The clean operation is the
	// only thing that reassigns ids.
	ID int `json:"id"`

	// Name is free text and not guaranteed unique.
	Name string `json:"name"`

	// Category is free text, "Other" when absent.
	Category string `json:"category"`

	Nutrients
}

// Scale returns the nutrients multiplied by a serving quantity.
func (n Nutrients) Scale(quantity float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * quantity,
		Protein:  n.Protein * quantity,
		Fat:      n.Fat * quantity,
		Carbs:    n.Carbs * quantity,
		Fiber:    n.Fiber * quantity,
		Sugar:    n.Sugar * quantity,
	}
}

// Add returns the element-wise sum of two nutrient sets.
func (n Nutrients) Add(other Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + other.Calories,
		Protein:  n.Protein + other.Protein,
		Fat:      n.Fat + other.Fat,
		Carbs:    n.Carbs + other.Carbs,
		Fiber:    n.Fiber + other.Fiber,
		Sugar:    n.Sugar + other.Sugar,
	}
}
