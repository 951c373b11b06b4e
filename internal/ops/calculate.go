package ops

import (
	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/nutrition"
)

// CalculateInput contains parameters for the Calculate operation.
type CalculateInput struct {
	Age           int
	Weight        float64 // kg
	Height        float64 // cm
	Gender        string
	ActivityLevel string
	Goal          string
}

// CalculateOutput contains the derived nutrition numbers for a set of
// metrics, without touching any stored profile.
type CalculateOutput struct {
	BMR            float64              `json:"bmr"`
	TDEE           float64              `json:"tdee"`
	TargetCalories float64              `json:"target_calories"`
	BMI            float64              `json:"bmi"`
	BMICategory    string               `json:"bmi_category"`
	Macros         nutrition.MacroSplit `json:"macros"`
	WaterLiters    float64              `json:"water_liters"`
}

// Calculate computes BMR, TDEE, goal-adjusted calories, BMI, a macro
// split, and a water intake suggestion from raw metrics.
func Calculate(input CalculateInput) (*CalculateOutput, error) {
	if input.Age <= 0 {
		return nil, errors.NewValidation("age", "age must be a positive number")
	}
	if input.Weight <= 0 {
		return nil, errors.NewValidation("weight", "weight must be a positive number")
	}
	if input.Height <= 0 {
		return nil, errors.NewValidation("height", "height must be a positive number")
	}

	bmr := nutrition.BMR(input.Weight, input.Height, input.Age, input.Gender)
	tdee := nutrition.TDEE(bmr, input.ActivityLevel)
	target := nutrition.DailyCalories(bmr, input.ActivityLevel, input.Goal)
	bmi := nutrition.BMI(input.Weight, input.Height)

	return &CalculateOutput{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: target,
		BMI:            bmi,
		BMICategory:    nutrition.BMICategory(bmi),
		Macros:         nutrition.Macros(target),
		WaterLiters:    nutrition.WaterIntake(input.Weight, input.ActivityLevel),
	}, nil
}
