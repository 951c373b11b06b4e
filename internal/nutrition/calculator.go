package nutrition

import "fmt"

// Activity levels and goals accepted by the calculators. Unknown values
// fall back to sedentary / maintain respectively.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

var goalAdjustments = map[string]float64{
	"lose":     -500,
	"maintain": 0,
	"gain":     500,
}

// Calorie status bands relative to the daily target.
const (
	StatusHighSurplus = "high_surplus"
	StatusSurplus     = "surplus"
	StatusMaintenance = "maintenance"
	StatusDeficit     = "deficit"
	StatusHighDeficit = "high_deficit"
)

// BMR computes the Harris-Benedict basal metabolic rate. Gender "male"
// selects the male coefficients; anything else uses the other set.
func BMR(weightKg, heightCm float64, age int, gender string) float64 {
	if gender == "male" {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
}

// TDEE scales a BMR by the activity multiplier.
func TDEE(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	return bmr * mult
}

// DailyCalories derives the daily calorie target from BMR, activity
// level, and goal.
func DailyCalories(bmr float64, activityLevel, goal string) float64 {
	return TDEE(bmr, activityLevel) + goalAdjustments[goal]
}

// BMI computes body mass index from weight (kg) and height (cm).
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// BMICategory maps a BMI value to the standard band names.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// MacroSplit is a calorie budget expressed in grams per macro-nutrient.
type MacroSplit struct {
	ProteinGrams   float64 `json:"protein_grams"`
	FatGrams       float64 `json:"fat_grams"`
	CarbGrams      float64 `json:"carb_grams"`
	ProteinPercent float64 `json:"protein_percent"`
	FatPercent     float64 `json:"fat_percent"`
	CarbPercent    float64 `json:"carb_percent"`
}

// Macros splits a calorie target 30/30/40 into protein/fat/carb grams
// (4, 9, and 4 kcal per gram).
func Macros(calories float64) MacroSplit {
	const proteinRatio, fatRatio, carbRatio = 0.3, 0.3, 0.4
	return MacroSplit{
		ProteinGrams:   calories * proteinRatio / 4,
		FatGrams:       calories * fatRatio / 9,
		CarbGrams:      calories * carbRatio / 4,
		ProteinPercent: proteinRatio * 100,
		FatPercent:     fatRatio * 100,
		CarbPercent:    carbRatio * 100,
	}
}

// WaterIntake recommends daily water in liters for a body weight and
// activity level.
func WaterIntake(weightKg float64, activityLevel string) float64 {
	base := weightKg * 0.033
	switch activityLevel {
	case "light":
		return base + 0.3
	case "moderate":
		return base + 0.5
	case "active":
		return base + 0.8
	case "very_active":
		return base + 1.0
	}
	return base
}

// CalorieStatus bands today's intake against the daily target: more than
// 500 over is a high surplus, more than 500 under a high deficit.
func CalorieStatus(calories, target float64) string {
	diff := calories - target
	switch {
	case diff > 500:
		return StatusHighSurplus
	case diff > 0:
		return StatusSurplus
	case diff < -500:
		return StatusHighDeficit
	case diff < 0:
		return StatusDeficit
	default:
		return StatusMaintenance
	}
}

// DeficitSurplus describes the gap between intake and target as text.
func DeficitSurplus(current, target float64) string {
	diff := current - target
	switch {
	case diff > 0:
		return fmt.Sprintf("Surplus: +%.0f calories", diff)
	case diff < 0:
		return fmt.Sprintf("Deficit: %.0f calories", diff)
	default:
		return "On target"
	}
}
