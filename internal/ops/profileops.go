package ops

import (
	"strings"

	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/nutrition"
	"github.com/mkyawt/nutrilog/internal/profile"
)

// CreateProfileInput contains parameters for the CreateProfile operation.
type CreateProfileInput struct {
	UserID  string
	Metrics profile.Metrics
}

// ProfileOutput is the enriched profile view shared by the profile
// operations. The derived fields are computed on the way out and never
// stored.
type ProfileOutput struct {
	Profile     *profile.Profile     `json:"profile"`
	BMI         float64              `json:"bmi"`
	BMICategory string               `json:"bmi_category"`
	WaterLiters float64              `json:"water_liters"`
	Macros      nutrition.MacroSplit `json:"macros"`
}

func enrich(p *profile.Profile) *ProfileOutput {
	bmi := nutrition.BMI(p.Weight, p.Height)
	return &ProfileOutput{
		Profile:     p,
		BMI:         bmi,
		BMICategory: nutrition.BMICategory(bmi),
		WaterLiters: nutrition.WaterIntake(p.Weight, p.ActivityLevel),
		Macros:      nutrition.Macros(p.DailyCalories),
	}
}

// CreateProfile creates or overwrites a user profile. Creating an existing
// user id replaces the profile wholesale, daily logs included.
func CreateProfile(users *profile.Store, input CreateProfileInput) (*ProfileOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.NewInvalidRequest("user id is required")
	}
	if input.Metrics.Age <= 0 {
		return nil, errors.NewValidation("age", "age must be a positive number")
	}
	if input.Metrics.Weight <= 0 {
		return nil, errors.NewValidation("weight", "weight must be a positive number")
	}
	if input.Metrics.Height <= 0 {
		return nil, errors.NewValidation("height", "height must be a positive number")
	}

	p, err := users.Create(input.UserID, input.Metrics)
	if err != nil {
		return nil, err
	}
	return enrich(p), nil
}

// UpdateProfileInput contains parameters for the UpdateProfile operation.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID string
	Update profile.MetricsUpdate
}

// UpdateProfile applies a partial metrics update to an existing profile.
func UpdateProfile(users *profile.Store, input UpdateProfileInput) (*ProfileOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.NewInvalidRequest("user id is required")
	}
	if input.Update.Age != nil && *input.Update.Age <= 0 {
		return nil, errors.NewValidation("age", "age must be a positive number")
	}
	if input.Update.Weight != nil && *input.Update.Weight <= 0 {
		return nil, errors.NewValidation("weight", "weight must be a positive number")
	}
	if input.Update.Height != nil && *input.Update.Height <= 0 {
		return nil, errors.NewValidation("height", "height must be a positive number")
	}

	p, err := users.Update(input.UserID, input.Update)
	if err != nil {
		return nil, err
	}
	return enrich(p), nil
}

// GetProfile returns the enriched profile for a user.
func GetProfile(users *profile.Store, userID string) (*ProfileOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.NewInvalidRequest("user id is required")
	}
	p, ok := users.Get(userID)
	if !ok {
		return nil, errors.NewNotFound("user", userID)
	}
	return enrich(p), nil
}
