package ops

import (
	"strings"

	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/food"
	"github.com/mkyawt/nutrilog/internal/nutrition"
	"github.com/mkyawt/nutrilog/internal/profile"
)

// DailySummaryInput contains parameters for the DailySummary operation.
type DailySummaryInput struct {
	UserID string
	Date   string // defaults to today
}

// DailySummaryOutput contains the result of the DailySummary operation.
// TargetCalories and CalorieStatus are zero-valued when the user has no
// profile.
type DailySummaryOutput struct {
	Date           string             `json:"date"`
	Entries        []profile.LogEntry `json:"entries"`
	Totals         food.Nutrients     `json:"totals"`
	TargetCalories float64            `json:"target_calories,omitempty"`
	CalorieStatus  string             `json:"calorie_status,omitempty"`
	Profile        *profile.Profile   `json:"profile,omitempty"`
}

// DailySummary aggregates a user's logged entries for one date. An unknown
// user or an empty date yields zero totals rather than an error.
func DailySummary(cat *catalog.Catalog, users *profile.Store, input DailySummaryInput) (*DailySummaryOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.NewInvalidRequest("user id is required")
	}
	date := defaultDate(input.Date)

	entries := users.SummaryFor(input.UserID, date)
	if entries == nil {
		entries = []profile.LogEntry{}
	}

	agg := make([]nutrition.Entry, 0, len(entries))
	for _, e := range entries {
		agg = append(agg, nutrition.Entry{Name: e.Food, Quantity: e.Quantity})
	}
	totals := nutrition.Sum(cat, agg)

	out := &DailySummaryOutput{
		Date:    date,
		Entries: entries,
		Totals:  totals,
	}
	if p, ok := users.Get(input.UserID); ok {
		out.Profile = p
		out.TargetCalories = p.DailyCalories
		out.CalorieStatus = nutrition.CalorieStatus(totals.Calories, p.DailyCalories)
	}
	return out, nil
}
