// Package profile owns user profiles and their per-date daily food logs,
// persisted wholesale to the SQLite-backed profile store on every
// mutation.
package profile

import (
	"time"

	"github.com/mkyawt/nutrilog/internal/nutrition"
)

// LogEntry is one logged food for a (user, date) daily bucket.
// Quantity is a serving multiplier against the food's 100g nutrition
// basis, not a gram amount.
type LogEntry struct {
	// ID is a ULID assigned at append time. The original value-matching
	// removal contract (food name + exact float quantity) still holds;
	// the id exists so callers can remove a single entry without relying
	// on floating-point equality.
	ID        string  `json:"id"`
	Food      string  `json:"food"` // canonical catalog name at insertion time
	Quantity  float64 `json:"quantity"`
	MealType  string  `json:"meal_type,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// Metrics are the body measurements and preferences a profile is
// created or updated with.
type Metrics struct {
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	Weight        float64 `json:"weight"` // kg
	Height        float64 `json:"height"` // cm
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
}

// Profile is the full per-user record, including every daily log bucket.
// The whole structure is rewritten to the store on every mutation.
type Profile struct {
	UserID        string                `json:"user_id"`
	Name          string                `json:"name"`
	Age           int                   `json:"age"`
	Weight        float64               `json:"weight"`
	Height        float64               `json:"height"`
	Gender        string                `json:"gender"`
	ActivityLevel string                `json:"activity_level"`
	Goal          string                `json:"goal"`
	BMR           float64               `json:"bmr"`
	DailyCalories float64               `json:"daily_calories"`
	DailyLogs     map[string][]LogEntry `json:"daily_logs"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

// recompute refreshes the derived fields after any metric change.
func (p *Profile) recompute() {
	p.BMR = nutrition.BMR(p.Weight, p.Height, p.Age, p.Gender)
	p.DailyCalories = nutrition.DailyCalories(p.BMR, p.ActivityLevel, p.Goal)
}

// touch stamps the profile's update time.
func (p *Profile) touch(now time.Time) {
	p.UpdatedAt = now.Format(time.RFC3339)
}

// clone returns a deep copy safe to hand to callers.
func (p *Profile) clone() *Profile {
	out := *p
	out.DailyLogs = make(map[string][]LogEntry, len(p.DailyLogs))
	for date, entries := range p.DailyLogs {
		out.DailyLogs[date] = append([]LogEntry(nil), entries...)
	}
	return &out
}
