package ops

import (
	"fmt"
	"strings"

	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/profile"
)

// LogFoodInput contains parameters for the LogFood operation.
type LogFoodInput struct {
	UserID   string  // required, must be a known profile
	Date     string  // YYYY-MM-DD; defaults to today
	FoodName string  // required free text, resolved to a canonical name
	Quantity float64 // serving multiplier, must be positive
	MealType string  // optional tag
	Timestamp string // optional; defaults to now
}

// LogFoodOutput contains the result of the LogFood operation.
type LogFoodOutput struct {
	Food     string             `json:"food"` // canonical catalog name
	Quantity float64            `json:"quantity"`
	Date     string             `json:"date"`
	Entry    profile.LogEntry   `json:"entry"`
	Logs     []profile.LogEntry `json:"logs"`
	Message  string             `json:"message"`
}

// LogFood resolves free-text input to a canonical catalog name and
// appends it to the user's daily bucket. An unresolvable name fails with
// NOT_FOUND; an unresolved name is never logged.
func LogFood(cat *catalog.Catalog, users *profile.Store, input LogFoodInput) (*LogFoodOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.NewInvalidRequest("user id is required")
	}
	if strings.TrimSpace(input.FoodName) == "" {
		return nil, errors.NewInvalidRequest("food name is required")
	}
	// The store itself accepts any quantity (the original did); the
	// boundary is where sign is enforced.
	if input.Quantity <= 0 {
		return nil, errors.NewValidation("quantity", "must be a positive number")
	}

	rec, err := cat.ResolveForLogging(input.FoodName)
	if err != nil {
		return nil, err
	}

	date := defaultDate(input.Date)
	entry, err := users.AppendLog(input.UserID, date, rec.Name, input.Quantity, input.MealType, input.Timestamp)
	if err != nil {
		return nil, err
	}

	logs := users.SummaryFor(input.UserID, date)
	return &LogFoodOutput{
		Food:     rec.Name,
		Quantity: input.Quantity,
		Date:     date,
		Entry:    entry,
		Logs:     logs,
		Message:  fmt.Sprintf("Logged %g serving(s) of %s", input.Quantity, rec.Name),
	}, nil
}
