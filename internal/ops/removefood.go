package ops

import (
	"fmt"
	"strings"

	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/profile"
)

// RemoveFoodInput contains parameters for the RemoveFood operation.
// Either EntryID or FoodName addresses the entries to remove; EntryID
// wins when both are set.
type RemoveFoodInput struct {
	UserID   string
	Date     string // required
	FoodName string // removes every entry with this canonical name
	Quantity *float64 // optional; narrows the name match to exact quantity
	EntryID  string   // removes the single entry with this id
}

// RemoveFoodOutput contains the result of the RemoveFood operation.
type RemoveFoodOutput struct {
	RemovedCount int                `json:"removed_count"`
	Logs         []profile.LogEntry `json:"logs"`
	Message      string             `json:"message"`
}

// RemoveFood removes matching entries from a daily bucket. Name matching
// uses exact floating-point quantity equality when a quantity is given;
// callers that hold an entry id should prefer it.
func RemoveFood(users *profile.Store, input RemoveFoodInput) (*RemoveFoodOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.NewInvalidRequest("user id is required")
	}
	if strings.TrimSpace(input.Date) == "" {
		return nil, errors.NewInvalidRequest("date is required")
	}
	if input.EntryID == "" && strings.TrimSpace(input.FoodName) == "" {
		return nil, errors.NewInvalidRequest("food name or entry id is required")
	}

	var (
		removed int
		logs    []profile.LogEntry
		err     error
		label   string
	)
	if input.EntryID != "" {
		removed, logs, err = users.RemoveByID(input.UserID, input.Date, input.EntryID)
		label = input.EntryID
	} else {
		removed, logs, err = users.RemoveMatching(input.UserID, input.Date, input.FoodName, input.Quantity)
		label = input.FoodName
	}
	if err != nil {
		return nil, err
	}

	if logs == nil {
		logs = []profile.LogEntry{}
	}
	return &RemoveFoodOutput{
		RemovedCount: removed,
		Logs:         logs,
		Message:      fmt.Sprintf("Removed %d entry(ies) for %s", removed, label),
	}, nil
}
