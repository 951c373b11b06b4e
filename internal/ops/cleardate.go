package ops

import (
	"fmt"
	"strings"

	"github.com/mkyawt/nutrilog/internal/errors"
	"github.com/mkyawt/nutrilog/internal/profile"
)

// ClearDateInput contains parameters for the ClearDate operation.
type ClearDateInput struct {
	UserID string
	Date   string // defaults to today
}

// ClearDateOutput contains the result of the ClearDate operation.
type ClearDateOutput struct {
	ClearedCount int    `json:"cleared_count"`
	Date         string `json:"date"`
	Message      string `json:"message"`
}

// ClearDate removes a user's entire daily bucket. Clearing a date with
// no entries succeeds with a count of zero.
func ClearDate(users *profile.Store, input ClearDateInput) (*ClearDateOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.NewInvalidRequest("user id is required")
	}
	date := defaultDate(input.Date)

	cleared, err := users.ClearDate(input.UserID, date)
	if err != nil {
		return nil, err
	}
	return &ClearDateOutput{
		ClearedCount: cleared,
		Date:         date,
		Message:      fmt.Sprintf("Cleared %d entry(ies) for %s", cleared, date),
	}, nil
}
