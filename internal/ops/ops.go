// Package ops implements the application operations behind every
// surface (CLI, MCP, web). Operations take their collaborators
// explicitly, never through ambient globals, and validate input at the boundary
// before touching state.
package ops

import "time"

// Search and recommendation limits.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
	MaxTopN            = 50
)

// DateFormat is the daily-bucket key layout.
const DateFormat = "2006-01-02"

// defaultDate fills a blank date with today, the way the original API
// surfaces do.
func defaultDate(date string) string {
	if date == "" {
		return time.Now().Format(DateFormat)
	}
	return date
}
