package profile

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mkyawt/nutrilog/internal/errors"
)

// Store is the user profile store: the full set of profiles is held
// in memory and each mutated profile is rewritten wholesale to its
// database row. All mutations are serialized behind one mutex; the
// in-memory state may run ahead of disk when a write fails (no
// rollback).
type Store struct {
	db *sql.DB

	mu    sync.Mutex
	users map[string]*Profile
}

// Open loads every profile from the database. A corrupt profile row is
// skipped (the store starts without it), so an absent or damaged store
// initializes to empty rather than erroring.
func Open(database *sql.DB) (*Store, error) {
	rows, err := database.Query(`SELECT user_id, profile_json FROM profiles`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	users := make(map[string]*Profile)
	for rows.Next() {
		var userID, blob string
		if err := rows.Scan(&userID, &blob); err != nil {
			return nil, errors.NewInternal(err)
		}
		p := &Profile{}
		if err := json.Unmarshal([]byte(blob), p); err != nil {
			log.Printf("skipping corrupt profile row for %s: %v", userID, err)
			continue
		}
		p.UserID = userID
		if p.DailyLogs == nil {
			p.DailyLogs = make(map[string][]LogEntry)
		}
		users[userID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &Store{db: database, users: users}, nil
}

// Get returns a copy of the profile, or false if the user is unknown.
func (s *Store) Get(userID string) (*Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[userID]
	if !ok {
		return nil, false
	}
	return p.clone(), true
}

// Create sets up a profile with derived BMR and daily calories and
// persists it. Creating an existing user id overwrites the old profile
// (last writer wins).
func (s *Store) Create(userID string, m Metrics) (*Profile, error) {
	now := time.Now()
	p := &Profile{
		UserID:        userID,
		Name:          m.Name,
		Age:           m.Age,
		Weight:        m.Weight,
		Height:        m.Height,
		Gender:        m.Gender,
		ActivityLevel: m.ActivityLevel,
		Goal:          m.Goal,
		DailyLogs:     make(map[string][]LogEntry),
		CreatedAt:     now.Format(time.RFC3339),
	}
	p.recompute()
	p.touch(now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = p
	if err := s.persist(userID); err != nil {
		return nil, err
	}
	return p.clone(), nil
}

// MetricsUpdate carries the fields to change; nil fields are left alone.
type MetricsUpdate struct {
	Name          *string
	Age           *int
	Weight        *float64
	Height        *float64
	Gender        *string
	ActivityLevel *string
	Goal          *string
}

// metricChanged reports whether the update touches any field that feeds
// the derived BMR / daily-calorie values.
func (u MetricsUpdate) metricChanged() bool {
	return u.Age != nil || u.Weight != nil || u.Height != nil ||
		u.Gender != nil || u.ActivityLevel != nil || u.Goal != nil
}

// Update applies a partial metrics update, recomputing derived fields
// when any metric changed. Fails with NOT_FOUND for an unknown user.
func (s *Store) Update(userID string, u MetricsUpdate) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.users[userID]
	if !ok {
		return nil, errors.NewNotFound("user", userID)
	}

	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = *u.ActivityLevel
	}
	if u.Goal != nil {
		p.Goal = *u.Goal
	}

	if u.metricChanged() {
		p.recompute()
	}
	p.touch(time.Now())

	if err := s.persist(userID); err != nil {
		return nil, err
	}
	return p.clone(), nil
}

// AppendLog appends an entry to the (user, date) bucket, creating the
// bucket if absent, and persists the profile synchronously. The caller
// is expected to pass a canonical catalog name. Quantity sign is not
// validated here; boundaries reject non-positive quantities before they
// reach the store.
func (s *Store) AppendLog(userID, date, canonicalFood string, quantity float64, mealType, timestamp string) (LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.users[userID]
	if !ok {
		return LogEntry{}, errors.NewNotFound("user", userID)
	}

	now := time.Now()
	if timestamp == "" {
		timestamp = now.Format(time.RFC3339)
	}

	entry := LogEntry{
		ID:        newEntryID(now),
		Food:      canonicalFood,
		Quantity:  quantity,
		MealType:  mealType,
		Timestamp: timestamp,
	}

	p.DailyLogs[date] = append(p.DailyLogs[date], entry)
	p.touch(now)

	if err := s.persist(userID); err != nil {
		return LogEntry{}, err
	}
	return entry, nil
}

// RemoveMatching removes every entry in the date bucket whose food name
// equals foodName and, when quantity is non-nil, whose quantity equals
// it exactly (floating-point equality, the documented pitfall of this
// contract; use RemoveByID when exactness matters). An emptied bucket is
// deleted outright, so "never logged" and "logged then cleared" become
// indistinguishable. Returns the removed count and the remaining
// entries.
func (s *Store) RemoveMatching(userID, date, foodName string, quantity *float64) (int, []LogEntry, error) {
	return s.removeWhere(userID, date, func(e LogEntry) bool {
		return e.Food == foodName && (quantity == nil || e.Quantity == *quantity)
	})
}

// RemoveByID removes the single entry with the given id from the date
// bucket.
func (s *Store) RemoveByID(userID, date, entryID string) (int, []LogEntry, error) {
	return s.removeWhere(userID, date, func(e LogEntry) bool {
		return e.ID == entryID
	})
}

func (s *Store) removeWhere(userID, date string, match func(LogEntry) bool) (int, []LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.users[userID]
	if !ok {
		return 0, nil, errors.NewNotFound("user", userID)
	}
	entries, ok := p.DailyLogs[date]
	if !ok {
		return 0, nil, errors.NewNotFound("logs", date)
	}

	remaining := make([]LogEntry, 0, len(entries))
	removed := 0
	for _, e := range entries {
		if match(e) {
			removed++
			continue
		}
		remaining = append(remaining, e)
	}

	if len(remaining) > 0 {
		p.DailyLogs[date] = remaining
	} else {
		delete(p.DailyLogs, date)
	}
	p.touch(time.Now())

	if err := s.persist(userID); err != nil {
		return 0, nil, err
	}
	return removed, remaining, nil
}

// ClearDate removes the whole bucket for the date. Clearing an absent
// bucket is a successful no-op reporting zero cleared.
func (s *Store) ClearDate(userID, date string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.users[userID]
	if !ok {
		return 0, errors.NewNotFound("user", userID)
	}

	entries, ok := p.DailyLogs[date]
	if !ok {
		return 0, nil
	}

	delete(p.DailyLogs, date)
	p.touch(time.Now())

	if err := s.persist(userID); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// SummaryFor returns the ordered entry sequence for the date. An unknown
// user or date yields an empty sequence, never an error.
func (s *Store) SummaryFor(userID, date string) []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.users[userID]
	if !ok {
		return nil
	}
	return append([]LogEntry(nil), p.DailyLogs[date]...)
}

// persist rewrites the user's full profile row. Callers hold s.mu.
func (s *Store) persist(userID string) error {
	p := s.users[userID]
	blob, err := json.Marshal(p)
	if err != nil {
		return errors.NewInternal(err)
	}

	_, err = s.db.Exec(`
		INSERT INTO profiles (user_id, profile_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			profile_json = excluded.profile_json,
			updated_at = excluded.updated_at
	`, userID, string(blob), time.Now().Unix())
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// newEntryID mints a ULID for a log entry.
func newEntryID(now time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
