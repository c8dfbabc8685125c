// Package query derives the read views the UI shows: reverse
// chronological listing, grouping by calendar day, free-text filtering
// and profile statistics. Everything works on loaded aggregates and
// never mutates the store.
package query

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// Service binds the projections to a store.
type Service struct {
	store *storage.Store
}

// NewService creates a query service over the store.
func NewService(store *storage.Store) *Service {
	return &Service{store: store}
}

// ListSessionsByDateDesc loads a profile's sessions sorted by date
// descending, ties broken by most recently created first.
func (s *Service) ListSessionsByDateDesc(ctx context.Context, profileID uuid.UUID) ([]models.Session, error) {
	sessions, err := s.store.ListSessions(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return SortByDateDesc(sessions), nil
}

// Stats are the aggregate numbers shown on the profile screen.
type Stats struct {
	TotalWorkouts int `json:"total_workouts"`
	UniqueDays    int `json:"unique_days"`
}

// Stats computes workout statistics for a profile.
func (s *Service) Stats(ctx context.Context, profileID uuid.UUID) (*Stats, error) {
	sessions, err := s.store.ListSessions(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalWorkouts: len(sessions),
		UniqueDays:    UniqueWorkoutDays(sessions),
	}, nil
}

// SortByDateDesc returns a copy sorted by session date descending.
// Equal dates order most-recently-created first; the sort is stable.
func SortByDateDesc(sessions []models.Session) []models.Session {
	out := make([]models.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// DayGroup is one local calendar day's worth of sessions.
type DayGroup struct {
	Day      time.Time        `json:"day"`
	Sessions []models.Session `json:"sessions"`
}

// GroupByDay buckets sessions by their local calendar day. Groups come
// back newest day first; each group's sessions are sorted by date-time
// descending.
func GroupByDay(sessions []models.Session) []DayGroup {
	byDay := make(map[time.Time][]models.Session)
	for _, sess := range sessions {
		local := sess.Date.Local()
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
		byDay[day] = append(byDay[day], sess)
	}

	groups := make([]DayGroup, 0, len(byDay))
	for day, members := range byDay {
		groups = append(groups, DayGroup{Day: day, Sessions: SortByDateDesc(members)})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Day.After(groups[j].Day) })
	return groups
}

// Filter returns the sessions whose notes, or any owned exercise's
// name, contain the query as a case-insensitive substring. An empty
// query returns the input unfiltered.
func Filter(sessions []models.Session, queryText string) []models.Session {
	q := strings.ToLower(strings.TrimSpace(queryText))
	if q == "" {
		return sessions
	}

	var out []models.Session
	for _, sess := range sessions {
		if matches(sess, q) {
			out = append(out, sess)
		}
	}
	return out
}

func matches(sess models.Session, q string) bool {
	if strings.Contains(strings.ToLower(sess.Notes), q) {
		return true
	}
	for _, ex := range sess.Exercises {
		if strings.Contains(strings.ToLower(ex.Name), q) {
			return true
		}
	}
	return false
}

// UniqueWorkoutDays counts the distinct local calendar days the
// sessions fall on.
func UniqueWorkoutDays(sessions []models.Session) int {
	days := make(map[time.Time]struct{}, len(sessions))
	for _, sess := range sessions {
		local := sess.Date.Local()
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
		days[day] = struct{}{}
	}
	return len(days)
}
