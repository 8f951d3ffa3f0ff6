package store

import (
	"sort"
	"strings"
	"time"

	"github.com/pbaille/notecat/internal/domain"
)

// All disables a category, member or date filter
const All = "all"

// Date filter values
const (
	DateAll   = All
	DateToday = "today"
	DateWeek  = "week"
	DateMonth = "month"
)

// Trend windows in days
const (
	WindowWeek  = 7
	WindowMonth = 30
)

// LeaderboardSize caps the leaderboard
const LeaderboardSize = 5

// dayLayout keys per-day buckets
const dayLayout = "2006-01-02"

// Filter selects notes for the filtered view. Empty fields match everything.
type Filter struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Member   string `json:"member"`
	Date     string `json:"date"`
}

// DayCount is the number of notes created on one calendar day
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Count is a labelled tally
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Activity summarizes the collection for the dashboard
type Activity struct {
	Streak        int `json:"streak"`
	Total         int `json:"total"`
	Today         int `json:"today"`
	RemainingDays int `json:"remaining_days"`
}

// Filtered returns the notes passing every predicate of f, in display order
func (s *Store) Filtered(f Filter) []domain.Note {
	search := strings.ToLower(f.Search)
	today := startOfDay(s.now())

	out := []domain.Note{}
	for _, n := range s.notes {
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Content), search) &&
			!strings.Contains(strings.ToLower(n.Category), search) {
			continue
		}
		if !isAll(f.Category) && n.Category != f.Category {
			continue
		}
		if !isAll(f.Member) && n.Author.Name != f.Member {
			continue
		}
		if !s.matchesDate(n, f.Date, today) {
			continue
		}
		out = append(out, n)
	}

	return out
}

func (s *Store) matchesDate(n domain.Note, filter string, today time.Time) bool {
	if isAll(filter) {
		return true
	}

	t, err := n.Time()
	if err != nil {
		// Malformed timestamps pass the filter
		s.logger.Warn("filter note by date", "id", n.ID, "timestamp", n.Timestamp, "error", err)
		return true
	}
	day := startOfDay(t.In(today.Location()))

	switch filter {
	case DateToday:
		return day.Equal(today)
	case DateWeek:
		return !day.Before(today.AddDate(0, 0, -7))
	case DateMonth:
		return !day.Before(today.AddDate(0, -1, 0))
	default:
		return true
	}
}

// DailyCounts returns one entry per day of the trailing window ending today,
// oldest first. Days without notes count zero.
func (s *Store) DailyCounts(window int) []DayCount {
	if window <= 0 {
		return []DayCount{}
	}

	today := startOfDay(s.now())
	counts := make([]DayCount, window)
	index := make(map[string]int, window)
	for i := 0; i < window; i++ {
		day := today.AddDate(0, 0, i-window+1).Format(dayLayout)
		counts[i] = DayCount{Day: day}
		index[day] = i
	}

	for _, n := range s.notes {
		t, err := n.Time()
		if err != nil {
			s.logger.Warn("count note per day", "id", n.ID, "timestamp", n.Timestamp, "error", err)
			continue
		}
		if i, ok := index[t.In(today.Location()).Format(dayLayout)]; ok {
			counts[i].Count++
		}
	}

	return counts
}

// CategoryDistribution counts notes per category in first-seen order
func (s *Store) CategoryDistribution() []Count {
	return tally(s.notes, func(n domain.Note) string { return n.Category })
}

// TopCategory returns the most used category, ties going to the first seen
func (s *Store) TopCategory() string {
	dist := s.CategoryDistribution()
	if len(dist) == 0 {
		return ""
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist[0].Name
}

// Leaderboard returns the most prolific authors, highest first
func (s *Store) Leaderboard() []Count {
	board := tally(s.notes, func(n domain.Note) string { return n.Author.Name })
	sort.SliceStable(board, func(i, j int) bool { return board[i].Count > board[j].Count })
	if len(board) > LeaderboardSize {
		board = board[:LeaderboardSize]
	}
	return board
}

// Streak counts consecutive days with at least one note, ending today.
// Without a note today the streak is zero.
func (s *Store) Streak() int {
	today := startOfDay(s.now())
	active := s.days(today.Location())

	streak := 0
	for day := today; active[day.Format(dayLayout)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// TodayCount returns the number of notes created today
func (s *Store) TodayCount() int {
	today := startOfDay(s.now())
	key := today.Format(dayLayout)

	count := 0
	for _, n := range s.notes {
		t, err := n.Time()
		if err != nil {
			s.logger.Warn("count note for today", "id", n.ID, "timestamp", n.Timestamp, "error", err)
			continue
		}
		if t.In(today.Location()).Format(dayLayout) == key {
			count++
		}
	}
	return count
}

// Activity returns the dashboard metrics
func (s *Store) Activity() Activity {
	streak := s.Streak()
	return Activity{
		Streak:        streak,
		Total:         len(s.notes),
		Today:         s.TodayCount(),
		RemainingDays: max(0, WindowWeek-streak),
	}
}

// days returns the set of local calendar days holding at least one note
func (s *Store) days(loc *time.Location) map[string]bool {
	active := make(map[string]bool)
	for _, n := range s.notes {
		t, err := n.Time()
		if err != nil {
			s.logger.Warn("bucket note by day", "id", n.ID, "timestamp", n.Timestamp, "error", err)
			continue
		}
		active[t.In(loc).Format(dayLayout)] = true
	}
	return active
}

func tally(notes []domain.Note, key func(domain.Note) string) []Count {
	out := []Count{}
	index := make(map[string]int)
	for _, n := range notes {
		k := key(n)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Count{Name: k})
		}
		out[i].Count++
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isAll(v string) bool {
	return v == "" || v == All
}
