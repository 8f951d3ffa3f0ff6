package store

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/notecat/internal/domain"
)

func withNotes(t *testing.T, notes ...domain.Note) *Store {
	t.Helper()
	s := newTestStore()
	for i := len(notes) - 1; i >= 0; i-- {
		require.NoError(t, s.Append(notes[i]))
	}
	return s
}

func filterFixture(t *testing.T) *Store {
	a := note("A", 0)
	a.Category = "Work"
	a.Author.Name = "X"

	b := note("B", 10)
	b.Category = "Ideas"
	b.Author.Name = "Y"
	b.Content = "a thought"

	return withNotes(t, a, b)
}

func TestFiltered(t *testing.T) {
	s := filterFixture(t)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter", Filter{}, []string{"A", "B"}},
		{"all values", Filter{Category: All, Member: All, Date: All}, []string{"A", "B"}},
		{"week", Filter{Date: DateWeek}, []string{"A"}},
		{"month", Filter{Date: DateMonth}, []string{"A", "B"}},
		{"today", Filter{Date: DateToday}, []string{"A"}},
		{"category", Filter{Category: "Ideas"}, []string{"B"}},
		{"member", Filter{Member: "X"}, []string{"A"}},
		{"search matches category", Filter{Search: "work"}, []string{"A"}},
		{"search matches content", Filter{Search: "THOUGHT"}, []string{"B"}},
		{"predicates are anded", Filter{Category: "Ideas", Date: DateWeek}, []string{}},
		{"unknown date value", Filter{Date: "decade"}, []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.Filtered(tt.filter)))
		})
	}
}

func TestFiltered_WeekBoundaryAtDayGranularity(t *testing.T) {
	// 7 days ago at 00:01 is inside the window even though it is earlier in the day than now
	edge := note("edge", 0)
	edge.Timestamp = time.Date(2024, time.March, 8, 0, 1, 0, 0, time.UTC).Format(time.RFC3339)
	out := note("out", 0)
	out.Timestamp = time.Date(2024, time.March, 7, 23, 59, 0, 0, time.UTC).Format(time.RFC3339)

	s := withNotes(t, edge, out)
	assert.Equal(t, []string{"edge"}, ids(s.Filtered(Filter{Date: DateWeek})))
}

func TestFiltered_MonthBoundary(t *testing.T) {
	in := note("in", 0)
	in.Timestamp = time.Date(2024, time.February, 15, 1, 0, 0, 0, time.UTC).Format(time.RFC3339)
	out := note("out", 0)
	out.Timestamp = time.Date(2024, time.February, 14, 23, 0, 0, 0, time.UTC).Format(time.RFC3339)

	s := withNotes(t, in, out)
	assert.Equal(t, []string{"in"}, ids(s.Filtered(Filter{Date: DateMonth})))
}

func TestFiltered_MalformedTimestampFailsOpen(t *testing.T) {
	var buf bytes.Buffer
	s := newTestStore(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	bad := note("bad", 0)
	bad.Timestamp = "yesterday-ish"
	require.NoError(t, s.Append(bad))

	assert.Equal(t, []string{"bad"}, ids(s.Filtered(Filter{Date: DateToday})))
	assert.Contains(t, buf.String(), "filter note by date")
}

func TestFiltered_AllSentinelIsCaseSensitive(t *testing.T) {
	a := note("A", 0)
	a.Category = "ALL"
	a.Author.Name = "All"
	b := note("B", 0)
	b.Category = "Work"

	s := withNotes(t, a, b)
	assert.Equal(t, []string{"A"}, ids(s.Filtered(Filter{Category: "ALL"})))
	assert.Equal(t, []string{"A"}, ids(s.Filtered(Filter{Member: "All"})))
	assert.Equal(t, []string{"A", "B"}, ids(s.Filtered(Filter{Category: All, Member: All})))
}

func TestTodayCount_MalformedTimestampIsLogged(t *testing.T) {
	var buf bytes.Buffer
	s := newTestStore(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	bad := note("bad", 0)
	bad.Timestamp = "not a time"
	require.NoError(t, s.Append(bad))
	require.NoError(t, s.Append(note("ok", 0)))

	assert.Equal(t, 1, s.TodayCount())
	assert.Contains(t, buf.String(), "count note for today")
	assert.Contains(t, buf.String(), "id=bad")
}

func TestDailyCounts(t *testing.T) {
	s := withNotes(t, note("a", 0), note("b", 0), note("c", 2), note("d", 9))

	week := s.DailyCounts(WindowWeek)
	require.Len(t, week, 7)
	assert.Equal(t, "2024-03-09", week[0].Day)
	assert.Equal(t, "2024-03-15", week[6].Day)
	assert.Equal(t, 2, week[6].Count)
	assert.Equal(t, 1, week[4].Count)

	total := 0
	for _, d := range week {
		total += d.Count
	}
	assert.Equal(t, 3, total)

	month := s.DailyCounts(WindowMonth)
	require.Len(t, month, 30)
	assert.Equal(t, 1, month[29-9].Count)
}

func TestDailyCounts_EmptyStore(t *testing.T) {
	s := newTestStore()

	week := s.DailyCounts(WindowWeek)
	require.Len(t, week, 7)
	for _, d := range week {
		assert.Zero(t, d.Count)
	}
	assert.Empty(t, s.DailyCounts(0))
}

func TestCategoryDistribution(t *testing.T) {
	a, b, c := note("a", 0), note("b", 0), note("c", 0)
	b.Category = "Ideas"

	s := withNotes(t, a, b, c)
	assert.ElementsMatch(t, []Count{{"Work", 2}, {"Ideas", 1}}, s.CategoryDistribution())
	assert.Equal(t, "Work", s.TopCategory())

	assert.Empty(t, newTestStore().CategoryDistribution())
	assert.Equal(t, "", newTestStore().TopCategory())
}

func TestLeaderboard(t *testing.T) {
	var notes []domain.Note
	add := func(author string, n int) {
		for i := 0; i < n; i++ {
			nt := note(author+string(rune('0'+i)), 0)
			nt.Author.Name = author
			notes = append(notes, nt)
		}
	}
	add("ann", 1)
	add("bob", 3)
	add("cat", 1)
	add("dan", 2)
	add("eve", 1)
	add("fay", 1)

	board := withNotes(t, notes...).Leaderboard()

	require.Len(t, board, LeaderboardSize)
	assert.Equal(t, []Count{{"bob", 3}, {"dan", 2}, {"ann", 1}, {"cat", 1}, {"eve", 1}}, board)
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"empty", nil, 0},
		{"gap on day two", []int{0, 1, 3}, 2},
		{"no note today", []int{1, 2, 3}, 0},
		{"full week", []int{0, 1, 2, 3, 4, 5, 6}, 7},
		{"same day counts once", []int{0, 0, 0, 1}, 2},
		{"only today", []int{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var notes []domain.Note
			for i, d := range tt.daysAgo {
				notes = append(notes, note(string(rune('a'+i)), d))
			}
			assert.Equal(t, tt.want, withNotes(t, notes...).Streak())
		})
	}
}

func TestStreak_IgnoresDisplayOrder(t *testing.T) {
	s := withNotes(t, note("old", 1), note("new", 0), note("older", 2))
	assert.Equal(t, 3, s.Streak())

	require.NoError(t, s.Reorder(0, 2))
	assert.Equal(t, 3, s.Streak())
}

func TestActivity(t *testing.T) {
	s := withNotes(t, note("a", 0), note("b", 0), note("c", 1), note("d", 5))

	got := s.Activity()
	assert.Equal(t, Activity{Streak: 2, Total: 4, Today: 2, RemainingDays: 5}, got)

	assert.Equal(t, Activity{RemainingDays: 7}, newTestStore().Activity())
}
