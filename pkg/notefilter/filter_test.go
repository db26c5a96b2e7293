package notefilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	name   string
	record Record
}

func view(f fixture) Record { return f.record }

func names(items []fixture) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.name)
	}
	return out
}

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestApplyCategoriesRequireAll(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []fixture{
		{name: "a", record: Record{Categories: []string{"A"}, UpdatedAt: base}},
		{name: "ab", record: Record{Categories: []string{"A", "B"}, UpdatedAt: base}},
		{name: "b", record: Record{Categories: []string{"B"}, UpdatedAt: base}},
	}

	got := Apply(items, Criteria{Categories: []string{"A", "B"}}, view)

	assert.Equal(t, []string{"ab"}, names(got))
}

func TestApplyProvincesMatchAny(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []fixture{
		{name: "p1", record: Record{Province: "P1", UpdatedAt: base.Add(2 * time.Hour)}},
		{name: "p2", record: Record{Province: "P2", UpdatedAt: base.Add(time.Hour)}},
		{name: "p3", record: Record{Province: "P3", UpdatedAt: base}},
	}

	got := Apply(items, Criteria{Provinces: []string{"P1", "P2"}}, view)

	assert.Equal(t, []string{"p1", "p2"}, names(got))
}

func TestApplySortsByUpdatedAtDescending(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []fixture{
		{name: "old", record: Record{UpdatedAt: base}},
		{name: "new", record: Record{UpdatedAt: base.Add(48 * time.Hour)}},
		{name: "mid", record: Record{UpdatedAt: base.Add(24 * time.Hour)}},
	}

	got := Apply(items, Criteria{}, view)

	assert.Equal(t, []string{"new", "mid", "old"}, names(got))
	assert.Equal(t, "old", items[0].name, "input must not be reordered")
}

func TestMatch(t *testing.T) {
	record := Record{
		Title:        "Weekly Standup",
		Content:      "Discuss the Roadmap",
		PhoneNumbers: []string{"+62 812 3456", "021-555"},
		EventDate:    at("2024-03-10T15:30:00Z"),
		Categories:   []string{"Work", "Meetings"},
		Tags:         []string{"team", "weekly"},
		Province:     "Bali",
		IsArchived:   false,
		IsPublished:  true,
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{name: "zero criteria", criteria: Criteria{}, want: true},
		{name: "title case-insensitive", criteria: Criteria{Title: "standup"}, want: true},
		{name: "title miss", criteria: Criteria{Title: "retro"}, want: false},
		{name: "whitespace title ignored", criteria: Criteria{Title: "   "}, want: true},
		{name: "content", criteria: Criteria{Content: "ROADMAP"}, want: true},
		{name: "phone substring any entry", criteria: Criteria{Phone: "555"}, want: true},
		{name: "phone miss", criteria: Criteria{Phone: "999"}, want: false},
		{name: "from same day", criteria: Criteria{From: at("2024-03-10T23:00:00Z")}, want: true},
		{name: "to same day", criteria: Criteria{To: at("2024-03-10T00:00:00Z")}, want: true},
		{name: "from next day", criteria: Criteria{From: at("2024-03-11T00:00:00Z")}, want: false},
		{name: "to previous day", criteria: Criteria{To: at("2024-03-09T12:00:00Z")}, want: false},
		{name: "single tag", criteria: Criteria{Tags: []string{"team"}}, want: true},
		{name: "tags all", criteria: Criteria{Tags: []string{"team", "daily"}}, want: false},
		{name: "province in set", criteria: Criteria{Provinces: []string{"Java", "Bali"}}, want: true},
		{name: "province not in set", criteria: Criteria{Provinces: []string{"Java"}}, want: false},
		{name: "unarchived", criteria: Criteria{Archive: Unarchived}, want: true},
		{name: "archived", criteria: Criteria{Archive: Archived}, want: false},
		{name: "published", criteria: Criteria{Publish: Published}, want: true},
		{name: "unpublished", criteria: Criteria{Publish: Unpublished}, want: false},
		{name: "conjunction", criteria: Criteria{Title: "weekly", Categories: []string{"Work"}, Publish: Published}, want: true},
		{name: "conjunction one miss", criteria: Criteria{Title: "weekly", Categories: []string{"Home"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.Match(record))
		})
	}
}

func TestMatchDateRangeExcludesUndatedNotes(t *testing.T) {
	c := Criteria{From: at("2024-01-01T00:00:00Z")}
	assert.False(t, c.Match(Record{}))
	assert.True(t, Criteria{}.Match(Record{}))
}

func TestActiveCount(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     int
	}{
		{name: "none", criteria: Criteria{}, want: 0},
		{name: "all statuses are default", criteria: Criteria{Archive: ArchiveAll, Publish: PublishAll}, want: 0},
		{name: "text fields", criteria: Criteria{Title: "a", Content: "b", Phone: "1"}, want: 3},
		{name: "date range counts once", criteria: Criteria{From: at("2024-01-01T00:00:00Z"), To: at("2024-02-01T00:00:00Z")}, want: 1},
		{name: "selections counted individually", criteria: Criteria{Categories: []string{"A", "B"}, Tags: []string{"x"}, Provinces: []string{"P1", "P2"}}, want: 5},
		{name: "statuses", criteria: Criteria{Archive: Archived, Publish: Unpublished}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.ActiveCount())
		})
	}
}

func TestParseStatuses(t *testing.T) {
	a, err := ParseArchiveStatus("")
	require.NoError(t, err)
	assert.Equal(t, ArchiveAll, a)

	a, err = ParseArchiveStatus("Archived")
	require.NoError(t, err)
	assert.Equal(t, Archived, a)

	_, err = ParseArchiveStatus("maybe")
	assert.Error(t, err)

	p, err := ParsePublishStatus("unpublished")
	require.NoError(t, err)
	assert.Equal(t, Unpublished, p)

	_, err = ParsePublishStatus("draft")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2024, 5, 6, 13, 14, 15, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	assert.Equal(t, time.Date(2024, 5, 6, 23, 59, 59, 999999999, time.UTC), EndOfDay(ts))
}
