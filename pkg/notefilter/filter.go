// Package notefilter derives the visible note list from a fully fetched set.
//
// Every criterion is an independent predicate and all of them are combined
// with AND. Inside a criterion, categories and tags require every selected
// value while provinces accept any selected value.
package notefilter

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type ArchiveStatus string

const (
	ArchiveAll ArchiveStatus = "all"
	Archived   ArchiveStatus = "archived"
	Unarchived ArchiveStatus = "unarchived"
)

type PublishStatus string

const (
	PublishAll  PublishStatus = "all"
	Published   PublishStatus = "published"
	Unpublished PublishStatus = "unpublished"
)

// Record is the filterable view of a note.
type Record struct {
	Title        string
	Content      string
	PhoneNumbers []string
	EventDate    *time.Time
	Categories   []string // category names
	Tags         []string
	Province     string
	IsArchived   bool
	IsPublished  bool
	UpdatedAt    time.Time
}

// Criteria is the zero-value friendly filter state; the zero value matches everything.
type Criteria struct {
	Title      string
	Content    string
	Phone      string
	From       *time.Time
	To         *time.Time
	Categories []string
	Tags       []string
	Provinces  []string
	Archive    ArchiveStatus
	Publish    PublishStatus
}

func ParseArchiveStatus(s string) (ArchiveStatus, error) {
	switch ArchiveStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", ArchiveAll:
		return ArchiveAll, nil
	case Archived:
		return Archived, nil
	case Unarchived:
		return Unarchived, nil
	}
	return "", fmt.Errorf("unknown archive status %q", s)
}

func ParsePublishStatus(s string) (PublishStatus, error) {
	switch PublishStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", PublishAll:
		return PublishAll, nil
	case Published:
		return Published, nil
	case Unpublished:
		return Unpublished, nil
	}
	return "", fmt.Errorf("unknown publish status %q", s)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Match reports whether r satisfies every engaged criterion.
func (c Criteria) Match(r Record) bool {
	return containsFold(r.Title, c.Title) &&
		containsFold(r.Content, c.Content) &&
		c.matchPhone(r.PhoneNumbers) &&
		c.matchDate(r.EventDate) &&
		containsAll(r.Categories, c.Categories) &&
		containsAll(r.Tags, c.Tags) &&
		c.matchProvince(r.Province) &&
		c.matchArchive(r.IsArchived) &&
		c.matchPublish(r.IsPublished)
}

// ActiveCount counts engaged filter dimensions: one per text field, one per
// selected category/tag/province, one for the date range, one each for
// non-"all" archive and publish status.
func (c Criteria) ActiveCount() int {
	n := 0
	for _, s := range []string{c.Title, c.Content, c.Phone} {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	if c.From != nil || c.To != nil {
		n++
	}
	n += len(c.Categories) + len(c.Tags) + len(c.Provinces)
	if c.Archive != "" && c.Archive != ArchiveAll {
		n++
	}
	if c.Publish != "" && c.Publish != PublishAll {
		n++
	}
	return n
}

// Apply returns the matching items sorted by UpdatedAt, newest first. The
// input slice is not modified.
func Apply[T any](items []T, c Criteria, view func(T) Record) []T {
	type row struct {
		item      T
		updatedAt time.Time
	}

	rows := make([]row, 0, len(items))
	for _, item := range items {
		r := view(item)
		if c.Match(r) {
			rows = append(rows, row{item: item, updatedAt: r.UpdatedAt})
		}
	}

	slices.SortStableFunc(rows, func(a, b row) int {
		return b.updatedAt.Compare(a.updatedAt)
	})

	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out
}

func containsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}

func (c Criteria) matchPhone(phones []string) bool {
	q := strings.TrimSpace(c.Phone)
	if q == "" {
		return true
	}
	for _, p := range phones {
		if strings.Contains(p, q) {
			return true
		}
	}
	return false
}

func (c Criteria) matchDate(eventDate *time.Time) bool {
	if c.From == nil && c.To == nil {
		return true
	}
	if eventDate == nil {
		return false
	}
	if c.From != nil && eventDate.Before(StartOfDay(*c.From)) {
		return false
	}
	if c.To != nil && eventDate.After(EndOfDay(*c.To)) {
		return false
	}
	return true
}

func (c Criteria) matchProvince(province string) bool {
	if len(c.Provinces) == 0 {
		return true
	}
	return slices.Contains(c.Provinces, province)
}

func (c Criteria) matchArchive(archived bool) bool {
	switch c.Archive {
	case Archived:
		return archived
	case Unarchived:
		return !archived
	default:
		return true
	}
}

func (c Criteria) matchPublish(published bool) bool {
	switch c.Publish {
	case Published:
		return published
	case Unpublished:
		return !published
	default:
		return true
	}
}
