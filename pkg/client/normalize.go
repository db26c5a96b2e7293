package client

import (
	"bytes"
	"encoding/json"
	"time"

	"personal-notes-be/pkg/notefilter"

	"go.uber.org/zap"
)

// Layouts accepted for date fields, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type rawUser struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type rawCategory struct {
	Id        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

type rawComment struct {
	Id        string          `json:"id"`
	Content   string          `json:"content"`
	NoteId    string          `json:"noteId"`
	AuthorId  string          `json:"authorId"`
	Author    *rawUser        `json:"author"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

type rawNote struct {
	Id           string            `json:"id"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	EventDate    json.RawMessage   `json:"eventDate"`
	Tags         json.RawMessage   `json:"tags"`
	Province     string            `json:"province"`
	PhoneNumbers json.RawMessage   `json:"phoneNumbers"`
	IsArchived   bool              `json:"isArchived"`
	IsPublished  bool              `json:"isPublished"`
	Rating       int               `json:"rating"`
	AuthorId     string            `json:"authorId"`
	Author       *rawUser          `json:"author"`
	Categories   []json.RawMessage `json:"categories"`
	Comments     []rawComment      `json:"comments"`
	CreatedAt    json.RawMessage   `json:"createdAt"`
	UpdatedAt    json.RawMessage   `json:"updatedAt"`
}

// normalizer rebuilds display copies from loosely shaped payloads. It never
// fails: bad dates fall back to the clock and bad lists become empty.
type normalizer struct {
	now func() time.Time
	log *zap.Logger
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (n normalizer) date(field string, raw json.RawMessage) time.Time {
	if isNull(raw) {
		return n.now()
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t
			}
		}
	}

	n.log.Debug("unparsable date, using current time", zap.String("field", field), zap.ByteString("value", raw))
	return n.now()
}

func (n normalizer) optionalDate(field string, raw json.RawMessage) *time.Time {
	if isNull(raw) {
		return nil
	}
	t := n.date(field, raw)
	return &t
}

// list accepts a JSON array of strings or the same array encoded as text.
func (n normalizer) list(field string, raw json.RawMessage) []string {
	out := []string{}
	if isNull(raw) {
		return out
	}

	payload := []byte(raw)
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if text == "" {
			return out
		}
		payload = []byte(text)
	}

	var items []string
	if err := json.Unmarshal(payload, &items); err != nil {
		n.log.Warn("failed to parse list field", zap.String("field", field), zap.Error(err))
		return out
	}
	if items != nil {
		out = items
	}
	return out
}

// category accepts either a bare name or an {id, name} object.
func (n normalizer) category(raw json.RawMessage) (Category, bool) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return Category{ID: name, Name: name}, name != ""
	}

	var obj rawCategory
	if err := json.Unmarshal(raw, &obj); err != nil {
		n.log.Warn("dropping malformed category", zap.ByteString("value", raw), zap.Error(err))
		return Category{}, false
	}
	if obj.Id == "" {
		obj.Id = obj.Name
	}
	return Category{
		ID:        obj.Id,
		Name:      obj.Name,
		CreatedAt: n.date("createdAt", obj.CreatedAt),
		UpdatedAt: n.date("updatedAt", obj.UpdatedAt),
	}, true
}

func (n normalizer) user(raw *rawUser) *User {
	if raw == nil {
		return nil
	}
	return &User{ID: raw.Id, Username: raw.Username, Role: raw.Role}
}

func (n normalizer) comment(raw rawComment) Comment {
	return Comment{
		ID:        raw.Id,
		Content:   raw.Content,
		NoteID:    raw.NoteId,
		AuthorID:  raw.AuthorId,
		Author:    n.user(raw.Author),
		CreatedAt: n.date("createdAt", raw.CreatedAt),
		UpdatedAt: n.date("updatedAt", raw.UpdatedAt),
	}
}

func (n normalizer) note(raw rawNote) Note {
	note := Note{
		ID:           raw.Id,
		Title:        raw.Title,
		Content:      raw.Content,
		EventDate:    n.optionalDate("eventDate", raw.EventDate),
		Tags:         n.list("tags", raw.Tags),
		Province:     raw.Province,
		PhoneNumbers: n.list("phoneNumbers", raw.PhoneNumbers),
		IsArchived:   raw.IsArchived,
		IsPublished:  raw.IsPublished,
		Rating:       raw.Rating,
		AuthorID:     raw.AuthorId,
		Author:       n.user(raw.Author),
		Categories:   make([]Category, 0, len(raw.Categories)),
		Comments:     make([]Comment, 0, len(raw.Comments)),
		CreatedAt:    n.date("createdAt", raw.CreatedAt),
		UpdatedAt:    n.date("updatedAt", raw.UpdatedAt),
	}
	for _, c := range raw.Categories {
		if category, ok := n.category(c); ok {
			note.Categories = append(note.Categories, category)
		}
	}
	for _, c := range raw.Comments {
		note.Comments = append(note.Comments, n.comment(c))
	}
	return note
}

// FilterNotes applies criteria to an already fetched note set and returns the
// matches ordered by most recently updated.
func FilterNotes(notes []Note, criteria notefilter.Criteria) []Note {
	return notefilter.Apply(notes, criteria, noteRecord)
}

func noteRecord(n Note) notefilter.Record {
	names := make([]string, 0, len(n.Categories))
	for _, c := range n.Categories {
		names = append(names, c.Name)
	}
	return notefilter.Record{
		Title:        n.Title,
		Content:      n.Content,
		PhoneNumbers: n.PhoneNumbers,
		EventDate:    n.EventDate,
		Categories:   names,
		Tags:         n.Tags,
		Province:     n.Province,
		IsArchived:   n.IsArchived,
		IsPublished:  n.IsPublished,
		UpdatedAt:    n.UpdatedAt,
	}
}
