package mapper

import (
	"encoding/json"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/model"
	"personal-notes-be/internal/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NoteMapper struct {
	users      *UserMapper
	categories *CategoryMapper
	comments   *CommentMapper
	logger     logger.ILogger
}

func NewNoteMapper(log logger.ILogger) *NoteMapper {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &NoteMapper{
		users:      NewUserMapper(),
		categories: NewCategoryMapper(),
		comments:   NewCommentMapper(),
		logger:     log,
	}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	note := &entity.Note{
		Id:           n.Id,
		Title:        n.Title,
		Content:      n.Content,
		EventDate:    n.EventDate,
		Tags:         m.decodeList(n.Id, "tags", n.Tags),
		Province:     n.Province,
		PhoneNumbers: m.decodeList(n.Id, "phone_numbers", n.PhoneNumbers),
		IsArchived:   n.IsArchived,
		IsPublished:  n.IsPublished,
		Rating:       n.Rating,
		AuthorId:     n.AuthorId,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}

	if n.Author.Id != uuid.Nil {
		note.Author = m.users.ToEntity(&n.Author)
	}
	if n.Categories != nil {
		note.Categories = make([]*entity.Category, len(n.Categories))
		for i := range n.Categories {
			note.Categories[i] = m.categories.ToEntity(&n.Categories[i])
		}
	}
	if n.Comments != nil {
		note.Comments = make([]*entity.Comment, len(n.Comments))
		for i := range n.Comments {
			note.Comments[i] = m.comments.ToEntity(&n.Comments[i])
		}
	}

	return note
}

// ToModel maps scalar columns only. Category associations are replaced
// explicitly by the repository.
func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:           n.Id,
		Title:        n.Title,
		Content:      n.Content,
		EventDate:    n.EventDate,
		Tags:         EncodeList(n.Tags),
		Province:     n.Province,
		PhoneNumbers: EncodeList(n.PhoneNumbers),
		IsArchived:   n.IsArchived,
		IsPublished:  n.IsPublished,
		Rating:       n.Rating,
		AuthorId:     n.AuthorId,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

// decodeList never fails: stored content that is not a JSON string array
// becomes an empty list so one bad row cannot break a whole listing.
func (m *NoteMapper) decodeList(noteId uuid.UUID, column string, raw datatypes.JSON) []string {
	list, err := DecodeList(raw)
	if err != nil {
		m.logger.Warn("MAPPER", "Malformed JSON list column, using empty list", map[string]interface{}{
			"note_id": noteId.String(),
			"column":  column,
			"error":   err.Error(),
		})
		return []string{}
	}
	return list
}

// DecodeList reads a JSON array of strings. Empty and null input decode to an empty list.
func DecodeList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return []string{}, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func EncodeList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return datatypes.JSON(b)
}
