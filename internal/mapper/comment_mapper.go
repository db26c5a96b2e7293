package mapper

import (
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/model"

	"github.com/google/uuid"
)

type CommentMapper struct {
	users *UserMapper
}

func NewCommentMapper() *CommentMapper {
	return &CommentMapper{users: NewUserMapper()}
}

func (m *CommentMapper) ToEntity(c *model.Comment) *entity.Comment {
	if c == nil {
		return nil
	}

	var author *entity.User
	if c.Author.Id != uuid.Nil {
		author = m.users.ToEntity(&c.Author)
	}

	return &entity.Comment{
		Id:        c.Id,
		Content:   c.Content,
		NoteId:    c.NoteId,
		AuthorId:  c.AuthorId,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Author:    author,
	}
}

// ToModel leaves Author empty; associations are never written through a comment.
func (m *CommentMapper) ToModel(c *entity.Comment) *model.Comment {
	if c == nil {
		return nil
	}
	return &model.Comment{
		Id:        c.Id,
		Content:   c.Content,
		NoteId:    c.NoteId,
		AuthorId:  c.AuthorId,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *CommentMapper) ToEntities(comments []*model.Comment) []*entity.Comment {
	entities := make([]*entity.Comment, len(comments))
	for i, c := range comments {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
