package service

import (
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
)

func toUserIdentity(i entity.Identity) dto.UserIdentity {
	return dto.UserIdentity{
		Id:       i.Id.String(),
		Username: i.Username,
		Role:     string(i.Role),
	}
}

func toUserSummary(u *entity.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{Id: u.Id, Username: u.Username}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		Id:        c.Id,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentResponse(c *entity.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		Id:        c.Id,
		Content:   c.Content,
		NoteId:    c.NoteId,
		AuthorId:  c.AuthorId,
		Author:    toUserSummary(c.Author),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	categories := make([]dto.CategorySummary, 0, len(n.Categories))
	for _, c := range n.Categories {
		categories = append(categories, dto.CategorySummary{Id: c.Id, Name: c.Name})
	}

	return &dto.NoteResponse{
		Id:           n.Id,
		Title:        n.Title,
		Content:      n.Content,
		EventDate:    n.EventDate,
		Tags:         nonNil(n.Tags),
		Province:     n.Province,
		PhoneNumbers: nonNil(n.PhoneNumbers),
		IsArchived:   n.IsArchived,
		IsPublished:  n.IsPublished,
		Rating:       n.Rating,
		AuthorId:     n.AuthorId,
		Author:       toUserSummary(n.Author),
		Categories:   categories,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func toNoteDetailResponse(n *entity.Note) *dto.NoteDetailResponse {
	comments := make([]dto.CommentResponse, 0, len(n.Comments))
	for _, c := range n.Comments {
		comments = append(comments, toCommentResponse(c))
	}
	return &dto.NoteDetailResponse{
		NoteResponse: *toNoteResponse(n),
		Comments:     comments,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
