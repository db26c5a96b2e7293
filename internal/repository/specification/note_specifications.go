package specification

import (
	"personal-notes-be/internal/repository/scope"

	"gorm.io/gorm"
)

// WithAuthor preloads the note author
type WithAuthor struct{}

func (s WithAuthor) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Author")
}

// WithCategories preloads the category set, alphabetically
type WithCategories struct{}

func (s WithCategories) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories", scope.OrderByNameAsc)
}

// WithComments preloads comments oldest first, each with its author
type WithComments struct{}

func (s WithComments) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Comments", scope.OrderByCreatedAsc).Preload("Comments.Author")
}
