package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title        string     `gorm:"type:varchar(255);not null"`
	Content      string     `gorm:"type:text;not null"`
	EventDate    *time.Time `gorm:"index"`
	Tags         datatypes.JSON
	Province     string `gorm:"type:varchar(255);not null;index"`
	PhoneNumbers datatypes.JSON
	IsArchived   bool      `gorm:"not null;default:false"`
	IsPublished  bool      `gorm:"not null;default:false"`
	Rating       int       `gorm:"not null;default:0;check:chk_notes_rating,rating >= 0 AND rating <= 5"`
	AuthorId     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;index"`

	Author     User       `gorm:"foreignKey:AuthorId"`
	Categories []Category `gorm:"many2many:note_categories;"`
	Comments   []Comment  `gorm:"foreignKey:NoteId"`
}

func (Note) TableName() string {
	return "notes"
}
