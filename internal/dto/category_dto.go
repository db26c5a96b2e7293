package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type RenameCategoryRequest struct {
	Id   uuid.UUID `json:"-"`
	Name string    `json:"name"`
}

type CategoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategorySummary struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
