package implementation

import (
	"context"
	"errors"
	"time"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/mapper"
	"personal-notes-be/internal/model"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/repository/contract"
	"personal-notes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB, log logger.ILogger) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(log),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func categoryRefs(categories []*entity.Category) []model.Category {
	refs := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		refs = append(refs, model.Category{Id: c.Id, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt})
	}
	return refs
}

// Create runs in its own (nested when inside a unit of work) transaction so the
// row and its category links land together.
func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		if len(note.Categories) == 0 {
			return nil
		}
		refs := categoryRefs(note.Categories)
		// Omit "Categories.*" links existing rows without upserting them
		return tx.Model(m).Omit("Categories.*").Association("Categories").Append(&refs)
	})
	if err != nil {
		return translateError(err)
	}
	note.CreatedAt = m.CreatedAt
	note.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	m.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Note{}).
			Where("id = ?", m.Id).
			Select("title", "content", "event_date", "tags", "province", "phone_numbers",
				"is_archived", "is_published", "updated_at").
			Updates(m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		assoc := tx.Model(&model.Note{Id: m.Id}).Omit("Categories.*").Association("Categories")
		if len(note.Categories) == 0 {
			return assoc.Clear()
		}
		refs := categoryRefs(note.Categories)
		return assoc.Replace(&refs)
	})
	if err != nil {
		return translateError(err)
	}
	note.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *NoteRepositoryImpl) UpdateRating(ctx context.Context, id uuid.UUID, rating int) error {
	res := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"rating": rating, "updated_at": time.Now()})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Note{Id: id}).Association("Categories").Clear(); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Note{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translateError(err)
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
