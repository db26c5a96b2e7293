package main

import (
	"context"
	"fmt"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSeeder(uowFactory unitofwork.RepositoryFactory) *Seeder {
	return &Seeder{uowFactory: uowFactory}
}

// SeedUser creates the account unless the username is taken. Existing
// passwords are never overwritten.
func (s *Seeder) SeedUser(ctx context.Context, username, password string, role entity.UserRole) (bool, error) {
	if !role.Valid() {
		return false, fmt.Errorf("unknown role %q", role)
	}

	users := s.uowFactory.NewUnitOfWork(ctx).UserRepository()
	existing, err := users.FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	return true, users.Create(ctx, &entity.User{
		Id:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
}

// SeedCategories inserts the names that do not exist yet and reports how many were added.
func (s *Seeder) SeedCategories(ctx context.Context, names []string) (int, error) {
	categories := s.uowFactory.NewUnitOfWork(ctx).CategoryRepository()

	created := 0
	for _, name := range names {
		existing, err := categories.FindOne(ctx, specification.ByName{Name: name})
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		if err := categories.Create(ctx, &entity.Category{Id: uuid.New(), Name: name}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
