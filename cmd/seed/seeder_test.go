package main

import (
	"context"
	"testing"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/model"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/testutil"
	"personal-notes-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	db := testutil.NewTestDB(t)
	return NewSeeder(unitofwork.NewRepositoryFactory(db, logger.NewNopLogger())), db
}

func TestSeedUserIsIdempotent(t *testing.T) {
	seeder, db := newTestSeeder(t)
	ctx := context.Background()

	created, err := seeder.SeedUser(ctx, "admin", "first", entity.UserRoleAdmin)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = seeder.SeedUser(ctx, "admin", "second", entity.UserRoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)

	var stored model.User
	require.NoError(t, db.Where("username = ?", "admin").First(&stored).Error)
	assert.Equal(t, "ADMIN", stored.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("first")))
}

func TestSeedUserRejectsUnknownRole(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	_, err := seeder.SeedUser(context.Background(), "root", "pw", entity.UserRole("ROOT"))
	assert.Error(t, err)
}

func TestSeedCategoriesSkipsExisting(t *testing.T) {
	seeder, db := newTestSeeder(t)
	ctx := context.Background()
	testutil.SeedCategory(t, db, "Work")

	created, err := seeder.SeedCategories(ctx, []string{"Personal", "Work"})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = seeder.SeedCategories(ctx, []string{"Personal", "Work"})
	require.NoError(t, err)
	assert.Zero(t, created)
}
