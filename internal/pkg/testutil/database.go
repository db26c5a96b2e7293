// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"personal-notes-be/internal/model"
	"personal-notes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory SQLite database with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.AllModels()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedUser inserts a user with a bcrypt hash of password (MinCost keeps tests fast).
func SeedUser(t *testing.T, db *gorm.DB, username, password, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &model.User{
		Id:       uuid.New(),
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

func SeedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	c := &model.Category{Id: uuid.New(), Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

// FixedClock returns a clock that always reports ts.
func FixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
