package unitofwork

import (
	"context"

	"personal-notes-be/internal/pkg/logger"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db     *gorm.DB
	logger logger.ILogger
}

func NewRepositoryFactory(db *gorm.DB, log logger.ILogger) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db:     db,
		logger: log,
	}
}

// NewUnitOfWork is short lived, one per service call.
func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db, f.logger)
}
