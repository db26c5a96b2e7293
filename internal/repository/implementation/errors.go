package implementation

import (
	"errors"

	"personal-notes-be/internal/pkg/apperror"

	"gorm.io/gorm"
)

// translateError turns driver-level failures that carry meaning for callers
// into application errors. Everything else is returned untouched.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperror.Error{Kind: apperror.KindConflict, Message: "Record already exists", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &apperror.Error{Kind: apperror.KindForeignKey, Message: "Referenced record does not exist", Err: err}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &apperror.Error{Kind: apperror.KindNotFound, Message: "Record not found", Err: err}
	default:
		return err
	}
}
