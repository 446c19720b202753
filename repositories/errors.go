package repositories

import (
	"errors"

	"task-server/apperrors"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the application error kinds.
func translate(err error, notFound, conflict, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != "":
		return apperrors.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey) && conflict != "":
		return apperrors.Conflict(conflict)
	default:
		return apperrors.Internal(op, err)
	}
}
