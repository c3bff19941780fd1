package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// isDuplicate reports a unique-index violation. The connection must be opened
// with TranslateError so drivers report gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
