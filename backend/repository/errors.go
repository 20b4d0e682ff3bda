package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
