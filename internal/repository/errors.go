// Package repository holds the GORM-backed stores. Stores translate driver
// errors into ErrNotFound and ErrDuplicate so services never import gorm.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// translate relies on gorm.Config.TranslateError being enabled.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// IdeaFilter narrows List.
type IdeaFilter struct {
	PublicOnly bool
	Limit      int
}

type countRow struct {
	GroupKey string
	Count    int64
}
