package employees

import "errors"

var (
	ErrNotFound            = errors.New("employee not found")
	ErrDuplicateNationalID = errors.New("national id already registered")
	ErrInvalidCatalogRef   = errors.New("referenced catalog entry does not exist")
)
