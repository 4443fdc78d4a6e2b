package inventory

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNegativeStock    = errors.New("stock cannot be negative")
	ErrDuplicateProduct = errors.New("product already exists")
)
